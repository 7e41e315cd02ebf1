package database

import (
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/MininduBimsara/arcgis-storymaps-contest-api/config"
	"github.com/MininduBimsara/arcgis-storymaps-contest-api/models"
)

// DefaultCategories seeded on first start so the contest is usable before any
// admin curation happens
var DefaultCategories = []models.Category{
	{Name: "Culture & History", Description: "Stories about cultural heritage and historical places", IsActive: true},
	{Name: "Environment & Sustainability", Description: "Stories about conservation, climate, and sustainable living", IsActive: true},
	{Name: "Travel & Exploration", Description: "Stories about journeys, expeditions, and places worth visiting", IsActive: true},
	{Name: "Community & Society", Description: "Stories about people, communities, and social change", IsActive: true},
}

// InitDB opens the database connection and migrates the models. The returned
// handle is injected into the repositories; nothing holds it globally.
func InitDB() *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s dbname=%s password=%s sslmode=disable",
		config.PostgresHost, config.PostgresPort, config.PostgresUser, config.PostgresDB, config.PostgresPassword)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("failed to connect database: ", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Submission{},
	)
	if err != nil {
		log.Fatal("failed to migrate database: ", err)
	}

	Populate(db)
	return db
}

// Populate seeds the default admin account and categories if the database is empty
func Populate(db *gorm.DB) {
	var countUser int64
	db.Model(&models.User{}).Count(&countUser)
	if countUser == 0 && config.DefaultAdminPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(config.DefaultAdminPassword), bcrypt.DefaultCost)
		if err != nil {
			panic(err)
		}

		admin := models.User{
			Email:         config.DefaultAdminEmail,
			FirstName:     "Admin",
			LastName:      "Admin",
			Password:      string(hash),
			Role:          models.RoleAdmin,
			Status:        models.UserActive,
			EmailVerified: true,
		}
		db.Create(&admin)
		log.Println("Default admin user created")
	}

	var countCategory int64
	db.Model(&models.Category{}).Count(&countCategory)
	if countCategory == 0 {
		for _, category := range DefaultCategories {
			db.Create(&category)
			log.Println("Default category created: ", category.Name)
		}
	}
}

package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/MininduBimsara/arcgis-storymaps-contest-api/cache"
	"github.com/MininduBimsara/arcgis-storymaps-contest-api/config"
	"github.com/MininduBimsara/arcgis-storymaps-contest-api/database"
	_ "github.com/MininduBimsara/arcgis-storymaps-contest-api/docs"
	"github.com/MininduBimsara/arcgis-storymaps-contest-api/handlers/submissions"
	"github.com/MininduBimsara/arcgis-storymaps-contest-api/logger"
	"github.com/MininduBimsara/arcgis-storymaps-contest-api/middleware"
	"github.com/MininduBimsara/arcgis-storymaps-contest-api/realtime"
	"github.com/MininduBimsara/arcgis-storymaps-contest-api/repositories"
	v1 "github.com/MininduBimsara/arcgis-storymaps-contest-api/routes/v1"
	"github.com/MininduBimsara/arcgis-storymaps-contest-api/services"
)

// @title ArcGIS StoryMaps Contest API
// @version 1.0
// @description Submission lifecycle and review API for the StoryMaps contest
// @BasePath /api/v1
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.Init()

	zapLogger, err := logger.New()
	if err != nil {
		log.Fatal("failed to initialize logger: ", err)
	}
	defer zapLogger.Sync()

	// Initialize database and data-access layer
	db := database.InitDB()
	store := repositories.NewStore(db)
	listingCache := cache.New(zapLogger)

	// Initialize services
	guard := services.NewGuard(store)
	counters := services.NewCounterSynchronizer(zapLogger)
	emailService := services.NewEmailService()
	submissionService := services.NewSubmissionService(store, guard, counters, emailService, listingCache, zapLogger)
	statusService := services.NewStatusService(store, realtime.Bridge{}, listingCache, zapLogger)
	exportService := services.NewExportService(store)

	// Initialize handlers
	submissionHandler := submissions.NewHandler(submissionService, statusService, counters, exportService, store)

	// Setup router
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.ClientUrl},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	v1.Register(router, submissionHandler, db)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	middleware.UpdateSystemMetrics()

	zapLogger.Info("server starting", zap.String("port", config.Port))
	if err := router.Run(":" + config.Port); err != nil {
		zapLogger.Fatal("server stopped", zap.Error(err))
	}
}

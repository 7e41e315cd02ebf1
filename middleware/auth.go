package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/MininduBimsara/arcgis-storymaps-contest-api/config"
	"github.com/MininduBimsara/arcgis-storymaps-contest-api/models"
)

const userContextKey = "currentUser"

// AuthMiddleware requires a valid bearer token and resolves the caller's
// user row so role and status checks always see current values
func AuthMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := resolveUser(c, db)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		c.Set(userContextKey, user)
		c.Next()
	}
}

// OptionalAuthMiddleware resolves the caller when a token is present but
// lets anonymous requests through
func OptionalAuthMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, err := resolveUser(c, db); err == nil {
			c.Set(userContextKey, user)
		}
		c.Next()
	}
}

// GetUserFromRequest returns the authenticated user, writing a 401 response
// when the request carries none
func GetUserFromRequest(c *gin.Context) (*models.User, error) {
	value, exists := c.Get(userContextKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return nil, errors.New("no authenticated user")
	}
	return value.(*models.User), nil
}

// GetUserIfPresent returns the authenticated user or nil without writing a
// response; used on endpoints that serve anonymous callers
func GetUserIfPresent(c *gin.Context) *models.User {
	if value, exists := c.Get(userContextKey); exists {
		return value.(*models.User)
	}
	return nil
}

func resolveUser(c *gin.Context, db *gorm.DB) (*models.User, error) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return nil, errors.New("missing bearer token")
	}
	tokenString := strings.TrimPrefix(header, "Bearer ")

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return nil, errors.New("token has no user_id")
	}

	var user models.User
	if err := db.WithContext(c.Request.Context()).First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

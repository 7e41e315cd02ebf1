package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/MininduBimsara/arcgis-storymaps-contest-api/config"
	"github.com/MininduBimsara/arcgis-storymaps-contest-api/handlers/submissions"
	"github.com/MininduBimsara/arcgis-storymaps-contest-api/middleware"
)

// Register the endpoints for the v1 API
func Register(r *gin.Engine, submissionHandler *submissions.Handler, db *gorm.DB) {
	v1 := r.Group("/api/v1")

	// Add metrics middleware to all routes
	v1.Use(middleware.MetricsMiddleware())

	rateLimiter := middleware.NewRateLimiter(config.RateLimiter.RequestsPerMinute, config.RateLimiter.Burst)
	v1.Use(middleware.RateLimiterMiddleware(rateLimiter))

	RegisterPingRoutes(v1)
	RegisterSupportRoutes(v1)
	submissions.RegisterRoutes(v1, submissionHandler, db)

	// Register metrics endpoint
	RegisterMetricsRoutes(v1)
}

// RegisterPingRoutes registers the health check route
func RegisterPingRoutes(r *gin.RouterGroup) {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
}

package submissions

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/MininduBimsara/arcgis-storymaps-contest-api/middleware"
)

// RegisterRoutes registers all routes related to submissions
// r: the RouterGroup to which routes are added
func RegisterRoutes(r *gin.RouterGroup, h *Handler, db *gorm.DB) {
	group := r.Group("/submissions")

	// Read endpoints serve anonymous callers with the public scope
	read := group.Group("")
	read.Use(middleware.OptionalAuthMiddleware(db))
	{
		read.GET("", h.ListSubmissions)
		read.GET("/top", h.TopSubmissions)
		read.GET("/:id", h.GetSubmission)
	}

	authed := group.Group("")
	authed.Use(middleware.AuthMiddleware(db))
	{
		authed.POST("", h.CreateSubmission)
		authed.PUT("/:id", h.UpdateSubmission)
		authed.DELETE("/:id", h.DeleteSubmission)

		authed.PUT("/:id/status", h.UpdateStatus)
		authed.POST("/bulk-approve", h.BulkApprove)
		authed.POST("/reconcile", h.ReconcileCounters)
		authed.GET("/export", h.ExportSubmissions)
		authed.GET("/ws/:category_id", h.WatchCategory)
	}
}

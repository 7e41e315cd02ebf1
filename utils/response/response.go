package response

import (
	"github.com/gin-gonic/gin"
)

// Error sends a standardized error response
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// FieldError sends an error response naming the field the caller must correct
func FieldError(c *gin.Context, status int, field string, message string) {
	c.JSON(status, gin.H{"error": message, "field": field})
}

// LimitError sends an error response carrying the limit that was hit
func LimitError(c *gin.Context, status int, message string, limit int) {
	c.JSON(status, gin.H{"error": message, "limit": limit})
}

package submissions

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MininduBimsara/arcgis-storymaps-contest-api/middleware"
	"github.com/MininduBimsara/arcgis-storymaps-contest-api/services"
	"github.com/MininduBimsara/arcgis-storymaps-contest-api/utils/response"
)

// UpdateStatusRequest model for an admin review-state change
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Note   string `json:"note"`
}

// BulkApproveRequest model for approving a batch of submissions
type BulkApproveRequest struct {
	IDs []string `json:"ids" binding:"required,min=1,max=50"`
}

func respondWithError(c *gin.Context, status int, message string) {
	response.Error(c, status, message)
}

// handleServiceError maps the service error taxonomy onto HTTP statuses with
// enough detail for the caller to correct the request
func handleServiceError(c *gin.Context, err error) {
	var (
		validationErr *services.ValidationError
		duplicateErr  *services.DuplicateURLError
		quotaErr      *services.QuotaExceededError
		categoryErr   *services.InvalidCategoryError
		statusErr     *services.InvalidStatusError
		stateErr      *services.InvalidStateError
	)

	switch {
	case errors.As(err, &validationErr):
		response.FieldError(c, http.StatusBadRequest, validationErr.Field, validationErr.Message)
	case errors.As(err, &duplicateErr):
		respondWithError(c, http.StatusConflict, duplicateErr.Error())
	case errors.As(err, &quotaErr):
		response.LimitError(c, http.StatusConflict, quotaErr.Error(), quotaErr.Limit)
	case errors.As(err, &categoryErr):
		respondWithError(c, http.StatusBadRequest, categoryErr.Error())
	case errors.As(err, &statusErr):
		respondWithError(c, http.StatusBadRequest, statusErr.Error())
	case errors.As(err, &stateErr):
		respondWithError(c, http.StatusConflict, stateErr.Error())
	case errors.Is(err, services.ErrNotFound):
		respondWithError(c, http.StatusNotFound, "Submission not found")
	case errors.Is(err, services.ErrForbidden):
		respondWithError(c, http.StatusForbidden, "You do not have permission to perform this action")
	default:
		respondWithError(c, http.StatusInternalServerError, "Internal server error")
	}
}

// callerFromRequest builds the caller context, anonymous when no user is
// attached to the request
func callerFromRequest(c *gin.Context) services.CallerContext {
	if user := middleware.GetUserIfPresent(c); user != nil {
		return services.CallerFromUser(user)
	}
	return services.AnonymousCaller()
}

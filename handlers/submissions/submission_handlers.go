package submissions

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/MininduBimsara/arcgis-storymaps-contest-api/repositories"
	"github.com/MininduBimsara/arcgis-storymaps-contest-api/services"
)

// Handler exposes the submission endpoints
type Handler struct {
	submissions *services.SubmissionService
	status      *services.StatusService
	counters    *services.CounterSynchronizer
	export      *services.ExportService
	store       repositories.Store
}

func NewHandler(
	submissionService *services.SubmissionService,
	statusService *services.StatusService,
	counters *services.CounterSynchronizer,
	exportService *services.ExportService,
	store repositories.Store,
) *Handler {
	return &Handler{
		submissions: submissionService,
		status:      statusService,
		counters:    counters,
		export:      exportService,
		store:       store,
	}
}

// CreateSubmission enters a new contest submission
// @Summary Create a submission
// @Description Create a contest submission referencing a StoryMap URL
// @Tags Submissions
// @Accept json
// @Produce json
// @Param request body services.CreateSubmissionRequest true "Submission fields"
// @Success 201 {object} models.Submission
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /submissions [post]
// @Security Bearer
func (h *Handler) CreateSubmission(c *gin.Context) {
	var req services.CreateSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	submission, err := h.submissions.Create(c.Request.Context(), callerFromRequest(c), req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, submission)
}

// ListSubmissions lists submissions visible to the caller
// @Summary List submissions
// @Description List submissions; anonymous callers see approved public entries, owners additionally see their own
// @Tags Submissions
// @Produce json
// @Param category query string false "Category ID"
// @Param region query string false "Region"
// @Param status query string false "Status filter (admins only)"
// @Param q query string false "Search in title and description"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} services.SubmissionList
// @Router /submissions [get]
func (h *Handler) ListSubmissions(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	params := services.ListParams{
		CategoryID: c.Query("category"),
		Region:     c.Query("region"),
		Status:     c.Query("status"),
		Search:     c.Query("q"),
		Page:       page,
		PageSize:   pageSize,
	}

	list, err := h.submissions.List(c.Request.Context(), callerFromRequest(c), params)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// TopSubmissions lists the public leaderboard
// @Summary Top submissions
// @Description Approved public submissions ordered by average score, newest first on ties
// @Tags Submissions
// @Produce json
// @Param limit query int false "Number of entries (max 50)"
// @Success 200 {object} services.SubmissionList
// @Router /submissions/top [get]
func (h *Handler) TopSubmissions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	list, err := h.submissions.Top(c.Request.Context(), limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// GetSubmission fetches a single submission
// @Summary Get a submission
// @Description Get a submission by id; owners and admins see any state, others only approved public entries
// @Tags Submissions
// @Produce json
// @Param id path string true "Submission ID"
// @Success 200 {object} models.Submission
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /submissions/{id} [get]
func (h *Handler) GetSubmission(c *gin.Context) {
	submission, err := h.submissions.Get(c.Request.Context(), callerFromRequest(c), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, submission)
}

// UpdateSubmission applies a partial update
// @Summary Update a submission
// @Description Update submission content; owners only while draft or submitted, admins in any state
// @Tags Submissions
// @Accept json
// @Produce json
// @Param id path string true "Submission ID"
// @Param request body services.UpdateSubmissionRequest true "Fields to change"
// @Success 200 {object} models.Submission
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /submissions/{id} [put]
// @Security Bearer
func (h *Handler) UpdateSubmission(c *gin.Context) {
	var req services.UpdateSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	submission, err := h.submissions.Update(c.Request.Context(), callerFromRequest(c), c.Param("id"), req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, submission)
}

// DeleteSubmission removes a submission
// @Summary Delete a submission
// @Description Delete a submission; owner or admin only
// @Tags Submissions
// @Produce json
// @Param id path string true "Submission ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /submissions/{id} [delete]
// @Security Bearer
func (h *Handler) DeleteSubmission(c *gin.Context) {
	if err := h.submissions.Delete(c.Request.Context(), callerFromRequest(c), c.Param("id")); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Submission deleted"})
}

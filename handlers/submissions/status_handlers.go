package submissions

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MininduBimsara/arcgis-storymaps-contest-api/models"
	"github.com/MininduBimsara/arcgis-storymaps-contest-api/services"
)

// UpdateStatus moves a submission through the review workflow
// @Summary Update submission status
// @Description Set a submission's review status, optionally appending an admin note
// @Tags Review
// @Accept json
// @Produce json
// @Param id path string true "Submission ID"
// @Param request body UpdateStatusRequest true "Target status and optional note"
// @Success 200 {object} models.Submission
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /submissions/{id}/status [put]
// @Security Bearer
func (h *Handler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	submission, err := h.status.UpdateStatus(c.Request.Context(), callerFromRequest(c),
		c.Param("id"), models.SubmissionStatus(req.Status), req.Note)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, submission)
}

// BulkApprove approves a batch of submissions
// @Summary Bulk approve submissions
// @Description Approve 1-50 submissions; each id is attempted independently and per-item failures are reported
// @Tags Review
// @Accept json
// @Produce json
// @Param request body BulkApproveRequest true "Submission ids"
// @Success 200 {object} services.BulkResult
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /submissions/bulk-approve [post]
// @Security Bearer
func (h *Handler) BulkApprove(c *gin.Context) {
	var req BulkApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	result, err := h.status.BulkApprove(c.Request.Context(), callerFromRequest(c), req.IDs)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ReconcileCounters recomputes the denormalized submission counters
// @Summary Reconcile submission counters
// @Description Recompute user and category submission counts from the submission table
// @Tags Review
// @Produce json
// @Success 200 {object} services.ReconcileReport
// @Failure 403 {object} map[string]string
// @Router /submissions/reconcile [post]
// @Security Bearer
func (h *Handler) ReconcileCounters(c *gin.Context) {
	caller := callerFromRequest(c)
	if !caller.IsAdmin() {
		handleServiceError(c, services.ErrForbidden)
		return
	}

	report, err := h.counters.Reconcile(c.Request.Context(), h.store)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// ExportSubmissions downloads all submissions as a spreadsheet
// @Summary Export submissions
// @Description Download an XLSX workbook with every submission
// @Tags Review
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Failure 403 {object} map[string]string
// @Router /submissions/export [get]
// @Security Bearer
func (h *Handler) ExportSubmissions(c *gin.Context) {
	workbook, err := h.export.Export(c.Request.Context(), callerFromRequest(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("submissions-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := workbook.Write(c.Writer); err != nil {
		respondWithError(c, http.StatusInternalServerError, "Failed to write export")
	}
}

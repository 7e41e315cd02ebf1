package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MininduBimsara/arcgis-storymaps-contest-api/cache"
	"github.com/MininduBimsara/arcgis-storymaps-contest-api/config"
	"github.com/MininduBimsara/arcgis-storymaps-contest-api/metrics"
	"github.com/MininduBimsara/arcgis-storymaps-contest-api/models"
	"github.com/MininduBimsara/arcgis-storymaps-contest-api/repositories"
)

// Broadcaster pushes status changes to the admin console feed
type Broadcaster interface {
	SubmissionStatusChanged(submission *models.Submission, from models.SubmissionStatus)
}

// BulkItemFailure records why one id in a bulk operation was not updated
type BulkItemFailure struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// BulkResult reports per-item outcomes; a failed item never aborts the batch
type BulkResult struct {
	Succeeded []string          `json:"succeeded"`
	Failed    []BulkItemFailure `json:"failed"`
}

// StatusService applies review-state transitions, singly and in bulk
type StatusService struct {
	store       repositories.Store
	auth        Authorizer
	broadcaster Broadcaster
	cache       *cache.Cache
	logger      *zap.Logger
}

func NewStatusService(store repositories.Store, broadcaster Broadcaster, listingCache *cache.Cache, logger *zap.Logger) *StatusService {
	return &StatusService{
		store:       store,
		broadcaster: broadcaster,
		cache:       listingCache,
		logger:      logger,
	}
}

// UpdateStatus moves a submission to target and optionally appends an entry
// to the append-only admin-notes log. Re-applying the current status is a
// valid transition, so the operation is idempotent apart from the note.
func (s *StatusService) UpdateStatus(ctx context.Context, caller CallerContext, id string, target models.SubmissionStatus, note string) (*models.Submission, error) {
	if !s.auth.CanTransition(caller) {
		return nil, ErrForbidden
	}
	if !models.IsValidStatus(target) {
		return nil, &InvalidStatusError{Status: string(target)}
	}

	submission, err := s.store.Submissions().GetByID(ctx, id, false)
	if err != nil {
		return nil, translateNotFound(err)
	}

	from := submission.Status
	if !models.CanTransition(from, target) {
		return nil, &InvalidStatusError{Status: string(target)}
	}

	submission.Status = target
	if note != "" {
		submission.AdminNotes = append(submission.AdminNotes, models.AdminNote{
			ID:        uuid.NewString(),
			Note:      note,
			AdminID:   caller.UserID,
			CreatedAt: time.Now(),
		})
	}

	if err := s.store.Submissions().Update(ctx, submission); err != nil {
		return nil, err
	}

	metrics.StatusTransitions.WithLabelValues(string(from), string(target)).Inc()
	s.cache.InvalidatePrefix(ctx, publicCachePrefix)
	if s.broadcaster != nil {
		s.broadcaster.SubmissionStatusChanged(submission, from)
	}

	s.logger.Info("submission status updated",
		zap.String("submission_id", submission.ID),
		zap.String("from", string(from)),
		zap.String("to", string(target)),
		zap.String("admin_id", caller.UserID))

	return submission, nil
}

// BulkApprove applies the approved status to each id independently and
// reports per-item outcomes
func (s *StatusService) BulkApprove(ctx context.Context, caller CallerContext, ids []string) (*BulkResult, error) {
	if !s.auth.CanTransition(caller) {
		return nil, ErrForbidden
	}
	if len(ids) == 0 || len(ids) > config.Submissions.MaxBulkIDs {
		return nil, &ValidationError{
			Field:   "ids",
			Message: "must contain between 1 and 50 submission ids",
		}
	}

	result := &BulkResult{Succeeded: []string{}, Failed: []BulkItemFailure{}}
	for _, id := range ids {
		if _, err := s.UpdateStatus(ctx, caller, id, models.StatusApproved, ""); err != nil {
			result.Failed = append(result.Failed, BulkItemFailure{ID: id, Reason: bulkFailureReason(err)})
			metrics.BulkItemResults.WithLabelValues("failed").Inc()
			continue
		}
		result.Succeeded = append(result.Succeeded, id)
		metrics.BulkItemResults.WithLabelValues("succeeded").Inc()
	}
	return result, nil
}

func bulkFailureReason(err error) string {
	var statusErr *InvalidStatusError
	switch {
	case errors.Is(err, ErrNotFound):
		return "NotFound"
	case errors.Is(err, ErrForbidden):
		return "Forbidden"
	case errors.As(err, &statusErr):
		return "InvalidStatus"
	default:
		return "Internal"
	}
}

package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/MininduBimsara/arcgis-storymaps-contest-api/config"
	"github.com/MininduBimsara/arcgis-storymaps-contest-api/metrics"
	"github.com/MininduBimsara/arcgis-storymaps-contest-api/models"
	"github.com/MininduBimsara/arcgis-storymaps-contest-api/repositories"
)

// Guard runs the pre-creation checks: URL uniqueness, per-user quota, and
// category liveness. These are advisory reads that give callers a precise
// error before the write is attempted; the storage layer (unique index,
// conditional counter increment) remains authoritative under concurrency.
type Guard struct {
	store repositories.Store
}

func NewGuard(store repositories.Store) *Guard {
	return &Guard{store: store}
}

// CheckURLUnique fails with DuplicateURLError when another submission
// (excluding excludeID) already references url. Exact, case-sensitive match.
func (g *Guard) CheckURLUnique(ctx context.Context, url string, excludeID string) error {
	existing, err := g.store.Submissions().GetByStoryMapURL(ctx, url, excludeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if existing != nil {
		metrics.GuardRejections.WithLabelValues("duplicate_url").Inc()
		return &DuplicateURLError{URL: url}
	}
	return nil
}

// CheckQuota fails with QuotaExceededError when the user already owns the
// configured maximum number of submissions. Admins are exempt.
func (g *Guard) CheckQuota(ctx context.Context, user *models.User) error {
	if user.IsAdmin() {
		return nil
	}
	limit := config.Submissions.MaxPerUser
	if user.SubmissionCount >= limit {
		metrics.GuardRejections.WithLabelValues("quota").Inc()
		return &QuotaExceededError{Limit: limit}
	}
	return nil
}

// CheckCategoryActive resolves the category and fails with
// InvalidCategoryError when it is missing or no longer accepting entries.
// Existing submissions keep their category when it is later deactivated.
func (g *Guard) CheckCategoryActive(ctx context.Context, categoryID string) (*models.Category, error) {
	category, err := g.store.Categories().GetByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			metrics.GuardRejections.WithLabelValues("category").Inc()
			return nil, &InvalidCategoryError{CategoryID: categoryID, Reason: "not found"}
		}
		return nil, err
	}
	if !category.IsActive {
		metrics.GuardRejections.WithLabelValues("category").Inc()
		return nil, &InvalidCategoryError{CategoryID: categoryID, Reason: "not accepting submissions"}
	}
	return category, nil
}

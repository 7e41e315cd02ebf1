package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/MininduBimsara/arcgis-storymaps-contest-api/config"
	"github.com/MininduBimsara/arcgis-storymaps-contest-api/models"
	"github.com/MininduBimsara/arcgis-storymaps-contest-api/repositories"
)

// CounterSynchronizer owns every write to the denormalized submission_count
// fields on users and categories. The On* hooks run inside the same
// transaction as the submission write they accompany.
type CounterSynchronizer struct {
	logger *zap.Logger
}

func NewCounterSynchronizer(logger *zap.Logger) *CounterSynchronizer {
	return &CounterSynchronizer{logger: logger}
}

// OnCreate increments both counters for a new submission. For non-admin
// owners the user increment is conditional on the quota cap, which makes it
// the authoritative quota check: two racing creations cannot both pass.
func (c *CounterSynchronizer) OnCreate(ctx context.Context, tx repositories.Store, owner *models.User, categoryID string) error {
	max := 0
	if !owner.IsAdmin() {
		max = config.Submissions.MaxPerUser
	}

	updated, err := tx.Users().IncrementSubmissionCount(ctx, owner.ID, max)
	if err != nil {
		return err
	}
	if !updated {
		return &QuotaExceededError{Limit: config.Submissions.MaxPerUser}
	}

	return tx.Categories().IncrementSubmissionCount(ctx, categoryID)
}

// OnDelete decrements both counters alongside a deletion
func (c *CounterSynchronizer) OnDelete(ctx context.Context, tx repositories.Store, ownerID, categoryID string) error {
	if err := tx.Users().DecrementSubmissionCount(ctx, ownerID); err != nil {
		return err
	}
	return tx.Categories().DecrementSubmissionCount(ctx, categoryID)
}

// OnCategoryChange moves one count between categories when a submission is
// reassigned
func (c *CounterSynchronizer) OnCategoryChange(ctx context.Context, tx repositories.Store, oldCategoryID, newCategoryID string) error {
	if oldCategoryID == newCategoryID {
		return nil
	}
	if err := tx.Categories().DecrementSubmissionCount(ctx, oldCategoryID); err != nil {
		return err
	}
	return tx.Categories().IncrementSubmissionCount(ctx, newCategoryID)
}

// ReconcileReport summarizes a counter reconciliation run
type ReconcileReport struct {
	Users      int `json:"users"`
	Categories int `json:"categories"`
}

// Reconcile recomputes both counters from the submission table. Recovery
// entry point for drift after partial failures outside this process.
func (c *CounterSynchronizer) Reconcile(ctx context.Context, store repositories.Store) (ReconcileReport, error) {
	var report ReconcileReport

	err := store.InTransaction(ctx, func(tx repositories.Store) error {
		byUser, err := tx.Submissions().CountsByUser(ctx)
		if err != nil {
			return err
		}
		byCategory, err := tx.Submissions().CountsByCategory(ctx)
		if err != nil {
			return err
		}

		if err := tx.Users().ResetSubmissionCounts(ctx); err != nil {
			return err
		}
		for userID, count := range byUser {
			if err := tx.Users().SetSubmissionCount(ctx, userID, count); err != nil {
				return err
			}
			report.Users++
		}

		if err := tx.Categories().ResetSubmissionCounts(ctx); err != nil {
			return err
		}
		for categoryID, count := range byCategory {
			if err := tx.Categories().SetSubmissionCount(ctx, categoryID, count); err != nil {
				return err
			}
			report.Categories++
		}
		return nil
	})
	if err != nil {
		return ReconcileReport{}, err
	}

	c.logger.Info("submission counters reconciled",
		zap.Int("users", report.Users),
		zap.Int("categories", report.Categories))
	return report, nil
}

package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/MininduBimsara/arcgis-storymaps-contest-api/models"
)

type CategoryRepository interface {
	GetByID(ctx context.Context, id string) (*models.Category, error)
	IncrementSubmissionCount(ctx context.Context, id string) error
	DecrementSubmissionCount(ctx context.Context, id string) error
	SetSubmissionCount(ctx context.Context, id string, count int64) error
	ResetSubmissionCounts(ctx context.Context) error
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) IncrementSubmissionCount(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&models.Category{}).
		Where("id = ?", id).
		UpdateColumn("submission_count", gorm.Expr("submission_count + 1")).Error
}

func (r *categoryRepository) DecrementSubmissionCount(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&models.Category{}).
		Where("id = ? AND submission_count > 0", id).
		UpdateColumn("submission_count", gorm.Expr("submission_count - 1")).Error
}

func (r *categoryRepository) SetSubmissionCount(ctx context.Context, id string, count int64) error {
	return r.db.WithContext(ctx).Model(&models.Category{}).
		Where("id = ?", id).
		UpdateColumn("submission_count", count).Error
}

func (r *categoryRepository) ResetSubmissionCounts(ctx context.Context) error {
	return r.db.WithContext(ctx).Model(&models.Category{}).
		Where("submission_count <> 0").
		UpdateColumn("submission_count", 0).Error
}

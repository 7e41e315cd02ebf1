package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/MininduBimsara/arcgis-storymaps-contest-api/models"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)

	// IncrementSubmissionCount bumps the denormalized count. When max > 0 the
	// update is conditional on submission_count < max and the boolean reports
	// whether a row was updated; this is the authoritative quota check.
	IncrementSubmissionCount(ctx context.Context, id string, max int) (bool, error)
	DecrementSubmissionCount(ctx context.Context, id string) error
	SetSubmissionCount(ctx context.Context, id string, count int64) error
	ResetSubmissionCounts(ctx context.Context) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) IncrementSubmissionCount(ctx context.Context, id string, max int) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id)
	if max > 0 {
		query = query.Where("submission_count < ?", max)
	}

	result := query.UpdateColumn("submission_count", gorm.Expr("submission_count + 1"))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *userRepository) DecrementSubmissionCount(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ? AND submission_count > 0", id).
		UpdateColumn("submission_count", gorm.Expr("submission_count - 1")).Error
}

func (r *userRepository) SetSubmissionCount(ctx context.Context, id string, count int64) error {
	return r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn("submission_count", count).Error
}

func (r *userRepository) ResetSubmissionCounts(ctx context.Context) error {
	return r.db.WithContext(ctx).Model(&models.User{}).
		Where("submission_count <> 0").
		UpdateColumn("submission_count", 0).Error
}

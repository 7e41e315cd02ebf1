package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/MininduBimsara/arcgis-storymaps-contest-api/metrics"
	"github.com/MininduBimsara/arcgis-storymaps-contest-api/models"
)

// SubmissionFilter narrows a listing query. The visibility fields are set by
// the authorization layer, never by callers directly.
type SubmissionFilter struct {
	// Unrestricted skips the visibility clause entirely (admin callers)
	Unrestricted bool
	// OwnerID widens the public clause to include the caller's own
	// submissions; empty for anonymous callers
	OwnerID string

	CategoryID string
	Region     string
	Status     models.SubmissionStatus
	Search     string
}

// ListOptions controls pagination and ordering
type ListOptions struct {
	Page     int
	PageSize int
	// Sort is "newest" (default) or "top" (average score, then recency)
	Sort   string
	Expand bool
}

type SubmissionRepository interface {
	Create(ctx context.Context, submission *models.Submission) error
	GetByID(ctx context.Context, id string, expand bool) (*models.Submission, error)
	GetByStoryMapURL(ctx context.Context, url string, excludeID string) (*models.Submission, error)
	List(ctx context.Context, filter SubmissionFilter, opts ListOptions) ([]models.Submission, int64, error)
	ListAll(ctx context.Context) ([]models.Submission, error)
	Update(ctx context.Context, submission *models.Submission) error
	Delete(ctx context.Context, id string) error
	CountsByUser(ctx context.Context) (map[string]int64, error)
	CountsByCategory(ctx context.Context) (map[string]int64, error)
}

type submissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) Create(ctx context.Context, submission *models.Submission) error {
	defer metrics.RecordDBOperation("create", "submissions", time.Now())
	return r.db.WithContext(ctx).Create(submission).Error
}

func (r *submissionRepository) GetByID(ctx context.Context, id string, expand bool) (*models.Submission, error) {
	defer metrics.RecordDBOperation("get", "submissions", time.Now())

	query := r.db.WithContext(ctx)
	if expand {
		query = query.Preload("Category").Preload("Owner")
	}

	var submission models.Submission
	if err := query.First(&submission, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *submissionRepository) GetByStoryMapURL(ctx context.Context, url string, excludeID string) (*models.Submission, error) {
	query := r.db.WithContext(ctx).Where("story_map_url = ?", url)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var submission models.Submission
	if err := query.First(&submission).Error; err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *submissionRepository) List(ctx context.Context, filter SubmissionFilter, opts ListOptions) ([]models.Submission, int64, error) {
	defer metrics.RecordDBOperation("list", "submissions", time.Now())

	query := r.db.WithContext(ctx).Model(&models.Submission{})

	if !filter.Unrestricted {
		if filter.OwnerID != "" {
			query = query.Where("(status = ? AND is_public = ?) OR submitted_by = ?",
				models.StatusApproved, true, filter.OwnerID)
		} else {
			query = query.Where("status = ? AND is_public = ?", models.StatusApproved, true)
		}
	}

	if filter.CategoryID != "" {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.Region != "" {
		query = query.Where("region = ?", filter.Region)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch opts.Sort {
	case "top":
		query = query.Order("average_score DESC, created_at DESC")
	default:
		query = query.Order("created_at DESC")
	}

	if opts.Expand {
		query = query.Preload("Category")
	}

	var submissions []models.Submission
	offset := (opts.Page - 1) * opts.PageSize
	if err := query.Offset(offset).Limit(opts.PageSize).Find(&submissions).Error; err != nil {
		return nil, 0, err
	}

	return submissions, total, nil
}

func (r *submissionRepository) ListAll(ctx context.Context) ([]models.Submission, error) {
	var submissions []models.Submission
	err := r.db.WithContext(ctx).
		Preload("Category").Preload("Owner").
		Order("created_at ASC").
		Find(&submissions).Error
	return submissions, err
}

func (r *submissionRepository) Update(ctx context.Context, submission *models.Submission) error {
	defer metrics.RecordDBOperation("update", "submissions", time.Now())
	return r.db.WithContext(ctx).Save(submission).Error
}

func (r *submissionRepository) Delete(ctx context.Context, id string) error {
	defer metrics.RecordDBOperation("delete", "submissions", time.Now())

	result := r.db.WithContext(ctx).Delete(&models.Submission{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *submissionRepository) CountsByUser(ctx context.Context) (map[string]int64, error) {
	return r.groupedCounts(ctx, "submitted_by")
}

func (r *submissionRepository) CountsByCategory(ctx context.Context) (map[string]int64, error) {
	return r.groupedCounts(ctx, "category_id")
}

func (r *submissionRepository) groupedCounts(ctx context.Context, column string) (map[string]int64, error) {
	var rows []struct {
		Key   string
		Count int64
	}
	err := r.db.WithContext(ctx).Model(&models.Submission{}).
		Select(column + " AS key, COUNT(*) AS count").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Key] = row.Count
	}
	return counts, nil
}

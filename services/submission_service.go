package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/MininduBimsara/arcgis-storymaps-contest-api/cache"
	"github.com/MininduBimsara/arcgis-storymaps-contest-api/config"
	"github.com/MininduBimsara/arcgis-storymaps-contest-api/metrics"
	"github.com/MininduBimsara/arcgis-storymaps-contest-api/models"
	"github.com/MininduBimsara/arcgis-storymaps-contest-api/repositories"
	"github.com/MininduBimsara/arcgis-storymaps-contest-api/utils"
)

// publicCachePrefix keys every cached public listing so any submission
// mutation can invalidate them all
const publicCachePrefix = "submissions:public:"

// Notifier delivers the submission-received notification. Failures are
// logged and discarded; they never fail the creation call.
type Notifier interface {
	SubmissionCreated(user *models.User, submission *models.Submission) error
}

// CreateSubmissionRequest carries the fields a participant supplies when
// entering the contest
type CreateSubmissionRequest struct {
	Title            string              `json:"title" binding:"required,min=5,max=100"`
	Description      string              `json:"description" binding:"required,min=50,max=1000"`
	StoryMapURL      string              `json:"story_map_url" binding:"required,url"`
	ThumbnailURL     string              `json:"thumbnail_url" binding:"omitempty,url"`
	PreviewImages    []string            `json:"preview_images" binding:"max=5"`
	CategoryID       string              `json:"category_id" binding:"required,uuid"`
	Tags             []string            `json:"tags" binding:"max=10"`
	Region           string              `json:"region" binding:"required"`
	SpecificLocation string              `json:"specific_location" binding:"max=200"`
	TeamMembers      []models.TeamMember `json:"team_members" binding:"max=10"`
}

// UpdateSubmissionRequest is a partial patch; nil fields are left untouched
type UpdateSubmissionRequest struct {
	Title            *string              `json:"title" binding:"omitempty,min=5,max=100"`
	Description      *string              `json:"description" binding:"omitempty,min=50,max=1000"`
	StoryMapURL      *string              `json:"story_map_url" binding:"omitempty,url"`
	ThumbnailURL     *string              `json:"thumbnail_url" binding:"omitempty,url"`
	PreviewImages    *[]string            `json:"preview_images" binding:"omitempty,max=5"`
	CategoryID       *string              `json:"category_id" binding:"omitempty,uuid"`
	Tags             *[]string            `json:"tags" binding:"omitempty,max=10"`
	Region           *string              `json:"region"`
	SpecificLocation *string              `json:"specific_location" binding:"omitempty,max=200"`
	TeamMembers      *[]models.TeamMember `json:"team_members" binding:"omitempty,max=10"`
	IsPublic         *bool                `json:"is_public"`
}

// ListParams are the caller-supplied listing filters
type ListParams struct {
	CategoryID string
	Region     string
	Status     string
	Search     string
	Page       int
	PageSize   int
	Sort       string
}

// SubmissionList is a page of results with the unpaginated total
type SubmissionList struct {
	Items []models.Submission `json:"items"`
	Total int64               `json:"total"`
}

// SubmissionService implements the submission lifecycle: creation behind the
// guards, visibility-scoped reads, the owner edit window, and deletion with
// counter bookkeeping.
type SubmissionService struct {
	store    repositories.Store
	guard    *Guard
	counters *CounterSynchronizer
	auth     Authorizer
	notifier Notifier
	cache    *cache.Cache
	logger   *zap.Logger
}

func NewSubmissionService(
	store repositories.Store,
	guard *Guard,
	counters *CounterSynchronizer,
	notifier Notifier,
	listingCache *cache.Cache,
	logger *zap.Logger,
) *SubmissionService {
	return &SubmissionService{
		store:    store,
		guard:    guard,
		counters: counters,
		notifier: notifier,
		cache:    listingCache,
		logger:   logger,
	}
}

// Create enters a new submission. The guards run first for precise errors;
// the creation transaction re-enforces uniqueness (index) and quota
// (conditional increment) so concurrent requests cannot slip past the
// read-then-write checks.
func (s *SubmissionService) Create(ctx context.Context, caller CallerContext, req CreateSubmissionRequest) (*models.Submission, error) {
	if err := s.auth.CanSubmit(caller); err != nil {
		return nil, err
	}

	user, err := s.store.Users().GetByID(ctx, caller.UserID)
	if err != nil {
		return nil, translateNotFound(err)
	}

	if err := validateContent(req.Title, req.Description, req.Region, req.PreviewImages, req.Tags, req.TeamMembers); err != nil {
		return nil, err
	}

	if _, err := s.guard.CheckCategoryActive(ctx, req.CategoryID); err != nil {
		return nil, err
	}
	if err := s.guard.CheckQuota(ctx, user); err != nil {
		return nil, err
	}
	if err := s.guard.CheckURLUnique(ctx, req.StoryMapURL, ""); err != nil {
		return nil, err
	}

	now := time.Now()
	submission := &models.Submission{
		Title:            req.Title,
		Slug:             utils.Slugify(req.Title),
		Description:      req.Description,
		StoryMapURL:      req.StoryMapURL,
		StoryMapID:       utils.ExtractStoryMapID(req.StoryMapURL),
		ThumbnailURL:     req.ThumbnailURL,
		PreviewImages:    req.PreviewImages,
		CategoryID:       req.CategoryID,
		Tags:             req.Tags,
		Region:           req.Region,
		SpecificLocation: req.SpecificLocation,
		SubmittedBy:      user.ID,
		TeamMembers:      req.TeamMembers,
		Status:           models.StatusSubmitted,
		SubmissionDate:   now,
	}

	err = s.store.InTransaction(ctx, func(tx repositories.Store) error {
		if err := tx.Submissions().Create(ctx, submission); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return &DuplicateURLError{URL: req.StoryMapURL}
			}
			return err
		}
		return s.counters.OnCreate(ctx, tx, user, req.CategoryID)
	})
	if err != nil {
		return nil, err
	}

	metrics.SubmissionsCreated.WithLabelValues(req.CategoryID).Inc()
	s.cache.InvalidatePrefix(ctx, publicCachePrefix)

	go func() {
		if err := s.notifier.SubmissionCreated(user, submission); err != nil {
			s.logger.Warn("submission notification failed",
				zap.String("submission_id", submission.ID), zap.Error(err))
		}
	}()

	return submission, nil
}

// Get fetches a single submission, denying access unless the caller is the
// owner, an admin, or the entry is approved and public
func (s *SubmissionService) Get(ctx context.Context, caller CallerContext, id string) (*models.Submission, error) {
	submission, err := s.store.Submissions().GetByID(ctx, id, true)
	if err != nil {
		return nil, translateNotFound(err)
	}
	if !s.auth.CanView(caller, submission) {
		return nil, ErrForbidden
	}
	return submission, nil
}

// List returns a visibility-scoped page of submissions. Fully public queries
// (anonymous callers) are served through the redis cache.
func (s *SubmissionService) List(ctx context.Context, caller CallerContext, params ListParams) (*SubmissionList, error) {
	normalizeListParams(&params)

	if params.Status != "" && !caller.IsAdmin() {
		return nil, ErrForbidden
	}

	filter := s.auth.ListScope(caller, params)
	opts := repositories.ListOptions{
		Page:     params.Page,
		PageSize: params.PageSize,
		Sort:     params.Sort,
		Expand:   true,
	}

	cacheable := !caller.IsAuthenticated()
	cacheKey := fmt.Sprintf("%s%s:%s:%s:%s:%d:%d",
		publicCachePrefix, params.CategoryID, params.Region, params.Search, params.Sort, params.Page, params.PageSize)

	if cacheable {
		var cached SubmissionList
		if s.cache.Get(ctx, cacheKey, &cached) {
			return &cached, nil
		}
	}

	items, total, err := s.store.Submissions().List(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	list := &SubmissionList{Items: items, Total: total}
	if cacheable {
		s.cache.Set(ctx, cacheKey, list)
	}
	return list, nil
}

// Top returns the public leaderboard: approved public entries ordered by
// average score, newest first on ties. Score writes belong to the judging
// subsystem; this only sorts by them.
func (s *SubmissionService) Top(ctx context.Context, limit int) (*SubmissionList, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	cacheKey := fmt.Sprintf("%stop:%d", publicCachePrefix, limit)
	var cached SubmissionList
	if s.cache.Get(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	items, total, err := s.store.Submissions().List(ctx,
		repositories.SubmissionFilter{},
		repositories.ListOptions{Page: 1, PageSize: limit, Sort: "top", Expand: true})
	if err != nil {
		return nil, err
	}

	list := &SubmissionList{Items: items, Total: total}
	s.cache.Set(ctx, cacheKey, list)
	return list, nil
}

// Update applies a partial patch. Owners may edit only while the entry is
// draft or submitted; admins at any time. Review status is never writable
// here. A category change moves the category counters in the same
// transaction as the record write.
func (s *SubmissionService) Update(ctx context.Context, caller CallerContext, id string, req UpdateSubmissionRequest) (*models.Submission, error) {
	submission, err := s.store.Submissions().GetByID(ctx, id, false)
	if err != nil {
		return nil, translateNotFound(err)
	}

	if err := s.auth.CanEdit(caller, submission); err != nil {
		return nil, err
	}

	oldCategoryID := submission.CategoryID

	if req.Title != nil {
		submission.Title = *req.Title
		submission.Slug = utils.Slugify(*req.Title)
	}
	if req.Description != nil {
		submission.Description = *req.Description
	}
	if req.StoryMapURL != nil && *req.StoryMapURL != submission.StoryMapURL {
		if err := s.guard.CheckURLUnique(ctx, *req.StoryMapURL, submission.ID); err != nil {
			return nil, err
		}
		submission.StoryMapURL = *req.StoryMapURL
		submission.StoryMapID = utils.ExtractStoryMapID(*req.StoryMapURL)
	}
	if req.ThumbnailURL != nil {
		submission.ThumbnailURL = *req.ThumbnailURL
	}
	if req.PreviewImages != nil {
		submission.PreviewImages = *req.PreviewImages
	}
	if req.CategoryID != nil && *req.CategoryID != submission.CategoryID {
		if _, err := s.guard.CheckCategoryActive(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		submission.CategoryID = *req.CategoryID
	}
	if req.Tags != nil {
		submission.Tags = *req.Tags
	}
	if req.Region != nil {
		submission.Region = *req.Region
	}
	if req.SpecificLocation != nil {
		submission.SpecificLocation = *req.SpecificLocation
	}
	if req.TeamMembers != nil {
		submission.TeamMembers = *req.TeamMembers
	}
	if req.IsPublic != nil {
		submission.IsPublic = *req.IsPublic
	}

	if err := validateContent(submission.Title, submission.Description, submission.Region,
		submission.PreviewImages, submission.Tags, submission.TeamMembers); err != nil {
		return nil, err
	}

	err = s.store.InTransaction(ctx, func(tx repositories.Store) error {
		if err := tx.Submissions().Update(ctx, submission); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return &DuplicateURLError{URL: submission.StoryMapURL}
			}
			return err
		}
		return s.counters.OnCategoryChange(ctx, tx, oldCategoryID, submission.CategoryID)
	})
	if err != nil {
		return nil, err
	}

	s.cache.InvalidatePrefix(ctx, publicCachePrefix)
	return submission, nil
}

// Delete removes a submission and decrements both derived counters in the
// same transaction
func (s *SubmissionService) Delete(ctx context.Context, caller CallerContext, id string) error {
	submission, err := s.store.Submissions().GetByID(ctx, id, false)
	if err != nil {
		return translateNotFound(err)
	}

	if !s.auth.CanDelete(caller, submission) {
		return ErrForbidden
	}

	err = s.store.InTransaction(ctx, func(tx repositories.Store) error {
		if err := tx.Submissions().Delete(ctx, id); err != nil {
			return err
		}
		return s.counters.OnDelete(ctx, tx, submission.SubmittedBy, submission.CategoryID)
	})
	if err != nil {
		return translateNotFound(err)
	}

	metrics.SubmissionsDeleted.Inc()
	s.cache.InvalidatePrefix(ctx, publicCachePrefix)
	return nil
}

func normalizeListParams(params *ListParams) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 || params.PageSize > 100 {
		params.PageSize = 20
	}
	if params.Sort != "top" {
		params.Sort = "newest"
	}
}

// validateContent enforces the cross-field business limits that binding tags
// cannot express against merged state
func validateContent(title, description, region string, previewImages, tags []string, teamMembers []models.TeamMember) error {
	// Limits are character counts, so multibyte titles are measured in runes
	if n := utf8.RuneCountInString(strings.TrimSpace(title)); n < 5 || n > 100 {
		return &ValidationError{Field: "title", Message: "must be 5-100 characters"}
	}
	if n := utf8.RuneCountInString(strings.TrimSpace(description)); n < 50 || n > 1000 {
		return &ValidationError{Field: "description", Message: "must be 50-1000 characters"}
	}
	if !models.IsValidRegion(region) {
		return &ValidationError{Field: "region", Message: "must be one of " + strings.Join(models.ValidRegions, ", ")}
	}
	if len(previewImages) > config.Submissions.MaxPreviewImages {
		return &ValidationError{Field: "preview_images", Message: fmt.Sprintf("at most %d images", config.Submissions.MaxPreviewImages)}
	}
	if len(tags) > config.Submissions.MaxTags {
		return &ValidationError{Field: "tags", Message: fmt.Sprintf("at most %d tags", config.Submissions.MaxTags)}
	}
	if len(teamMembers) > config.Submissions.MaxTeamMembers {
		return &ValidationError{Field: "team_members", Message: fmt.Sprintf("at most %d team members", config.Submissions.MaxTeamMembers)}
	}
	for i, member := range teamMembers {
		if member.Name == "" || member.Email == "" {
			return &ValidationError{Field: fmt.Sprintf("team_members[%d]", i), Message: "name and email are required"}
		}
	}
	return nil
}

func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

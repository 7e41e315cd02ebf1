package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/MininduBimsara/arcgis-storymaps-contest-api/models"
	"github.com/MininduBimsara/arcgis-storymaps-contest-api/repositories"
)

// mockStore is a map-backed repositories.Store for service tests. It mirrors
// the database behavior the services rely on: gorm.ErrRecordNotFound on
// misses, gorm.ErrDuplicatedKey on a second submission with the same StoryMap
// URL, and a conditional user-counter increment.
type mockStore struct {
	submissions *mockSubmissionRepo
	users       *mockUserRepo
	categories  *mockCategoryRepo
}

func newMockStore() *mockStore {
	return &mockStore{
		submissions: &mockSubmissionRepo{items: map[string]*models.Submission{}},
		users:       &mockUserRepo{items: map[string]*models.User{}},
		categories:  &mockCategoryRepo{items: map[string]*models.Category{}},
	}
}

func (m *mockStore) Submissions() repositories.SubmissionRepository { return m.submissions }
func (m *mockStore) Users() repositories.UserRepository             { return m.users }
func (m *mockStore) Categories() repositories.CategoryRepository    { return m.categories }

// InTransaction mirrors the rollback contract: when fn fails, every map is
// restored to its pre-transaction state so partial writes never survive.
func (m *mockStore) InTransaction(ctx context.Context, fn func(repositories.Store) error) error {
	submissions := snapshotMap(m.submissions.items)
	users := snapshotMap(m.users.items)
	categories := snapshotMap(m.categories.items)

	if err := fn(m); err != nil {
		m.submissions.items = submissions
		m.users.items = users
		m.categories.items = categories
		return err
	}
	return nil
}

func snapshotMap[T any](items map[string]*T) map[string]*T {
	copied := make(map[string]*T, len(items))
	for key, value := range items {
		entry := *value
		copied[key] = &entry
	}
	return copied
}

func (m *mockStore) addUser(user *models.User) *models.User {
	m.users.items[user.ID] = user
	return user
}

func (m *mockStore) addCategory(category *models.Category) *models.Category {
	m.categories.items[category.ID] = category
	return category
}

func (m *mockStore) addSubmission(submission *models.Submission) *models.Submission {
	if submission.CreatedAt.IsZero() {
		submission.CreatedAt = time.Now()
	}
	m.submissions.items[submission.ID] = submission
	return submission
}

type mockSubmissionRepo struct {
	items  map[string]*models.Submission
	nextID int
}

func (r *mockSubmissionRepo) Create(ctx context.Context, submission *models.Submission) error {
	for _, existing := range r.items {
		if existing.StoryMapURL == submission.StoryMapURL {
			return gorm.ErrDuplicatedKey
		}
	}
	if submission.ID == "" {
		r.nextID++
		submission.ID = fmt.Sprintf("sub-%d", r.nextID)
	}
	submission.CreatedAt = time.Now()
	r.items[submission.ID] = submission
	return nil
}

func (r *mockSubmissionRepo) GetByID(ctx context.Context, id string, expand bool) (*models.Submission, error) {
	submission, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *submission
	return &copied, nil
}

func (r *mockSubmissionRepo) GetByStoryMapURL(ctx context.Context, url string, excludeID string) (*models.Submission, error) {
	for _, submission := range r.items {
		if submission.StoryMapURL == url && submission.ID != excludeID {
			copied := *submission
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mockSubmissionRepo) List(ctx context.Context, filter repositories.SubmissionFilter, opts repositories.ListOptions) ([]models.Submission, int64, error) {
	var matched []models.Submission
	for _, submission := range r.items {
		if !r.visible(submission, filter) {
			continue
		}
		if filter.CategoryID != "" && submission.CategoryID != filter.CategoryID {
			continue
		}
		if filter.Region != "" && submission.Region != filter.Region {
			continue
		}
		if filter.Status != "" && submission.Status != filter.Status {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(submission.Title), needle) &&
				!strings.Contains(strings.ToLower(submission.Description), needle) {
				continue
			}
		}
		matched = append(matched, *submission)
	}

	sort.Slice(matched, func(i, j int) bool {
		if opts.Sort == "top" && matched[i].AverageScore != matched[j].AverageScore {
			return matched[i].AverageScore > matched[j].AverageScore
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	start := (opts.Page - 1) * opts.PageSize
	if start > len(matched) {
		start = len(matched)
	}
	end := start + opts.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *mockSubmissionRepo) visible(submission *models.Submission, filter repositories.SubmissionFilter) bool {
	if filter.Unrestricted {
		return true
	}
	if submission.Status == models.StatusApproved && submission.IsPublic {
		return true
	}
	return filter.OwnerID != "" && submission.SubmittedBy == filter.OwnerID
}

func (r *mockSubmissionRepo) ListAll(ctx context.Context) ([]models.Submission, error) {
	var all []models.Submission
	for _, submission := range r.items {
		all = append(all, *submission)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.Before(all[j].CreatedAt) })
	return all, nil
}

func (r *mockSubmissionRepo) Update(ctx context.Context, submission *models.Submission) error {
	for _, existing := range r.items {
		if existing.ID != submission.ID && existing.StoryMapURL == submission.StoryMapURL {
			return gorm.ErrDuplicatedKey
		}
	}
	copied := *submission
	r.items[submission.ID] = &copied
	return nil
}

func (r *mockSubmissionRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *mockSubmissionRepo) CountsByUser(ctx context.Context) (map[string]int64, error) {
	counts := map[string]int64{}
	for _, submission := range r.items {
		counts[submission.SubmittedBy]++
	}
	return counts, nil
}

func (r *mockSubmissionRepo) CountsByCategory(ctx context.Context) (map[string]int64, error) {
	counts := map[string]int64{}
	for _, submission := range r.items {
		counts[submission.CategoryID]++
	}
	return counts, nil
}

type mockUserRepo struct {
	items map[string]*models.User
}

func (r *mockUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *mockUserRepo) IncrementSubmissionCount(ctx context.Context, id string, max int) (bool, error) {
	user, ok := r.items[id]
	if !ok {
		return false, nil
	}
	if max > 0 && user.SubmissionCount >= max {
		return false, nil
	}
	user.SubmissionCount++
	return true, nil
}

func (r *mockUserRepo) DecrementSubmissionCount(ctx context.Context, id string) error {
	if user, ok := r.items[id]; ok && user.SubmissionCount > 0 {
		user.SubmissionCount--
	}
	return nil
}

func (r *mockUserRepo) SetSubmissionCount(ctx context.Context, id string, count int64) error {
	if user, ok := r.items[id]; ok {
		user.SubmissionCount = int(count)
	}
	return nil
}

func (r *mockUserRepo) ResetSubmissionCounts(ctx context.Context) error {
	for _, user := range r.items {
		user.SubmissionCount = 0
	}
	return nil
}

type mockCategoryRepo struct {
	items map[string]*models.Category
}

func (r *mockCategoryRepo) GetByID(ctx context.Context, id string) (*models.Category, error) {
	category, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *category
	return &copied, nil
}

func (r *mockCategoryRepo) IncrementSubmissionCount(ctx context.Context, id string) error {
	if category, ok := r.items[id]; ok {
		category.SubmissionCount++
	}
	return nil
}

func (r *mockCategoryRepo) DecrementSubmissionCount(ctx context.Context, id string) error {
	if category, ok := r.items[id]; ok && category.SubmissionCount > 0 {
		category.SubmissionCount--
	}
	return nil
}

func (r *mockCategoryRepo) SetSubmissionCount(ctx context.Context, id string, count int64) error {
	if category, ok := r.items[id]; ok {
		category.SubmissionCount = int(count)
	}
	return nil
}

func (r *mockCategoryRepo) ResetSubmissionCounts(ctx context.Context) error {
	for _, category := range r.items {
		category.SubmissionCount = 0
	}
	return nil
}

// mockNotifier records delivered notifications on a channel so tests can wait
// for the fire-and-forget goroutine
type mockNotifier struct {
	delivered chan string
	err       error
}

func newMockNotifier() *mockNotifier {
	return &mockNotifier{delivered: make(chan string, 8)}
}

func (n *mockNotifier) SubmissionCreated(user *models.User, submission *models.Submission) error {
	n.delivered <- submission.ID
	return n.err
}

// mockBroadcaster records status-change events
type mockBroadcaster struct {
	events []string
}

func (b *mockBroadcaster) SubmissionStatusChanged(submission *models.Submission, from models.SubmissionStatus) {
	b.events = append(b.events, fmt.Sprintf("%s:%s->%s", submission.ID, from, submission.Status))
}

package repositories

import (
	"context"

	"gorm.io/gorm"
)

// Store aggregates the data-access layer. Services receive a Store at
// construction instead of reaching for a shared database handle, and run
// multi-entity writes through InTransaction so a submission mutation and its
// counter adjustments commit or roll back together.
type Store interface {
	Submissions() SubmissionRepository
	Users() UserRepository
	Categories() CategoryRepository

	// InTransaction runs fn against a Store whose repositories are bound to
	// a single database transaction.
	InTransaction(ctx context.Context, fn func(Store) error) error
}

type gormStore struct {
	db          *gorm.DB
	submissions SubmissionRepository
	users       UserRepository
	categories  CategoryRepository
}

// NewStore builds the gorm-backed Store
func NewStore(db *gorm.DB) Store {
	return &gormStore{
		db:          db,
		submissions: NewSubmissionRepository(db),
		users:       NewUserRepository(db),
		categories:  NewCategoryRepository(db),
	}
}

func (s *gormStore) Submissions() SubmissionRepository { return s.submissions }
func (s *gormStore) Users() UserRepository             { return s.users }
func (s *gormStore) Categories() CategoryRepository    { return s.categories }

func (s *gormStore) InTransaction(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

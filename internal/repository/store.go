package repository

import (
	"context"
	"errors"

	"github.com/spec-kit/teacher-directory/internal/domain"
)

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("repository: not found")

	// ErrDuplicateEmail is returned when a user write collides with an existing email.
	ErrDuplicateEmail = errors.New("repository: email already registered")

	// ErrDuplicateProfile is returned when a user already has a teacher profile.
	ErrDuplicateProfile = errors.New("repository: teacher profile already exists")
)

// UserRepository persists login identities.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// TeacherRepository persists teacher profiles and reads them joined with their user.
type TeacherRepository interface {
	Create(ctx context.Context, profile *domain.TeacherProfile) error
	Update(ctx context.Context, profile *domain.TeacherProfile) error
	List(ctx context.Context, filter domain.TeacherFilter) ([]domain.Teacher, error)
	GetByUserID(ctx context.Context, userID string) (*domain.Teacher, error)
}

// Store groups repositories that can take part in one transaction.
type Store interface {
	Users() UserRepository
	Teachers() TeacherRepository
	// WithTx runs fn against a transactional Store. fn's writes are committed when it
	// returns nil and discarded otherwise.
	WithTx(ctx context.Context, fn func(ctx context.Context, tx Store) error) error
}

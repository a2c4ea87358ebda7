package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/teacher-directory/internal/auth"
	"github.com/spec-kit/teacher-directory/internal/domain"
	"github.com/spec-kit/teacher-directory/internal/events"
	"github.com/spec-kit/teacher-directory/internal/repository"
	apperrors "github.com/spec-kit/teacher-directory/pkg/util"
)

// ProfileUpdate is a partial update of the caller's own account. Nil fields are left alone.
type ProfileUpdate struct {
	FirstName      *string
	LastName       *string
	UniversityName *string
	Department     *string
	Gender         *domain.Gender
	YearJoined     *int
	Password       *string
}

// TeacherService serves teacher directory reads and profile edits.
type TeacherService struct {
	store      repository.Store
	hasher     *auth.PasswordHasher
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// NewTeacherService builds the service. Hasher is only needed for password changes.
func NewTeacherService(store repository.Store, hasher *auth.PasswordHasher, dispatcher events.Dispatcher, logger *zap.Logger) *TeacherService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeacherService{store: store, hasher: hasher, dispatcher: dispatcher, logger: logger, now: time.Now}
}

// List returns every teacher in insertion order, optionally filtered by a search term.
func (s *TeacherService) List(ctx context.Context, query string) ([]domain.Teacher, error) {
	teachers, err := s.store.Teachers().List(ctx, domain.TeacherFilter{Query: query})
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return teachers, nil
}

// Get returns the teacher whose user id is userID.
func (s *TeacherService) Get(ctx context.Context, userID string) (*domain.Teacher, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, apperrors.NewNotFound("Teacher", nil)
	}
	teacher, err := s.store.Teachers().GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("Teacher", nil)
		}
		return nil, apperrors.NewInternalError(err)
	}
	return teacher, nil
}

// UpdateProfile applies upd to the user and profile of userID in one transaction.
// The password is re-hashed only when upd carries a new one.
func (s *TeacherService) UpdateProfile(ctx context.Context, userID string, upd ProfileUpdate) (*domain.Teacher, error) {
	if err := s.validateUpdate(upd); err != nil {
		return nil, err
	}

	var newHash string
	if upd.Password != nil {
		hash, err := s.hasher.Hash(*upd.Password)
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		newHash = hash
	}

	var (
		updated *domain.Teacher
		fields  []string
	)
	err := s.store.WithTx(ctx, func(ctx context.Context, tx repository.Store) error {
		user, err := tx.Users().GetByID(ctx, userID)
		if err != nil {
			return err
		}
		current, err := tx.Teachers().GetByUserID(ctx, userID)
		if err != nil {
			return err
		}
		profile := current.TeacherProfile

		userChanged := false
		if upd.FirstName != nil {
			user.FirstName = *upd.FirstName
			fields = append(fields, "first_name")
			userChanged = true
		}
		if upd.LastName != nil {
			user.LastName = *upd.LastName
			fields = append(fields, "last_name")
			userChanged = true
		}
		if upd.Password != nil {
			user.PasswordHash = newHash
			userChanged = true
		}
		if userChanged {
			if err := tx.Users().Update(ctx, user); err != nil {
				return err
			}
		}

		profileChanged := false
		if upd.UniversityName != nil {
			profile.UniversityName = *upd.UniversityName
			fields = append(fields, "university_name")
			profileChanged = true
		}
		if upd.Department != nil {
			profile.Department = *upd.Department
			fields = append(fields, "department")
			profileChanged = true
		}
		if upd.Gender != nil {
			profile.Gender = *upd.Gender
			fields = append(fields, "gender")
			profileChanged = true
		}
		if upd.YearJoined != nil {
			profile.YearJoined = *upd.YearJoined
			fields = append(fields, "year_joined")
			profileChanged = true
		}
		if profileChanged {
			if err := tx.Teachers().Update(ctx, &profile); err != nil {
				return err
			}
		}

		updated, err = tx.Teachers().GetByUserID(ctx, userID)
		return err
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("Teacher", nil)
		}
		return nil, apperrors.NewServerError("Profile update failed", err)
	}

	publish(ctx, s.dispatcher, s.logger, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventProfileUpdated,
		UserID:    userID,
		Timestamp: s.now(),
		Payload:   events.ProfileUpdatedPayload{Fields: fields, PasswordChanged: upd.Password != nil},
	})
	return updated, nil
}

func (s *TeacherService) validateUpdate(upd ProfileUpdate) error {
	names := []struct {
		field string
		value *string
	}{
		{"first_name", upd.FirstName},
		{"last_name", upd.LastName},
	}
	for _, n := range names {
		if n.value != nil && strings.TrimSpace(*n.value) == "" {
			return apperrors.NewValidationError(n.field+" cannot be empty", nil)
		}
	}
	if upd.Password != nil {
		if *upd.Password == "" {
			return apperrors.NewValidationError("password cannot be empty", nil)
		}
		if err := validatePassword(*upd.Password); err != nil {
			return err
		}
	}
	if upd.Gender != nil {
		if err := validateGender(*upd.Gender); err != nil {
			return err
		}
	}
	if upd.YearJoined != nil {
		if err := validateYearJoined(*upd.YearJoined, s.now()); err != nil {
			return err
		}
	}
	return nil
}

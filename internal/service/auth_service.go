package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/teacher-directory/internal/auth"
	"github.com/spec-kit/teacher-directory/internal/domain"
	"github.com/spec-kit/teacher-directory/internal/events"
	"github.com/spec-kit/teacher-directory/internal/repository"
	apperrors "github.com/spec-kit/teacher-directory/pkg/util"
)

// RegisterInput carries a registration request. Empty optional fields take defaults.
type RegisterInput struct {
	Email          string
	Password       string
	FirstName      string
	LastName       string
	UniversityName string
	Department     string
	Gender         domain.Gender
	YearJoined     *int
}

// RegisterResult is what a successful registration produced.
type RegisterResult struct {
	User    *domain.User
	Profile *domain.TeacherProfile
	Token   *domain.Token
}

// AuthService coordinates registration, login and logout.
type AuthService struct {
	store      repository.Store
	hasher     *auth.PasswordHasher
	tokens     *auth.TokenManager
	revoked    auth.Denylist
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	Store      repository.Store
	Hasher     *auth.PasswordHasher
	Tokens     *auth.TokenManager
	Denylist   auth.Denylist
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	Clock      func() time.Time
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	s := &AuthService{
		store:      deps.Store,
		hasher:     deps.Hasher,
		tokens:     deps.Tokens,
		revoked:    deps.Denylist,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		now:        deps.Clock,
	}
	if s.revoked == nil {
		s.revoked = auth.NoopDenylist{}
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Register creates a user and its teacher profile in one transaction and returns a token
// for the new user. Either both rows are persisted or neither is.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*RegisterResult, error) {
	missing := missingFields(map[string]string{
		"email":      in.Email,
		"password":   in.Password,
		"first_name": in.FirstName,
		"last_name":  in.LastName,
	}, "email", "password", "first_name", "last_name")
	if len(missing) > 0 {
		return nil, apperrors.NewValidationError("Missing required fields", map[string]any{"missing": missing})
	}
	if err := validatePassword(in.Password); err != nil {
		return nil, err
	}

	profile := &domain.TeacherProfile{
		UniversityName: in.UniversityName,
		Department:     in.Department,
		Gender:         in.Gender,
		YearJoined:     s.now().Year(),
	}
	if profile.Gender == "" {
		profile.Gender = domain.GenderOther
	}
	if err := validateGender(profile.Gender); err != nil {
		return nil, err
	}
	if in.YearJoined != nil {
		if err := validateYearJoined(*in.YearJoined, s.now()); err != nil {
			return nil, err
		}
		profile.YearJoined = *in.YearJoined
	}

	if _, err := s.store.Users().GetByEmail(ctx, in.Email); err == nil {
		return nil, apperrors.NewConflict("User already exists", nil)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewInternalError(err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        in.Email,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
	}
	profile.UserID = user.ID

	err = s.store.WithTx(ctx, func(ctx context.Context, tx repository.Store) error {
		if err := tx.Users().Create(ctx, user); err != nil {
			return err
		}
		return tx.Teachers().Create(ctx, profile)
	})
	if err != nil {
		// the storage constraint catches a concurrent registration the pre-check missed
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperrors.NewConflict("User already exists", nil)
		}
		s.logger.Error("registration rolled back", zap.String("email", in.Email), zap.Error(err))
		return nil, apperrors.NewServerError("Registration failed", err)
	}

	token, err := s.tokens.IssueToken(user)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventTeacherRegistered,
		UserID:    user.ID,
		Timestamp: s.now(),
		Payload: events.TeacherRegisteredPayload{
			Email:          user.Email,
			FirstName:      user.FirstName,
			LastName:       user.LastName,
			UniversityName: profile.UniversityName,
		},
	})

	return &RegisterResult{User: user, Profile: profile, Token: token}, nil
}

// Login validates credentials and issues a token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, *domain.Token, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, nil, apperrors.NewValidationError("Email and password are required", nil)
	}

	user, err := s.store.Users().GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, nil, apperrors.NewInternalError(err)
		}
		// compare anyway so an unknown email costs the same as a wrong password
		s.hasher.Verify(password, s.dummyPasswordHash())
		return nil, nil, apperrors.NewUnauthorized("Invalid email or password")
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, nil, apperrors.NewUnauthorized("Invalid email or password")
	}

	token, err := s.tokens.IssueToken(user)
	if err != nil {
		return nil, nil, apperrors.NewInternalError(err)
	}
	return user, token, nil
}

// Logout revokes the presented token until it expires. Without a denylist it is a no-op.
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil || claims.ExpiresAt == nil {
		return apperrors.NewUnauthorized("Token required")
	}
	if err := s.revoked.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return apperrors.NewInternalError(err)
	}
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

func (s *AuthService) dummyPasswordHash() string {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash(uuid.NewString())
		if err == nil {
			s.dummyHash = hash
		}
	})
	return s.dummyHash
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	publish(ctx, s.dispatcher, s.logger, event)
}

// publish hands event to dispatcher. Failures are logged and never reach the caller.
func publish(ctx context.Context, dispatcher events.Dispatcher, logger *zap.Logger, event events.Event) {
	if dispatcher == nil {
		return
	}
	if err := dispatcher.Publish(ctx, event); err != nil {
		logger.Warn("publish event",
			zap.String("event_type", string(event.Type)),
			zap.String("event_id", event.ID),
			zap.Error(err))
	}
}

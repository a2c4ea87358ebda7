package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/teacher-directory/internal/auth"
	"github.com/spec-kit/teacher-directory/internal/domain"
	"github.com/spec-kit/teacher-directory/internal/events"
	"github.com/spec-kit/teacher-directory/internal/repository"
	apperrors "github.com/spec-kit/teacher-directory/pkg/util"
)

var fixedNow = time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)

type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, e events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, e)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) types() []events.EventType {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []events.EventType
	for _, e := range d.events {
		out = append(out, e.Type)
	}
	return out
}

// failingStore wraps a Store so that profile creation fails, inside and outside transactions.
type failingStore struct {
	repository.Store
	profileErr error
}

func (s *failingStore) Teachers() repository.TeacherRepository {
	return failingTeachers{TeacherRepository: s.Store.Teachers(), err: s.profileErr}
}

func (s *failingStore) WithTx(ctx context.Context, fn func(ctx context.Context, tx repository.Store) error) error {
	return s.Store.WithTx(ctx, func(ctx context.Context, tx repository.Store) error {
		return fn(ctx, &failingStore{Store: tx, profileErr: s.profileErr})
	})
}

type failingTeachers struct {
	repository.TeacherRepository
	err error
}

func (t failingTeachers) Create(ctx context.Context, p *domain.TeacherProfile) error {
	if t.err != nil {
		return t.err
	}
	return t.TeacherRepository.Create(ctx, p)
}

type fixture struct {
	store      repository.Store
	tokens     *auth.TokenManager
	hasher     *auth.PasswordHasher
	dispatcher *recordingDispatcher
	auth       *AuthService
	teachers   *TeacherService
}

func newFixture(t *testing.T, store repository.Store) *fixture {
	t.Helper()
	if store == nil {
		store = repository.NewMemoryStore()
	}
	clock := func() time.Time { return fixedNow }
	tokens, err := auth.NewTokenManager("test-secret", time.Hour, auth.WithClock(clock))
	require.NoError(t, err)
	hasher := auth.NewPasswordHasher(bcrypt.MinCost)
	dispatcher := &recordingDispatcher{}

	teachers := NewTeacherService(store, hasher, dispatcher, nil)
	teachers.now = clock

	return &fixture{
		store:      store,
		tokens:     tokens,
		hasher:     hasher,
		dispatcher: dispatcher,
		auth: NewAuthService(AuthDependencies{
			Store:      store,
			Hasher:     hasher,
			Tokens:     tokens,
			Dispatcher: dispatcher,
			Clock:      clock,
		}),
		teachers: teachers,
	}
}

func validInput(email string) RegisterInput {
	return RegisterInput{
		Email:     email,
		Password:  "correct horse",
		FirstName: "Jane",
		LastName:  "Smith",
	}
}

func requireStatus(t *testing.T, err error, status int) {
	t.Helper()
	require.Error(t, err)
	de := apperrors.ToDomainError(err)
	require.Equal(t, status, de.HTTPStatus, "unexpected error: %v", err)
}

var errProfileInsert = errors.New("insert teacher: connection reset")

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

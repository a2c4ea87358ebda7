package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/spec-kit/teacher-directory/internal/domain"
)

// MemoryStore keeps users and profiles in process memory. It is used when no
// database is configured and in tests. Transactions run under the store lock on
// a copy of the state that replaces the original only on success.
type MemoryStore struct {
	mu    *sync.Mutex
	state *memoryState
	inTx  bool
	now   func() time.Time
}

type memoryState struct {
	users         []domain.User
	teachers      []domain.TeacherProfile
	nextTeacherID int64
}

func (s *memoryState) clone() *memoryState {
	return &memoryState{
		users:         append([]domain.User(nil), s.users...),
		teachers:      append([]domain.TeacherProfile(nil), s.teachers...),
		nextTeacherID: s.nextTeacherID,
	}
}

// NewMemoryStore returns an empty in-memory Store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		mu:    &sync.Mutex{},
		state: &memoryState{nextTeacherID: 1},
		now:   time.Now,
	}
}

func (s *MemoryStore) Users() UserRepository {
	return memoryUsers{s}
}

func (s *MemoryStore) Teachers() TeacherRepository {
	return memoryTeachers{s}
}

func (s *MemoryStore) WithTx(ctx context.Context, fn func(ctx context.Context, tx Store) error) error {
	if s.inTx {
		return fn(ctx, s)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	work := &MemoryStore{mu: s.mu, state: s.state.clone(), inTx: true, now: s.now}
	if err := fn(ctx, work); err != nil {
		return err
	}
	s.state = work.state
	return nil
}

// lock acquires the store lock unless the caller already holds it through WithTx.
func (s *MemoryStore) lock() func() {
	if s.inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

type memoryUsers struct {
	s *MemoryStore
}

func (r memoryUsers) Create(_ context.Context, user *domain.User) error {
	defer r.s.lock()()

	for _, u := range r.s.state.users {
		if u.Email == user.Email {
			return ErrDuplicateEmail
		}
	}
	now := r.s.now()
	user.CreatedAt, user.UpdatedAt = now, now
	r.s.state.users = append(r.s.state.users, *user)
	return nil
}

func (r memoryUsers) Update(_ context.Context, user *domain.User) error {
	defer r.s.lock()()

	idx := -1
	for i, u := range r.s.state.users {
		if u.ID == user.ID {
			idx = i
		} else if u.Email == user.Email {
			return ErrDuplicateEmail
		}
	}
	if idx < 0 {
		return ErrNotFound
	}
	user.UpdatedAt = r.s.now()
	r.s.state.users[idx] = *user
	return nil
}

func (r memoryUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	defer r.s.lock()()

	for _, u := range r.s.state.users {
		if u.ID == id {
			found := u
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (r memoryUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	defer r.s.lock()()

	for _, u := range r.s.state.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

type memoryTeachers struct {
	s *MemoryStore
}

func (r memoryTeachers) Create(_ context.Context, profile *domain.TeacherProfile) error {
	defer r.s.lock()()

	if r.s.findUser(profile.UserID) == nil {
		return ErrNotFound
	}
	for _, t := range r.s.state.teachers {
		if t.UserID == profile.UserID {
			return ErrDuplicateProfile
		}
	}
	now := r.s.now()
	profile.ID = r.s.state.nextTeacherID
	profile.CreatedAt, profile.UpdatedAt = now, now
	r.s.state.nextTeacherID++
	r.s.state.teachers = append(r.s.state.teachers, *profile)
	return nil
}

func (r memoryTeachers) Update(_ context.Context, profile *domain.TeacherProfile) error {
	defer r.s.lock()()

	for i, t := range r.s.state.teachers {
		if t.UserID == profile.UserID {
			profile.ID = t.ID
			profile.CreatedAt = t.CreatedAt
			profile.UpdatedAt = r.s.now()
			r.s.state.teachers[i] = *profile
			return nil
		}
	}
	return ErrNotFound
}

func (r memoryTeachers) List(_ context.Context, filter domain.TeacherFilter) ([]domain.Teacher, error) {
	defer r.s.lock()()

	q := strings.ToLower(strings.TrimSpace(filter.Query))
	result := []domain.Teacher{}
	for _, t := range r.s.state.teachers {
		user := r.s.findUser(t.UserID)
		if user == nil {
			continue
		}
		teacher := joinTeacher(t, user)
		if q != "" && !matchesQuery(teacher, q) {
			continue
		}
		result = append(result, teacher)
	}
	return result, nil
}

func (r memoryTeachers) GetByUserID(_ context.Context, userID string) (*domain.Teacher, error) {
	defer r.s.lock()()

	for _, t := range r.s.state.teachers {
		if t.UserID != userID {
			continue
		}
		user := r.s.findUser(t.UserID)
		if user == nil {
			break
		}
		teacher := joinTeacher(t, user)
		return &teacher, nil
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) findUser(id string) *domain.User {
	for i := range s.state.users {
		if s.state.users[i].ID == id {
			return &s.state.users[i]
		}
	}
	return nil
}

func joinTeacher(t domain.TeacherProfile, u *domain.User) domain.Teacher {
	return domain.Teacher{
		TeacherProfile: t,
		Email:          u.Email,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
	}
}

func matchesQuery(t domain.Teacher, q string) bool {
	for _, field := range []string{t.FirstName, t.LastName, t.Email, t.Department, t.UniversityName} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

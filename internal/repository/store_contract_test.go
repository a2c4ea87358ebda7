package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/teacher-directory/internal/domain"
)

// runStoreContract exercises behavior every Store implementation must share.
func runStoreContract(t *testing.T, newStore func(t *testing.T) Store) {
	t.Run("create and join", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		user := newUser("ada@example.edu", "Ada", "Lovelace")
		require.NoError(t, store.Users().Create(ctx, user))
		profile := &domain.TeacherProfile{UserID: user.ID, UniversityName: "Analytical U", Department: "Mathematics", Gender: domain.GenderFemale, YearJoined: 1843}
		require.NoError(t, store.Teachers().Create(ctx, profile))
		assert.NotZero(t, profile.ID)

		got, err := store.Teachers().GetByUserID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, user.Email, got.Email)
		assert.Equal(t, "Ada", got.FirstName)
		assert.Equal(t, "Lovelace", got.LastName)
		assert.Equal(t, "Mathematics", got.Department)
		assert.Equal(t, domain.GenderFemale, got.Gender)
		assert.Equal(t, 1843, got.YearJoined)
	})

	t.Run("missing teacher", func(t *testing.T) {
		store := newStore(t)
		_, err := store.Teachers().GetByUserID(context.Background(), uuid.NewString())
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = store.Users().GetByEmail(context.Background(), "nobody@example.edu")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("email unique and case sensitive", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		require.NoError(t, store.Users().Create(ctx, newUser("grace@example.edu", "Grace", "Hopper")))
		err := store.Users().Create(ctx, newUser("grace@example.edu", "Other", "Grace"))
		assert.ErrorIs(t, err, ErrDuplicateEmail)

		require.NoError(t, store.Users().Create(ctx, newUser("Grace@example.edu", "Upper", "Case")))
	})

	t.Run("list keeps insertion order and filters", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		seed := []struct {
			email, first, last, dept string
		}{
			{"zed@example.edu", "Zed", "Zulu", "Physics"},
			{"amy@example.edu", "Amy", "Alpha", "Computer Science"},
			{"bob@example.edu", "Bob", "Bravo", "Mathematics"},
		}
		for _, s := range seed {
			u := newUser(s.email, s.first, s.last)
			require.NoError(t, store.Users().Create(ctx, u))
			require.NoError(t, store.Teachers().Create(ctx, &domain.TeacherProfile{UserID: u.ID, Department: s.dept, Gender: domain.GenderOther, YearJoined: 2020}))
		}

		all, err := store.Teachers().List(ctx, domain.TeacherFilter{})
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, []string{"Zed", "Amy", "Bob"}, []string{all[0].FirstName, all[1].FirstName, all[2].FirstName})

		filtered, err := store.Teachers().List(ctx, domain.TeacherFilter{Query: "MATH"})
		require.NoError(t, err)
		require.Len(t, filtered, 1)
		assert.Equal(t, "Bob", filtered[0].FirstName)

		none, err := store.Teachers().List(ctx, domain.TeacherFilter{Query: "100%"})
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("transaction rolls back both writes", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		boom := errors.New("profile insert failed")

		user := newUser("rollback@example.edu", "Roll", "Back")
		err := store.WithTx(ctx, func(ctx context.Context, tx Store) error {
			if err := tx.Users().Create(ctx, user); err != nil {
				return err
			}
			return boom
		})
		require.ErrorIs(t, err, boom)

		_, err = store.Users().GetByEmail(ctx, "rollback@example.edu")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("transaction commits", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		user := newUser("commit@example.edu", "Com", "Mit")
		err := store.WithTx(ctx, func(ctx context.Context, tx Store) error {
			if err := tx.Users().Create(ctx, user); err != nil {
				return err
			}
			return tx.Teachers().Create(ctx, &domain.TeacherProfile{UserID: user.ID, Gender: domain.GenderOther, YearJoined: 2024})
		})
		require.NoError(t, err)

		got, err := store.Teachers().GetByUserID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "commit@example.edu", got.Email)
	})

	t.Run("update profile and user", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		user := newUser("update@example.edu", "Up", "Date")
		require.NoError(t, store.Users().Create(ctx, user))
		profile := &domain.TeacherProfile{UserID: user.ID, Gender: domain.GenderOther, YearJoined: 2001}
		require.NoError(t, store.Teachers().Create(ctx, profile))

		user.FirstName = "Updated"
		require.NoError(t, store.Users().Update(ctx, user))
		profile.Department = "History"
		require.NoError(t, store.Teachers().Update(ctx, profile))

		got, err := store.Teachers().GetByUserID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "Updated", got.FirstName)
		assert.Equal(t, "History", got.Department)

		missing := &domain.TeacherProfile{UserID: uuid.NewString(), Gender: domain.GenderOther}
		assert.ErrorIs(t, store.Teachers().Update(ctx, missing), ErrNotFound)
	})
}

func newUser(email, first, last string) *domain.User {
	return &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: "$2a$04$placeholderplaceholderplaceholderplaceholderpla",
		FirstName:    first,
		LastName:     last,
	}
}

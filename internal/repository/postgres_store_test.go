package repository

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/teacher-directory/internal/persistence/migrations"
)

func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN is required for postgres store tests")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, migrations.Up(ctx, pool, zap.NewNop()))

	runStoreContract(t, func(t *testing.T) Store {
		_, err := pool.Exec(ctx, "TRUNCATE teachers, users RESTART IDENTITY CASCADE")
		require.NoError(t, err)
		return NewPostgresStore(pool)
	})
}

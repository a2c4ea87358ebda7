package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/spec-kit/teacher-directory/internal/config"
	"github.com/spec-kit/teacher-directory/internal/persistence/migrations"
	"github.com/spec-kit/teacher-directory/internal/repository"
)

// Postgres owns the pgx pool and hands out the matching Store. Without a DSN it
// runs in memory and the pool is nil.
type Postgres struct {
	Pool   *pgxpool.Pool
	logger *zap.Logger
	memory *repository.MemoryStore
}

// NewPostgres connects when cfg.DSN is set and falls back to the in-memory store otherwise.
func NewPostgres(ctx context.Context, cfg config.PostgresConfig, logger *zap.Logger) (*Postgres, error) {
	if cfg.DSN == "" {
		logger.Warn("POSTGRES_DSN not provided; using in-memory store")
		return &Postgres{logger: logger, memory: repository.NewMemoryStore()}, nil
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	applyPoolLimits(poolCfg, cfg)

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("open postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	logger.Info("connected to postgres",
		zap.String("host", poolCfg.ConnConfig.Host),
		zap.String("database", poolCfg.ConnConfig.Database),
		zap.Int32("max_conns", poolCfg.MaxConns))
	return &Postgres{Pool: pool, logger: logger}, nil
}

func applyPoolLimits(poolCfg *pgxpool.Config, cfg config.PostgresConfig) {
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}
	if cfg.ConnMaxIdleSec > 0 {
		poolCfg.MaxConnIdleTime = time.Duration(cfg.ConnMaxIdleSec) * time.Second
	}
	if cfg.ConnMaxLifeSec > 0 {
		poolCfg.MaxConnLifetime = time.Duration(cfg.ConnMaxLifeSec) * time.Second
	}
}

// Enabled reports whether a database connection was configured.
func (p *Postgres) Enabled() bool {
	return p != nil && p.Pool != nil
}

// Store returns the Postgres store, or the process-wide in-memory store when disabled.
func (p *Postgres) Store() repository.Store {
	if p.Enabled() {
		return repository.NewPostgresStore(p.Pool)
	}
	return p.memory
}

// Migrate applies the embedded schema. It is a no-op in memory mode.
func (p *Postgres) Migrate(ctx context.Context) error {
	if !p.Enabled() {
		return nil
	}
	return migrations.Up(ctx, p.Pool, p.logger)
}

// Ping verifies database connectivity. Without a pool there is nothing to check.
func (p *Postgres) Ping(ctx context.Context) error {
	if !p.Enabled() {
		return nil
	}
	if err := p.Pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres unreachable: %w", err)
	}
	return nil
}

// Close releases pool resources.
func (p *Postgres) Close() {
	if p.Enabled() {
		p.Pool.Close()
	}
}

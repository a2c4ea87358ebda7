package main

import (
	"context"
	"log"
	"net/http"

	"go.uber.org/zap"

	"github.com/spec-kit/teacher-directory/internal/auth"
	"github.com/spec-kit/teacher-directory/internal/config"
	"github.com/spec-kit/teacher-directory/internal/domain"
	"github.com/spec-kit/teacher-directory/internal/observability"
	"github.com/spec-kit/teacher-directory/internal/persistence"
	"github.com/spec-kit/teacher-directory/internal/service"
	"github.com/spec-kit/teacher-directory/pkg/teacherclient"
	apperrors "github.com/spec-kit/teacher-directory/pkg/util"
)

// seed registers the sample teachers. Existing accounts are skipped.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL())
	if err != nil {
		logger.Fatal("invalid auth configuration", zap.Error(err))
	}

	ctx := context.Background()
	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()
	if !pg.Enabled() {
		logger.Fatal("POSTGRES_DSN is required to seed")
	}
	if err := pg.Migrate(ctx); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	authService := service.NewAuthService(service.AuthDependencies{
		Store:  pg.Store(),
		Hasher: auth.NewPasswordHasher(cfg.Auth.BcryptCost),
		Tokens: tokens,
		Logger: logger,
	})

	created := 0
	for _, t := range teacherclient.SampleTeachers() {
		year := t.YearJoined
		_, err := authService.Register(ctx, service.RegisterInput{
			Email:          t.Email,
			Password:       teacherclient.SamplePassword,
			FirstName:      t.FirstName,
			LastName:       t.LastName,
			UniversityName: t.UniversityName,
			Department:     t.Department,
			Gender:         domain.Gender(t.Gender),
			YearJoined:     &year,
		})
		switch {
		case err == nil:
			created++
			logger.Info("seeded teacher", zap.String("email", t.Email))
		case apperrors.IsStatus(err, http.StatusConflict):
			logger.Info("teacher already present", zap.String("email", t.Email))
		default:
			logger.Fatal("seed failed", zap.String("email", t.Email), zap.Error(err))
		}
	}
	logger.Info("seed complete", zap.Int("created", created))
}

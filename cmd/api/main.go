package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/teacher-directory/internal/api/http"
	"github.com/spec-kit/teacher-directory/internal/api/http/handlers"
	"github.com/spec-kit/teacher-directory/internal/auth"
	"github.com/spec-kit/teacher-directory/internal/config"
	"github.com/spec-kit/teacher-directory/internal/events"
	"github.com/spec-kit/teacher-directory/internal/observability"
	"github.com/spec-kit/teacher-directory/internal/persistence"
	"github.com/spec-kit/teacher-directory/internal/service"
	"github.com/spec-kit/teacher-directory/internal/worker"
)

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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := pg.Migrate(ctx); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}
	store := pg.Store()

	var redis *persistence.Redis
	if cfg.Auth.RevocationEnabled {
		redis, err = persistence.NewRedis(ctx, cfg.Redis, logger)
		if err != nil {
			logger.Fatal("token revocation enabled but redis unavailable", zap.Error(err))
		}
		defer redis.Close()
	}
	denylist := redis.Denylist()

	dispatcher := worker.NewNotificationWorker(events.NewInMemoryDispatcher(logger), cfg.Notification.QueueSize, logger)
	worker.StartNotificationWorker(ctx, dispatcher, service.NewNotificationService(dispatcher, logger, cfg.Notification), logger)

	hasher := auth.NewPasswordHasher(cfg.Auth.BcryptCost)
	authService := service.NewAuthService(service.AuthDependencies{
		Store:      store,
		Hasher:     hasher,
		Tokens:     tokens,
		Denylist:   denylist,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	teacherService := service.NewTeacherService(store, hasher, dispatcher, logger)
	authMiddleware := auth.NewAuthMiddleware(tokens, denylist)

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
		ReadTimeout:           cfg.App.RequestTimeout(),
		WriteTimeout:          cfg.App.RequestTimeout(),
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.CORS, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics),
		Auth:           handlers.NewAuthHandler(authService),
		Teachers:       handlers.NewTeachersHandler(teacherService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}

	drainCtx, drainCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer drainCancel()
	if err := dispatcher.Stop(drainCtx); err != nil {
		logger.Warn("notification queue not drained", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}

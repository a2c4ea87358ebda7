package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/teacher-directory/internal/api/http/handlers"
	"github.com/spec-kit/teacher-directory/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Teachers       *handlers.TeachersHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	app.Post("/register", cfg.Auth.Register)
	app.Post("/login", cfg.Auth.Login)

	// Guard per route so unknown paths still fall through to 404.
	guard := cfg.AuthMiddleware.Handle
	app.Post("/logout", guard, cfg.Auth.Logout)
	app.Get("/teachers", guard, cfg.Teachers.List)
	app.Get("/teachers/:id", guard, cfg.Teachers.Get)
	app.Get("/me", guard, cfg.Teachers.Me)
	app.Put("/me", guard, cfg.Teachers.UpdateMe)
}

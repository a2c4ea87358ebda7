package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/teacher-directory/internal/observability"
	"github.com/spec-kit/teacher-directory/internal/persistence"
)

const readinessTimeout = 2 * time.Second

// dependency is one readiness check. state is reported when check succeeds.
type dependency struct {
	name  string
	state string
	check func(context.Context) error
}

// HealthHandler serves liveness, readiness and request counters.
type HealthHandler struct {
	serviceName string
	version     string
	startedAt   time.Time
	deps        []dependency
	metrics     *observability.Metrics
}

// NewHealthHandler builds the handler. An in-memory postgres and a nil redis are
// reported but never fail readiness.
func NewHealthHandler(serviceName, version string, postgres *persistence.Postgres, redis *persistence.Redis, metrics *observability.Metrics) *HealthHandler {
	deps := []dependency{{name: "postgres", state: "ok", check: postgres.Ping}}
	if !postgres.Enabled() {
		deps[0].state = "in-memory"
	}
	if redis != nil {
		deps = append(deps, dependency{name: "redis", state: "ok", check: redis.Ping})
	} else {
		deps = append(deps, dependency{name: "redis", state: "disabled"})
	}
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		startedAt:   time.Now(),
		deps:        deps,
		metrics:     metrics,
	}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":         "alive",
		"service":        h.serviceName,
		"version":        h.version,
		"uptime_seconds": int64(time.Since(h.startedAt).Seconds()),
	})
}

// Ready answers 200 when every configured dependency responds, 503 with per-dependency detail otherwise.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), readinessTimeout)
	defer cancel()

	states := fiber.Map{}
	ready := true
	for _, dep := range h.deps {
		if dep.check != nil {
			if err := dep.check(ctx); err != nil {
				states[dep.name] = err.Error()
				ready = false
				continue
			}
		}
		states[dep.name] = dep.state
	}

	if !ready {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": fiber.StatusServiceUnavailable,
			"error": fiber.Map{
				"code":    "DEPENDENCY_UNAVAILABLE",
				"message": "one or more dependencies unavailable",
				"details": states,
			},
		})
	}
	return c.JSON(fiber.Map{"status": "ready", "dependencies": states})
}

// Metrics reports the in-memory request counters.
func (h *HealthHandler) Metrics(c *fiber.Ctx) error {
	return c.JSON(h.metrics.Snapshot())
}

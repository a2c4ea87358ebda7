package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/teacher-directory/internal/observability"
)

func readyStatus(t *testing.T, h *HealthHandler) (int, map[string]any) {
	t.Helper()
	app := fiber.New()
	app.Get("/ready", h.Ready)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/ready", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestHealthReady_DependencyDown(t *testing.T) {
	t.Parallel()
	h := &HealthHandler{deps: []dependency{
		{name: "postgres", state: "ok", check: func(context.Context) error { return nil }},
		{name: "redis", state: "ok", check: func(context.Context) error { return errors.New("connection refused") }},
	}}

	status, body := readyStatus(t, h)
	assert.Equal(t, fiber.StatusServiceUnavailable, status)
	errBody, _ := body["error"].(map[string]any)
	details, _ := errBody["details"].(map[string]any)
	assert.Equal(t, "ok", details["postgres"])
	assert.Equal(t, "connection refused", details["redis"])
}

func TestHealthReady_Disabled(t *testing.T) {
	t.Parallel()
	h := &HealthHandler{deps: []dependency{{name: "redis", state: "disabled"}}}

	status, body := readyStatus(t, h)
	assert.Equal(t, fiber.StatusOK, status)
	deps, _ := body["dependencies"].(map[string]any)
	assert.Equal(t, "disabled", deps["redis"])
}

func TestHealthMetrics(t *testing.T) {
	t.Parallel()
	metrics := observability.NewMetrics()
	metrics.RecordRequest("/teachers", fiber.MethodGet, fiber.StatusOK, 0)
	h := &HealthHandler{metrics: metrics}

	app := fiber.New()
	app.Get("/metrics", h.Metrics)
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var snap observability.Snapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	assert.Len(t, snap.Requests, 1)
}

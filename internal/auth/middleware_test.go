package auth

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/teacher-directory/pkg/util"
)

type memoryDenylist struct {
	mu  sync.Mutex
	ids map[string]time.Time
}

func (d *memoryDenylist) Revoke(_ context.Context, id string, until time.Time) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.ids == nil {
		d.ids = map[string]time.Time{}
	}
	d.ids[id] = until
	return nil
}

func (d *memoryDenylist) IsRevoked(_ context.Context, id string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.ids[id]
	return ok, nil
}

func newProtectedApp(m *AuthMiddleware) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).SendString(de.Message)
		},
	})
	app.Get("/private", m.Handle, func(c *fiber.Ctx) error {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			return fiber.ErrInternalServerError
		}
		return c.SendString(claims.Email)
	})
	return app
}

func doGet(t *testing.T, app *fiber.App, header string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestAuthMiddleware(t *testing.T) {
	now := issueTime
	tm := newTestManager(t, "secret", &now)
	denylist := &memoryDenylist{}
	app := newProtectedApp(NewAuthMiddleware(tm, denylist))

	tok, err := tm.IssueToken(testUser())
	require.NoError(t, err)

	status, body := doGet(t, app, "Bearer "+tok.Value)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, testUser().Email, body)

	status, body = doGet(t, app, "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Token required", body)

	status, body = doGet(t, app, "Token "+tok.Value)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Token required", body)

	status, body = doGet(t, app, "Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid token", body)

	now = issueTime.Add(time.Hour)
	status, body = doGet(t, app, "Bearer "+tok.Value)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Token expired", body)

	now = issueTime
	require.NoError(t, denylist.Revoke(context.Background(), tok.ID, tok.ExpiresAt))
	status, body = doGet(t, app, "Bearer "+tok.Value)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Token revoked", body)
}

func TestUnauthorizedError_NonAuthError(t *testing.T) {
	t.Parallel()

	err := UnauthorizedError(io.EOF)
	assert.True(t, apperrors.IsStatus(err, http.StatusInternalServerError))
}

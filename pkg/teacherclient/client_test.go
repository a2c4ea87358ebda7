package teacherclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestLoginStoresToken(t *testing.T) {
	t.Parallel()
	var gotAuth string
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/login":
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "jane@example.com", body["email"])
			writeJSON(w, http.StatusOK, map[string]any{"status": 200, "message": "Login successful", "token": "tok-1"})
		case "/me":
			gotAuth = r.Header.Get("Authorization")
			writeJSON(w, http.StatusOK, map[string]any{"status": 200, "data": map[string]any{"email": "jane@example.com"}})
		default:
			http.NotFound(w, r)
		}
	})

	c := NewClient(srv.URL)
	token, err := c.Login(context.Background(), "jane@example.com", "secret-pass")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)

	me, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", me.Email)
	assert.Equal(t, "Bearer tok-1", gotAuth)
}

func TestListTeachersSendsQuery(t *testing.T) {
	t.Parallel()
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/teachers", r.URL.Path)
		assert.Equal(t, "pune uni", r.URL.Query().Get("q"))
		writeJSON(w, http.StatusOK, map[string]any{"status": 200, "data": []map[string]any{{"id": 7, "first_name": "Ada"}}})
	})

	c := NewClient(srv.URL+"/", WithToken("tok"))
	teachers, err := c.ListTeachers(context.Background(), "pune uni")
	require.NoError(t, err)
	require.Len(t, teachers, 1)
	assert.EqualValues(t, 7, teachers[0].ID)
}

func TestAPIErrorIsTyped(t *testing.T) {
	t.Parallel()
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"status": 401,
			"error":  map[string]any{"code": "UNAUTHORIZED", "message": "Token expired"},
		})
	})

	c := NewClient(srv.URL, WithSampleFallback())
	_, err := c.ListTeachers(context.Background(), "")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "UNAUTHORIZED", apiErr.Code)
	assert.Equal(t, "Token expired", apiErr.Message)
}

func TestUnavailableWithoutFallback(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(url)
	_, err := c.ListTeachers(context.Background(), "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestSampleFallbackOnTransportFailure(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(url, WithSampleFallback())
	teachers, err := c.ListTeachers(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, teachers, 3)

	teachers, err = c.ListTeachers(context.Background(), "aryan")
	require.NoError(t, err)
	require.Len(t, teachers, 1)
	assert.Equal(t, "Rathod", teachers[0].LastName)

	teacher, err := c.GetTeacher(context.Background(), "00000000-0000-0000-0000-000000000002")
	require.NoError(t, err)
	assert.Equal(t, "Jane", teacher.FirstName)

	_, err = c.GetTeacher(context.Background(), "missing")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)

	_, err = c.Login(context.Background(), "a@b.c", "pw")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestFilterSamplesMatchesFields(t *testing.T) {
	t.Parallel()
	cases := map[string]int{
		"":            3,
		"MATHEMATICS": 1,
		"university":  3,
		"doe":         1,
		"nobody":      0,
	}
	for q, want := range cases {
		assert.Len(t, FilterSamples(q), want, "query %q", q)
	}
}

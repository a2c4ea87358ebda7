package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainError(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection reset")

	tests := []struct {
		name       string
		err        error
		wantCode   string
		wantStatus int
	}{
		{name: "validation", err: NewValidationError("missing", nil), wantCode: "VALIDATION_FAILED", wantStatus: http.StatusBadRequest},
		{name: "conflict", err: NewConflict("exists", nil), wantCode: "CONFLICT", wantStatus: http.StatusConflict},
		{name: "unauthorized", err: NewUnauthorized("nope"), wantCode: "UNAUTHORIZED", wantStatus: http.StatusUnauthorized},
		{name: "not found", err: NewNotFound("teacher", nil), wantCode: "NOT_FOUND", wantStatus: http.StatusNotFound},
		{name: "server error", err: NewServerError("registration failed", cause), wantCode: "SERVER_ERROR", wantStatus: http.StatusInternalServerError},
		{name: "wrapped domain error", err: fmt.Errorf("outer: %w", NewConflict("exists", nil)), wantCode: "CONFLICT", wantStatus: http.StatusConflict},
		{name: "plain error", err: cause, wantCode: "INTERNAL_ERROR", wantStatus: http.StatusInternalServerError},
		{name: "route not found", err: NewHTTPError(http.StatusNotFound, "Cannot GET /x"), wantCode: "NOT_FOUND", wantStatus: http.StatusNotFound},
		{name: "method not allowed", err: NewHTTPError(http.StatusMethodNotAllowed, "Method Not Allowed"), wantCode: "METHOD_NOT_ALLOWED", wantStatus: http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			de := ToDomainError(tt.err)
			require.NotNil(t, de)
			assert.Equal(t, tt.wantCode, de.Code)
			assert.Equal(t, tt.wantStatus, de.HTTPStatus)
		})
	}
}

func TestToDomainError_Nil(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))
}

func TestServerErrorIncludesCause(t *testing.T) {
	cause := errors.New("insert teacher: check constraint")
	err := NewServerError("registration failed", cause)

	assert.Equal(t, "registration failed: insert teacher: check constraint", ToDomainError(err).Message)
	assert.ErrorIs(t, err, cause)
}

func TestInternalErrorHidesCause(t *testing.T) {
	err := NewInternalError(errors.New("password=hunter2"))

	assert.Equal(t, "internal server error", ToDomainError(err).Message)
	assert.True(t, IsStatus(err, http.StatusInternalServerError))
}

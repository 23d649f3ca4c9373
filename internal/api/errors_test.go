package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gaspigz/taskManagerClg/internal/api/shared"
	"github.com/gaspigz/taskManagerClg/internal/domain"
	"github.com/gaspigz/taskManagerClg/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{name: "nil error", err: nil, expectedStatus: http.StatusInternalServerError},
		{name: "token error", err: auth.ErrInvalidToken, expectedStatus: http.StatusUnauthorized},
		{name: "invalid credentials", err: domain.ErrInvalidCredentials, expectedStatus: http.StatusUnauthorized},
		{name: "forbidden", err: fmt.Errorf("%w: not yours", domain.ErrForbidden), expectedStatus: http.StatusForbidden},
		{name: "not found", err: domain.ErrNotFound, expectedStatus: http.StatusNotFound},
		{name: "conflict", err: domain.ErrConflict, expectedStatus: http.StatusConflict},
		{name: "invalid transition", err: domain.ErrInvalidTransition, expectedStatus: http.StatusBadRequest},
		{name: "invalid filter", err: domain.ErrInvalidFilter, expectedStatus: http.StatusBadRequest},
		{name: "field validation", err: domain.NewValidationError("title", "too short"), expectedStatus: http.StatusBadRequest},
		{name: "unexpected", err: errors.New("pq: connection refused"), expectedStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedStatus, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
	assert.Equal(t, "An unexpected error occurred",
		GetSafeErrorMessage(errors.New("dial tcp 10.0.0.5:5432: connection refused")))
	assert.Equal(t, "Invalid credentials", GetSafeErrorMessage(domain.ErrInvalidCredentials))
	assert.Equal(t, "Invalid title: too short",
		GetSafeErrorMessage(domain.NewValidationError("title", "too short")))
	assert.Equal(t, "Resource not found",
		GetSafeErrorMessage(fmt.Errorf("%w: store detail with secrets", domain.ErrNotFound)))
}

func TestHandleAPIError(t *testing.T) {
	t.Run("unexpected error ignores custom message", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
		req = req.WithContext(shared.SetTraceID(req.Context()))

		HandleAPIError(rec, req, errors.New("postgres://user:pw@db/tasks failed"), "Something custom")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		var body shared.ErrorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, "An unexpected error occurred", body.Error)
		assert.NotEmpty(t, body.TraceID)
	})

	t.Run("known error uses custom message", func(t *testing.T) {
		rec := httptest.NewRecorder()
		HandleAPIError(rec, httptest.NewRequest(http.MethodGet, "/", nil), domain.ErrNotFound, "Task not found")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "Task not found")
	})
}

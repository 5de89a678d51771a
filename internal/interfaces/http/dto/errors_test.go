package dto

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/shopizer/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		kind     shared.ErrorKind
		expected int
	}{
		{shared.KindNotFound, http.StatusNotFound},
		{shared.KindValidation, http.StatusBadRequest},
		{shared.KindConversion, http.StatusBadRequest},
		{shared.KindInvalidArgument, http.StatusBadRequest},
		{shared.KindUnauthorized, http.StatusUnauthorized},
		{shared.KindForbidden, http.StatusForbidden},
		{shared.KindAlreadyExists, http.StatusConflict},
		{shared.KindSecurity, http.StatusInternalServerError},
		{shared.KindService, http.StatusInternalServerError},
		{"unknown", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.kind))
		})
	}
}

func TestFromError(t *testing.T) {
	t.Run("not found without cause has no detail", func(t *testing.T) {
		status, body := FromError(shared.NewNotFoundError("MANUFACTURER_NOT_FOUND", "Manufacturer 1 not found"), "req-1")

		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "MANUFACTURER_NOT_FOUND", body.Code)
		assert.Equal(t, "Manufacturer 1 not found", body.Message)
		assert.Empty(t, body.Detail)
		assert.Equal(t, "req-1", body.RequestID)
	})

	t.Run("detail joins message and root cause", func(t *testing.T) {
		err := shared.NewSecurityError("Cannot load user admin", errors.New("connection refused"))

		status, body := FromError(err, "")

		assert.Equal(t, http.StatusInternalServerError, status)
		assert.Equal(t, "AUTHENTICATION_SERVICE_ERROR", body.Code)
		assert.Equal(t, "Cannot load user admin: connection refused", body.Detail)
	})

	t.Run("plain errors stay opaque", func(t *testing.T) {
		status, body := FromError(errors.New("pq: password authentication failed"), "")

		assert.Equal(t, http.StatusInternalServerError, status)
		assert.Equal(t, ErrCodeInternal, body.Code)
		assert.NotContains(t, body.Message, "pq:")
	})
}

func TestErrorResponse_JSON(t *testing.T) {
	resp := NewValidationErrorResponse("Request validation failed", "req-2", []ValidationDetail{
		{Field: "code", Message: "This field is required"},
	})

	data, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, ErrCodeValidation, decoded["code"])
	assert.Equal(t, "req-2", decoded["request_id"])
	assert.NotContains(t, decoded, "detail")
	assert.Len(t, decoded["details"], 1)
}

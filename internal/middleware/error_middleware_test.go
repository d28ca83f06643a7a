package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/honorsociety/internal/app/models/dto"
	"github.com/yigit/honorsociety/internal/pkg/apperrors"
)

func TestErrorResponse_Status(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   dto.ErrorCode
	}{
		{"validation", apperrors.NewValidationError("name", "name is required."), http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"conflict", apperrors.NewConflictError("code", "exists"), http.StatusBadRequest, dto.ErrorCodeResourceAlreadyExists},
		{"duplicate record", apperrors.ErrDuplicateRecord, http.StatusBadRequest, "DUPLICATE_RECORD"},
		{"logout token", apperrors.ErrLogoutTokenInvalid, http.StatusBadRequest, "INVALID_TOKEN"},
		{"bad credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{"expired", fmt.Errorf("wrapped: %w", apperrors.ErrTokenExpired), http.StatusUnauthorized, dto.ErrorCodeExpiredToken},
		{"refresh", apperrors.ErrRefreshTokenInvalid, http.StatusUnauthorized, "INVALID_TOKEN"},
		{"gate", apperrors.ErrUnverifiedOfficer, http.StatusForbidden, "UNVERIFIED_OFFICER"},
		{"not found", apperrors.NewNotFoundError("campus 9 not found."), http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"unknown", errors.New("db exploded"), http.StatusInternalServerError, dto.ErrorCodeInternalServer},
		{"registration", apperrors.ErrRegistrationFailed, http.StatusInternalServerError, "REGISTRATION_FAILED"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, body := errorResponse(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, body.Code)
			assert.False(t, body.Success)
		})
	}
}

func TestErrorResponse_Messages(t *testing.T) {
	_, body := errorResponse(apperrors.NewValidationError("campus_id", "Invalid campus_id - object does not exist."))
	assert.Equal(t, "Invalid campus_id - object does not exist.", body.Error)
	assert.Equal(t, "campus_id", body.Field)

	_, body = errorResponse(errors.New("connection refused on 10.0.0.1"))
	assert.Equal(t, "Internal server error.", body.Error, "internal details stay hidden")

	_, body = errorResponse(apperrors.ErrRegistrationFailed)
	assert.Equal(t, "Registration failed. Please try again.", body.Error)
}

type bindTarget struct {
	Name     string `json:"name" binding:"required"`
	CampusID int64  `json:"campus_id" binding:"required"`
}

func TestBindingError(t *testing.T) {
	SetupValidator()

	t.Run("missing fields", func(t *testing.T) {
		err := bindBody(t, `{"name": "x"}`)
		be := BindingError(err)
		require.ErrorIs(t, be, apperrors.ErrValidationFailed)
		ce, ok := apperrors.AsCustomError(be)
		require.True(t, ok)
		assert.Equal(t, "campus_id", ce.Field)
		assert.Equal(t, "campus_id: This field is required.", ce.Message)
		fields, ok := ce.Details["fields"].([]dto.FieldError)
		require.True(t, ok)
		assert.Len(t, fields, 1)
	})

	t.Run("wrong type", func(t *testing.T) {
		be := BindingError(bindBody(t, `{"name": "x", "campus_id": "one"}`))
		require.ErrorIs(t, be, apperrors.ErrValidationFailed)
		ce, _ := apperrors.AsCustomError(be)
		assert.Equal(t, "campus_id", ce.Field)
	})

	t.Run("malformed json", func(t *testing.T) {
		be := BindingError(bindBody(t, `{"name":`))
		assert.ErrorIs(t, be, apperrors.ErrBadRequest)
	})
}

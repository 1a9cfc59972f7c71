package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors_SetHTTPCode(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		code int
	}{
		{"validation", NewValidationError("bad"), http.StatusBadRequest},
		{"not found", NewNotFoundError("missing"), http.StatusNotFound},
		{"conflict", NewConflictError("dup"), http.StatusConflict},
		{"forbidden", NewForbiddenError("no"), http.StatusForbidden},
		{"internal", NewInternalError("boom"), http.StatusInternalServerError},
		{"token expired", NewTokenExpiredError(), http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
		})
	}
}

func TestAppError_Details(t *testing.T) {
	err := NewConflictError("overlapping subscription", "conflicts with subscription 7")
	assert.Equal(t, "conflict: overlapping subscription (conflicts with subscription 7)", err.Error())
	assert.Equal(t, "not_found: missing", NewNotFoundError("missing").Error())
}

func TestAppError_UnwrapsCause(t *testing.T) {
	sentinel := errors.New("already cancelled")
	appErr := NewConflictError("subscription already cancelled").WithCause(sentinel)
	wrapped := fmt.Errorf("cancel: %w", appErr)

	assert.True(t, errors.Is(wrapped, sentinel))
	assert.True(t, IsConflictError(wrapped))
	assert.False(t, IsNotFoundError(wrapped))

	got := GetAppError(wrapped)
	require.NotNil(t, got)
	assert.Equal(t, "subscription already cancelled", got.Message)
}

func TestWithCause_DoesNotMutateOriginal(t *testing.T) {
	base := NewValidationError("bad")
	_ = base.WithCause(errors.New("x"))
	assert.Nil(t, base.Cause)
}

func TestIsDuplicateError(t *testing.T) {
	assert.True(t, IsDuplicateError(errors.New("Error 1062: Duplicate entry 'a' for key 'x'")))
	assert.True(t, IsDuplicateError(errors.New("UNIQUE constraint failed: plans.name")))
	assert.False(t, IsDuplicateError(errors.New("connection refused")))
	assert.False(t, IsDuplicateError(nil))
}

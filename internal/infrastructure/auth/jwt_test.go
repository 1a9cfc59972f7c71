package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/backoffice/internal/shared/authorization"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", "backoffice", 60)

	token, exp, err := svc.Generate(42, authorization.RoleManager, 0)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, authorization.RoleManager, claims.Role)
	assert.Equal(t, "42", claims.Subject)
}

func TestJWTService_RejectsForeignSecret(t *testing.T) {
	token, _, err := NewJWTService("one", "backoffice", 60).Generate(1, authorization.RoleAdmin, 0)
	require.NoError(t, err)

	_, err = NewJWTService("two", "backoffice", 60).Verify(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsForeignIssuer(t *testing.T) {
	token, _, err := NewJWTService("s", "other", 60).Generate(1, authorization.RoleAdmin, 0)
	require.NoError(t, err)

	_, err = NewJWTService("s", "backoffice", 60).Verify(token)
	assert.Error(t, err)
}

func TestJWTService_Expired(t *testing.T) {
	svc := NewJWTService("s", "backoffice", 60)
	token, _, err := svc.Generate(1, authorization.RoleUser, time.Nanosecond)
	require.NoError(t, err)

	time.Sleep(1100 * time.Millisecond)
	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestJWTService_InvalidRole(t *testing.T) {
	_, _, err := NewJWTService("s", "", 60).Generate(1, authorization.UserRole("root"), 0)
	assert.Error(t, err)
}

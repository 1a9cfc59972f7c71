package authorization

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/backoffice/internal/shared/constants"
)

func TestScope_OwnerID(t *testing.T) {
	tests := []struct {
		name      string
		scope     Scope
		wantOwner *uint
	}{
		{"admin unrestricted", NewScope(1, RoleAdmin), nil},
		{"manager unrestricted", NewScope(2, RoleManager), nil},
		{"user narrowed", NewScope(3, RoleUser), func() *uint { v := uint(3); return &v }()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.scope.OwnerID()
			if tt.wantOwner == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.wantOwner, *got)
		})
	}
}

func TestScope_CanAccess(t *testing.T) {
	assert.True(t, NewScope(1, RoleAdmin).CanAccess(99))
	assert.True(t, NewScope(1, RoleManager).CanAccess(99))
	assert.True(t, NewScope(7, RoleUser).CanAccess(7))
	assert.False(t, NewScope(7, RoleUser).CanAccess(8))
}

func TestParseUserRole(t *testing.T) {
	assert.Equal(t, RoleManager, ParseUserRole("manager"))
	assert.Equal(t, RoleUser, ParseUserRole("superuser"))
	assert.Equal(t, RoleUser, ParseUserRole(""))
}

func TestScopeFromContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Set(constants.ContextKeyUserID, uint(42))
	c.Set(constants.ContextKeyUserRole, "manager")

	scope := ScopeFromContext(c)
	assert.Equal(t, uint(42), scope.UserID)
	assert.Equal(t, RoleManager, scope.Role)

	anon, _ := gin.CreateTestContext(httptest.NewRecorder())
	scope = ScopeFromContext(anon)
	assert.Zero(t, scope.UserID)
	assert.Equal(t, RoleUser, scope.Role)
}

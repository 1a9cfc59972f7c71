package authorization

import (
	"github.com/gin-gonic/gin"

	"github.com/orris-inc/backoffice/internal/shared/constants"
)

// ScopeFromContext builds the caller scope from values set by the auth middleware.
func ScopeFromContext(c *gin.Context) Scope {
	return NewScope(c.GetUint(constants.ContextKeyUserID), ParseUserRole(c.GetString(constants.ContextKeyUserRole)))
}

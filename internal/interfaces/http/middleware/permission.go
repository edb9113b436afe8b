package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/minerepair/repairhub/internal/domain/permission"
	apperrors "github.com/minerepair/repairhub/internal/shared/errors"
	"github.com/minerepair/repairhub/internal/shared/logger"
)

// PermissionMiddleware checks the caller's role against the route policy.
// It must run after RequireAuth.
type PermissionMiddleware struct {
	enforcer permission.RouteEnforcer
	logger   logger.Interface
}

func NewPermissionMiddleware(enforcer permission.RouteEnforcer, logger logger.Interface) *PermissionMiddleware {
	return &PermissionMiddleware{
		enforcer: enforcer,
		logger:   logger,
	}
}

func (m *PermissionMiddleware) Authorize() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := PrincipalFromContext(c)
		if !ok {
			abortWithError(c, apperrors.NewUnauthorizedError("user not authenticated"))
			return
		}

		route := c.FullPath()
		allowed, err := m.enforcer.Enforce(p.Role.String(), route, c.Request.Method)
		if err != nil {
			m.logger.Errorw("permission check failed", "error", err, "user_id", p.UserID, "route", route)
			abortWithError(c, apperrors.NewInternalError("permission check failed"))
			return
		}
		if !allowed {
			m.logger.Warnw("permission denied", "user_id", p.UserID, "role", p.Role, "route", route, "method", c.Request.Method)
			abortWithError(c, apperrors.NewForbiddenError("insufficient permissions"))
			return
		}

		c.Next()
	}
}

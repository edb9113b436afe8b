// Package common provides shared HTTP handler utilities.
package common

import (
	"github.com/gin-gonic/gin"

	"github.com/minerepair/repairhub/internal/interfaces/http/middleware"
	"github.com/minerepair/repairhub/internal/shared/authorization"
	"github.com/minerepair/repairhub/internal/shared/errors"
	"github.com/minerepair/repairhub/internal/shared/logger"
	"github.com/minerepair/repairhub/internal/shared/utils"
)

// RequirePrincipal returns the authenticated caller or writes a 401.
func RequirePrincipal(c *gin.Context) (authorization.Principal, bool) {
	p, ok := middleware.PrincipalFromContext(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("user not authenticated"))
		return authorization.Principal{}, false
	}
	return p, true
}

// BindJSON binds and validates the body into req or writes a 400.
func BindJSON(c *gin.Context, log logger.Interface, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		log.Warnw("invalid request body", "path", c.FullPath(), "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return false
	}
	return true
}

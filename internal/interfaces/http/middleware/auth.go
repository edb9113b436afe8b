package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/minerepair/repairhub/internal/domain/user"
	"github.com/minerepair/repairhub/internal/infrastructure/auth"
	"github.com/minerepair/repairhub/internal/shared/authorization"
	"github.com/minerepair/repairhub/internal/shared/constants"
	apperrors "github.com/minerepair/repairhub/internal/shared/errors"
	"github.com/minerepair/repairhub/internal/shared/logger"
	"github.com/minerepair/repairhub/internal/shared/utils"
)

// TokenVerifier is satisfied by auth.JWTService.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// AccountLookup resolves the caller's account so deactivated users are
// rejected even while their token is still valid.
type AccountLookup interface {
	GetByID(ctx context.Context, id uint) (*user.User, error)
}

type AuthMiddleware struct {
	verifier TokenVerifier
	accounts AccountLookup
	logger   logger.Interface
}

func NewAuthMiddleware(verifier TokenVerifier, accounts AccountLookup, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		accounts: accounts,
		logger:   logger,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			abortWithError(c, apperrors.NewUnauthorizedError("missing authorization token"))
			return
		}

		claims, err := m.verifier.Verify(token)
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			if errors.Is(err, jwt.ErrTokenExpired) {
				abortWithError(c, apperrors.NewTokenExpiredError())
			} else {
				abortWithError(c, apperrors.NewTokenInvalidError())
			}
			return
		}

		principal, err := claims.Principal()
		if err != nil {
			m.logger.Warnw("token carries an invalid principal", "error", err)
			abortWithError(c, apperrors.NewTokenInvalidError(err.Error()))
			return
		}

		if m.accounts != nil {
			account, err := m.accounts.GetByID(c.Request.Context(), principal.UserID)
			switch {
			case errors.Is(err, user.ErrUserNotFound):
				abortWithError(c, apperrors.NewTokenInvalidError("unknown user"))
				return
			case err != nil:
				m.logger.Errorw("failed to load account for token", "user_id", principal.UserID, "error", err)
				abortWithError(c, apperrors.NewInternalError("failed to verify account"))
				return
			case !account.IsActive():
				abortWithError(c, apperrors.NewAccountInactiveError())
				return
			case account.Role() != principal.Role:
				// Role changed since the token was issued.
				abortWithError(c, apperrors.NewTokenInvalidError("role changed, sign in again"))
				return
			}
		}

		SetPrincipal(c, principal)
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader(constants.HeaderAuthorization)
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// SetPrincipal stores the authenticated caller on the gin context.
func SetPrincipal(c *gin.Context, p authorization.Principal) {
	c.Set(constants.ContextKeyUserID, p.UserID)
	c.Set(constants.ContextKeyUserRole, p.Role)
}

// PrincipalFromContext returns the caller set by RequireAuth.
func PrincipalFromContext(c *gin.Context) (authorization.Principal, bool) {
	id, ok := c.Get(constants.ContextKeyUserID)
	if !ok {
		return authorization.Principal{}, false
	}
	role, ok := c.Get(constants.ContextKeyUserRole)
	if !ok {
		return authorization.Principal{}, false
	}
	userID, ok1 := id.(uint)
	userRole, ok2 := role.(authorization.UserRole)
	if !ok1 || !ok2 || userID == 0 {
		return authorization.Principal{}, false
	}
	return authorization.Principal{UserID: userID, Role: userRole}, true
}

func abortWithError(c *gin.Context, err error) {
	utils.ErrorResponseWithError(c, err)
	c.Abort()
}

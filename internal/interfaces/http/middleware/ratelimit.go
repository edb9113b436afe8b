package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/minerepair/repairhub/internal/infrastructure/ratelimit"
	apperrors "github.com/minerepair/repairhub/internal/shared/errors"
	"github.com/minerepair/repairhub/internal/shared/logger"
)

// UserRateLimiter caps write endpoints per authenticated user. Redis
// failures let the request through.
type UserRateLimiter struct {
	limiter ratelimit.RateLimiter
	logger  logger.Interface
}

func NewUserRateLimiter(limiter ratelimit.RateLimiter, logger logger.Interface) *UserRateLimiter {
	return &UserRateLimiter{
		limiter: limiter,
		logger:  logger,
	}
}

// Limit counts calls under scope. A nil receiver or limiter disables it.
func (m *UserRateLimiter) Limit(scope string, cfg ratelimit.RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil || m.limiter == nil {
			c.Next()
			return
		}
		p, ok := PrincipalFromContext(c)
		if !ok {
			c.Next()
			return
		}

		key := fmt.Sprintf("%s:%d", scope, p.UserID)
		allowed, err := m.limiter.Allow(c.Request.Context(), key, cfg)
		if err != nil {
			m.logger.Warnw("rate limiter unavailable, allowing request", "scope", scope, "user_id", p.UserID, "error", err)
			c.Next()
			return
		}
		if !allowed {
			m.logger.Warnw("rate limit exceeded", "scope", scope, "user_id", p.UserID)
			abortWithError(c, apperrors.NewTooManyRequestsError("rate limit exceeded, please try again later"))
			return
		}

		c.Next()
	}
}

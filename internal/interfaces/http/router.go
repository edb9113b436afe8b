package http

import (
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/minerepair/repairhub/docs"
	"github.com/minerepair/repairhub/internal/infrastructure/ratelimit"
	"github.com/minerepair/repairhub/internal/interfaces/http/middleware"
	"github.com/minerepair/repairhub/internal/interfaces/http/routes"
)

// SetupRoutes registers global middleware and all route groups.
func (c *Container) SetupRoutes() {
	c.engine.Use(
		middleware.RequestID(),
		middleware.AccessLogger(c.log.Named("http")),
		middleware.Recovery(c.log),
		middleware.CORS(c.cfg.Server.AllowedOrigins),
		middleware.SecurityHeaders(),
	)

	c.engine.GET("/health", c.hdlrs.healthHandler.HealthCheck)
	c.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRequestRoutes(c.engine, &routes.RequestRouteConfig{
		RequestHandler:       c.hdlrs.requestHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
		RateLimiter:          c.rateLimiter,
		CreateLimit:          ratelimit.RateLimitConfig{RequestsPerHour: c.cfg.RateLimit.CreateRequestsPerHour},
		RespondLimit:         ratelimit.RateLimitConfig{RequestsPerHour: c.cfg.RateLimit.ResponsesPerHour},
	})

	routes.SetupVerificationRoutes(c.engine, &routes.VerificationRouteConfig{
		VerificationHandler:  c.hdlrs.verificationHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
	})

	c.log.Infow("routes registered", "count", len(c.engine.Routes()))
}

package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/minerepair/repairhub/internal/infrastructure/ratelimit"
	requesthandlers "github.com/minerepair/repairhub/internal/interfaces/http/handlers/request"
	"github.com/minerepair/repairhub/internal/interfaces/http/middleware"
)

type RequestRouteConfig struct {
	RequestHandler       *requesthandlers.RequestHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
	// RateLimiter may be nil when rate limiting is disabled.
	RateLimiter  *middleware.UserRateLimiter
	CreateLimit  ratelimit.RateLimitConfig
	RespondLimit ratelimit.RateLimitConfig
}

func SetupRequestRoutes(engine *gin.Engine, config *RequestRouteConfig) {
	h := config.RequestHandler

	requests := engine.Group("/requests")
	requests.Use(config.AuthMiddleware.RequireAuth(), config.PermissionMiddleware.Authorize())
	{
		requests.POST("",
			config.RateLimiter.Limit("create_request", config.CreateLimit),
			h.CreateRequest)
		requests.GET("", h.ListRequests)

		// Workflow actions
		requests.POST("/:id/assign-manager", h.AssignToManager)
		requests.POST("/:id/clarification", h.AddClarification)
		requests.POST("/:id/send-to-contractors", h.SendToContractors)
		requests.POST("/:id/responses",
			config.RateLimiter.Limit("respond", config.RespondLimit),
			h.Respond)
		requests.GET("/:id/responses", h.ListResponses)
		requests.POST("/:id/assign-contractor", h.AssignContractor)
		requests.POST("/:id/start", h.StartWork)
		requests.POST("/:id/complete", h.CompleteWork)
		requests.POST("/:id/cancel", h.CancelRequest)
		requests.GET("/:id/history", h.GetHistory)

		requests.GET("/:id", h.GetRequest)
		requests.PATCH("/:id", h.UpdateRequest)
	}
}

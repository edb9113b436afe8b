package routes

import (
	"github.com/gin-gonic/gin"

	verificationhandlers "github.com/minerepair/repairhub/internal/interfaces/http/handlers/verification"
	"github.com/minerepair/repairhub/internal/interfaces/http/middleware"
)

type VerificationRouteConfig struct {
	VerificationHandler  *verificationhandlers.VerificationHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupVerificationRoutes(engine *gin.Engine, config *VerificationRouteConfig) {
	h := config.VerificationHandler

	verifications := engine.Group("/verifications")
	verifications.Use(config.AuthMiddleware.RequireAuth(), config.PermissionMiddleware.Authorize())
	{
		verifications.GET("", h.ListVerifications)
		verifications.GET("/:contractor_id", h.GetVerification)
		verifications.GET("/:contractor_id/can-respond", h.CanRespond)
		verifications.POST("/:contractor_id/recompute", h.Recompute)
		verifications.POST("/:contractor_id/security-check", h.SecurityCheck)
		verifications.POST("/:contractor_id/manager-check", h.ManagerCheck)
	}
}

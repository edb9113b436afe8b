package http

import (
	"fmt"

	"github.com/minerepair/repairhub/internal/interfaces/http/handlers"
	requestHandlers "github.com/minerepair/repairhub/internal/interfaces/http/handlers/request"
	verificationHandlers "github.com/minerepair/repairhub/internal/interfaces/http/handlers/verification"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	healthHandler       *handlers.HealthHandler
	requestHandler      *requestHandlers.RequestHandler
	verificationHandler *verificationHandlers.VerificationHandler
}

func (c *Container) wireHandlers() (*allHandlers, error) {
	u := c.ucs

	sqlDB, err := c.db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB for health check: %w", err)
	}

	return &allHandlers{
		healthHandler: handlers.NewHealthHandler(sqlDB, c.log),
		requestHandler: requestHandlers.NewRequestHandler(requestHandlers.UseCases{
			Create:            u.createRequestUC,
			Update:            u.updateRequestUC,
			Get:               u.getRequestUC,
			List:              u.listRequestsUC,
			History:           u.requestHistoryUC,
			ListResponses:     u.listResponsesUC,
			AssignToManager:   u.assignToManagerUC,
			AddClarification:  u.addClarificationUC,
			SendToContractors: u.sendToContractorsUC,
			Respond:           u.respondUC,
			AssignContractor:  u.assignContractorUC,
			StartWork:         u.startWorkUC,
			CompleteWork:      u.completeWorkUC,
			Cancel:            u.cancelRequestUC,
		}, c.log),
		verificationHandler: verificationHandlers.NewVerificationHandler(verificationHandlers.UseCases{
			Recompute:     u.recomputeProfileUC,
			SecurityCheck: u.securityCheckUC,
			ManagerCheck:  u.managerCheckUC,
			CanRespond:    u.canRespondUC,
			Get:           u.getVerificationUC,
			List:          u.listVerificationsUC,
		}, c.log),
	}, nil
}

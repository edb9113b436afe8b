package http

import (
	requestUsecases "github.com/minerepair/repairhub/internal/application/request/usecases"
	verificationUsecases "github.com/minerepair/repairhub/internal/application/verification/usecases"
)

// allUseCases holds all use case instances used by the application.
type allUseCases struct {
	// Request workflow
	createRequestUC     *requestUsecases.CreateRequestUseCase
	updateRequestUC     *requestUsecases.UpdateRequestUseCase
	getRequestUC        *requestUsecases.GetRequestUseCase
	listRequestsUC      *requestUsecases.ListRequestsUseCase
	requestHistoryUC    *requestUsecases.GetRequestHistoryUseCase
	listResponsesUC     *requestUsecases.ListResponsesUseCase
	assignToManagerUC   *requestUsecases.AssignToManagerUseCase
	addClarificationUC  *requestUsecases.AddClarificationUseCase
	sendToContractorsUC *requestUsecases.SendToContractorsUseCase
	respondUC           *requestUsecases.RespondToRequestUseCase
	assignContractorUC  *requestUsecases.AssignContractorUseCase
	startWorkUC         *requestUsecases.StartWorkUseCase
	completeWorkUC      *requestUsecases.CompleteWorkUseCase
	cancelRequestUC     *requestUsecases.CancelRequestUseCase

	// Scheduler jobs
	remindStaleRequestsUC *requestUsecases.RemindStaleRequestsUseCase

	// Verification gate
	recomputeProfileUC  *verificationUsecases.RecomputeProfileCompletionUseCase
	securityCheckUC     *verificationUsecases.SecurityCheckUseCase
	managerCheckUC      *verificationUsecases.ManagerCheckUseCase
	canRespondUC        *verificationUsecases.CanRespondUseCase
	getVerificationUC   *verificationUsecases.GetVerificationUseCase
	listVerificationsUC *verificationUsecases.ListVerificationsUseCase
}

func (c *Container) wireUseCases() *allUseCases {
	r := c.repos
	log := c.log

	gate := verificationUsecases.NewGate(r.verificationRepo, log)
	verificationStore := verificationUsecases.NewVerificationStore(r.verificationRepo, c.txManager, c.dispatcher, log)
	requestStore := requestUsecases.NewRequestStore(r.requestRepo, r.historyRepo, c.txManager, c.dispatcher, log)

	return &allUseCases{
		createRequestUC:     requestUsecases.NewCreateRequestUseCase(requestStore, log),
		updateRequestUC:     requestUsecases.NewUpdateRequestUseCase(requestStore, log),
		getRequestUC:        requestUsecases.NewGetRequestUseCase(requestStore, gate, log),
		listRequestsUC:      requestUsecases.NewListRequestsUseCase(r.requestRepo, gate, log),
		requestHistoryUC:    requestUsecases.NewGetRequestHistoryUseCase(requestStore, r.historyRepo, gate, log),
		listResponsesUC:     requestUsecases.NewListResponsesUseCase(requestStore, r.responseRepo, log),
		assignToManagerUC:   requestUsecases.NewAssignToManagerUseCase(requestStore, r.userRepo, log),
		addClarificationUC:  requestUsecases.NewAddClarificationUseCase(requestStore, log),
		sendToContractorsUC: requestUsecases.NewSendToContractorsUseCase(requestStore, log),
		respondUC:           requestUsecases.NewRespondToRequestUseCase(requestStore, r.responseRepo, gate, log),
		assignContractorUC:  requestUsecases.NewAssignContractorUseCase(requestStore, gate, log),
		startWorkUC:         requestUsecases.NewStartWorkUseCase(requestStore, log),
		completeWorkUC:      requestUsecases.NewCompleteWorkUseCase(requestStore, log),
		cancelRequestUC:     requestUsecases.NewCancelRequestUseCase(requestStore, log),

		remindStaleRequestsUC: requestUsecases.NewRemindStaleRequestsUseCase(
			r.requestRepo, c.dispatcher, c.cfg.Workflow.StaleRequestAfter(), log.Named("reminder")),

		recomputeProfileUC:  verificationUsecases.NewRecomputeProfileCompletionUseCase(verificationStore, r.verificationRepo, r.profileRepo, log),
		securityCheckUC:     verificationUsecases.NewSecurityCheckUseCase(verificationStore, r.userRepo, log),
		managerCheckUC:      verificationUsecases.NewManagerCheckUseCase(verificationStore, log),
		canRespondUC:        verificationUsecases.NewCanRespondUseCase(gate, log),
		getVerificationUC:   verificationUsecases.NewGetVerificationUseCase(verificationStore, log),
		listVerificationsUC: verificationUsecases.NewListVerificationsUseCase(r.verificationRepo, log),
	}
}

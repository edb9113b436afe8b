package usecases

import (
	"context"

	"github.com/minerepair/repairhub/internal/application/request/dto"
	"github.com/minerepair/repairhub/internal/domain/request"
	vo "github.com/minerepair/repairhub/internal/domain/request/valueobjects"
	"github.com/minerepair/repairhub/internal/shared/authorization"
	apperrors "github.com/minerepair/repairhub/internal/shared/errors"
	"github.com/minerepair/repairhub/internal/shared/logger"
)

type RespondToRequestCommand struct {
	Actor        authorization.Principal
	RequestID    uint
	ProposedCost *float64
	Comment      string
}

type RespondToRequestUseCase struct {
	store     *RequestStore
	responses request.ResponseRepository
	gate      VerificationGate
	logger    logger.Interface
}

func NewRespondToRequestUseCase(
	store *RequestStore,
	responses request.ResponseRepository,
	gate VerificationGate,
	logger logger.Interface,
) *RespondToRequestUseCase {
	return &RespondToRequestUseCase{
		store:     store,
		responses: responses,
		gate:      gate,
		logger:    logger,
	}
}

func (uc *RespondToRequestUseCase) Execute(ctx context.Context, cmd RespondToRequestCommand) (*dto.ContractorResponseDTO, error) {
	uc.logger.Infow("executing respond to request use case", "request_id", cmd.RequestID, "contractor_id", cmd.Actor.UserID)

	if err := validateActor(cmd.Actor); err != nil {
		return nil, err
	}
	if cmd.RequestID == 0 {
		return nil, apperrors.NewValidationError("request_id is required")
	}
	if cmd.ProposedCost != nil && *cmd.ProposedCost < 0 {
		return nil, apperrors.NewValidationError("proposed cost cannot be negative")
	}

	r, err := uc.store.load(ctx, cmd.RequestID)
	if err != nil {
		return nil, err
	}
	if err := requireRole(cmd.Actor, authorization.RoleContractor); err != nil {
		return nil, err
	}

	verified, err := uc.gate.CanRespond(ctx, cmd.Actor.UserID)
	if err != nil {
		uc.logger.Errorw("failed to check contractor verification", "contractor_id", cmd.Actor.UserID, "error", err)
		return nil, apperrors.NewInternalError("failed to check contractor verification")
	}
	if !verified {
		return nil, apperrors.NewInvalidTransitionError("contractor is not verified")
	}
	if !r.CanAcceptResponses() {
		return nil, apperrors.NewInvalidTransitionError("request is not accepting responses", "status "+r.Status().String())
	}

	resp, err := request.NewContractorResponse(r.ID(), cmd.Actor.UserID, cmd.ProposedCost, sanitize(cmd.Comment))
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	err = uc.store.update(ctx, r, func(txCtx context.Context) error {
		if err := uc.responses.Create(txCtx, resp); err != nil {
			return err
		}
		if r.Status() == vo.StatusSentToContractors {
			if err := r.RegisterResponse(cmd.Actor); err != nil {
				return mapDomainError(err)
			}
		}
		r.Record(request.NewResponseReceivedEvent(r, resp))
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("contractor response recorded", "request_id", r.ID(), "response_id", resp.ID())
	out := dto.ToContractorResponseDTO(resp)
	return &out, nil
}

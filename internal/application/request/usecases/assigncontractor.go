package usecases

import (
	"context"

	"github.com/minerepair/repairhub/internal/application/request/dto"
	"github.com/minerepair/repairhub/internal/shared/authorization"
	apperrors "github.com/minerepair/repairhub/internal/shared/errors"
	"github.com/minerepair/repairhub/internal/shared/logger"
)

type AssignContractorCommand struct {
	Actor        authorization.Principal
	RequestID    uint
	ContractorID uint
}

type AssignContractorUseCase struct {
	store  *RequestStore
	gate   VerificationGate
	logger logger.Interface
}

func NewAssignContractorUseCase(store *RequestStore, gate VerificationGate, logger logger.Interface) *AssignContractorUseCase {
	return &AssignContractorUseCase{store: store, gate: gate, logger: logger}
}

func (uc *AssignContractorUseCase) Execute(ctx context.Context, cmd AssignContractorCommand) (*dto.RequestDTO, error) {
	uc.logger.Infow("executing assign contractor use case", "request_id", cmd.RequestID, "contractor_id", cmd.ContractorID, "user_id", cmd.Actor.UserID)

	if err := validateActor(cmd.Actor); err != nil {
		return nil, err
	}
	if cmd.RequestID == 0 {
		return nil, apperrors.NewValidationError("request_id is required")
	}
	if cmd.ContractorID == 0 {
		return nil, apperrors.NewValidationError("contractor_id is required")
	}

	r, err := uc.store.load(ctx, cmd.RequestID)
	if err != nil {
		return nil, err
	}
	if err := requireOwningManager(r, cmd.Actor); err != nil {
		return nil, err
	}

	verified, err := uc.gate.CanRespond(ctx, cmd.ContractorID)
	if err != nil {
		uc.logger.Errorw("failed to check contractor verification", "contractor_id", cmd.ContractorID, "error", err)
		return nil, apperrors.NewInternalError("failed to check contractor verification")
	}
	if !verified {
		uc.logger.Warnw("refusing to assign unverified contractor", "request_id", cmd.RequestID, "contractor_id", cmd.ContractorID)
		return nil, apperrors.NewInvalidTransitionError("contractor is not verified")
	}

	if err := r.AssignContractor(cmd.ContractorID, cmd.Actor); err != nil {
		uc.logger.Warnw("assign contractor rejected", "request_id", cmd.RequestID, "status", r.Status(), "error", err)
		return nil, mapDomainError(err)
	}

	if err := uc.store.update(ctx, r, nil); err != nil {
		return nil, err
	}

	uc.logger.Infow("contractor assigned", "request_id", r.ID(), "contractor_id", cmd.ContractorID)
	return dto.ToRequestDTO(r), nil
}

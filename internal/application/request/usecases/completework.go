package usecases

import (
	"context"

	"github.com/minerepair/repairhub/internal/application/request/dto"
	"github.com/minerepair/repairhub/internal/shared/authorization"
	apperrors "github.com/minerepair/repairhub/internal/shared/errors"
	"github.com/minerepair/repairhub/internal/shared/logger"
)

type CompleteWorkCommand struct {
	Actor      authorization.Principal
	RequestID  uint
	FinalPrice *float64
}

type CompleteWorkUseCase struct {
	store  *RequestStore
	logger logger.Interface
}

func NewCompleteWorkUseCase(store *RequestStore, logger logger.Interface) *CompleteWorkUseCase {
	return &CompleteWorkUseCase{store: store, logger: logger}
}

func (uc *CompleteWorkUseCase) Execute(ctx context.Context, cmd CompleteWorkCommand) (*dto.RequestDTO, error) {
	uc.logger.Infow("executing complete work use case", "request_id", cmd.RequestID, "contractor_id", cmd.Actor.UserID)

	if err := validateActor(cmd.Actor); err != nil {
		return nil, err
	}
	if cmd.RequestID == 0 {
		return nil, apperrors.NewValidationError("request_id is required")
	}
	if cmd.FinalPrice != nil && *cmd.FinalPrice < 0 {
		return nil, apperrors.NewValidationError("final price cannot be negative")
	}

	r, err := uc.store.load(ctx, cmd.RequestID)
	if err != nil {
		return nil, err
	}
	if err := requireAssignedContractor(r, cmd.Actor); err != nil {
		return nil, err
	}

	if err := r.CompleteWork(cmd.FinalPrice, cmd.Actor); err != nil {
		uc.logger.Warnw("complete work rejected", "request_id", cmd.RequestID, "status", r.Status(), "error", err)
		return nil, mapDomainError(err)
	}

	if err := uc.store.update(ctx, r, nil); err != nil {
		return nil, err
	}

	uc.logger.Infow("work completed", "request_id", r.ID())
	return dto.ToRequestDTO(r), nil
}

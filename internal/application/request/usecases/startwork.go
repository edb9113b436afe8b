package usecases

import (
	"context"

	"github.com/minerepair/repairhub/internal/application/request/dto"
	"github.com/minerepair/repairhub/internal/shared/authorization"
	apperrors "github.com/minerepair/repairhub/internal/shared/errors"
	"github.com/minerepair/repairhub/internal/shared/logger"
)

type StartWorkCommand struct {
	Actor     authorization.Principal
	RequestID uint
}

type StartWorkUseCase struct {
	store  *RequestStore
	logger logger.Interface
}

func NewStartWorkUseCase(store *RequestStore, logger logger.Interface) *StartWorkUseCase {
	return &StartWorkUseCase{store: store, logger: logger}
}

func (uc *StartWorkUseCase) Execute(ctx context.Context, cmd StartWorkCommand) (*dto.RequestDTO, error) {
	uc.logger.Infow("executing start work use case", "request_id", cmd.RequestID, "contractor_id", cmd.Actor.UserID)

	if err := validateActor(cmd.Actor); err != nil {
		return nil, err
	}
	if cmd.RequestID == 0 {
		return nil, apperrors.NewValidationError("request_id is required")
	}

	r, err := uc.store.load(ctx, cmd.RequestID)
	if err != nil {
		return nil, err
	}
	if err := requireAssignedContractor(r, cmd.Actor); err != nil {
		return nil, err
	}

	if err := r.StartWork(cmd.Actor); err != nil {
		uc.logger.Warnw("start work rejected", "request_id", cmd.RequestID, "status", r.Status(), "error", err)
		return nil, mapDomainError(err)
	}

	if err := uc.store.update(ctx, r, nil); err != nil {
		return nil, err
	}

	uc.logger.Infow("work started", "request_id", r.ID())
	return dto.ToRequestDTO(r), nil
}

package usecases

import (
	"context"

	"github.com/minerepair/repairhub/internal/application/request/dto"
	"github.com/minerepair/repairhub/internal/shared/authorization"
	apperrors "github.com/minerepair/repairhub/internal/shared/errors"
	"github.com/minerepair/repairhub/internal/shared/logger"
)

type SendToContractorsCommand struct {
	Actor     authorization.Principal
	RequestID uint
}

type SendToContractorsUseCase struct {
	store  *RequestStore
	logger logger.Interface
}

func NewSendToContractorsUseCase(store *RequestStore, logger logger.Interface) *SendToContractorsUseCase {
	return &SendToContractorsUseCase{store: store, logger: logger}
}

func (uc *SendToContractorsUseCase) Execute(ctx context.Context, cmd SendToContractorsCommand) (*dto.RequestDTO, error) {
	uc.logger.Infow("executing send to contractors use case", "request_id", cmd.RequestID, "user_id", cmd.Actor.UserID)

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
	if err := requireOwningManager(r, cmd.Actor); err != nil {
		return nil, err
	}

	if err := r.SendToContractors(cmd.Actor); err != nil {
		uc.logger.Warnw("send to contractors rejected", "request_id", cmd.RequestID, "status", r.Status(), "error", err)
		return nil, mapDomainError(err)
	}

	if err := uc.store.update(ctx, r, nil); err != nil {
		return nil, err
	}

	uc.logger.Infow("request broadcast to contractors", "request_id", r.ID())
	return dto.ToRequestDTO(r), nil
}

package usecases

import (
	"context"
	"strings"

	"github.com/minerepair/repairhub/internal/application/request/dto"
	"github.com/minerepair/repairhub/internal/shared/authorization"
	apperrors "github.com/minerepair/repairhub/internal/shared/errors"
	"github.com/minerepair/repairhub/internal/shared/logger"
)

type AddClarificationCommand struct {
	Actor     authorization.Principal
	RequestID uint
	Details   string
}

type AddClarificationUseCase struct {
	store  *RequestStore
	logger logger.Interface
}

func NewAddClarificationUseCase(store *RequestStore, logger logger.Interface) *AddClarificationUseCase {
	return &AddClarificationUseCase{store: store, logger: logger}
}

func (uc *AddClarificationUseCase) Execute(ctx context.Context, cmd AddClarificationCommand) (*dto.RequestDTO, error) {
	uc.logger.Infow("executing add clarification use case", "request_id", cmd.RequestID, "user_id", cmd.Actor.UserID)

	if err := validateActor(cmd.Actor); err != nil {
		return nil, err
	}
	if cmd.RequestID == 0 {
		return nil, apperrors.NewValidationError("request_id is required")
	}
	details := sanitize(cmd.Details)
	if strings.TrimSpace(details) == "" {
		return nil, apperrors.NewValidationError("clarification details are required")
	}

	r, err := uc.store.load(ctx, cmd.RequestID)
	if err != nil {
		return nil, err
	}
	if err := requireOwningManager(r, cmd.Actor); err != nil {
		return nil, err
	}

	if err := r.AddClarification(details, cmd.Actor); err != nil {
		uc.logger.Warnw("add clarification rejected", "request_id", cmd.RequestID, "status", r.Status(), "error", err)
		return nil, mapDomainError(err)
	}

	if err := uc.store.update(ctx, r, nil); err != nil {
		return nil, err
	}

	uc.logger.Infow("clarification requested", "request_id", r.ID())
	return dto.ToRequestDTO(r), nil
}

package usecases

import (
	"context"
	"strings"

	"github.com/minerepair/repairhub/internal/application/request/dto"
	"github.com/minerepair/repairhub/internal/domain/request"
	"github.com/minerepair/repairhub/internal/shared/authorization"
	apperrors "github.com/minerepair/repairhub/internal/shared/errors"
	"github.com/minerepair/repairhub/internal/shared/logger"
)

type CancelRequestCommand struct {
	Actor     authorization.Principal
	RequestID uint
	Reason    string
}

type CancelRequestUseCase struct {
	store  *RequestStore
	logger logger.Interface
}

func NewCancelRequestUseCase(store *RequestStore, logger logger.Interface) *CancelRequestUseCase {
	return &CancelRequestUseCase{store: store, logger: logger}
}

func (uc *CancelRequestUseCase) Execute(ctx context.Context, cmd CancelRequestCommand) (*dto.RequestDTO, error) {
	uc.logger.Infow("executing cancel request use case", "request_id", cmd.RequestID, "user_id", cmd.Actor.UserID)

	if err := validateActor(cmd.Actor); err != nil {
		return nil, err
	}
	if cmd.RequestID == 0 {
		return nil, apperrors.NewValidationError("request_id is required")
	}
	reason := sanitize(cmd.Reason)
	if strings.TrimSpace(reason) == "" {
		return nil, apperrors.NewValidationError("cancellation reason is required")
	}

	r, err := uc.store.load(ctx, cmd.RequestID)
	if err != nil {
		return nil, err
	}
	if !canCancel(r, cmd.Actor) {
		uc.logger.Warnw("user cannot cancel request", "request_id", cmd.RequestID, "user_id", cmd.Actor.UserID, "role", cmd.Actor.Role)
		return nil, apperrors.NewForbiddenError("permission denied", "only the customer, the owning manager or the assigned contractor can cancel")
	}

	if err := r.Cancel(reason, cmd.Actor); err != nil {
		uc.logger.Warnw("cancel request rejected", "request_id", cmd.RequestID, "status", r.Status(), "error", err)
		return nil, mapDomainError(err)
	}

	if err := uc.store.update(ctx, r, nil); err != nil {
		return nil, err
	}

	uc.logger.Infow("request cancelled", "request_id", r.ID())
	return dto.ToRequestDTO(r), nil
}

func canCancel(r *request.Request, p authorization.Principal) bool {
	switch p.Role {
	case authorization.RoleCustomer:
		return r.IsOwnedBy(p.UserID)
	case authorization.RoleManager:
		return r.IsManagedBy(p.UserID)
	case authorization.RoleContractor:
		return r.IsAssignedTo(p.UserID)
	case authorization.RoleSecurity, authorization.RoleHR, authorization.RoleAdmin:
		return false
	}
	return false
}

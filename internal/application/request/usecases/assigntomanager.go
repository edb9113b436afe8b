package usecases

import (
	"context"
	"errors"

	"github.com/minerepair/repairhub/internal/application/request/dto"
	"github.com/minerepair/repairhub/internal/domain/user"
	"github.com/minerepair/repairhub/internal/shared/authorization"
	apperrors "github.com/minerepair/repairhub/internal/shared/errors"
	"github.com/minerepair/repairhub/internal/shared/logger"
)

type AssignToManagerCommand struct {
	Actor     authorization.Principal
	RequestID uint
	// ManagerID defaults to the acting manager. Admins must set it.
	ManagerID uint
}

type AssignToManagerUseCase struct {
	store  *RequestStore
	users  user.Repository
	logger logger.Interface
}

func NewAssignToManagerUseCase(store *RequestStore, users user.Repository, logger logger.Interface) *AssignToManagerUseCase {
	return &AssignToManagerUseCase{store: store, users: users, logger: logger}
}

func (uc *AssignToManagerUseCase) Execute(ctx context.Context, cmd AssignToManagerCommand) (*dto.RequestDTO, error) {
	uc.logger.Infow("executing assign to manager use case", "request_id", cmd.RequestID, "user_id", cmd.Actor.UserID, "manager_id", cmd.ManagerID)

	if err := uc.validateCommand(cmd); err != nil {
		return nil, err
	}

	r, err := uc.store.load(ctx, cmd.RequestID)
	if err != nil {
		return nil, err
	}

	if err := requireRole(cmd.Actor, authorization.RoleManager, authorization.RoleAdmin); err != nil {
		return nil, err
	}

	target := cmd.ManagerID
	if cmd.Actor.Role == authorization.RoleManager {
		if target == 0 {
			target = cmd.Actor.UserID
		}
		if target != cmd.Actor.UserID {
			return nil, apperrors.NewForbiddenError("permission denied", "a manager can only take a request for themselves")
		}
		// Coming back from clarification only the owning manager may resume.
		if r.ManagerID() != nil && !r.IsManagedBy(cmd.Actor.UserID) {
			return nil, apperrors.NewForbiddenError("permission denied", "request is managed by another manager")
		}
	}

	if err := uc.ensureActiveManager(ctx, target); err != nil {
		return nil, err
	}

	if err := r.AssignManager(target, cmd.Actor); err != nil {
		uc.logger.Warnw("assign to manager rejected", "request_id", cmd.RequestID, "status", r.Status(), "error", err)
		return nil, mapDomainError(err)
	}

	if err := uc.store.update(ctx, r, nil); err != nil {
		return nil, err
	}

	uc.logger.Infow("request assigned to manager", "request_id", r.ID(), "manager_id", target)
	return dto.ToRequestDTO(r), nil
}

func (uc *AssignToManagerUseCase) validateCommand(cmd AssignToManagerCommand) error {
	if err := validateActor(cmd.Actor); err != nil {
		return err
	}
	if cmd.RequestID == 0 {
		return apperrors.NewValidationError("request_id is required")
	}
	if cmd.Actor.Role.IsAdmin() && cmd.ManagerID == 0 {
		return apperrors.NewValidationError("manager_id is required")
	}
	return nil
}

func (uc *AssignToManagerUseCase) ensureActiveManager(ctx context.Context, managerID uint) error {
	u, err := uc.users.GetByID(ctx, managerID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return apperrors.NewValidationError("manager not found")
		}
		uc.logger.Errorw("failed to load manager", "manager_id", managerID, "error", err)
		return apperrors.NewInternalError("failed to load manager")
	}
	if u == nil || !u.HasRole(authorization.RoleManager) {
		return apperrors.NewValidationError("target user is not an active manager")
	}
	return nil
}

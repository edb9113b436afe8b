package usecases

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/minerepair/repairhub/internal/application/request/dto"
	"github.com/minerepair/repairhub/internal/domain/request"
	"github.com/minerepair/repairhub/internal/shared/authorization"
	apperrors "github.com/minerepair/repairhub/internal/shared/errors"
	"github.com/minerepair/repairhub/internal/shared/logger"
)

// UpdateRequestCommand carries exactly one patch. Customers send
// CustomerPatch, the owning manager sends ManagerPatch.
type UpdateRequestCommand struct {
	Actor     authorization.Principal
	RequestID uint
	Customer  *request.CustomerPatch
	Manager   *request.ManagerPatch
}

type UpdateRequestUseCase struct {
	store    *RequestStore
	validate *validator.Validate
	logger   logger.Interface
}

func NewUpdateRequestUseCase(store *RequestStore, logger logger.Interface) *UpdateRequestUseCase {
	return &UpdateRequestUseCase{
		store:    store,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

func (uc *UpdateRequestUseCase) Execute(ctx context.Context, cmd UpdateRequestCommand) (*dto.RequestDTO, error) {
	uc.logger.Infow("executing update request use case", "request_id", cmd.RequestID, "user_id", cmd.Actor.UserID)

	if err := uc.validateCommand(cmd); err != nil {
		return nil, err
	}

	r, err := uc.store.load(ctx, cmd.RequestID)
	if err != nil {
		return nil, err
	}

	if cmd.Customer != nil {
		if err := requireRole(cmd.Actor, authorization.RoleCustomer); err != nil {
			return nil, err
		}
		if !r.IsOwnedBy(cmd.Actor.UserID) {
			return nil, apperrors.NewForbiddenError("permission denied", "request belongs to another customer")
		}
		patch := *cmd.Customer
		patch.Title = sanitizePtr(patch.Title)
		patch.Description = sanitizePtr(patch.Description)
		patch.ProblemDescription = sanitizePtr(patch.ProblemDescription)
		patch.Address = sanitizePtr(patch.Address)
		patch.Region = sanitizePtr(patch.Region)
		patch.City = sanitizePtr(patch.City)
		if err := r.ApplyCustomerPatch(patch); err != nil {
			uc.logger.Warnw("customer patch rejected", "request_id", cmd.RequestID, "status", r.Status(), "error", err)
			return nil, mapDomainError(err)
		}
	} else {
		if err := requireOwningManager(r, cmd.Actor); err != nil {
			return nil, err
		}
		patch := *cmd.Manager
		patch.ManagerComment = sanitizePtr(patch.ManagerComment)
		if err := r.ApplyManagerPatch(patch); err != nil {
			uc.logger.Warnw("manager patch rejected", "request_id", cmd.RequestID, "status", r.Status(), "error", err)
			return nil, mapDomainError(err)
		}
	}

	if err := uc.store.update(ctx, r, nil); err != nil {
		return nil, err
	}

	uc.logger.Infow("request updated", "request_id", r.ID())
	return dto.ToRequestDTO(r), nil
}

func (uc *UpdateRequestUseCase) validateCommand(cmd UpdateRequestCommand) error {
	if err := validateActor(cmd.Actor); err != nil {
		return err
	}
	if cmd.RequestID == 0 {
		return apperrors.NewValidationError("request_id is required")
	}
	if (cmd.Customer == nil) == (cmd.Manager == nil) {
		return apperrors.NewValidationError("exactly one of customer or manager patch must be provided")
	}

	var err error
	if cmd.Customer != nil {
		if cmd.Customer.IsEmpty() {
			return apperrors.NewValidationError("at least one field must be provided for update")
		}
		err = uc.validate.Struct(cmd.Customer)
	} else {
		if cmd.Manager.IsEmpty() {
			return apperrors.NewValidationError("at least one field must be provided for update")
		}
		err = uc.validate.Struct(cmd.Manager)
	}
	if err != nil {
		return apperrors.NewValidationError("invalid update fields", err.Error())
	}
	return nil
}

package usecases

import (
	"context"
	"fmt"

	"github.com/minerepair/repairhub/internal/application/verification/dto"
	"github.com/minerepair/repairhub/internal/domain/user"
	"github.com/minerepair/repairhub/internal/shared/authorization"
	apperrors "github.com/minerepair/repairhub/internal/shared/errors"
	"github.com/minerepair/repairhub/internal/shared/logger"
	"github.com/minerepair/repairhub/internal/shared/services/markdown"
)

type SecurityCheckCommand struct {
	Actor        authorization.Principal
	ContractorID uint
	Approved     bool
	Notes        string
}

type SecurityCheckUseCase struct {
	store  *VerificationStore
	users  user.Repository
	logger logger.Interface
}

func NewSecurityCheckUseCase(store *VerificationStore, users user.Repository, logger logger.Interface) *SecurityCheckUseCase {
	return &SecurityCheckUseCase{store: store, users: users, logger: logger}
}

// Execute records the security decision. A rejection deactivates the
// contractor's account in the same transaction.
func (uc *SecurityCheckUseCase) Execute(ctx context.Context, cmd SecurityCheckCommand) (*dto.VerificationDTO, error) {
	uc.logger.Infow("executing security check use case", "contractor_id", cmd.ContractorID, "officer_id", cmd.Actor.UserID, "approved", cmd.Approved)

	if err := validateActor(cmd.Actor); err != nil {
		return nil, err
	}
	if cmd.ContractorID == 0 {
		return nil, apperrors.NewValidationError("contractor_id is required")
	}

	v, err := uc.store.load(ctx, cmd.ContractorID)
	if err != nil {
		return nil, err
	}
	if err := requireRole(cmd.Actor, authorization.RoleSecurity, authorization.RoleAdmin); err != nil {
		return nil, err
	}

	if err := v.RecordSecurityCheck(cmd.Actor.UserID, cmd.Approved, markdown.StripHTML(cmd.Notes)); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	var deactivate func(txCtx context.Context) error
	if !cmd.Approved {
		deactivate = func(txCtx context.Context) error {
			if err := uc.users.SetActive(txCtx, cmd.ContractorID, false); err != nil {
				return fmt.Errorf("failed to deactivate contractor: %w", err)
			}
			return nil
		}
	}

	if err := uc.store.save(ctx, v, deactivate); err != nil {
		return nil, err
	}

	if !cmd.Approved {
		uc.logger.Warnw("contractor rejected by security and deactivated", "contractor_id", cmd.ContractorID, "officer_id", cmd.Actor.UserID)
	} else {
		uc.logger.Infow("security check passed", "contractor_id", cmd.ContractorID, "overall_status", v.OverallStatus())
	}
	return dto.ToVerificationDTO(v), nil
}

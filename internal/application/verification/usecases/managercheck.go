package usecases

import (
	"context"

	"github.com/minerepair/repairhub/internal/application/verification/dto"
	"github.com/minerepair/repairhub/internal/shared/authorization"
	apperrors "github.com/minerepair/repairhub/internal/shared/errors"
	"github.com/minerepair/repairhub/internal/shared/logger"
	"github.com/minerepair/repairhub/internal/shared/services/markdown"
)

type ManagerCheckCommand struct {
	Actor        authorization.Principal
	ContractorID uint
	Approved     bool
	Notes        string
}

type ManagerCheckUseCase struct {
	store  *VerificationStore
	logger logger.Interface
}

func NewManagerCheckUseCase(store *VerificationStore, logger logger.Interface) *ManagerCheckUseCase {
	return &ManagerCheckUseCase{store: store, logger: logger}
}

func (uc *ManagerCheckUseCase) Execute(ctx context.Context, cmd ManagerCheckCommand) (*dto.VerificationDTO, error) {
	uc.logger.Infow("executing manager check use case", "contractor_id", cmd.ContractorID, "manager_id", cmd.Actor.UserID, "approved", cmd.Approved)

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
	if err := requireRole(cmd.Actor, authorization.RoleManager, authorization.RoleAdmin); err != nil {
		return nil, err
	}

	if err := v.RecordManagerCheck(cmd.Actor.UserID, cmd.Approved, markdown.StripHTML(cmd.Notes)); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := uc.store.save(ctx, v, nil); err != nil {
		return nil, err
	}

	uc.logger.Infow("manager check recorded", "contractor_id", cmd.ContractorID, "overall_status", v.OverallStatus())
	return dto.ToVerificationDTO(v), nil
}

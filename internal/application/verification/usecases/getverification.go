package usecases

import (
	"context"

	"github.com/minerepair/repairhub/internal/application/verification/dto"
	"github.com/minerepair/repairhub/internal/shared/authorization"
	apperrors "github.com/minerepair/repairhub/internal/shared/errors"
	"github.com/minerepair/repairhub/internal/shared/logger"
)

type GetVerificationQuery struct {
	Actor        authorization.Principal
	ContractorID uint
}

type GetVerificationUseCase struct {
	store  *VerificationStore
	logger logger.Interface
}

func NewGetVerificationUseCase(store *VerificationStore, logger logger.Interface) *GetVerificationUseCase {
	return &GetVerificationUseCase{store: store, logger: logger}
}

func (uc *GetVerificationUseCase) Execute(ctx context.Context, query GetVerificationQuery) (*dto.VerificationDTO, error) {
	uc.logger.Debugw("executing get verification use case", "contractor_id", query.ContractorID, "user_id", query.Actor.UserID)

	if err := validateActor(query.Actor); err != nil {
		return nil, err
	}
	if query.ContractorID == 0 {
		return nil, apperrors.NewValidationError("contractor_id is required")
	}

	v, err := uc.store.load(ctx, query.ContractorID)
	if err != nil {
		return nil, err
	}
	if err := requireSelfOrStaff(query.Actor, query.ContractorID); err != nil {
		return nil, err
	}
	return dto.ToVerificationDTO(v), nil
}

package usecases

import (
	"context"
	"errors"

	"github.com/minerepair/repairhub/internal/application/verification/dto"
	"github.com/minerepair/repairhub/internal/domain/contractor"
	"github.com/minerepair/repairhub/internal/domain/verification"
	"github.com/minerepair/repairhub/internal/shared/authorization"
	apperrors "github.com/minerepair/repairhub/internal/shared/errors"
	"github.com/minerepair/repairhub/internal/shared/logger"
)

type RecomputeProfileCompletionCommand struct {
	Actor        authorization.Principal
	ContractorID uint
}

type RecomputeProfileCompletionUseCase struct {
	store    *VerificationStore
	repo     verification.Repository
	profiles contractor.ProfileRepository
	logger   logger.Interface
}

func NewRecomputeProfileCompletionUseCase(
	store *VerificationStore,
	repo verification.Repository,
	profiles contractor.ProfileRepository,
	logger logger.Interface,
) *RecomputeProfileCompletionUseCase {
	return &RecomputeProfileCompletionUseCase{
		store:    store,
		repo:     repo,
		profiles: profiles,
		logger:   logger,
	}
}

func (uc *RecomputeProfileCompletionUseCase) Execute(ctx context.Context, cmd RecomputeProfileCompletionCommand) (*dto.VerificationDTO, error) {
	uc.logger.Infow("executing recompute profile completion use case", "contractor_id", cmd.ContractorID, "user_id", cmd.Actor.UserID)

	if err := validateActor(cmd.Actor); err != nil {
		return nil, err
	}
	if cmd.ContractorID == 0 {
		return nil, apperrors.NewValidationError("contractor_id is required")
	}
	if err := requireSelfOrStaff(cmd.Actor, cmd.ContractorID); err != nil {
		return nil, err
	}

	profile, err := uc.profiles.GetByUserID(ctx, cmd.ContractorID)
	if err != nil {
		if errors.Is(err, contractor.ErrProfileNotFound) {
			return nil, apperrors.NewNotFoundError("contractor profile not found")
		}
		uc.logger.Errorw("failed to load contractor profile", "contractor_id", cmd.ContractorID, "error", err)
		return nil, apperrors.NewInternalError("failed to load contractor profile")
	}

	v, err := uc.getOrCreate(ctx, cmd.ContractorID)
	if err != nil {
		return nil, err
	}

	completeness := verification.EvaluateProfile(profile)
	v.ApplyProfileEvaluation(completeness)

	if err := uc.store.save(ctx, v, nil); err != nil {
		return nil, err
	}

	uc.logger.Infow("profile completion recomputed",
		"contractor_id", cmd.ContractorID,
		"profile_completed", completeness.ProfileCompleted,
		"documents_uploaded", completeness.DocumentsUploaded,
		"overall_status", v.OverallStatus(),
	)
	return dto.ToVerificationDTO(v), nil
}

func (uc *RecomputeProfileCompletionUseCase) getOrCreate(ctx context.Context, contractorID uint) (*verification.ContractorVerification, error) {
	v, err := uc.repo.GetByContractorID(ctx, contractorID)
	if err == nil && v != nil {
		return v, nil
	}
	if err != nil && !errors.Is(err, verification.ErrVerificationNotFound) {
		uc.logger.Errorw("failed to load verification", "contractor_id", contractorID, "error", err)
		return nil, apperrors.NewInternalError("failed to load verification")
	}

	v, err = verification.NewContractorVerification(contractorID)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	return v, nil
}

package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/minerepair/repairhub/internal/application/verification/dto"
	"github.com/minerepair/repairhub/internal/domain/verification"
	vo "github.com/minerepair/repairhub/internal/domain/verification/valueobjects"
	"github.com/minerepair/repairhub/internal/shared/authorization"
	apperrors "github.com/minerepair/repairhub/internal/shared/errors"
	"github.com/minerepair/repairhub/internal/shared/logger"
)

// Gate answers the verification question for the request workflow.
// A contractor without a verification record cannot respond.
type Gate struct {
	repo   verification.Repository
	logger logger.Interface
}

func NewGate(repo verification.Repository, logger logger.Interface) *Gate {
	return &Gate{repo: repo, logger: logger}
}

func (g *Gate) CanRespond(ctx context.Context, contractorID uint) (bool, error) {
	status, err := g.status(ctx, contractorID)
	if err != nil {
		return false, err
	}
	return status == vo.StatusApproved, nil
}

func (g *Gate) status(ctx context.Context, contractorID uint) (vo.OverallStatus, error) {
	v, err := g.repo.GetByContractorID(ctx, contractorID)
	if err != nil {
		if errors.Is(err, verification.ErrVerificationNotFound) {
			return vo.StatusIncomplete, nil
		}
		return "", fmt.Errorf("failed to load verification: %w", err)
	}
	if v == nil {
		return vo.StatusIncomplete, nil
	}
	return v.OverallStatus(), nil
}

type CanRespondQuery struct {
	Actor        authorization.Principal
	ContractorID uint
}

// CanRespondUseCase exposes the gate over HTTP for the contractor bot.
type CanRespondUseCase struct {
	gate   *Gate
	logger logger.Interface
}

func NewCanRespondUseCase(gate *Gate, logger logger.Interface) *CanRespondUseCase {
	return &CanRespondUseCase{gate: gate, logger: logger}
}

func (uc *CanRespondUseCase) Execute(ctx context.Context, query CanRespondQuery) (*dto.CanRespondDTO, error) {
	if err := validateActor(query.Actor); err != nil {
		return nil, err
	}
	if query.ContractorID == 0 {
		return nil, apperrors.NewValidationError("contractor_id is required")
	}
	if err := requireSelfOrStaff(query.Actor, query.ContractorID); err != nil {
		return nil, err
	}

	status, err := uc.gate.status(ctx, query.ContractorID)
	if err != nil {
		uc.logger.Errorw("failed to check verification gate", "contractor_id", query.ContractorID, "error", err)
		return nil, apperrors.NewInternalError("failed to check verification")
	}
	return &dto.CanRespondDTO{
		ContractorID:  query.ContractorID,
		CanRespond:    status == vo.StatusApproved,
		OverallStatus: status.String(),
	}, nil
}

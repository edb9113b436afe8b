package usecases

import (
	"context"

	"github.com/minerepair/repairhub/internal/application/request/dto"
	"github.com/minerepair/repairhub/internal/domain/request"
	"github.com/minerepair/repairhub/internal/shared/authorization"
	apperrors "github.com/minerepair/repairhub/internal/shared/errors"
	"github.com/minerepair/repairhub/internal/shared/logger"
)

type ListResponsesQuery struct {
	Actor     authorization.Principal
	RequestID uint
}

type ListResponsesUseCase struct {
	store     *RequestStore
	responses request.ResponseRepository
	logger    logger.Interface
}

func NewListResponsesUseCase(store *RequestStore, responses request.ResponseRepository, logger logger.Interface) *ListResponsesUseCase {
	return &ListResponsesUseCase{store: store, responses: responses, logger: logger}
}

// Execute returns the offers on a request. Managers and admins see all of
// them, a contractor only sees their own.
func (uc *ListResponsesUseCase) Execute(ctx context.Context, query ListResponsesQuery) ([]dto.ContractorResponseDTO, error) {
	uc.logger.Debugw("executing list responses use case", "request_id", query.RequestID, "user_id", query.Actor.UserID)

	if err := validateActor(query.Actor); err != nil {
		return nil, err
	}
	if query.RequestID == 0 {
		return nil, apperrors.NewValidationError("request_id is required")
	}
	if _, err := uc.store.load(ctx, query.RequestID); err != nil {
		return nil, err
	}
	if err := requireRole(query.Actor, authorization.RoleManager, authorization.RoleAdmin, authorization.RoleContractor); err != nil {
		return nil, err
	}

	responses, err := uc.responses.ListByRequest(ctx, query.RequestID)
	if err != nil {
		uc.logger.Errorw("failed to list responses", "request_id", query.RequestID, "error", err)
		return nil, apperrors.NewInternalError("failed to list responses")
	}

	out := make([]dto.ContractorResponseDTO, 0, len(responses))
	for _, resp := range responses {
		if query.Actor.Role == authorization.RoleContractor && resp.ContractorID() != query.Actor.UserID {
			continue
		}
		out = append(out, dto.ToContractorResponseDTO(resp))
	}
	return out, nil
}

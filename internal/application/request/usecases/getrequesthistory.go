package usecases

import (
	"context"

	"github.com/minerepair/repairhub/internal/application/request/dto"
	"github.com/minerepair/repairhub/internal/domain/request"
	"github.com/minerepair/repairhub/internal/shared/authorization"
	apperrors "github.com/minerepair/repairhub/internal/shared/errors"
	"github.com/minerepair/repairhub/internal/shared/logger"
	"github.com/minerepair/repairhub/internal/shared/mapper"
)

type GetRequestHistoryQuery struct {
	Actor     authorization.Principal
	RequestID uint
}

type GetRequestHistoryUseCase struct {
	store   *RequestStore
	history request.HistoryRepository
	gate    VerificationGate
	logger  logger.Interface
}

func NewGetRequestHistoryUseCase(
	store *RequestStore,
	history request.HistoryRepository,
	gate VerificationGate,
	logger logger.Interface,
) *GetRequestHistoryUseCase {
	return &GetRequestHistoryUseCase{store: store, history: history, gate: gate, logger: logger}
}

func (uc *GetRequestHistoryUseCase) Execute(ctx context.Context, query GetRequestHistoryQuery) ([]dto.StatusChangeDTO, error) {
	uc.logger.Debugw("executing get request history use case", "request_id", query.RequestID, "user_id", query.Actor.UserID)

	if _, err := loadVisible(ctx, uc.store, uc.gate, query.Actor, query.RequestID); err != nil {
		return nil, err
	}

	changes, err := uc.history.ListByRequest(ctx, query.RequestID)
	if err != nil {
		uc.logger.Errorw("failed to load request history", "request_id", query.RequestID, "error", err)
		return nil, apperrors.NewInternalError("failed to load request history")
	}
	out := mapper.MapSlice(changes, dto.ToStatusChangeDTO)
	if out == nil {
		out = []dto.StatusChangeDTO{}
	}
	return out, nil
}

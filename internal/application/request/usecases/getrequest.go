package usecases

import (
	"context"

	"github.com/minerepair/repairhub/internal/application/request/dto"
	"github.com/minerepair/repairhub/internal/domain/request"
	"github.com/minerepair/repairhub/internal/shared/authorization"
	apperrors "github.com/minerepair/repairhub/internal/shared/errors"
	"github.com/minerepair/repairhub/internal/shared/logger"
)

type GetRequestQuery struct {
	Actor     authorization.Principal
	RequestID uint
}

type GetRequestUseCase struct {
	store  *RequestStore
	gate   VerificationGate
	logger logger.Interface
}

func NewGetRequestUseCase(store *RequestStore, gate VerificationGate, logger logger.Interface) *GetRequestUseCase {
	return &GetRequestUseCase{store: store, gate: gate, logger: logger}
}

func (uc *GetRequestUseCase) Execute(ctx context.Context, query GetRequestQuery) (*dto.RequestDTO, error) {
	uc.logger.Debugw("executing get request use case", "request_id", query.RequestID, "user_id", query.Actor.UserID)

	r, err := loadVisible(ctx, uc.store, uc.gate, query.Actor, query.RequestID)
	if err != nil {
		return nil, err
	}
	return dto.ToRequestDTO(r), nil
}

// loadVisible loads a request and applies the read visibility rules.
func loadVisible(ctx context.Context, store *RequestStore, gate VerificationGate, actor authorization.Principal, requestID uint) (*request.Request, error) {
	if err := validateActor(actor); err != nil {
		return nil, err
	}
	if requestID == 0 {
		return nil, apperrors.NewValidationError("request_id is required")
	}

	r, err := store.load(ctx, requestID)
	if err != nil {
		return nil, err
	}

	canRespond := false
	if actor.Role == authorization.RoleContractor && !r.IsAssignedTo(actor.UserID) && r.Status().IsBroadcast() {
		canRespond, err = gate.CanRespond(ctx, actor.UserID)
		if err != nil {
			store.logger.Errorw("failed to check contractor verification", "contractor_id", actor.UserID, "error", err)
			return nil, apperrors.NewInternalError("failed to check contractor verification")
		}
	}
	if !r.CanBeViewedBy(actor, canRespond) {
		return nil, apperrors.NewForbiddenError("permission denied", "cannot view this request")
	}
	return r, nil
}

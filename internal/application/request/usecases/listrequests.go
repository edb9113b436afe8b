package usecases

import (
	"context"

	"github.com/minerepair/repairhub/internal/application/request/dto"
	"github.com/minerepair/repairhub/internal/domain/request"
	vo "github.com/minerepair/repairhub/internal/domain/request/valueobjects"
	"github.com/minerepair/repairhub/internal/shared/authorization"
	apperrors "github.com/minerepair/repairhub/internal/shared/errors"
	"github.com/minerepair/repairhub/internal/shared/logger"
	"github.com/minerepair/repairhub/internal/shared/query"
)

type ListRequestsQuery struct {
	Actor    authorization.Principal
	Statuses []string
	Urgency  string
	City     string
	// OnlyMine narrows a manager's listing to requests they own.
	OnlyMine  bool
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

type ListRequestsResult struct {
	Requests []dto.RequestListItemDTO `json:"requests"`
	Total    int64                    `json:"total"`
	Page     int                      `json:"page"`
	PageSize int                      `json:"page_size"`
}

type ListRequestsUseCase struct {
	requests request.RequestRepository
	gate     VerificationGate
	logger   logger.Interface
}

func NewListRequestsUseCase(requests request.RequestRepository, gate VerificationGate, logger logger.Interface) *ListRequestsUseCase {
	return &ListRequestsUseCase{requests: requests, gate: gate, logger: logger}
}

func (uc *ListRequestsUseCase) Execute(ctx context.Context, q ListRequestsQuery) (*ListRequestsResult, error) {
	uc.logger.Debugw("executing list requests use case", "user_id", q.Actor.UserID, "role", q.Actor.Role)

	if err := validateActor(q.Actor); err != nil {
		return nil, err
	}

	filter, err := uc.buildFilter(ctx, q)
	if err != nil {
		return nil, err
	}

	requests, total, err := uc.requests.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list requests", "user_id", q.Actor.UserID, "error", err)
		return nil, apperrors.NewInternalError("failed to list requests")
	}

	items := dto.ToRequestListItemDTOs(requests)
	if items == nil {
		items = []dto.RequestListItemDTO{}
	}
	return &ListRequestsResult{
		Requests: items,
		Total:    total,
		Page:     max(filter.Page, 1),
		PageSize: filter.Limit(),
	}, nil
}

func (uc *ListRequestsUseCase) buildFilter(ctx context.Context, q ListRequestsQuery) (request.Filter, error) {
	filter := request.Filter{
		City:       q.City,
		PageFilter: query.PageFilter{Page: q.Page, PageSize: q.PageSize},
		SortFilter: query.SortFilter{SortBy: q.SortBy, SortOrder: q.SortOrder},
	}

	for _, s := range q.Statuses {
		status, err := vo.NewStatus(s)
		if err != nil {
			return filter, apperrors.NewValidationError(err.Error())
		}
		filter.Statuses = append(filter.Statuses, status)
	}
	if q.Urgency != "" {
		urgency, err := vo.NewUrgency(q.Urgency)
		if err != nil {
			return filter, apperrors.NewValidationError(err.Error())
		}
		filter.Urgency = &urgency
	}

	userID := q.Actor.UserID
	switch q.Actor.Role {
	case authorization.RoleCustomer:
		filter.CustomerID = &userID
	case authorization.RoleManager:
		if q.OnlyMine {
			filter.ManagerID = &userID
		}
	case authorization.RoleAdmin:
	case authorization.RoleContractor:
		filter.AssignedContractorID = &userID
		canRespond, err := uc.gate.CanRespond(ctx, userID)
		if err != nil {
			uc.logger.Errorw("failed to check contractor verification", "contractor_id", userID, "error", err)
			return filter, apperrors.NewInternalError("failed to check contractor verification")
		}
		filter.BroadcastVisible = canRespond
	case authorization.RoleSecurity, authorization.RoleHR:
		return filter, apperrors.NewForbiddenError("permission denied", "role cannot list requests")
	default:
		return filter, apperrors.NewForbiddenError("permission denied")
	}
	return filter, nil
}

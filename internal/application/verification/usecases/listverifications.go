package usecases

import (
	"context"

	"github.com/minerepair/repairhub/internal/application/verification/dto"
	"github.com/minerepair/repairhub/internal/domain/verification"
	vo "github.com/minerepair/repairhub/internal/domain/verification/valueobjects"
	"github.com/minerepair/repairhub/internal/shared/authorization"
	apperrors "github.com/minerepair/repairhub/internal/shared/errors"
	"github.com/minerepair/repairhub/internal/shared/logger"
	"github.com/minerepair/repairhub/internal/shared/mapper"
	"github.com/minerepair/repairhub/internal/shared/query"
)

type ListVerificationsQuery struct {
	Actor    authorization.Principal
	Status   string
	Page     int
	PageSize int
}

type ListVerificationsResult struct {
	Verifications []*dto.VerificationDTO `json:"verifications"`
	Total         int64                  `json:"total"`
	Page          int                    `json:"page"`
	PageSize      int                    `json:"page_size"`
}

type ListVerificationsUseCase struct {
	repo   verification.Repository
	logger logger.Interface
}

func NewListVerificationsUseCase(repo verification.Repository, logger logger.Interface) *ListVerificationsUseCase {
	return &ListVerificationsUseCase{repo: repo, logger: logger}
}

func (uc *ListVerificationsUseCase) Execute(ctx context.Context, q ListVerificationsQuery) (*ListVerificationsResult, error) {
	uc.logger.Debugw("executing list verifications use case", "user_id", q.Actor.UserID, "status", q.Status)

	if err := validateActor(q.Actor); err != nil {
		return nil, err
	}
	if !q.Actor.Role.IsStaff() {
		return nil, apperrors.NewForbiddenError("permission denied", "only staff can list verifications")
	}

	filter := verification.Filter{PageFilter: query.PageFilter{Page: q.Page, PageSize: q.PageSize}}
	if q.Status != "" {
		status, err := vo.NewOverallStatus(q.Status)
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
		filter.Status = &status
	}

	items, total, err := uc.repo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list verifications", "error", err)
		return nil, apperrors.NewInternalError("failed to list verifications")
	}

	out := mapper.MapSlice(items, dto.ToVerificationDTO)
	if out == nil {
		out = []*dto.VerificationDTO{}
	}
	return &ListVerificationsResult{
		Verifications: out,
		Total:         total,
		Page:          max(filter.Page, 1),
		PageSize:      filter.Limit(),
	}, nil
}

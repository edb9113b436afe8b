package verification

import (
	"context"

	vo "github.com/minerepair/repairhub/internal/domain/verification/valueobjects"
	"github.com/minerepair/repairhub/internal/shared/query"
)

type Repository interface {
	Create(ctx context.Context, v *ContractorVerification) error
	Update(ctx context.Context, v *ContractorVerification) error
	// GetByContractorID returns ErrVerificationNotFound when no row exists.
	GetByContractorID(ctx context.Context, contractorID uint) (*ContractorVerification, error)
	List(ctx context.Context, filter Filter) ([]*ContractorVerification, int64, error)
}

type Filter struct {
	Status *vo.OverallStatus
	query.PageFilter
}

package request

import (
	"context"
	"time"

	vo "github.com/minerepair/repairhub/internal/domain/request/valueobjects"
	"github.com/minerepair/repairhub/internal/shared/query"
)

type RequestRepository interface {
	Create(ctx context.Context, r *Request) error
	Update(ctx context.Context, r *Request) error
	// GetByID returns ErrRequestNotFound when no row matches.
	GetByID(ctx context.Context, id uint) (*Request, error)
	List(ctx context.Context, filter Filter) ([]*Request, int64, error)
	ListStale(ctx context.Context, status vo.Status, createdBefore time.Time) ([]*Request, error)
}

// Filter narrows a request listing. Scope fields are combined with OR when
// BroadcastVisible is set, so a contractor sees assigned and open work.
type Filter struct {
	Statuses             []vo.Status
	CustomerID           *uint
	ManagerID            *uint
	AssignedContractorID *uint
	BroadcastVisible     bool
	Urgency              *vo.Urgency
	City                 string
	query.PageFilter
	query.SortFilter
}

type ResponseRepository interface {
	// Create returns ErrDuplicateResponse on a second response by the same contractor.
	Create(ctx context.Context, resp *ContractorResponse) error
	ListByRequest(ctx context.Context, requestID uint) ([]*ContractorResponse, error)
}

type HistoryRepository interface {
	Append(ctx context.Context, changes []*StatusChange) error
	ListByRequest(ctx context.Context, requestID uint) ([]*StatusChange, error)
}

package request

import (
	"fmt"
	"strings"
	"time"

	"github.com/minerepair/repairhub/internal/shared/biztime"
)

// ContractorResponse is a contractor's offer on a broadcast request. A
// contractor answers a given request at most once.
type ContractorResponse struct {
	id           uint
	requestID    uint
	contractorID uint
	proposedCost *float64
	comment      string
	createdAt    time.Time
}

func NewContractorResponse(requestID, contractorID uint, proposedCost *float64, comment string) (*ContractorResponse, error) {
	if requestID == 0 {
		return nil, fmt.Errorf("request ID is required")
	}
	if contractorID == 0 {
		return nil, fmt.Errorf("contractor ID is required")
	}
	if proposedCost != nil && *proposedCost < 0 {
		return nil, fmt.Errorf("proposed cost cannot be negative")
	}

	return &ContractorResponse{
		requestID:    requestID,
		contractorID: contractorID,
		proposedCost: proposedCost,
		comment:      strings.TrimSpace(comment),
		createdAt:    biztime.NowUTC(),
	}, nil
}

func ReconstructContractorResponse(id, requestID, contractorID uint, proposedCost *float64, comment string, createdAt time.Time) *ContractorResponse {
	return &ContractorResponse{
		id:           id,
		requestID:    requestID,
		contractorID: contractorID,
		proposedCost: proposedCost,
		comment:      comment,
		createdAt:    createdAt,
	}
}

func (r *ContractorResponse) ID() uint               { return r.id }
func (r *ContractorResponse) RequestID() uint        { return r.requestID }
func (r *ContractorResponse) ContractorID() uint     { return r.contractorID }
func (r *ContractorResponse) ProposedCost() *float64 { return r.proposedCost }
func (r *ContractorResponse) Comment() string        { return r.comment }
func (r *ContractorResponse) CreatedAt() time.Time   { return r.createdAt }

func (r *ContractorResponse) SetID(id uint) {
	r.id = id
}

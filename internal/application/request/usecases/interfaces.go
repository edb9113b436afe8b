package usecases

import (
	"context"

	"github.com/minerepair/repairhub/internal/application/request/dto"
)

// VerificationGate answers whether a contractor passed verification.
type VerificationGate interface {
	CanRespond(ctx context.Context, contractorID uint) (bool, error)
}

// Executor interfaces let handlers be tested with fakes.
type CreateRequestExecutor interface {
	Execute(ctx context.Context, cmd CreateRequestCommand) (*dto.RequestDTO, error)
}

type AssignToManagerExecutor interface {
	Execute(ctx context.Context, cmd AssignToManagerCommand) (*dto.RequestDTO, error)
}

type AddClarificationExecutor interface {
	Execute(ctx context.Context, cmd AddClarificationCommand) (*dto.RequestDTO, error)
}

type SendToContractorsExecutor interface {
	Execute(ctx context.Context, cmd SendToContractorsCommand) (*dto.RequestDTO, error)
}

type RespondToRequestExecutor interface {
	Execute(ctx context.Context, cmd RespondToRequestCommand) (*dto.ContractorResponseDTO, error)
}

type AssignContractorExecutor interface {
	Execute(ctx context.Context, cmd AssignContractorCommand) (*dto.RequestDTO, error)
}

type StartWorkExecutor interface {
	Execute(ctx context.Context, cmd StartWorkCommand) (*dto.RequestDTO, error)
}

type CompleteWorkExecutor interface {
	Execute(ctx context.Context, cmd CompleteWorkCommand) (*dto.RequestDTO, error)
}

type CancelRequestExecutor interface {
	Execute(ctx context.Context, cmd CancelRequestCommand) (*dto.RequestDTO, error)
}

type UpdateRequestExecutor interface {
	Execute(ctx context.Context, cmd UpdateRequestCommand) (*dto.RequestDTO, error)
}

type GetRequestExecutor interface {
	Execute(ctx context.Context, query GetRequestQuery) (*dto.RequestDTO, error)
}

type ListRequestsExecutor interface {
	Execute(ctx context.Context, query ListRequestsQuery) (*ListRequestsResult, error)
}

type GetRequestHistoryExecutor interface {
	Execute(ctx context.Context, query GetRequestHistoryQuery) ([]dto.StatusChangeDTO, error)
}

type ListResponsesExecutor interface {
	Execute(ctx context.Context, query ListResponsesQuery) ([]dto.ContractorResponseDTO, error)
}

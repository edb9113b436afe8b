package usecases

import (
	"context"

	"github.com/minerepair/repairhub/internal/application/verification/dto"
)

type RecomputeProfileCompletionExecutor interface {
	Execute(ctx context.Context, cmd RecomputeProfileCompletionCommand) (*dto.VerificationDTO, error)
}

type SecurityCheckExecutor interface {
	Execute(ctx context.Context, cmd SecurityCheckCommand) (*dto.VerificationDTO, error)
}

type ManagerCheckExecutor interface {
	Execute(ctx context.Context, cmd ManagerCheckCommand) (*dto.VerificationDTO, error)
}

type CanRespondExecutor interface {
	Execute(ctx context.Context, query CanRespondQuery) (*dto.CanRespondDTO, error)
}

type GetVerificationExecutor interface {
	Execute(ctx context.Context, query GetVerificationQuery) (*dto.VerificationDTO, error)
}

type ListVerificationsExecutor interface {
	Execute(ctx context.Context, query ListVerificationsQuery) (*ListVerificationsResult, error)
}

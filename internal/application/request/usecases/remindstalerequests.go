package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/minerepair/repairhub/internal/domain/request"
	vo "github.com/minerepair/repairhub/internal/domain/request/valueobjects"
	"github.com/minerepair/repairhub/internal/domain/shared/events"
	"github.com/minerepair/repairhub/internal/shared/biztime"
	"github.com/minerepair/repairhub/internal/shared/logger"
)

// RemindStaleRequestsUseCase raises a reminder for every request that has
// waited in status new longer than staleAfter. Repeat reminders are
// suppressed by the notification deduplicator.
type RemindStaleRequestsUseCase struct {
	requests   request.RequestRepository
	publisher  events.EventPublisher
	staleAfter time.Duration
	logger     logger.Interface
}

func NewRemindStaleRequestsUseCase(
	requests request.RequestRepository,
	publisher events.EventPublisher,
	staleAfter time.Duration,
	logger logger.Interface,
) *RemindStaleRequestsUseCase {
	return &RemindStaleRequestsUseCase{
		requests:   requests,
		publisher:  publisher,
		staleAfter: staleAfter,
		logger:     logger,
	}
}

// Execute returns how many reminders were handed to the dispatcher.
func (uc *RemindStaleRequestsUseCase) Execute(ctx context.Context) (int, error) {
	now := biztime.NowUTC()
	stale, err := uc.requests.ListStale(ctx, vo.StatusNew, now.Add(-uc.staleAfter))
	if err != nil {
		uc.logger.Errorw("failed to list stale requests", "error", err)
		return 0, fmt.Errorf("failed to list stale requests: %w", err)
	}
	if len(stale) == 0 {
		return 0, nil
	}

	sent := 0
	for _, r := range stale {
		if err := uc.publisher.Publish(request.NewStaleRequestEvent(r, now)); err != nil {
			uc.logger.Warnw("failed to publish stale request reminder", "request_id", r.ID(), "error", err)
			continue
		}
		sent++
	}

	uc.logger.Infow("stale request reminders published", "found", len(stale), "published", sent)
	return sent, nil
}

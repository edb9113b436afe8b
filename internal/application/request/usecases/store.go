package usecases

import (
	"context"
	"errors"

	"github.com/minerepair/repairhub/internal/domain/request"
	"github.com/minerepair/repairhub/internal/domain/shared/events"
	"github.com/minerepair/repairhub/internal/shared/db"
	apperrors "github.com/minerepair/repairhub/internal/shared/errors"
	"github.com/minerepair/repairhub/internal/shared/logger"
)

// RequestStore loads requests and persists a request together with its
// history rows in one transaction, then publishes the recorded events.
type RequestStore struct {
	requests  request.RequestRepository
	history   request.HistoryRepository
	tx        db.Transactor
	publisher events.EventPublisher
	logger    logger.Interface
}

func NewRequestStore(
	requests request.RequestRepository,
	history request.HistoryRepository,
	tx db.Transactor,
	publisher events.EventPublisher,
	logger logger.Interface,
) *RequestStore {
	return &RequestStore{
		requests:  requests,
		history:   history,
		tx:        tx,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *RequestStore) load(ctx context.Context, requestID uint) (*request.Request, error) {
	r, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, request.ErrRequestNotFound) {
			return nil, apperrors.NewNotFoundError("request not found")
		}
		s.logger.Errorw("failed to load request", "request_id", requestID, "error", err)
		return nil, apperrors.NewInternalError("failed to load request")
	}
	if r == nil {
		return nil, apperrors.NewNotFoundError("request not found")
	}
	return r, nil
}

// create inserts a new request, then records the creation event so the
// history row gets the generated ID.
func (s *RequestStore) create(ctx context.Context, r *request.Request, actor principal) error {
	return s.save(ctx, r, func(txCtx context.Context) error {
		if err := s.requests.Create(txCtx, r); err != nil {
			return err
		}
		r.MarkCreated(actor)
		return nil
	})
}

// update writes r. before runs first inside the same transaction.
func (s *RequestStore) update(ctx context.Context, r *request.Request, before func(txCtx context.Context) error) error {
	return s.save(ctx, r, func(txCtx context.Context) error {
		if before != nil {
			if err := before(txCtx); err != nil {
				return err
			}
		}
		return s.requests.Update(txCtx, r)
	})
}

func (s *RequestStore) save(ctx context.Context, r *request.Request, write func(txCtx context.Context) error) error {
	err := s.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := write(txCtx); err != nil {
			return err
		}
		if changes := request.HistoryFromEvents(r.PendingEvents()); len(changes) > 0 {
			if err := s.history.Append(txCtx, changes); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		r.PullEvents()
		if apperrors.IsAppError(err) {
			return err
		}
		if errors.Is(err, request.ErrDuplicateResponse) {
			return apperrors.NewConflictError("contractor already responded to this request")
		}
		s.logger.Errorw("failed to persist request", "request_id", r.ID(), "error", err)
		return apperrors.NewInternalError("failed to save request")
	}

	s.publish(r.PullEvents())
	return nil
}

// publish never fails the caller: the state change is already committed.
func (s *RequestStore) publish(evts []events.DomainEvent) {
	if len(evts) == 0 || s.publisher == nil {
		return
	}
	if err := s.publisher.PublishAll(evts); err != nil {
		s.logger.Warnw("failed to publish request events", "count", len(evts), "error", err)
	}
}

package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/minerepair/repairhub/internal/domain/request"
	requestvo "github.com/minerepair/repairhub/internal/domain/request/valueobjects"
	"github.com/minerepair/repairhub/internal/domain/shared/events"
	"github.com/minerepair/repairhub/internal/domain/user"
	"github.com/minerepair/repairhub/internal/domain/verification"
	verificationvo "github.com/minerepair/repairhub/internal/domain/verification/valueobjects"
	"github.com/minerepair/repairhub/internal/shared/authorization"
	"github.com/minerepair/repairhub/internal/shared/logger"
)

// Service subscribes to domain events and fans messages out to every
// configured channel.
type Service struct {
	users       user.Repository
	channels    []Channel
	broadcaster Broadcaster
	dedup       Deduplicator
	defaultLang Lang
	logger      logger.Interface
}

type Option func(*Service)

// WithBroadcaster sets the contractor channel. Without it broadcasts are skipped.
func WithBroadcaster(b Broadcaster) Option {
	return func(s *Service) { s.broadcaster = b }
}

// WithDeduplicator enables alert deduplication.
func WithDeduplicator(d Deduplicator) Option {
	return func(s *Service) { s.dedup = d }
}

func WithDefaultLang(lang Lang) Option {
	return func(s *Service) { s.defaultLang = lang }
}

func NewService(users user.Repository, channels []Channel, logger logger.Interface, opts ...Option) *Service {
	s := &Service{
		users:       users,
		channels:    channels,
		defaultLang: RU,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers the service for every event type it handles.
func (s *Service) Subscribe(sub events.EventSubscriber) error {
	for _, eventType := range []string{
		request.EventTypeCreated,
		request.EventTypeStatusChanged,
		request.EventTypeResponseReceived,
		request.EventTypeStale,
		verification.EventTypeStatusChanged,
		verification.EventTypeSecurityRejected,
	} {
		if err := sub.Subscribe(eventType, s); err != nil {
			return fmt.Errorf("failed to subscribe to %s: %w", eventType, err)
		}
	}
	return nil
}

// Handle implements events.EventHandler. Delivery errors are logged only.
func (s *Service) Handle(ctx context.Context, event events.DomainEvent) error {
	switch ev := event.(type) {
	case request.RequestCreatedEvent:
		s.notifyRole(ctx, authorization.RoleManager, func(l Lang) Message { return buildRequestCreated(l, ev) })
	case request.StatusChangedEvent:
		s.handleRequestStatus(ctx, ev)
	case request.ResponseReceivedEvent:
		if ev.ManagerID != nil {
			s.notifyUser(ctx, *ev.ManagerID, func(l Lang) Message { return buildResponseReceived(l, ev) })
		}
	case request.StaleRequestEvent:
		if !s.acquire(ctx, dedupKey("stale_request", ev.RequestID, requestvo.StatusNew.String())) {
			return nil
		}
		s.notifyRole(ctx, authorization.RoleManager, func(l Lang) Message { return buildStaleReminder(l, ev) })
	case verification.StatusChangedEvent:
		s.handleVerificationStatus(ctx, ev)
	case verification.SecurityRejectedEvent:
		s.notifyUser(ctx, ev.ContractorID, func(l Lang) Message { return buildSecurityRejected(l, ev.Notes) })
	default:
		s.logger.Debugw("ignoring unhandled event", "event_type", event.GetEventType())
	}
	return nil
}

func (s *Service) handleRequestStatus(ctx context.Context, ev request.StatusChangedEvent) {
	render := func(l Lang) Message { return buildStatusChanged(l, ev) }
	p := ev.Participants

	var recipients []uint
	switch ev.ToStatus {
	case requestvo.StatusManagerReview, requestvo.StatusClarification, requestvo.StatusInProgress:
		recipients = []uint{p.CustomerID}
	case requestvo.StatusSentToContractors:
		recipients = []uint{p.CustomerID}
		s.broadcast(ctx, buildBroadcast(s.defaultLang, ev))
	case requestvo.StatusAssigned:
		recipients = append([]uint{p.CustomerID}, derefAll(p.ContractorID)...)
	case requestvo.StatusCompleted:
		recipients = append([]uint{p.CustomerID}, derefAll(p.ManagerID)...)
	case requestvo.StatusCancelled:
		recipients = append([]uint{p.CustomerID}, derefAll(p.ManagerID, p.ContractorID)...)
	case requestvo.StatusNew, requestvo.StatusContractorResponses:
		// Responses are announced by ResponseReceivedEvent.
	}

	for _, id := range recipients {
		if id == ev.ActorID {
			continue
		}
		s.notifyUser(ctx, id, render)
	}
}

func (s *Service) handleVerificationStatus(ctx context.Context, ev verification.StatusChangedEvent) {
	switch ev.ToStatus {
	case verificationvo.StatusPendingSecurity:
		if s.acquire(ctx, dedupKey("verification", ev.ContractorID, ev.ToStatus.String())) {
			s.notifyRole(ctx, authorization.RoleSecurity, func(l Lang) Message {
				return buildVerificationQueued(l, ev.ContractorID, pick(l, "проверка безопасности", "security check"))
			})
		}
	case verificationvo.StatusPendingManager:
		if s.acquire(ctx, dedupKey("verification", ev.ContractorID, ev.ToStatus.String())) {
			s.notifyRole(ctx, authorization.RoleManager, func(l Lang) Message {
				return buildVerificationQueued(l, ev.ContractorID, pick(l, "одобрение менеджера", "manager approval"))
			})
		}
	case verificationvo.StatusApproved:
		s.notifyUser(ctx, ev.ContractorID, buildVerificationApproved)
	case verificationvo.StatusIncomplete:
	}
}

func (s *Service) notifyRole(ctx context.Context, role authorization.UserRole, render func(Lang) Message) {
	users, err := s.users.ListActiveByRole(ctx, role)
	if err != nil {
		s.logger.Warnw("failed to resolve notification group", "role", role, "error", err)
		return
	}
	for _, u := range users {
		s.deliver(ctx, s.targetFor(u), render)
	}
}

func (s *Service) notifyUser(ctx context.Context, userID uint, render func(Lang) Message) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil || u == nil {
		s.logger.Warnw("failed to resolve notification recipient", "user_id", userID, "error", err)
		return
	}
	s.deliver(ctx, s.targetFor(u), render)
}

func (s *Service) targetFor(u *user.User) Target {
	return Target{
		UserID: u.ID(),
		Name:   u.Name(),
		Email:  u.Email(),
		ChatID: u.TelegramChatID(),
		Lang:   MatchLang(u.Locale(), s.defaultLang),
	}
}

func (s *Service) deliver(ctx context.Context, target Target, render func(Lang) Message) {
	msg := render(target.Lang)
	for _, ch := range s.channels {
		err := ch.Deliver(ctx, target, msg)
		switch {
		case err == nil:
			s.logger.Debugw("notification delivered", "channel", ch.Name(), "user_id", target.UserID)
		case errors.Is(err, ErrNoAddress):
		default:
			s.logger.Warnw("notification delivery failed", "channel", ch.Name(), "user_id", target.UserID, "error", err)
		}
	}
}

func (s *Service) broadcast(ctx context.Context, msg Message) {
	if s.broadcaster == nil {
		return
	}
	if err := s.broadcaster.Broadcast(ctx, msg); err != nil {
		s.logger.Warnw("contractor broadcast failed", "error", err)
	}
}

// acquire reports whether an alert should go out. Dedup errors fail open.
func (s *Service) acquire(ctx context.Context, key string) bool {
	if s.dedup == nil {
		return true
	}
	ok, err := s.dedup.TryAcquire(ctx, key)
	if err != nil {
		s.logger.Warnw("notification dedup unavailable, sending anyway", "key", key, "error", err)
		return true
	}
	if !ok {
		s.logger.Debugw("duplicate notification suppressed", "key", key)
	}
	return ok
}

func dedupKey(kind string, entityID uint, status string) string {
	return fmt.Sprintf("%s:%d:%s", kind, entityID, status)
}

func derefAll(ids ...*uint) []uint {
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id != nil {
			out = append(out, *id)
		}
	}
	return out
}

package request

import (
	"time"

	vo "github.com/minerepair/repairhub/internal/domain/request/valueobjects"
	"github.com/minerepair/repairhub/internal/domain/shared/events"
	"github.com/minerepair/repairhub/internal/shared/authorization"
)

const (
	EventTypeCreated          = "request.created"
	EventTypeStatusChanged    = "request.status_changed"
	EventTypeResponseReceived = "request.response_received"
	EventTypeStale            = "request.stale"
)

// Participants identifies who is involved with the request when an event fires.
type Participants struct {
	CustomerID   uint
	ManagerID    *uint
	ContractorID *uint
}

func participantsOf(r *Request) Participants {
	return Participants{
		CustomerID:   r.customerID,
		ManagerID:    r.managerID,
		ContractorID: r.assignedContractorID,
	}
}

type RequestCreatedEvent struct {
	events.BaseEvent
	RequestID uint
	Title     string
	Urgency   vo.Urgency
	City      string
	ActorID   uint
	ActorRole authorization.UserRole
	Participants
}

func NewRequestCreatedEvent(r *Request, actor authorization.Principal) RequestCreatedEvent {
	return RequestCreatedEvent{
		BaseEvent:    events.NewBaseEvent(r.id, EventTypeCreated, r.createdAt),
		RequestID:    r.id,
		Title:        r.details.Title,
		Urgency:      r.details.Urgency,
		City:         r.details.City,
		ActorID:      actor.UserID,
		ActorRole:    actor.Role,
		Participants: participantsOf(r),
	}
}

// StatusChangedEvent carries the request state right after a transition.
type StatusChangedEvent struct {
	events.BaseEvent
	RequestID            uint
	Title                string
	FromStatus           vo.Status
	ToStatus             vo.Status
	ActorID              uint
	ActorRole            authorization.UserRole
	Comment              string
	Equipment            vo.Equipment
	Urgency              vo.Urgency
	City                 string
	ClarificationDetails string
	FinalPrice           *float64
	Participants
}

func NewStatusChangedEvent(r *Request, from vo.Status, actor authorization.Principal, comment string, now time.Time) StatusChangedEvent {
	ev := StatusChangedEvent{
		BaseEvent:    events.NewBaseEvent(r.id, EventTypeStatusChanged, now),
		RequestID:    r.id,
		Title:        r.details.Title,
		FromStatus:   from,
		ToStatus:     r.status,
		ActorID:      actor.UserID,
		ActorRole:    actor.Role,
		Comment:      comment,
		Equipment:    r.details.Equipment,
		Urgency:      r.details.Urgency,
		City:         r.details.City,
		FinalPrice:   r.finalPrice,
		Participants: participantsOf(r),
	}
	if r.clarificationDetails != nil {
		ev.ClarificationDetails = *r.clarificationDetails
	}
	return ev
}

type ResponseReceivedEvent struct {
	events.BaseEvent
	RequestID    uint
	Title        string
	ResponseID   uint
	ContractorID uint
	ProposedCost *float64
	ManagerID    *uint
}

func NewResponseReceivedEvent(r *Request, resp *ContractorResponse) ResponseReceivedEvent {
	return ResponseReceivedEvent{
		BaseEvent:    events.NewBaseEvent(r.id, EventTypeResponseReceived, resp.createdAt),
		RequestID:    r.id,
		Title:        r.details.Title,
		ResponseID:   resp.id,
		ContractorID: resp.contractorID,
		ProposedCost: resp.proposedCost,
		ManagerID:    r.managerID,
	}
}

// StaleRequestEvent is raised by the reminder job for requests nobody picked up.
type StaleRequestEvent struct {
	events.BaseEvent
	RequestID uint
	Title     string
	Age       time.Duration
}

func NewStaleRequestEvent(r *Request, now time.Time) StaleRequestEvent {
	return StaleRequestEvent{
		BaseEvent: events.NewBaseEvent(r.id, EventTypeStale, now),
		RequestID: r.id,
		Title:     r.details.Title,
		Age:       now.Sub(r.createdAt),
	}
}

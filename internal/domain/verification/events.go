package verification

import (
	"time"

	"github.com/minerepair/repairhub/internal/domain/shared/events"
	vo "github.com/minerepair/repairhub/internal/domain/verification/valueobjects"
)

const (
	EventTypeStatusChanged    = "verification.status_changed"
	EventTypeSecurityRejected = "verification.security_rejected"
)

// StatusChangedEvent fires whenever re-derivation changes the overall status.
type StatusChangedEvent struct {
	events.BaseEvent
	ContractorID uint
	FromStatus   vo.OverallStatus
	ToStatus     vo.OverallStatus
}

// SecurityRejectedEvent fires when a security officer rejects a contractor.
type SecurityRejectedEvent struct {
	events.BaseEvent
	ContractorID uint
	OfficerID    uint
	Notes        string
}

func newStatusChangedEvent(contractorID uint, from, to vo.OverallStatus, now time.Time) StatusChangedEvent {
	return StatusChangedEvent{
		BaseEvent:    events.NewBaseEvent(contractorID, EventTypeStatusChanged, now),
		ContractorID: contractorID,
		FromStatus:   from,
		ToStatus:     to,
	}
}

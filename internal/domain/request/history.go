package request

import (
	"time"

	vo "github.com/minerepair/repairhub/internal/domain/request/valueobjects"
	"github.com/minerepair/repairhub/internal/domain/shared/events"
	"github.com/minerepair/repairhub/internal/shared/authorization"
)

// StatusChange is one audit row of a request's lifecycle. FromStatus is
// empty for the creation row.
type StatusChange struct {
	ID         uint
	RequestID  uint
	FromStatus vo.Status
	ToStatus   vo.Status
	ActorID    uint
	ActorRole  authorization.UserRole
	Comment    string
	CreatedAt  time.Time
}

// HistoryFromEvents turns the status events raised by one operation into
// audit rows.
func HistoryFromEvents(evts []events.DomainEvent) []*StatusChange {
	var changes []*StatusChange
	for _, e := range evts {
		switch ev := e.(type) {
		case StatusChangedEvent:
			changes = append(changes, &StatusChange{
				RequestID:  ev.RequestID,
				FromStatus: ev.FromStatus,
				ToStatus:   ev.ToStatus,
				ActorID:    ev.ActorID,
				ActorRole:  ev.ActorRole,
				Comment:    ev.Comment,
				CreatedAt:  ev.OccurredAt,
			})
		case RequestCreatedEvent:
			changes = append(changes, &StatusChange{
				RequestID: ev.RequestID,
				ToStatus:  vo.StatusNew,
				ActorID:   ev.ActorID,
				ActorRole: ev.ActorRole,
				CreatedAt: ev.OccurredAt,
			})
		}
	}
	return changes
}

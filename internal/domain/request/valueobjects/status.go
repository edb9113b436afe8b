package valueobjects

import "fmt"

// Status is the lifecycle state of a repair request. The string values are
// persisted and exposed over the API unchanged.
type Status string

const (
	StatusNew                 Status = "new"
	StatusManagerReview       Status = "manager_review"
	StatusClarification       Status = "clarification"
	StatusSentToContractors   Status = "sent_to_contractors"
	StatusContractorResponses Status = "contractor_responses"
	StatusAssigned            Status = "assigned"
	StatusInProgress          Status = "in_progress"
	StatusCompleted           Status = "completed"
	StatusCancelled           Status = "cancelled"
)

// AllStatuses lists every status in lifecycle order.
func AllStatuses() []Status {
	return []Status{
		StatusNew,
		StatusManagerReview,
		StatusClarification,
		StatusSentToContractors,
		StatusContractorResponses,
		StatusAssigned,
		StatusInProgress,
		StatusCompleted,
		StatusCancelled,
	}
}

// AllowedTransitions returns the statuses reachable from s in one step.
// Self-transitions listed here are real operations: clarification may be
// updated while already in clarification, and further contractor responses
// keep a request in contractor_responses.
func (s Status) AllowedTransitions() []Status {
	switch s {
	case StatusNew:
		return []Status{StatusManagerReview, StatusCancelled}
	case StatusManagerReview:
		return []Status{StatusClarification, StatusSentToContractors, StatusCancelled}
	case StatusClarification:
		return []Status{StatusClarification, StatusManagerReview, StatusSentToContractors, StatusCancelled}
	case StatusSentToContractors:
		return []Status{StatusContractorResponses, StatusAssigned, StatusCancelled}
	case StatusContractorResponses:
		return []Status{StatusContractorResponses, StatusAssigned, StatusCancelled}
	case StatusAssigned:
		return []Status{StatusInProgress, StatusCancelled}
	case StatusInProgress:
		return []Status{StatusCompleted, StatusCancelled}
	case StatusCompleted, StatusCancelled:
		return nil
	}
	return nil
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusNew, StatusManagerReview, StatusClarification, StatusSentToContractors,
		StatusContractorResponses, StatusAssigned, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range s.AllowedTransitions() {
		if allowed == target {
			return true
		}
	}
	return false
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// IsBroadcast reports whether contractors may currently see and answer the request.
func (s Status) IsBroadcast() bool {
	return s == StatusSentToContractors || s == StatusContractorResponses
}

func NewStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", fmt.Errorf("invalid request status: %s", s)
	}
	return st, nil
}

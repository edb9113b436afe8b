package valueobjects

import "fmt"

// OverallStatus summarizes a contractor's verification progress. It is
// always derived from Flags and never stored independently.
type OverallStatus string

const (
	StatusIncomplete      OverallStatus = "incomplete"
	StatusPendingSecurity OverallStatus = "pending_security"
	StatusPendingManager  OverallStatus = "pending_manager"
	StatusApproved        OverallStatus = "approved"
)

func AllOverallStatuses() []OverallStatus {
	return []OverallStatus{StatusIncomplete, StatusPendingSecurity, StatusPendingManager, StatusApproved}
}

func (s OverallStatus) String() string {
	return string(s)
}

func (s OverallStatus) IsValid() bool {
	switch s {
	case StatusIncomplete, StatusPendingSecurity, StatusPendingManager, StatusApproved:
		return true
	}
	return false
}

func NewOverallStatus(s string) (OverallStatus, error) {
	st := OverallStatus(s)
	if !st.IsValid() {
		return "", fmt.Errorf("invalid verification status: %s", s)
	}
	return st, nil
}

// Flags are the four verification gates.
type Flags struct {
	ProfileCompleted    bool
	DocumentsUploaded   bool
	SecurityCheckPassed bool
	ManagerApproval     bool
}

// Derive computes the overall status from the flags. Security review comes
// before manager review, and both require a complete profile.
func Derive(f Flags) OverallStatus {
	switch {
	case !f.ProfileCompleted || !f.DocumentsUploaded:
		return StatusIncomplete
	case !f.SecurityCheckPassed:
		return StatusPendingSecurity
	case !f.ManagerApproval:
		return StatusPendingManager
	default:
		return StatusApproved
	}
}

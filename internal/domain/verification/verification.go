// Package verification holds the contractor verification gate: four flags
// and the overall status derived from them.
package verification

import (
	"fmt"
	"time"

	"github.com/minerepair/repairhub/internal/domain/shared/events"
	vo "github.com/minerepair/repairhub/internal/domain/verification/valueobjects"
	"github.com/minerepair/repairhub/internal/shared/biztime"
)

// Review is the audit trail of one manual check.
type Review struct {
	Notes     string
	CheckedBy *uint
	CheckedAt *time.Time
}

// ContractorVerification is one-to-one with a contractor. overallStatus has
// no setter; every flag mutation goes through rederive.
type ContractorVerification struct {
	id               uint
	contractorID     uint
	flags            vo.Flags
	overallStatus    vo.OverallStatus
	profileNotes     string
	profileCheckedAt *time.Time
	security         Review
	manager          Review
	createdAt        time.Time
	updatedAt        time.Time
	version          int

	events.Recorder
}

// NewContractorVerification starts with every flag false.
func NewContractorVerification(contractorID uint) (*ContractorVerification, error) {
	if contractorID == 0 {
		return nil, fmt.Errorf("contractor ID is required")
	}

	now := biztime.NowUTC()
	return &ContractorVerification{
		contractorID:  contractorID,
		overallStatus: vo.Derive(vo.Flags{}),
		createdAt:     now,
		updatedAt:     now,
		version:       1,
	}, nil
}

// State is the persisted form of a verification record.
type State struct {
	ID               uint
	ContractorID     uint
	Flags            vo.Flags
	ProfileNotes     string
	ProfileCheckedAt *time.Time
	Security         Review
	Manager          Review
	CreatedAt        time.Time
	UpdatedAt        time.Time
	Version          int
}

// ReconstructContractorVerification rebuilds the aggregate. The stored
// overall status is ignored and derived again from the flags.
func ReconstructContractorVerification(s State) (*ContractorVerification, error) {
	if s.ID == 0 {
		return nil, fmt.Errorf("verification ID cannot be zero")
	}
	if s.ContractorID == 0 {
		return nil, fmt.Errorf("contractor ID is required")
	}

	return &ContractorVerification{
		id:               s.ID,
		contractorID:     s.ContractorID,
		flags:            s.Flags,
		overallStatus:    vo.Derive(s.Flags),
		profileNotes:     s.ProfileNotes,
		profileCheckedAt: s.ProfileCheckedAt,
		security:         s.Security,
		manager:          s.Manager,
		createdAt:        s.CreatedAt,
		updatedAt:        s.UpdatedAt,
		version:          s.Version,
	}, nil
}

func (v *ContractorVerification) Snapshot() State {
	return State{
		ID:               v.id,
		ContractorID:     v.contractorID,
		Flags:            v.flags,
		ProfileNotes:     v.profileNotes,
		ProfileCheckedAt: v.profileCheckedAt,
		Security:         v.security,
		Manager:          v.manager,
		CreatedAt:        v.createdAt,
		UpdatedAt:        v.updatedAt,
		Version:          v.version,
	}
}

func (v *ContractorVerification) ID() uint                        { return v.id }
func (v *ContractorVerification) ContractorID() uint              { return v.contractorID }
func (v *ContractorVerification) Flags() vo.Flags                 { return v.flags }
func (v *ContractorVerification) OverallStatus() vo.OverallStatus { return v.overallStatus }
func (v *ContractorVerification) ProfileNotes() string            { return v.profileNotes }
func (v *ContractorVerification) ProfileCheckedAt() *time.Time    { return v.profileCheckedAt }
func (v *ContractorVerification) SecurityReview() Review          { return v.security }
func (v *ContractorVerification) ManagerReview() Review           { return v.manager }
func (v *ContractorVerification) CreatedAt() time.Time            { return v.createdAt }
func (v *ContractorVerification) UpdatedAt() time.Time            { return v.updatedAt }
func (v *ContractorVerification) Version() int                    { return v.version }

func (v *ContractorVerification) SetID(id uint) error {
	if v.id != 0 {
		return fmt.Errorf("verification ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("verification ID cannot be zero")
	}
	v.id = id
	return nil
}

// CanRespond is the single predicate consulted before a contractor may
// answer or be assigned to a request.
func (v *ContractorVerification) CanRespond() bool {
	return v.overallStatus == vo.StatusApproved
}

// ApplyProfileEvaluation stores the outcome of a completeness check.
func (v *ContractorVerification) ApplyProfileEvaluation(c Completeness) {
	now := biztime.NowUTC()
	v.flags.ProfileCompleted = c.ProfileCompleted
	v.flags.DocumentsUploaded = c.DocumentsUploaded
	v.profileNotes = c.Summary()
	v.profileCheckedAt = &now
	v.rederive(now)
}

// RecordSecurityCheck stores a security officer's decision. Rejection also
// raises SecurityRejectedEvent; deactivating the account is up to the caller.
func (v *ContractorVerification) RecordSecurityCheck(officerID uint, approved bool, notes string) error {
	if officerID == 0 {
		return fmt.Errorf("officer ID is required")
	}

	now := biztime.NowUTC()
	v.flags.SecurityCheckPassed = approved
	v.security = Review{Notes: notes, CheckedBy: &officerID, CheckedAt: &now}
	v.rederive(now)

	if !approved {
		v.Record(SecurityRejectedEvent{
			BaseEvent:    events.NewBaseEvent(v.contractorID, EventTypeSecurityRejected, now),
			ContractorID: v.contractorID,
			OfficerID:    officerID,
			Notes:        notes,
		})
	}
	return nil
}

// RecordManagerCheck stores a manager's approval decision.
func (v *ContractorVerification) RecordManagerCheck(managerID uint, approved bool, notes string) error {
	if managerID == 0 {
		return fmt.Errorf("manager ID is required")
	}

	now := biztime.NowUTC()
	v.flags.ManagerApproval = approved
	v.manager = Review{Notes: notes, CheckedBy: &managerID, CheckedAt: &now}
	v.rederive(now)
	return nil
}

func (v *ContractorVerification) rederive(now time.Time) {
	from := v.overallStatus
	v.overallStatus = vo.Derive(v.flags)
	v.updatedAt = now
	v.version++

	if from != v.overallStatus {
		v.Record(newStatusChangedEvent(v.contractorID, from, v.overallStatus, now))
	}
}

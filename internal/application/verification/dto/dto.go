package dto

import (
	"time"

	"github.com/minerepair/repairhub/internal/domain/verification"
)

type ReviewDTO struct {
	Passed    bool       `json:"passed"`
	Notes     string     `json:"notes,omitempty"`
	CheckedBy *uint      `json:"checked_by"`
	CheckedAt *time.Time `json:"checked_at"`
}

type VerificationDTO struct {
	ID                uint       `json:"id"`
	ContractorID      uint       `json:"contractor_id"`
	OverallStatus     string     `json:"overall_status"`
	CanRespond        bool       `json:"can_respond"`
	ProfileCompleted  bool       `json:"profile_completed"`
	DocumentsUploaded bool       `json:"documents_uploaded"`
	ProfileNotes      string     `json:"profile_notes,omitempty"`
	ProfileCheckedAt  *time.Time `json:"profile_checked_at"`
	SecurityCheck     ReviewDTO  `json:"security_check"`
	ManagerApproval   ReviewDTO  `json:"manager_approval"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func ToVerificationDTO(v *verification.ContractorVerification) *VerificationDTO {
	if v == nil {
		return nil
	}

	flags := v.Flags()
	sec := v.SecurityReview()
	mgr := v.ManagerReview()
	return &VerificationDTO{
		ID:                v.ID(),
		ContractorID:      v.ContractorID(),
		OverallStatus:     v.OverallStatus().String(),
		CanRespond:        v.CanRespond(),
		ProfileCompleted:  flags.ProfileCompleted,
		DocumentsUploaded: flags.DocumentsUploaded,
		ProfileNotes:      v.ProfileNotes(),
		ProfileCheckedAt:  v.ProfileCheckedAt(),
		SecurityCheck: ReviewDTO{
			Passed:    flags.SecurityCheckPassed,
			Notes:     sec.Notes,
			CheckedBy: sec.CheckedBy,
			CheckedAt: sec.CheckedAt,
		},
		ManagerApproval: ReviewDTO{
			Passed:    flags.ManagerApproval,
			Notes:     mgr.Notes,
			CheckedBy: mgr.CheckedBy,
			CheckedAt: mgr.CheckedAt,
		},
		CreatedAt: v.CreatedAt(),
		UpdatedAt: v.UpdatedAt(),
	}
}

// CanRespondDTO is the gate answer returned to other services.
type CanRespondDTO struct {
	ContractorID  uint   `json:"contractor_id"`
	CanRespond    bool   `json:"can_respond"`
	OverallStatus string `json:"overall_status"`
}

package mappers

import (
	"fmt"

	"github.com/minerepair/repairhub/internal/domain/verification"
	vo "github.com/minerepair/repairhub/internal/domain/verification/valueobjects"
	"github.com/minerepair/repairhub/internal/infrastructure/persistence/models"
)

type VerificationMapper interface {
	ToModel(v *verification.ContractorVerification) *models.ContractorVerificationModel
	ToDomain(model *models.ContractorVerificationModel) (*verification.ContractorVerification, error)
}

type VerificationMapperImpl struct{}

func NewVerificationMapper() VerificationMapper {
	return &VerificationMapperImpl{}
}

func (m *VerificationMapperImpl) ToModel(v *verification.ContractorVerification) *models.ContractorVerificationModel {
	s := v.Snapshot()
	return &models.ContractorVerificationModel{
		ID:                  s.ID,
		ContractorID:        s.ContractorID,
		ProfileCompleted:    s.Flags.ProfileCompleted,
		DocumentsUploaded:   s.Flags.DocumentsUploaded,
		SecurityCheckPassed: s.Flags.SecurityCheckPassed,
		ManagerApproval:     s.Flags.ManagerApproval,
		OverallStatus:       v.OverallStatus().String(),
		ProfileNotes:        s.ProfileNotes,
		ProfileCheckedAt:    s.ProfileCheckedAt,
		SecurityNotes:       s.Security.Notes,
		SecurityCheckedBy:   s.Security.CheckedBy,
		SecurityCheckedAt:   s.Security.CheckedAt,
		ManagerNotes:        s.Manager.Notes,
		ManagerCheckedBy:    s.Manager.CheckedBy,
		ManagerCheckedAt:    s.Manager.CheckedAt,
		Version:             s.Version,
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
	}
}

// ToDomain ignores the stored overall status; the aggregate derives it.
func (m *VerificationMapperImpl) ToDomain(model *models.ContractorVerificationModel) (*verification.ContractorVerification, error) {
	v, err := verification.ReconstructContractorVerification(verification.State{
		ID:           model.ID,
		ContractorID: model.ContractorID,
		Flags: vo.Flags{
			ProfileCompleted:    model.ProfileCompleted,
			DocumentsUploaded:   model.DocumentsUploaded,
			SecurityCheckPassed: model.SecurityCheckPassed,
			ManagerApproval:     model.ManagerApproval,
		},
		ProfileNotes:     model.ProfileNotes,
		ProfileCheckedAt: model.ProfileCheckedAt,
		Security: verification.Review{
			Notes:     model.SecurityNotes,
			CheckedBy: model.SecurityCheckedBy,
			CheckedAt: model.SecurityCheckedAt,
		},
		Manager: verification.Review{
			Notes:     model.ManagerNotes,
			CheckedBy: model.ManagerCheckedBy,
			CheckedAt: model.ManagerCheckedAt,
		},
		CreatedAt: model.CreatedAt.UTC(),
		UpdatedAt: model.UpdatedAt.UTC(),
		Version:   model.Version,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct verification (contractor=%d): %w", model.ContractorID, err)
	}
	return v, nil
}

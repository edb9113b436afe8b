package mappers

import (
	"encoding/json"
	"fmt"

	"github.com/minerepair/repairhub/internal/domain/contractor"
	"github.com/minerepair/repairhub/internal/infrastructure/persistence/models"
)

// ContractorProfileToDomain builds the read-only profile snapshot together
// with its education and document counts.
func ContractorProfileToDomain(model *models.ContractorProfileModel, educationCount, documentCount int64) (*contractor.Profile, error) {
	p := &contractor.Profile{
		ID:             model.ID,
		UserID:         model.UserID,
		FirstName:      model.FirstName,
		LastName:       model.LastName,
		Phone:          model.Phone,
		Email:          model.Email,
		PassportSeries: model.PassportSeries,
		PassportNumber: model.PassportNumber,
		INN:            model.INN,
		EducationCount: int(educationCount),
		DocumentCount:  int(documentCount),
	}

	if len(model.Specializations) > 0 {
		if err := json.Unmarshal(model.Specializations, &p.Specializations); err != nil {
			return nil, fmt.Errorf("failed to unmarshal specializations (profile=%d): %w", model.ID, err)
		}
	}
	if len(model.EquipmentBrands) > 0 {
		if err := json.Unmarshal(model.EquipmentBrands, &p.EquipmentBrands); err != nil {
			return nil, fmt.Errorf("failed to unmarshal equipment brands (profile=%d): %w", model.ID, err)
		}
	}

	return p, nil
}

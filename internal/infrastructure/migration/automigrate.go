package migration

import (
	"github.com/minerepair/repairhub/internal/infrastructure/persistence/models"
)

func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.UserModel{},
		&models.RequestModel{},
		&models.ContractorResponseModel{},
		&models.RequestStatusChangeModel{},
		&models.ContractorVerificationModel{},
		&models.ContractorProfileModel{},
		&models.ContractorEducationModel{},
		&models.ContractorDocumentModel{},
	}
}

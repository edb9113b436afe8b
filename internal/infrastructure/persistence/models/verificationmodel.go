package models

import (
	"time"

	"github.com/minerepair/repairhub/internal/shared/constants"
)

// ContractorVerificationModel stores the four flags. OverallStatus is kept
// for filtering only; the domain derives it again on load.
type ContractorVerificationModel struct {
	ID                  uint   `gorm:"primaryKey"`
	ContractorID        uint   `gorm:"not null;uniqueIndex"`
	ProfileCompleted    bool   `gorm:"not null;default:false"`
	DocumentsUploaded   bool   `gorm:"not null;default:false"`
	SecurityCheckPassed bool   `gorm:"not null;default:false"`
	ManagerApproval     bool   `gorm:"not null;default:false"`
	OverallStatus       string `gorm:"size:30;not null;index"`
	ProfileNotes        string `gorm:"type:text"`
	ProfileCheckedAt    *time.Time
	SecurityNotes       string `gorm:"type:text"`
	SecurityCheckedBy   *uint
	SecurityCheckedAt   *time.Time
	ManagerNotes        string `gorm:"type:text"`
	ManagerCheckedBy    *uint
	ManagerCheckedAt    *time.Time
	Version             int       `gorm:"not null;default:1"`
	CreatedAt           time.Time `gorm:"not null"`
	UpdatedAt           time.Time `gorm:"not null"`
}

func (ContractorVerificationModel) TableName() string {
	return constants.TableContractorVerifications
}

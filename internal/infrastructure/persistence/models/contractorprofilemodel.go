package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/minerepair/repairhub/internal/shared/constants"
)

// ContractorProfileModel is owned by the profile editing service and only
// read here.
type ContractorProfileModel struct {
	ID              uint   `gorm:"primaryKey"`
	UserID          uint   `gorm:"not null;uniqueIndex"`
	FirstName       string `gorm:"size:100"`
	LastName        string `gorm:"size:100"`
	Phone           string `gorm:"size:30"`
	Email           string `gorm:"size:255"`
	PassportSeries  string `gorm:"size:10"`
	PassportNumber  string `gorm:"size:20"`
	INN             string `gorm:"column:inn;size:12"`
	Specializations datatypes.JSON
	EquipmentBrands datatypes.JSON
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (ContractorProfileModel) TableName() string {
	return constants.TableContractorProfiles
}

type ContractorEducationModel struct {
	ID          uint   `gorm:"primaryKey"`
	ProfileID   uint   `gorm:"not null;index"`
	Institution string `gorm:"size:255;not null"`
	Degree      string `gorm:"size:255"`
	CreatedAt   time.Time
}

func (ContractorEducationModel) TableName() string {
	return constants.TableContractorEducation
}

type ContractorDocumentModel struct {
	ID        uint   `gorm:"primaryKey"`
	ProfileID uint   `gorm:"not null;index"`
	Kind      string `gorm:"size:50;not null"`
	FileURL   string `gorm:"size:500;not null"`
	CreatedAt time.Time
}

func (ContractorDocumentModel) TableName() string {
	return constants.TableContractorDocuments
}

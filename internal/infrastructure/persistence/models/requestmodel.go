package models

import (
	"time"

	"gorm.io/datatypes"

	vo "github.com/minerepair/repairhub/internal/domain/request/valueobjects"
	"github.com/minerepair/repairhub/internal/shared/constants"
)

type RequestModel struct {
	ID                   uint                             `gorm:"primaryKey"`
	CustomerID           uint                             `gorm:"not null;index"`
	Title                string                           `gorm:"size:200;not null"`
	Description          string                           `gorm:"type:text;not null"`
	Urgency              string                           `gorm:"size:20;not null;index"`
	Priority             string                           `gorm:"size:20;not null"`
	Status               string                           `gorm:"size:40;not null;index:idx_requests_status_created"`
	Equipment            datatypes.JSONType[vo.Equipment] `gorm:"not null"`
	ProblemDescription   string                           `gorm:"type:text"`
	Address              string                           `gorm:"size:500"`
	Region               string                           `gorm:"size:100"`
	City                 string                           `gorm:"size:100;index"`
	Latitude             *float64
	Longitude            *float64
	ManagerID            *uint   `gorm:"index"`
	AssignedContractorID *uint   `gorm:"index"`
	ClarificationDetails *string `gorm:"type:text"`
	ManagerComment       *string `gorm:"type:text"`
	EstimatedCost        *float64
	FinalPrice           *float64
	ProcessedAt          *time.Time
	AssignedAt           *time.Time
	SentToBotAt          *time.Time
	Version              int       `gorm:"not null;default:1"`
	CreatedAt            time.Time `gorm:"not null;index:idx_requests_status_created"`
	UpdatedAt            time.Time `gorm:"not null"`
}

func (RequestModel) TableName() string {
	return constants.TableRepairRequests
}

type ContractorResponseModel struct {
	ID           uint `gorm:"primaryKey"`
	RequestID    uint `gorm:"not null;uniqueIndex:uk_response_request_contractor"`
	ContractorID uint `gorm:"not null;uniqueIndex:uk_response_request_contractor;index"`
	ProposedCost *float64
	Comment      string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"not null"`
}

func (ContractorResponseModel) TableName() string {
	return constants.TableContractorResponses
}

// RequestStatusChangeModel rows are append-only.
type RequestStatusChangeModel struct {
	ID         uint      `gorm:"primaryKey"`
	RequestID  uint      `gorm:"not null;index"`
	FromStatus *string   `gorm:"size:40"`
	ToStatus   string    `gorm:"size:40;not null"`
	ActorID    uint      `gorm:"not null"`
	ActorRole  string    `gorm:"size:20;not null"`
	Comment    string    `gorm:"type:text"`
	CreatedAt  time.Time `gorm:"not null;index"`
}

func (RequestStatusChangeModel) TableName() string {
	return constants.TableRequestStatusHistory
}

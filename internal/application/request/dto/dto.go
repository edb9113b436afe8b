package dto

import (
	"time"

	"github.com/minerepair/repairhub/internal/domain/request"
	vo "github.com/minerepair/repairhub/internal/domain/request/valueobjects"
	"github.com/minerepair/repairhub/internal/shared/mapper"
)

type EquipmentDTO struct {
	Type         string `json:"type"`
	Brand        string `json:"brand"`
	Model        string `json:"model"`
	SerialNumber string `json:"serial_number,omitempty"`
}

type LocationDTO struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type RequestDTO struct {
	ID                   uint         `json:"id"`
	CustomerID           uint         `json:"customer_id"`
	Title                string       `json:"title"`
	Description          string       `json:"description"`
	Urgency              string       `json:"urgency"`
	Priority             string       `json:"priority"`
	Equipment            EquipmentDTO `json:"equipment"`
	ProblemDescription   string       `json:"problem_description,omitempty"`
	Address              string       `json:"address,omitempty"`
	Region               string       `json:"region,omitempty"`
	City                 string       `json:"city,omitempty"`
	Location             *LocationDTO `json:"location,omitempty"`
	Status               string       `json:"status"`
	ManagerID            *uint        `json:"manager_id"`
	AssignedContractorID *uint        `json:"assigned_contractor_id"`
	ClarificationDetails *string      `json:"clarification_details"`
	ManagerComment       *string      `json:"manager_comment"`
	EstimatedCost        *float64     `json:"estimated_cost"`
	FinalPrice           *float64     `json:"final_price"`
	CreatedAt            time.Time    `json:"created_at"`
	UpdatedAt            time.Time    `json:"updated_at"`
	ProcessedAt          *time.Time   `json:"processed_at"`
	AssignedAt           *time.Time   `json:"assigned_at"`
	SentToBotAt          *time.Time   `json:"sent_to_bot_at"`
}

// RequestListItemDTO is the trimmed row used by listings.
type RequestListItemDTO struct {
	ID                   uint      `json:"id"`
	Title                string    `json:"title"`
	Status               string    `json:"status"`
	Urgency              string    `json:"urgency"`
	Priority             string    `json:"priority"`
	City                 string    `json:"city,omitempty"`
	CustomerID           uint      `json:"customer_id"`
	ManagerID            *uint     `json:"manager_id"`
	AssignedContractorID *uint     `json:"assigned_contractor_id"`
	CreatedAt            time.Time `json:"created_at"`
}

type ContractorResponseDTO struct {
	ID           uint      `json:"id"`
	RequestID    uint      `json:"request_id"`
	ContractorID uint      `json:"contractor_id"`
	ProposedCost *float64  `json:"proposed_cost"`
	Comment      string    `json:"comment,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type StatusChangeDTO struct {
	FromStatus *string   `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	ActorID    uint      `json:"actor_id"`
	ActorRole  string    `json:"actor_role"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func ToRequestDTO(r *request.Request) *RequestDTO {
	if r == nil {
		return nil
	}

	d := r.Details()
	out := &RequestDTO{
		ID:          r.ID(),
		CustomerID:  r.CustomerID(),
		Title:       d.Title,
		Description: d.Description,
		Urgency:     d.Urgency.String(),
		Priority:    r.Priority().String(),
		Equipment: EquipmentDTO{
			Type:         d.Equipment.Type,
			Brand:        d.Equipment.Brand,
			Model:        d.Equipment.Model,
			SerialNumber: d.Equipment.SerialNumber,
		},
		ProblemDescription:   d.ProblemDescription,
		Address:              d.Address,
		Region:               d.Region,
		City:                 d.City,
		Status:               r.Status().String(),
		ManagerID:            r.ManagerID(),
		AssignedContractorID: r.AssignedContractorID(),
		ClarificationDetails: r.ClarificationDetails(),
		ManagerComment:       r.ManagerComment(),
		EstimatedCost:        r.EstimatedCost(),
		FinalPrice:           r.FinalPrice(),
		CreatedAt:            r.CreatedAt(),
		UpdatedAt:            r.UpdatedAt(),
		ProcessedAt:          r.ProcessedAt(),
		AssignedAt:           r.AssignedAt(),
		SentToBotAt:          r.SentToBotAt(),
	}
	if d.Location != nil {
		out.Location = &LocationDTO{Latitude: d.Location.Latitude, Longitude: d.Location.Longitude}
	}
	return out
}

func ToRequestListItemDTO(r *request.Request) RequestListItemDTO {
	return RequestListItemDTO{
		ID:                   r.ID(),
		Title:                r.Title(),
		Status:               r.Status().String(),
		Urgency:              r.Details().Urgency.String(),
		Priority:             r.Priority().String(),
		City:                 r.Details().City,
		CustomerID:           r.CustomerID(),
		ManagerID:            r.ManagerID(),
		AssignedContractorID: r.AssignedContractorID(),
		CreatedAt:            r.CreatedAt(),
	}
}

func ToRequestListItemDTOs(requests []*request.Request) []RequestListItemDTO {
	return mapper.MapSlice(requests, ToRequestListItemDTO)
}

func ToContractorResponseDTO(r *request.ContractorResponse) ContractorResponseDTO {
	return ContractorResponseDTO{
		ID:           r.ID(),
		RequestID:    r.RequestID(),
		ContractorID: r.ContractorID(),
		ProposedCost: r.ProposedCost(),
		Comment:      r.Comment(),
		CreatedAt:    r.CreatedAt(),
	}
}

func ToStatusChangeDTO(c *request.StatusChange) StatusChangeDTO {
	out := StatusChangeDTO{
		ToStatus:  c.ToStatus.String(),
		ActorID:   c.ActorID,
		ActorRole: c.ActorRole.String(),
		Comment:   c.Comment,
		CreatedAt: c.CreatedAt,
	}
	if c.FromStatus != vo.Status("") {
		from := c.FromStatus.String()
		out.FromStatus = &from
	}
	return out
}

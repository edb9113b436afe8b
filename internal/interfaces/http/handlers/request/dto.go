package request

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/minerepair/repairhub/internal/application/request/usecases"
	domain "github.com/minerepair/repairhub/internal/domain/request"
	vo "github.com/minerepair/repairhub/internal/domain/request/valueobjects"
	"github.com/minerepair/repairhub/internal/shared/authorization"
	"github.com/minerepair/repairhub/internal/shared/utils"
)

type EquipmentRequest struct {
	Type         string `json:"type" binding:"required,max=100"`
	Brand        string `json:"brand" binding:"required,max=100"`
	Model        string `json:"model" binding:"required,max=100"`
	SerialNumber string `json:"serial_number" binding:"max=100"`
}

type CreateRequestRequest struct {
	CustomerID         uint             `json:"customer_id"`
	Title              string           `json:"title" binding:"required,max=200"`
	Description        string           `json:"description" binding:"required,max=5000"`
	Urgency            string           `json:"urgency" binding:"omitempty,oneof=low medium high critical"`
	Equipment          EquipmentRequest `json:"equipment"`
	ProblemDescription string           `json:"problem_description" binding:"max=5000"`
	Address            string           `json:"address" binding:"max=255"`
	Region             string           `json:"region" binding:"max=100"`
	City               string           `json:"city" binding:"max=100"`
	Latitude           *float64         `json:"latitude" binding:"omitempty,gte=-90,lte=90"`
	Longitude          *float64         `json:"longitude" binding:"omitempty,gte=-180,lte=180"`
}

func (r *CreateRequestRequest) ToCommand(actor authorization.Principal) usecases.CreateRequestCommand {
	return usecases.CreateRequestCommand{
		Actor:              actor,
		CustomerID:         r.CustomerID,
		Title:              r.Title,
		Description:        r.Description,
		Urgency:            r.Urgency,
		EquipmentType:      r.Equipment.Type,
		EquipmentBrand:     r.Equipment.Brand,
		EquipmentModel:     r.Equipment.Model,
		SerialNumber:       r.Equipment.SerialNumber,
		ProblemDescription: r.ProblemDescription,
		Address:            r.Address,
		Region:             r.Region,
		City:               r.City,
		Latitude:           r.Latitude,
		Longitude:          r.Longitude,
	}
}

// UpdateRequestRequest carries both patch shapes; the caller's role picks
// which fields are read.
type UpdateRequestRequest struct {
	Title              *string  `json:"title"`
	Description        *string  `json:"description"`
	Urgency            *string  `json:"urgency"`
	ProblemDescription *string  `json:"problem_description"`
	Address            *string  `json:"address"`
	Region             *string  `json:"region"`
	City               *string  `json:"city"`
	Latitude           *float64 `json:"latitude"`
	Longitude          *float64 `json:"longitude"`
	Priority           *string  `json:"priority"`
	EstimatedCost      *float64 `json:"estimated_cost"`
	ManagerComment     *string  `json:"manager_comment"`
}

func (r *UpdateRequestRequest) ToCommand(actor authorization.Principal, requestID uint) usecases.UpdateRequestCommand {
	cmd := usecases.UpdateRequestCommand{Actor: actor, RequestID: requestID}
	if actor.Role == authorization.RoleCustomer {
		patch := &domain.CustomerPatch{
			Title:              r.Title,
			Description:        r.Description,
			ProblemDescription: r.ProblemDescription,
			Address:            r.Address,
			Region:             r.Region,
			City:               r.City,
			Latitude:           r.Latitude,
			Longitude:          r.Longitude,
		}
		if r.Urgency != nil {
			u := vo.Urgency(*r.Urgency)
			patch.Urgency = &u
		}
		cmd.Customer = patch
		return cmd
	}

	patch := &domain.ManagerPatch{
		EstimatedCost:  r.EstimatedCost,
		ManagerComment: r.ManagerComment,
	}
	if r.Priority != nil {
		p := vo.Priority(*r.Priority)
		patch.Priority = &p
	}
	cmd.Manager = patch
	return cmd
}

type AssignManagerRequest struct {
	ManagerID uint `json:"manager_id"`
}

type ClarificationRequest struct {
	Details string `json:"details" binding:"required,max=5000"`
}

type RespondRequest struct {
	ProposedCost *float64 `json:"proposed_cost" binding:"omitempty,gte=0"`
	Comment      string   `json:"comment" binding:"max=2000"`
}

type AssignContractorRequest struct {
	ContractorID uint `json:"contractor_id" binding:"required"`
}

type CompleteRequest struct {
	FinalPrice *float64 `json:"final_price" binding:"omitempty,gte=0"`
}

type CancelRequest struct {
	Reason string `json:"reason" binding:"required,max=1000"`
}

func parseListRequestsQuery(c *gin.Context, actor authorization.Principal) usecases.ListRequestsQuery {
	pagination := utils.ParsePagination(c)

	var statuses []string
	for _, raw := range c.QueryArray("status") {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				statuses = append(statuses, s)
			}
		}
	}

	return usecases.ListRequestsQuery{
		Actor:     actor,
		Statuses:  statuses,
		Urgency:   c.Query("urgency"),
		City:      c.Query("city"),
		OnlyMine:  c.Query("mine") == "true",
		Page:      pagination.Page,
		PageSize:  pagination.PageSize,
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}
}

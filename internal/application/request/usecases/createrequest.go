package usecases

import (
	"context"

	"github.com/minerepair/repairhub/internal/application/request/dto"
	"github.com/minerepair/repairhub/internal/domain/request"
	vo "github.com/minerepair/repairhub/internal/domain/request/valueobjects"
	"github.com/minerepair/repairhub/internal/shared/authorization"
	apperrors "github.com/minerepair/repairhub/internal/shared/errors"
	"github.com/minerepair/repairhub/internal/shared/logger"
)

type CreateRequestCommand struct {
	Actor authorization.Principal
	// CustomerID is only honoured for admins creating on behalf of a customer.
	CustomerID         uint
	Title              string
	Description        string
	Urgency            string
	EquipmentType      string
	EquipmentBrand     string
	EquipmentModel     string
	SerialNumber       string
	ProblemDescription string
	Address            string
	Region             string
	City               string
	Latitude           *float64
	Longitude          *float64
}

type CreateRequestUseCase struct {
	store  *RequestStore
	logger logger.Interface
}

func NewCreateRequestUseCase(store *RequestStore, logger logger.Interface) *CreateRequestUseCase {
	return &CreateRequestUseCase{store: store, logger: logger}
}

func (uc *CreateRequestUseCase) Execute(ctx context.Context, cmd CreateRequestCommand) (*dto.RequestDTO, error) {
	uc.logger.Infow("executing create request use case", "user_id", cmd.Actor.UserID, "title", cmd.Title)

	if err := validateActor(cmd.Actor); err != nil {
		return nil, err
	}
	if err := requireRole(cmd.Actor, authorization.RoleCustomer, authorization.RoleAdmin); err != nil {
		return nil, err
	}

	customerID := cmd.Actor.UserID
	if cmd.Actor.Role.IsAdmin() {
		if cmd.CustomerID == 0 {
			return nil, apperrors.NewValidationError("customer_id is required when an admin creates a request")
		}
		customerID = cmd.CustomerID
	}

	details, err := uc.buildDetails(cmd)
	if err != nil {
		return nil, err
	}

	r, err := request.NewRequest(customerID, details)
	if err != nil {
		uc.logger.Warnw("invalid request details", "user_id", cmd.Actor.UserID, "error", err)
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := uc.store.create(ctx, r, cmd.Actor); err != nil {
		return nil, err
	}

	uc.logger.Infow("request created successfully", "request_id", r.ID(), "customer_id", customerID)
	return dto.ToRequestDTO(r), nil
}

func (uc *CreateRequestUseCase) buildDetails(cmd CreateRequestCommand) (request.Details, error) {
	urgency := vo.UrgencyMedium
	if cmd.Urgency != "" {
		u, err := vo.NewUrgency(cmd.Urgency)
		if err != nil {
			return request.Details{}, apperrors.NewValidationError(err.Error())
		}
		urgency = u
	}

	details := request.Details{
		Title:       sanitize(cmd.Title),
		Description: sanitize(cmd.Description),
		Urgency:     urgency,
		Equipment: vo.Equipment{
			Type:         sanitize(cmd.EquipmentType),
			Brand:        sanitize(cmd.EquipmentBrand),
			Model:        sanitize(cmd.EquipmentModel),
			SerialNumber: sanitize(cmd.SerialNumber),
		},
		ProblemDescription: sanitize(cmd.ProblemDescription),
		Address:            sanitize(cmd.Address),
		Region:             sanitize(cmd.Region),
		City:               sanitize(cmd.City),
	}

	if (cmd.Latitude == nil) != (cmd.Longitude == nil) {
		return request.Details{}, apperrors.NewValidationError("latitude and longitude must be provided together")
	}
	if cmd.Latitude != nil {
		point, err := vo.NewGeoPoint(*cmd.Latitude, *cmd.Longitude)
		if err != nil {
			return request.Details{}, apperrors.NewValidationError(err.Error())
		}
		details.Location = point
	}
	return details, nil
}

package mappers

import (
	"fmt"

	"gorm.io/datatypes"

	"github.com/minerepair/repairhub/internal/domain/request"
	vo "github.com/minerepair/repairhub/internal/domain/request/valueobjects"
	"github.com/minerepair/repairhub/internal/infrastructure/persistence/models"
	"github.com/minerepair/repairhub/internal/shared/authorization"
)

// RequestMapper converts between the request aggregate and its rows.
type RequestMapper interface {
	ToModel(r *request.Request) *models.RequestModel
	ToDomain(model *models.RequestModel) (*request.Request, error)

	ResponseToModel(resp *request.ContractorResponse) *models.ContractorResponseModel
	ResponseToDomain(model *models.ContractorResponseModel) *request.ContractorResponse

	StatusChangeToModel(c *request.StatusChange) *models.RequestStatusChangeModel
	StatusChangeToDomain(model *models.RequestStatusChangeModel) *request.StatusChange
}

type RequestMapperImpl struct{}

func NewRequestMapper() RequestMapper {
	return &RequestMapperImpl{}
}

func (m *RequestMapperImpl) ToModel(r *request.Request) *models.RequestModel {
	s := r.Snapshot()
	model := &models.RequestModel{
		ID:                   s.ID,
		CustomerID:           s.CustomerID,
		Title:                s.Details.Title,
		Description:          s.Details.Description,
		Urgency:              s.Details.Urgency.String(),
		Priority:             s.Priority.String(),
		Status:               s.Status.String(),
		Equipment:            datatypes.NewJSONType(s.Details.Equipment),
		ProblemDescription:   s.Details.ProblemDescription,
		Address:              s.Details.Address,
		Region:               s.Details.Region,
		City:                 s.Details.City,
		ManagerID:            s.ManagerID,
		AssignedContractorID: s.AssignedContractorID,
		ClarificationDetails: s.ClarificationDetails,
		ManagerComment:       s.ManagerComment,
		EstimatedCost:        s.EstimatedCost,
		FinalPrice:           s.FinalPrice,
		ProcessedAt:          s.ProcessedAt,
		AssignedAt:           s.AssignedAt,
		SentToBotAt:          s.SentToBotAt,
		Version:              s.Version,
		CreatedAt:            s.CreatedAt,
		UpdatedAt:            s.UpdatedAt,
	}

	if loc := s.Details.Location; loc != nil {
		lat, lng := loc.Latitude, loc.Longitude
		model.Latitude = &lat
		model.Longitude = &lng
	}

	return model
}

func (m *RequestMapperImpl) ToDomain(model *models.RequestModel) (*request.Request, error) {
	details := request.Details{
		Title:              model.Title,
		Description:        model.Description,
		Urgency:            vo.Urgency(model.Urgency),
		Equipment:          model.Equipment.Data(),
		ProblemDescription: model.ProblemDescription,
		Address:            model.Address,
		Region:             model.Region,
		City:               model.City,
	}
	if model.Latitude != nil && model.Longitude != nil {
		details.Location = &vo.GeoPoint{Latitude: *model.Latitude, Longitude: *model.Longitude}
	}

	r, err := request.ReconstructRequest(request.State{
		ID:                   model.ID,
		CustomerID:           model.CustomerID,
		Details:              details,
		Priority:             vo.Priority(model.Priority),
		Status:               vo.Status(model.Status),
		ManagerID:            model.ManagerID,
		AssignedContractorID: model.AssignedContractorID,
		ClarificationDetails: model.ClarificationDetails,
		ManagerComment:       model.ManagerComment,
		EstimatedCost:        model.EstimatedCost,
		FinalPrice:           model.FinalPrice,
		CreatedAt:            model.CreatedAt.UTC(),
		UpdatedAt:            model.UpdatedAt.UTC(),
		ProcessedAt:          model.ProcessedAt,
		AssignedAt:           model.AssignedAt,
		SentToBotAt:          model.SentToBotAt,
		Version:              model.Version,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct request (id=%d): %w", model.ID, err)
	}
	return r, nil
}

func (m *RequestMapperImpl) ResponseToModel(resp *request.ContractorResponse) *models.ContractorResponseModel {
	return &models.ContractorResponseModel{
		ID:           resp.ID(),
		RequestID:    resp.RequestID(),
		ContractorID: resp.ContractorID(),
		ProposedCost: resp.ProposedCost(),
		Comment:      resp.Comment(),
		CreatedAt:    resp.CreatedAt(),
	}
}

func (m *RequestMapperImpl) ResponseToDomain(model *models.ContractorResponseModel) *request.ContractorResponse {
	return request.ReconstructContractorResponse(
		model.ID,
		model.RequestID,
		model.ContractorID,
		model.ProposedCost,
		model.Comment,
		model.CreatedAt.UTC(),
	)
}

func (m *RequestMapperImpl) StatusChangeToModel(c *request.StatusChange) *models.RequestStatusChangeModel {
	model := &models.RequestStatusChangeModel{
		ID:        c.ID,
		RequestID: c.RequestID,
		ToStatus:  c.ToStatus.String(),
		ActorID:   c.ActorID,
		ActorRole: c.ActorRole.String(),
		Comment:   c.Comment,
		CreatedAt: c.CreatedAt,
	}
	if c.FromStatus != "" {
		from := c.FromStatus.String()
		model.FromStatus = &from
	}
	return model
}

func (m *RequestMapperImpl) StatusChangeToDomain(model *models.RequestStatusChangeModel) *request.StatusChange {
	c := &request.StatusChange{
		ID:        model.ID,
		RequestID: model.RequestID,
		ToStatus:  vo.Status(model.ToStatus),
		ActorID:   model.ActorID,
		ActorRole: authorization.UserRole(model.ActorRole),
		Comment:   model.Comment,
		CreatedAt: model.CreatedAt.UTC(),
	}
	if model.FromStatus != nil {
		c.FromStatus = vo.Status(*model.FromStatus)
	}
	return c
}

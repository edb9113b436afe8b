package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/minerepair/repairhub/internal/domain/request"
	"github.com/minerepair/repairhub/internal/infrastructure/persistence/mappers"
	"github.com/minerepair/repairhub/internal/infrastructure/persistence/models"
	"github.com/minerepair/repairhub/internal/shared/db"
	apperrors "github.com/minerepair/repairhub/internal/shared/errors"
)

type ContractorResponseRepository struct {
	db     *gorm.DB
	mapper mappers.RequestMapper
}

func NewContractorResponseRepository(db *gorm.DB) *ContractorResponseRepository {
	return &ContractorResponseRepository{
		db:     db,
		mapper: mappers.NewRequestMapper(),
	}
}

// Create relies on the (request_id, contractor_id) unique index to reject a
// second response from the same contractor.
func (r *ContractorResponseRepository) Create(ctx context.Context, resp *request.ContractorResponse) error {
	model := r.mapper.ResponseToModel(resp)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return request.ErrDuplicateResponse
		}
		return fmt.Errorf("failed to create contractor response: %w", err)
	}

	resp.SetID(model.ID)
	return nil
}

func (r *ContractorResponseRepository) ListByRequest(ctx context.Context, requestID uint) ([]*request.ContractorResponse, error) {
	var rows []models.ContractorResponseModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("request_id = ?", requestID).
		Order("created_at asc, id asc").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list contractor responses: %w", err)
	}

	responses := make([]*request.ContractorResponse, len(rows))
	for i := range rows {
		responses[i] = r.mapper.ResponseToDomain(&rows[i])
	}
	return responses, nil
}

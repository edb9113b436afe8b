package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/minerepair/repairhub/internal/domain/request"
	"github.com/minerepair/repairhub/internal/infrastructure/persistence/mappers"
	"github.com/minerepair/repairhub/internal/infrastructure/persistence/models"
	"github.com/minerepair/repairhub/internal/shared/db"
)

// RequestHistoryRepository only inserts and reads; history rows are never
// updated or deleted.
type RequestHistoryRepository struct {
	db     *gorm.DB
	mapper mappers.RequestMapper
}

func NewRequestHistoryRepository(db *gorm.DB) *RequestHistoryRepository {
	return &RequestHistoryRepository{
		db:     db,
		mapper: mappers.NewRequestMapper(),
	}
}

func (r *RequestHistoryRepository) Append(ctx context.Context, changes []*request.StatusChange) error {
	if len(changes) == 0 {
		return nil
	}

	rows := make([]*models.RequestStatusChangeModel, len(changes))
	for i, c := range changes {
		rows[i] = r.mapper.StatusChangeToModel(c)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to append request history: %w", err)
	}

	for i, row := range rows {
		changes[i].ID = row.ID
	}
	return nil
}

func (r *RequestHistoryRepository) ListByRequest(ctx context.Context, requestID uint) ([]*request.StatusChange, error) {
	var rows []models.RequestStatusChangeModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("request_id = ?", requestID).
		Order("created_at asc, id asc").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list request history: %w", err)
	}

	changes := make([]*request.StatusChange, len(rows))
	for i := range rows {
		changes[i] = r.mapper.StatusChangeToDomain(&rows[i])
	}
	return changes, nil
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/minerepair/repairhub/internal/domain/request"
	vo "github.com/minerepair/repairhub/internal/domain/request/valueobjects"
	"github.com/minerepair/repairhub/internal/infrastructure/persistence/mappers"
	"github.com/minerepair/repairhub/internal/infrastructure/persistence/models"
	"github.com/minerepair/repairhub/internal/shared/db"
)

// allowedRequestOrderByFields whitelists ORDER BY columns.
var allowedRequestOrderByFields = map[string]bool{
	"id":         true,
	"status":     true,
	"urgency":    true,
	"city":       true,
	"created_at": true,
	"updated_at": true,
}

type RequestRepository struct {
	db     *gorm.DB
	mapper mappers.RequestMapper
}

func NewRequestRepository(db *gorm.DB) *RequestRepository {
	return &RequestRepository{
		db:     db,
		mapper: mappers.NewRequestMapper(),
	}
}

func (r *RequestRepository) Create(ctx context.Context, req *request.Request) error {
	model := r.mapper.ToModel(req)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	return req.SetID(model.ID)
}

// Update writes every mutable column, including ones cleared back to NULL.
func (r *RequestRepository) Update(ctx context.Context, req *request.Request) error {
	model := r.mapper.ToModel(req)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.RequestModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "customer_id", "created_at").
		Updates(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update request: %w", result.Error)
	}

	// RowsAffected may be 0 when the stored values are unchanged.
	return nil
}

func (r *RequestRepository) GetByID(ctx context.Context, id uint) (*request.Request, error) {
	var model models.RequestModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, request.ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to get request: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *RequestRepository) List(ctx context.Context, filter request.Filter) ([]*request.Request, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.RequestModel{}).Scopes(requestFilterScope(filter))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count requests: %w", err)
	}

	var rows []models.RequestModel
	if err := query.
		Scopes(
			db.OrderBy(filter.SortBy, filter.Direction(), allowedRequestOrderByFields, "created_at desc"),
			db.Paginate(filter.Page, filter.Limit()),
		).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list requests: %w", err)
	}

	requests, err := r.toDomainList(rows)
	if err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

// ListStale returns requests still in status that were created before
// createdBefore, oldest first.
func (r *RequestRepository) ListStale(ctx context.Context, status vo.Status, createdBefore time.Time) ([]*request.Request, error) {
	var rows []models.RequestModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("status = ? AND created_at < ?", status.String(), createdBefore).
		Order("created_at asc").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list stale requests: %w", err)
	}

	return r.toDomainList(rows)
}

func (r *RequestRepository) toDomainList(rows []models.RequestModel) ([]*request.Request, error) {
	requests := make([]*request.Request, 0, len(rows))
	for i := range rows {
		req, err := r.mapper.ToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, nil
}

func requestFilterScope(filter request.Filter) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if filter.CustomerID != nil {
			q = q.Where("customer_id = ?", *filter.CustomerID)
		}
		if filter.ManagerID != nil {
			q = q.Where("manager_id = ?", *filter.ManagerID)
		}

		broadcast := []string{vo.StatusSentToContractors.String(), vo.StatusContractorResponses.String()}
		switch {
		case filter.AssignedContractorID != nil && filter.BroadcastVisible:
			q = q.Where("(assigned_contractor_id = ? OR status IN ?)", *filter.AssignedContractorID, broadcast)
		case filter.AssignedContractorID != nil:
			q = q.Where("assigned_contractor_id = ?", *filter.AssignedContractorID)
		case filter.BroadcastVisible:
			q = q.Where("status IN ?", broadcast)
		}

		if len(filter.Statuses) > 0 {
			statuses := make([]string, len(filter.Statuses))
			for i, s := range filter.Statuses {
				statuses[i] = s.String()
			}
			q = q.Where("status IN ?", statuses)
		}
		if filter.Urgency != nil {
			q = q.Where("urgency = ?", filter.Urgency.String())
		}
		if filter.City != "" {
			q = q.Where("city = ?", filter.City)
		}
		return q
	}
}

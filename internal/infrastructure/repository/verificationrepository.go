package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/minerepair/repairhub/internal/domain/verification"
	"github.com/minerepair/repairhub/internal/infrastructure/persistence/mappers"
	"github.com/minerepair/repairhub/internal/infrastructure/persistence/models"
	"github.com/minerepair/repairhub/internal/shared/db"
)

type VerificationRepository struct {
	db     *gorm.DB
	mapper mappers.VerificationMapper
}

func NewVerificationRepository(db *gorm.DB) *VerificationRepository {
	return &VerificationRepository{
		db:     db,
		mapper: mappers.NewVerificationMapper(),
	}
}

func (r *VerificationRepository) Create(ctx context.Context, v *verification.ContractorVerification) error {
	model := r.mapper.ToModel(v)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create contractor verification: %w", err)
	}

	return v.SetID(model.ID)
}

func (r *VerificationRepository) Update(ctx context.Context, v *verification.ContractorVerification) error {
	model := r.mapper.ToModel(v)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Model(&models.ContractorVerificationModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "contractor_id", "created_at").
		Updates(model).Error; err != nil {
		return fmt.Errorf("failed to update contractor verification: %w", err)
	}

	return nil
}

func (r *VerificationRepository) GetByContractorID(ctx context.Context, contractorID uint) (*verification.ContractorVerification, error) {
	var model models.ContractorVerificationModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("contractor_id = ?", contractorID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, verification.ErrVerificationNotFound
		}
		return nil, fmt.Errorf("failed to get contractor verification: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *VerificationRepository) List(ctx context.Context, filter verification.Filter) ([]*verification.ContractorVerification, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.ContractorVerificationModel{})

	if filter.Status != nil {
		query = query.Where("overall_status = ?", filter.Status.String())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count contractor verifications: %w", err)
	}

	var rows []models.ContractorVerificationModel
	if err := query.
		Order("updated_at asc").
		Scopes(db.Paginate(filter.Page, filter.Limit())).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list contractor verifications: %w", err)
	}

	result := make([]*verification.ContractorVerification, 0, len(rows))
	for i := range rows {
		v, err := r.mapper.ToDomain(&rows[i])
		if err != nil {
			return nil, 0, err
		}
		result = append(result, v)
	}
	return result, total, nil
}

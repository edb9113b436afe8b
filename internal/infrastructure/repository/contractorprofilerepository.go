package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/minerepair/repairhub/internal/domain/contractor"
	"github.com/minerepair/repairhub/internal/infrastructure/persistence/mappers"
	"github.com/minerepair/repairhub/internal/infrastructure/persistence/models"
	"github.com/minerepair/repairhub/internal/shared/db"
)

type ContractorProfileRepository struct {
	db *gorm.DB
}

func NewContractorProfileRepository(db *gorm.DB) *ContractorProfileRepository {
	return &ContractorProfileRepository{db: db}
}

func (r *ContractorProfileRepository) GetByUserID(ctx context.Context, userID uint) (*contractor.Profile, error) {
	var model models.ContractorProfileModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("user_id = ?", userID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, contractor.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get contractor profile: %w", err)
	}

	var educationCount, documentCount int64
	if err := tx.Model(&models.ContractorEducationModel{}).
		Where("profile_id = ?", model.ID).
		Count(&educationCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count education records: %w", err)
	}
	if err := tx.Model(&models.ContractorDocumentModel{}).
		Where("profile_id = ?", model.ID).
		Count(&documentCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count documents: %w", err)
	}

	return mappers.ContractorProfileToDomain(&model, educationCount, documentCount)
}

package mappers

import (
	"fmt"

	"github.com/minerepair/repairhub/internal/domain/user"
	"github.com/minerepair/repairhub/internal/infrastructure/persistence/models"
	"github.com/minerepair/repairhub/internal/shared/authorization"
)

// UserMapper handles the conversion between domain entities and persistence models
type UserMapper interface {
	// ToEntity converts a persistence model to a domain entity
	ToEntity(model *models.UserModel) (*user.User, error)

	// ToEntities converts multiple persistence models to domain entities
	ToEntities(models []*models.UserModel) ([]*user.User, error)
}

// UserMapperImpl is the concrete implementation of UserMapper
type UserMapperImpl struct{}

// NewUserMapper creates a new user mapper
func NewUserMapper() UserMapper {
	return &UserMapperImpl{}
}

// ToEntity converts a persistence model to a domain entity
func (m *UserMapperImpl) ToEntity(model *models.UserModel) (*user.User, error) {
	if model == nil {
		return nil, nil
	}

	u, err := user.ReconstructUser(
		model.ID,
		model.Name,
		model.Email,
		authorization.UserRole(model.Role),
		model.IsActive,
		model.TelegramChatID,
		model.Locale,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct user %d: %w", model.ID, err)
	}
	return u, nil
}

// ToEntities converts multiple persistence models to domain entities
func (m *UserMapperImpl) ToEntities(models []*models.UserModel) ([]*user.User, error) {
	users := make([]*user.User, 0, len(models))
	for _, model := range models {
		u, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

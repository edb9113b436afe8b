package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/minerepair/repairhub/internal/shared/constants"
)

// UserModel is the slice of the accounts table this service reads. Account
// management writes the remaining columns.
type UserModel struct {
	ID             uint   `gorm:"primarykey"`
	Email          string `gorm:"uniqueIndex;not null;size:255"`
	Name           string `gorm:"not null;size:100"`
	Role           string `gorm:"not null;size:20;index:idx_users_role_active"`
	IsActive       bool   `gorm:"not null;default:true;index:idx_users_role_active"`
	TelegramChatID *int64
	Locale         string `gorm:"size:10;default:ru"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string {
	return constants.TableUsers
}

// BeforeCreate hook for GORM
func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.Locale == "" {
		u.Locale = "ru"
	}
	return nil
}

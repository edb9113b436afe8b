// Package user is the slice of the user account the workflow needs: role
// lookup, notification addresses and the active flag.
package user

import (
	"fmt"
	"time"

	"github.com/minerepair/repairhub/internal/shared/authorization"
	"github.com/minerepair/repairhub/internal/shared/biztime"
)

type User struct {
	id             uint
	name           string
	email          string
	role           authorization.UserRole
	isActive       bool
	telegramChatID *int64
	locale         string
	updatedAt      time.Time
}

func ReconstructUser(id uint, name, email string, role authorization.UserRole, isActive bool, telegramChatID *int64, locale string, updatedAt time.Time) (*User, error) {
	if id == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}

	return &User{
		id:             id,
		name:           name,
		email:          email,
		role:           role,
		isActive:       isActive,
		telegramChatID: telegramChatID,
		locale:         locale,
		updatedAt:      updatedAt,
	}, nil
}

func (u *User) ID() uint                     { return u.id }
func (u *User) Name() string                 { return u.name }
func (u *User) Email() string                { return u.email }
func (u *User) Role() authorization.UserRole { return u.role }
func (u *User) IsActive() bool               { return u.isActive }
func (u *User) TelegramChatID() *int64       { return u.telegramChatID }
func (u *User) Locale() string               { return u.locale }
func (u *User) UpdatedAt() time.Time         { return u.updatedAt }

// HasRole reports whether the user is active and holds role.
func (u *User) HasRole(role authorization.UserRole) bool {
	return u.isActive && u.role == role
}

// Deactivate blocks the account. Deactivating twice is a no-op.
func (u *User) Deactivate() {
	if !u.isActive {
		return
	}
	u.isActive = false
	u.updatedAt = biztime.NowUTC()
}

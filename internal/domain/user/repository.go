package user

import (
	"context"
	"errors"

	"github.com/minerepair/repairhub/internal/shared/authorization"
)

var ErrUserNotFound = errors.New("user not found")

type Repository interface {
	// GetByID returns ErrUserNotFound when no row matches.
	GetByID(ctx context.Context, id uint) (*User, error)
	// ListActiveByRole returns every active user holding role.
	ListActiveByRole(ctx context.Context, role authorization.UserRole) ([]*User, error)
	// SetActive persists the active flag only.
	SetActive(ctx context.Context, id uint, active bool) error
}

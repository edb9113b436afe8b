package usecases

import (
	"errors"

	"github.com/minerepair/repairhub/internal/domain/request"
	"github.com/minerepair/repairhub/internal/shared/authorization"
	apperrors "github.com/minerepair/repairhub/internal/shared/errors"
	"github.com/minerepair/repairhub/internal/shared/services/markdown"
)

type principal = authorization.Principal

func validateActor(p principal) error {
	if p.UserID == 0 || !p.Role.IsValid() {
		return apperrors.NewUnauthorizedError("authenticated user is required")
	}
	return nil
}

func requireRole(p principal, roles ...authorization.UserRole) error {
	if !p.Role.In(roles...) {
		return apperrors.NewForbiddenError("permission denied", "role "+p.Role.String()+" cannot perform this action")
	}
	return nil
}

func requireOwningManager(r *request.Request, p principal) error {
	if err := requireRole(p, authorization.RoleManager); err != nil {
		return err
	}
	if !r.IsManagedBy(p.UserID) {
		return apperrors.NewForbiddenError("permission denied", "request is managed by another manager")
	}
	return nil
}

func requireAssignedContractor(r *request.Request, p principal) error {
	if err := requireRole(p, authorization.RoleContractor); err != nil {
		return err
	}
	if !r.IsAssignedTo(p.UserID) {
		return apperrors.NewForbiddenError("permission denied", "request is not assigned to this contractor")
	}
	return nil
}

// mapDomainError turns an aggregate error into an AppError. Status and gate
// failures become invalid transitions; everything else is bad input.
func mapDomainError(err error) error {
	if errors.Is(err, request.ErrInvalidTransition) {
		return apperrors.NewInvalidTransitionError(err.Error())
	}
	return apperrors.NewValidationError(err.Error())
}

func sanitize(s string) string {
	return markdown.StripHTML(s)
}

func sanitizePtr(s *string) *string {
	if s == nil {
		return nil
	}
	clean := sanitize(*s)
	return &clean
}

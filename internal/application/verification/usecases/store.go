package usecases

import (
	"context"
	"errors"

	"github.com/minerepair/repairhub/internal/domain/shared/events"
	"github.com/minerepair/repairhub/internal/domain/verification"
	"github.com/minerepair/repairhub/internal/shared/authorization"
	"github.com/minerepair/repairhub/internal/shared/db"
	apperrors "github.com/minerepair/repairhub/internal/shared/errors"
	"github.com/minerepair/repairhub/internal/shared/logger"
)

// VerificationStore persists verification records and publishes the
// events they recorded once the transaction commits.
type VerificationStore struct {
	repo      verification.Repository
	tx        db.Transactor
	publisher events.EventPublisher
	logger    logger.Interface
}

func NewVerificationStore(
	repo verification.Repository,
	tx db.Transactor,
	publisher events.EventPublisher,
	logger logger.Interface,
) *VerificationStore {
	return &VerificationStore{repo: repo, tx: tx, publisher: publisher, logger: logger}
}

func (s *VerificationStore) load(ctx context.Context, contractorID uint) (*verification.ContractorVerification, error) {
	v, err := s.repo.GetByContractorID(ctx, contractorID)
	if err != nil {
		if errors.Is(err, verification.ErrVerificationNotFound) {
			return nil, apperrors.NewNotFoundError("verification not found")
		}
		s.logger.Errorw("failed to load verification", "contractor_id", contractorID, "error", err)
		return nil, apperrors.NewInternalError("failed to load verification")
	}
	if v == nil {
		return nil, apperrors.NewNotFoundError("verification not found")
	}
	return v, nil
}

// save writes v and runs extra in the same transaction.
func (s *VerificationStore) save(ctx context.Context, v *verification.ContractorVerification, extra func(txCtx context.Context) error) error {
	err := s.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		if v.ID() == 0 {
			err = s.repo.Create(txCtx, v)
		} else {
			err = s.repo.Update(txCtx, v)
		}
		if err != nil {
			return err
		}
		if extra != nil {
			return extra(txCtx)
		}
		return nil
	})
	if err != nil {
		v.PullEvents()
		if apperrors.IsAppError(err) {
			return err
		}
		s.logger.Errorw("failed to persist verification", "contractor_id", v.ContractorID(), "error", err)
		return apperrors.NewInternalError("failed to save verification")
	}

	evts := v.PullEvents()
	if len(evts) > 0 && s.publisher != nil {
		if err := s.publisher.PublishAll(evts); err != nil {
			s.logger.Warnw("failed to publish verification events", "contractor_id", v.ContractorID(), "error", err)
		}
	}
	return nil
}

func validateActor(p authorization.Principal) error {
	if p.UserID == 0 || !p.Role.IsValid() {
		return apperrors.NewUnauthorizedError("authenticated user is required")
	}
	return nil
}

// requireSelfOrStaff lets a contractor act on their own record and staff on any.
func requireSelfOrStaff(p authorization.Principal, contractorID uint) error {
	if p.Role.IsStaff() {
		return nil
	}
	if p.Role == authorization.RoleContractor && p.UserID == contractorID {
		return nil
	}
	return apperrors.NewForbiddenError("permission denied", "only the contractor or staff can access this verification")
}

func requireRole(p authorization.Principal, roles ...authorization.UserRole) error {
	if !p.Role.In(roles...) {
		return apperrors.NewForbiddenError("permission denied", "role "+p.Role.String()+" cannot perform this action")
	}
	return nil
}

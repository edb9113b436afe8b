package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/minerepair/repairhub/internal/domain/contractor"
	"github.com/minerepair/repairhub/internal/domain/shared/events"
	"github.com/minerepair/repairhub/internal/domain/user"
	"github.com/minerepair/repairhub/internal/domain/verification"
	vo "github.com/minerepair/repairhub/internal/domain/verification/valueobjects"
	"github.com/minerepair/repairhub/internal/shared/authorization"
	"github.com/minerepair/repairhub/internal/shared/logger"
)

type mockVerificationRepository struct {
	CreateFunc            func(ctx context.Context, v *verification.ContractorVerification) error
	UpdateFunc            func(ctx context.Context, v *verification.ContractorVerification) error
	GetByContractorIDFunc func(ctx context.Context, contractorID uint) (*verification.ContractorVerification, error)
	ListFunc              func(ctx context.Context, filter verification.Filter) ([]*verification.ContractorVerification, int64, error)

	createCalls int
	updateCalls int
}

func (m *mockVerificationRepository) Create(ctx context.Context, v *verification.ContractorVerification) error {
	m.createCalls++
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, v)
	}
	return v.SetID(uint(m.createCalls))
}

func (m *mockVerificationRepository) Update(ctx context.Context, v *verification.ContractorVerification) error {
	m.updateCalls++
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, v)
	}
	return nil
}

func (m *mockVerificationRepository) GetByContractorID(ctx context.Context, contractorID uint) (*verification.ContractorVerification, error) {
	if m.GetByContractorIDFunc != nil {
		return m.GetByContractorIDFunc(ctx, contractorID)
	}
	return nil, verification.ErrVerificationNotFound
}

func (m *mockVerificationRepository) List(ctx context.Context, filter verification.Filter) ([]*verification.ContractorVerification, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

type mockProfileRepository struct {
	GetByUserIDFunc func(ctx context.Context, userID uint) (*contractor.Profile, error)
}

func (m *mockProfileRepository) GetByUserID(ctx context.Context, userID uint) (*contractor.Profile, error) {
	if m.GetByUserIDFunc != nil {
		return m.GetByUserIDFunc(ctx, userID)
	}
	return nil, contractor.ErrProfileNotFound
}

type mockUserRepository struct {
	SetActiveFunc func(ctx context.Context, id uint, active bool) error

	deactivated []uint
}

func (m *mockUserRepository) GetByID(context.Context, uint) (*user.User, error) {
	return nil, user.ErrUserNotFound
}

func (m *mockUserRepository) ListActiveByRole(context.Context, authorization.UserRole) ([]*user.User, error) {
	return nil, nil
}

func (m *mockUserRepository) SetActive(ctx context.Context, id uint, active bool) error {
	if m.SetActiveFunc != nil {
		if err := m.SetActiveFunc(ctx, id, active); err != nil {
			return err
		}
	}
	if !active {
		m.deactivated = append(m.deactivated, id)
	}
	return nil
}

type mockTransactor struct{}

func (mockTransactor) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockPublisher struct {
	published []events.DomainEvent
}

func (m *mockPublisher) Publish(event events.DomainEvent) error {
	m.published = append(m.published, event)
	return nil
}

func (m *mockPublisher) PublishAll(evts []events.DomainEvent) error {
	m.published = append(m.published, evts...)
	return nil
}

type fixture struct {
	repo      *mockVerificationRepository
	profiles  *mockProfileRepository
	users     *mockUserRepository
	publisher *mockPublisher
	store     *VerificationStore
	log       logger.Interface
}

func newFixture() *fixture {
	f := &fixture{
		repo:      &mockVerificationRepository{},
		profiles:  &mockProfileRepository{},
		users:     &mockUserRepository{},
		publisher: &mockPublisher{},
		log:       logger.NewNopLogger(),
	}
	f.store = NewVerificationStore(f.repo, mockTransactor{}, f.publisher, f.log)
	return f
}

func (f *fixture) withVerification(v *verification.ContractorVerification) {
	f.repo.GetByContractorIDFunc = func(_ context.Context, contractorID uint) (*verification.ContractorVerification, error) {
		if contractorID == v.ContractorID() {
			return v, nil
		}
		return nil, verification.ErrVerificationNotFound
	}
}

const (
	contractorID uint = 21
	officerID    uint = 30
	managerID    uint = 7
)

func contractorActor() authorization.Principal {
	return authorization.Principal{UserID: contractorID, Role: authorization.RoleContractor}
}

func securityActor() authorization.Principal {
	return authorization.Principal{UserID: officerID, Role: authorization.RoleSecurity}
}

func managerActor() authorization.Principal {
	return authorization.Principal{UserID: managerID, Role: authorization.RoleManager}
}

func verificationWith(t *testing.T, flags vo.Flags) *verification.ContractorVerification {
	t.Helper()
	now := time.Now().UTC()
	v, err := verification.ReconstructContractorVerification(verification.State{
		ID:           1,
		ContractorID: contractorID,
		Flags:        flags,
		CreatedAt:    now,
		UpdatedAt:    now,
		Version:      1,
	})
	require.NoError(t, err)
	return v
}

func completeProfile() *contractor.Profile {
	return &contractor.Profile{
		UserID:          contractorID,
		FirstName:       "Ivan",
		LastName:        "Petrov",
		Phone:           "+79001234567",
		Email:           "ivan@example.com",
		PassportSeries:  "6510",
		PassportNumber:  "123456",
		INN:             "667000000000",
		Specializations: []string{"hydraulics"},
		EquipmentBrands: []string{"Komatsu"},
		EducationCount:  1,
		DocumentCount:   2,
	}
}

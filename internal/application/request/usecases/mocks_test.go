package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/minerepair/repairhub/internal/domain/request"
	vo "github.com/minerepair/repairhub/internal/domain/request/valueobjects"
	"github.com/minerepair/repairhub/internal/domain/shared/events"
	"github.com/minerepair/repairhub/internal/domain/user"
	"github.com/minerepair/repairhub/internal/shared/authorization"
	"github.com/minerepair/repairhub/internal/shared/logger"
)

type mockRequestRepository struct {
	CreateFunc    func(ctx context.Context, r *request.Request) error
	UpdateFunc    func(ctx context.Context, r *request.Request) error
	GetByIDFunc   func(ctx context.Context, id uint) (*request.Request, error)
	ListFunc      func(ctx context.Context, filter request.Filter) ([]*request.Request, int64, error)
	ListStaleFunc func(ctx context.Context, status vo.Status, createdBefore time.Time) ([]*request.Request, error)

	updateCalls int
}

func (m *mockRequestRepository) Create(ctx context.Context, r *request.Request) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, r)
	}
	return nil
}

func (m *mockRequestRepository) Update(ctx context.Context, r *request.Request) error {
	m.updateCalls++
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, r)
	}
	return nil
}

func (m *mockRequestRepository) GetByID(ctx context.Context, id uint) (*request.Request, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, request.ErrRequestNotFound
}

func (m *mockRequestRepository) List(ctx context.Context, filter request.Filter) ([]*request.Request, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockRequestRepository) ListStale(ctx context.Context, status vo.Status, createdBefore time.Time) ([]*request.Request, error) {
	if m.ListStaleFunc != nil {
		return m.ListStaleFunc(ctx, status, createdBefore)
	}
	return nil, nil
}

type mockHistoryRepository struct {
	AppendFunc        func(ctx context.Context, changes []*request.StatusChange) error
	ListByRequestFunc func(ctx context.Context, requestID uint) ([]*request.StatusChange, error)

	appended []*request.StatusChange
}

func (m *mockHistoryRepository) Append(ctx context.Context, changes []*request.StatusChange) error {
	if m.AppendFunc != nil {
		if err := m.AppendFunc(ctx, changes); err != nil {
			return err
		}
	}
	m.appended = append(m.appended, changes...)
	return nil
}

func (m *mockHistoryRepository) ListByRequest(ctx context.Context, requestID uint) ([]*request.StatusChange, error) {
	if m.ListByRequestFunc != nil {
		return m.ListByRequestFunc(ctx, requestID)
	}
	return nil, nil
}

type mockResponseRepository struct {
	CreateFunc        func(ctx context.Context, resp *request.ContractorResponse) error
	ListByRequestFunc func(ctx context.Context, requestID uint) ([]*request.ContractorResponse, error)
}

func (m *mockResponseRepository) Create(ctx context.Context, resp *request.ContractorResponse) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, resp)
	}
	return nil
}

func (m *mockResponseRepository) ListByRequest(ctx context.Context, requestID uint) ([]*request.ContractorResponse, error) {
	if m.ListByRequestFunc != nil {
		return m.ListByRequestFunc(ctx, requestID)
	}
	return nil, nil
}

type mockUserRepository struct {
	GetByIDFunc          func(ctx context.Context, id uint) (*user.User, error)
	ListActiveByRoleFunc func(ctx context.Context, role authorization.UserRole) ([]*user.User, error)
	SetActiveFunc        func(ctx context.Context, id uint, active bool) error
}

func (m *mockUserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, user.ErrUserNotFound
}

func (m *mockUserRepository) ListActiveByRole(ctx context.Context, role authorization.UserRole) ([]*user.User, error) {
	if m.ListActiveByRoleFunc != nil {
		return m.ListActiveByRoleFunc(ctx, role)
	}
	return nil, nil
}

func (m *mockUserRepository) SetActive(ctx context.Context, id uint, active bool) error {
	if m.SetActiveFunc != nil {
		return m.SetActiveFunc(ctx, id, active)
	}
	return nil
}

type mockGate struct {
	CanRespondFunc func(ctx context.Context, contractorID uint) (bool, error)
}

func (m *mockGate) CanRespond(ctx context.Context, contractorID uint) (bool, error) {
	if m.CanRespondFunc != nil {
		return m.CanRespondFunc(ctx, contractorID)
	}
	return false, nil
}

func gateApproving(ids ...uint) *mockGate {
	return &mockGate{CanRespondFunc: func(_ context.Context, contractorID uint) (bool, error) {
		for _, id := range ids {
			if id == contractorID {
				return true, nil
			}
		}
		return false, nil
	}}
}

type mockTransactor struct {
	calls int
}

func (m *mockTransactor) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type mockPublisher struct {
	PublishFunc func(event events.DomainEvent) error

	published []events.DomainEvent
}

func (m *mockPublisher) Publish(event events.DomainEvent) error {
	if m.PublishFunc != nil {
		if err := m.PublishFunc(event); err != nil {
			return err
		}
	}
	m.published = append(m.published, event)
	return nil
}

func (m *mockPublisher) PublishAll(evts []events.DomainEvent) error {
	for _, e := range evts {
		if err := m.Publish(e); err != nil {
			return err
		}
	}
	return nil
}

// fixture bundles the collaborators most use cases need.
type fixture struct {
	requests  *mockRequestRepository
	history   *mockHistoryRepository
	responses *mockResponseRepository
	users     *mockUserRepository
	tx        *mockTransactor
	publisher *mockPublisher
	store     *RequestStore
	log       logger.Interface
}

func newFixture() *fixture {
	f := &fixture{
		requests:  &mockRequestRepository{},
		history:   &mockHistoryRepository{},
		responses: &mockResponseRepository{},
		users:     &mockUserRepository{},
		tx:        &mockTransactor{},
		publisher: &mockPublisher{},
		log:       logger.NewNopLogger(),
	}
	f.store = NewRequestStore(f.requests, f.history, f.tx, f.publisher, f.log)
	return f
}

// withRequest makes GetByID return r for its ID.
func (f *fixture) withRequest(r *request.Request) {
	f.requests.GetByIDFunc = func(_ context.Context, id uint) (*request.Request, error) {
		if id == r.ID() {
			return r, nil
		}
		return nil, request.ErrRequestNotFound
	}
}

func uintPtr(v uint) *uint { return &v }

func float64Ptr(v float64) *float64 { return &v }

func stringPtr(v string) *string { return &v }

const (
	customerID   uint = 1
	managerID    uint = 7
	otherManager uint = 8
	contractorID uint = 21
	otherWorker  uint = 22
	adminID      uint = 99
)

func customer() authorization.Principal {
	return authorization.Principal{UserID: customerID, Role: authorization.RoleCustomer}
}

func manager() authorization.Principal {
	return authorization.Principal{UserID: managerID, Role: authorization.RoleManager}
}

func contractor() authorization.Principal {
	return authorization.Principal{UserID: contractorID, Role: authorization.RoleContractor}
}

func admin() authorization.Principal {
	return authorization.Principal{UserID: adminID, Role: authorization.RoleAdmin}
}

// stateFor builds a persisted request in status with the participants that
// status implies.
func stateFor(t *testing.T, status vo.Status) *request.Request {
	t.Helper()

	now := time.Now().UTC().Add(-time.Hour)
	s := request.State{
		ID:         100,
		CustomerID: customerID,
		Details: request.Details{
			Title:       "Excavator hydraulic leak",
			Description: "Boom cylinder leaks under load",
			Urgency:     vo.UrgencyHigh,
			Equipment:   vo.Equipment{Type: "excavator", Brand: "Komatsu", Model: "PC200"},
			City:        "Yekaterinburg",
		},
		Priority:  vo.PriorityNormal,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
		Version:   3,
	}

	switch status {
	case vo.StatusNew, vo.StatusCancelled:
	case vo.StatusManagerReview, vo.StatusClarification, vo.StatusSentToContractors, vo.StatusContractorResponses:
		s.ManagerID = uintPtr(managerID)
	case vo.StatusAssigned, vo.StatusInProgress, vo.StatusCompleted:
		s.ManagerID = uintPtr(managerID)
		s.AssignedContractorID = uintPtr(contractorID)
	}

	r, err := request.ReconstructRequest(s)
	require.NoError(t, err)
	return r
}

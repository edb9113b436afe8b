package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minerepair/repairhub/internal/domain/request"
	vo "github.com/minerepair/repairhub/internal/domain/request/valueobjects"
	"github.com/minerepair/repairhub/internal/domain/shared/events"
	"github.com/minerepair/repairhub/internal/shared/authorization"
	apperrors "github.com/minerepair/repairhub/internal/shared/errors"
)

func TestGetRequestUseCase_Visibility(t *testing.T) {
	security := authorization.Principal{UserID: 30, Role: authorization.RoleSecurity}
	stranger := authorization.Principal{UserID: 500, Role: authorization.RoleCustomer}
	outsider := authorization.Principal{UserID: otherWorker, Role: authorization.RoleContractor}

	tests := []struct {
		name    string
		status  vo.Status
		actor   authorization.Principal
		gate    *mockGate
		allowed bool
	}{
		{name: "owner", status: vo.StatusNew, actor: customer(), gate: gateApproving(), allowed: true},
		{name: "other customer", status: vo.StatusNew, actor: stranger, gate: gateApproving(), allowed: false},
		{name: "any manager", status: vo.StatusNew, actor: authorization.Principal{UserID: otherManager, Role: authorization.RoleManager}, gate: gateApproving(), allowed: true},
		{name: "admin", status: vo.StatusNew, actor: admin(), gate: gateApproving(), allowed: true},
		{name: "security", status: vo.StatusNew, actor: security, gate: gateApproving(), allowed: false},
		{name: "assigned contractor", status: vo.StatusInProgress, actor: contractor(), gate: gateApproving(), allowed: true},
		{name: "verified contractor sees broadcast", status: vo.StatusSentToContractors, actor: outsider, gate: gateApproving(otherWorker), allowed: true},
		{name: "unverified contractor misses broadcast", status: vo.StatusSentToContractors, actor: outsider, gate: gateApproving(), allowed: false},
		{name: "verified contractor misses private work", status: vo.StatusInProgress, actor: outsider, gate: gateApproving(otherWorker), allowed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			r := stateFor(t, tt.status)
			f.withRequest(r)
			uc := NewGetRequestUseCase(f.store, tt.gate, f.log)

			out, err := uc.Execute(context.Background(), GetRequestQuery{Actor: tt.actor, RequestID: r.ID()})

			if tt.allowed {
				require.NoError(t, err)
				assert.Equal(t, r.ID(), out.ID)
				return
			}
			assert.True(t, apperrors.IsForbiddenError(err))
		})
	}
}

func TestGetRequestUseCase_NotFound(t *testing.T) {
	f := newFixture()
	uc := NewGetRequestUseCase(f.store, gateApproving(), f.log)

	_, err := uc.Execute(context.Background(), GetRequestQuery{Actor: manager(), RequestID: 1})

	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestGetRequestUseCase_RepositoryFailure(t *testing.T) {
	f := newFixture()
	f.requests.GetByIDFunc = func(context.Context, uint) (*request.Request, error) {
		return nil, errors.New("connection reset")
	}
	uc := NewGetRequestUseCase(f.store, gateApproving(), f.log)

	_, err := uc.Execute(context.Background(), GetRequestQuery{Actor: manager(), RequestID: 1})

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeInternal, apperrors.GetAppError(err).Type)
}

func TestListRequestsUseCase_ScopesByRole(t *testing.T) {
	tests := []struct {
		name   string
		query  ListRequestsQuery
		gate   *mockGate
		assert func(t *testing.T, filter request.Filter)
	}{
		{
			name:  "customer sees own",
			query: ListRequestsQuery{Actor: customer()},
			gate:  gateApproving(),
			assert: func(t *testing.T, filter request.Filter) {
				require.NotNil(t, filter.CustomerID)
				assert.Equal(t, customerID, *filter.CustomerID)
			},
		},
		{
			name:  "manager mine",
			query: ListRequestsQuery{Actor: manager(), OnlyMine: true, Statuses: []string{"manager_review"}},
			gate:  gateApproving(),
			assert: func(t *testing.T, filter request.Filter) {
				require.NotNil(t, filter.ManagerID)
				assert.Equal(t, managerID, *filter.ManagerID)
				assert.Equal(t, []vo.Status{vo.StatusManagerReview}, filter.Statuses)
			},
		},
		{
			name:  "verified contractor",
			query: ListRequestsQuery{Actor: contractor()},
			gate:  gateApproving(contractorID),
			assert: func(t *testing.T, filter request.Filter) {
				require.NotNil(t, filter.AssignedContractorID)
				assert.True(t, filter.BroadcastVisible)
			},
		},
		{
			name:  "unverified contractor",
			query: ListRequestsQuery{Actor: contractor()},
			gate:  gateApproving(),
			assert: func(t *testing.T, filter request.Filter) {
				assert.False(t, filter.BroadcastVisible)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			var got request.Filter
			f.requests.ListFunc = func(_ context.Context, filter request.Filter) ([]*request.Request, int64, error) {
				got = filter
				return []*request.Request{stateFor(t, vo.StatusNew)}, 1, nil
			}
			uc := NewListRequestsUseCase(f.requests, tt.gate, f.log)

			result, err := uc.Execute(context.Background(), tt.query)

			require.NoError(t, err)
			assert.Equal(t, int64(1), result.Total)
			assert.Len(t, result.Requests, 1)
			assert.Equal(t, 1, result.Page)
			assert.Equal(t, 20, result.PageSize)
			tt.assert(t, got)
		})
	}
}

func TestListRequestsUseCase_Rejections(t *testing.T) {
	f := newFixture()
	uc := NewListRequestsUseCase(f.requests, gateApproving(), f.log)

	_, err := uc.Execute(context.Background(), ListRequestsQuery{Actor: authorization.Principal{UserID: 3, Role: authorization.RoleHR}})
	assert.True(t, apperrors.IsForbiddenError(err))

	_, err = uc.Execute(context.Background(), ListRequestsQuery{Actor: manager(), Statuses: []string{"archived"}})
	assert.True(t, apperrors.IsValidationError(err))
}

func TestGetRequestHistoryUseCase(t *testing.T) {
	f := newFixture()
	r := stateFor(t, vo.StatusManagerReview)
	f.withRequest(r)
	f.history.ListByRequestFunc = func(_ context.Context, requestID uint) ([]*request.StatusChange, error) {
		return []*request.StatusChange{
			{RequestID: requestID, ToStatus: vo.StatusNew, ActorID: customerID, ActorRole: authorization.RoleCustomer},
			{RequestID: requestID, FromStatus: vo.StatusNew, ToStatus: vo.StatusManagerReview, ActorID: managerID, ActorRole: authorization.RoleManager},
		}, nil
	}
	uc := NewGetRequestHistoryUseCase(f.store, f.history, gateApproving(), f.log)

	out, err := uc.Execute(context.Background(), GetRequestHistoryQuery{Actor: customer(), RequestID: r.ID()})

	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Nil(t, out[0].FromStatus)
	require.NotNil(t, out[1].FromStatus)
	assert.Equal(t, "new", *out[1].FromStatus)
	assert.Equal(t, "manager_review", out[1].ToStatus)

	stranger := authorization.Principal{UserID: 500, Role: authorization.RoleCustomer}
	_, err = uc.Execute(context.Background(), GetRequestHistoryQuery{Actor: stranger, RequestID: r.ID()})
	assert.True(t, apperrors.IsForbiddenError(err))
}

func TestListResponsesUseCase_ContractorSeesOwnOnly(t *testing.T) {
	f := newFixture()
	r := stateFor(t, vo.StatusContractorResponses)
	f.withRequest(r)
	f.responses.ListByRequestFunc = func(_ context.Context, requestID uint) ([]*request.ContractorResponse, error) {
		return []*request.ContractorResponse{
			request.ReconstructContractorResponse(1, requestID, contractorID, nil, "mine", time.Now()),
			request.ReconstructContractorResponse(2, requestID, otherWorker, nil, "theirs", time.Now()),
		}, nil
	}
	uc := NewListResponsesUseCase(f.store, f.responses, f.log)

	own, err := uc.Execute(context.Background(), ListResponsesQuery{Actor: contractor(), RequestID: r.ID()})
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, "mine", own[0].Comment)

	all, err := uc.Execute(context.Background(), ListResponsesQuery{Actor: manager(), RequestID: r.ID()})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = uc.Execute(context.Background(), ListResponsesQuery{Actor: customer(), RequestID: r.ID()})
	assert.True(t, apperrors.IsForbiddenError(err))
}

func TestRemindStaleRequestsUseCase(t *testing.T) {
	f := newFixture()
	var gotBefore time.Time
	f.requests.ListStaleFunc = func(_ context.Context, status vo.Status, createdBefore time.Time) ([]*request.Request, error) {
		assert.Equal(t, vo.StatusNew, status)
		gotBefore = createdBefore
		return []*request.Request{stateFor(t, vo.StatusNew)}, nil
	}
	pub := &mockPublisher{}
	uc := NewRemindStaleRequestsUseCase(f.requests, pub, 2*time.Hour, f.log)

	sent, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.WithinDuration(t, time.Now().Add(-2*time.Hour), gotBefore, time.Minute)
	require.Len(t, pub.published, 1)
	assert.Equal(t, request.EventTypeStale, pub.published[0].GetEventType())

	pub.PublishFunc = func(events.DomainEvent) error { return errors.New("buffer full") }
	sent, err = uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Zero(t, sent)
}

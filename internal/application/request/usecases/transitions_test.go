package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minerepair/repairhub/internal/application/request/dto"
	vo "github.com/minerepair/repairhub/internal/domain/request/valueobjects"
	"github.com/minerepair/repairhub/internal/domain/shared/events"
	"github.com/minerepair/repairhub/internal/shared/authorization"
	apperrors "github.com/minerepair/repairhub/internal/shared/errors"
)

func TestAddClarificationUseCase(t *testing.T) {
	tests := []struct {
		name      string
		status    vo.Status
		actor     authorization.Principal
		details   string
		errType   apperrors.ErrorType
		wantState vo.Status
	}{
		{name: "owning manager", status: vo.StatusManagerReview, actor: manager(), details: "Which serial number?", wantState: vo.StatusClarification},
		{name: "repeat clarification", status: vo.StatusClarification, actor: manager(), details: "Photo of the nameplate?", wantState: vo.StatusClarification},
		{name: "other manager", status: vo.StatusManagerReview, actor: authorization.Principal{UserID: otherManager, Role: authorization.RoleManager}, details: "x", errType: apperrors.ErrorTypeForbidden},
		{name: "admin is not the owner", status: vo.StatusManagerReview, actor: admin(), details: "x", errType: apperrors.ErrorTypeForbidden},
		{name: "empty details", status: vo.StatusManagerReview, actor: manager(), details: " ", errType: apperrors.ErrorTypeValidation},
		{name: "wrong status", status: vo.StatusSentToContractors, actor: manager(), details: "x", errType: apperrors.ErrorTypeInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			r := stateFor(t, tt.status)
			f.withRequest(r)
			uc := NewAddClarificationUseCase(f.store, f.log)

			out, err := uc.Execute(context.Background(), AddClarificationCommand{Actor: tt.actor, RequestID: r.ID(), Details: tt.details})

			if tt.errType != "" {
				require.Error(t, err)
				assert.Equal(t, tt.errType, apperrors.GetAppError(err).Type)
				assert.Equal(t, tt.status, r.Status())
				assert.Zero(t, f.requests.updateCalls)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantState.String(), out.Status)
			require.NotNil(t, out.ClarificationDetails)
			assert.Equal(t, tt.details, *out.ClarificationDetails)
			require.Len(t, f.publisher.published, 1)
		})
	}
}

func TestSendToContractorsUseCase(t *testing.T) {
	t.Run("from review", func(t *testing.T) {
		f := newFixture()
		r := stateFor(t, vo.StatusManagerReview)
		f.withRequest(r)
		uc := NewSendToContractorsUseCase(f.store, f.log)

		out, err := uc.Execute(context.Background(), SendToContractorsCommand{Actor: manager(), RequestID: r.ID()})

		require.NoError(t, err)
		assert.Equal(t, "sent_to_contractors", out.Status)
		assert.NotNil(t, out.SentToBotAt)
	})

	t.Run("not the owner", func(t *testing.T) {
		f := newFixture()
		r := stateFor(t, vo.StatusManagerReview)
		f.withRequest(r)
		uc := NewSendToContractorsUseCase(f.store, f.log)

		_, err := uc.Execute(context.Background(), SendToContractorsCommand{
			Actor:     authorization.Principal{UserID: otherManager, Role: authorization.RoleManager},
			RequestID: r.ID(),
		})

		assert.True(t, apperrors.IsForbiddenError(err))
		assert.Nil(t, r.SentToBotAt())
	})

	t.Run("repeat send is refused", func(t *testing.T) {
		f := newFixture()
		r := stateFor(t, vo.StatusManagerReview)
		f.withRequest(r)
		uc := NewSendToContractorsUseCase(f.store, f.log)

		_, err := uc.Execute(context.Background(), SendToContractorsCommand{Actor: manager(), RequestID: r.ID()})
		require.NoError(t, err)

		_, err = uc.Execute(context.Background(), SendToContractorsCommand{Actor: manager(), RequestID: r.ID()})
		assert.True(t, apperrors.IsInvalidTransitionError(err))
	})
}

func TestAssignContractorUseCase_UnverifiedContractorRejected(t *testing.T) {
	f := newFixture()
	r := stateFor(t, vo.StatusSentToContractors)
	f.withRequest(r)
	uc := NewAssignContractorUseCase(f.store, gateApproving(), f.log)

	_, err := uc.Execute(context.Background(), AssignContractorCommand{Actor: manager(), RequestID: r.ID(), ContractorID: contractorID})

	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	assert.Equal(t, apperrors.ErrorTypeInvalidTransition, appErr.Type)
	assert.Equal(t, "contractor is not verified", appErr.Message)
	assert.Equal(t, vo.StatusSentToContractors, r.Status())
	assert.Nil(t, r.AssignedContractorID())
	assert.Zero(t, f.requests.updateCalls)
}

func TestAssignContractorUseCase_ApprovedContractorAssigned(t *testing.T) {
	f := newFixture()
	r := stateFor(t, vo.StatusContractorResponses)
	f.withRequest(r)
	uc := NewAssignContractorUseCase(f.store, gateApproving(contractorID), f.log)

	out, err := uc.Execute(context.Background(), AssignContractorCommand{Actor: manager(), RequestID: r.ID(), ContractorID: contractorID})

	require.NoError(t, err)
	assert.Equal(t, "assigned", out.Status)
	require.NotNil(t, out.AssignedContractorID)
	assert.Equal(t, contractorID, *out.AssignedContractorID)
	assert.NotNil(t, out.AssignedAt)
	assert.Equal(t, 1, f.requests.updateCalls)
	assert.Len(t, f.publisher.published, 1)
}

func TestAssignContractorUseCase_GuardOrder(t *testing.T) {
	gateCalled := false
	gate := &mockGate{CanRespondFunc: func(context.Context, uint) (bool, error) {
		gateCalled = true
		return true, nil
	}}

	t.Run("ownership is checked before the gate", func(t *testing.T) {
		f := newFixture()
		r := stateFor(t, vo.StatusSentToContractors)
		f.withRequest(r)
		uc := NewAssignContractorUseCase(f.store, gate, f.log)

		_, err := uc.Execute(context.Background(), AssignContractorCommand{
			Actor:        authorization.Principal{UserID: otherManager, Role: authorization.RoleManager},
			RequestID:    r.ID(),
			ContractorID: contractorID,
		})

		assert.True(t, apperrors.IsForbiddenError(err))
		assert.False(t, gateCalled)
	})

	t.Run("status is checked after the gate", func(t *testing.T) {
		f := newFixture()
		r := stateFor(t, vo.StatusManagerReview)
		f.withRequest(r)
		uc := NewAssignContractorUseCase(f.store, gate, f.log)

		_, err := uc.Execute(context.Background(), AssignContractorCommand{Actor: manager(), RequestID: r.ID(), ContractorID: contractorID})

		assert.True(t, apperrors.IsInvalidTransitionError(err))
		assert.Nil(t, r.AssignedContractorID())
	})
}

func TestStartAndCompleteWork(t *testing.T) {
	f := newFixture()
	r := stateFor(t, vo.StatusAssigned)
	f.withRequest(r)
	start := NewStartWorkUseCase(f.store, f.log)
	complete := NewCompleteWorkUseCase(f.store, f.log)

	_, err := complete.Execute(context.Background(), CompleteWorkCommand{Actor: contractor(), RequestID: r.ID()})
	assert.True(t, apperrors.IsInvalidTransitionError(err), "cannot complete before starting")

	other := authorization.Principal{UserID: otherWorker, Role: authorization.RoleContractor}
	_, err = start.Execute(context.Background(), StartWorkCommand{Actor: other, RequestID: r.ID()})
	assert.True(t, apperrors.IsForbiddenError(err))

	out, err := start.Execute(context.Background(), StartWorkCommand{Actor: contractor(), RequestID: r.ID()})
	require.NoError(t, err)
	assert.Equal(t, "in_progress", out.Status)

	_, err = complete.Execute(context.Background(), CompleteWorkCommand{Actor: contractor(), RequestID: r.ID(), FinalPrice: float64Ptr(-1)})
	assert.True(t, apperrors.IsValidationError(err))

	out, err = complete.Execute(context.Background(), CompleteWorkCommand{Actor: contractor(), RequestID: r.ID(), FinalPrice: float64Ptr(125000)})
	require.NoError(t, err)
	assert.Equal(t, "completed", out.Status)
	require.NotNil(t, out.FinalPrice)
	assert.Equal(t, 125000.0, *out.FinalPrice)
	assert.NotNil(t, out.ProcessedAt)

	require.Len(t, f.history.appended, 2)
	assert.Equal(t, vo.StatusInProgress, f.history.appended[0].ToStatus)
	assert.Equal(t, vo.StatusCompleted, f.history.appended[1].ToStatus)
}

func TestCancelRequestUseCase(t *testing.T) {
	stranger := authorization.Principal{UserID: 500, Role: authorization.RoleCustomer}

	tests := []struct {
		name    string
		status  vo.Status
		actor   authorization.Principal
		reason  string
		errType apperrors.ErrorType
	}{
		{name: "customer owner", status: vo.StatusNew, actor: customer(), reason: "Fixed it ourselves"},
		{name: "owning manager", status: vo.StatusManagerReview, actor: manager(), reason: "Duplicate"},
		{name: "assigned contractor", status: vo.StatusInProgress, actor: contractor(), reason: "Parts unavailable"},
		{name: "non participant", status: vo.StatusManagerReview, actor: stranger, reason: "x", errType: apperrors.ErrorTypeForbidden},
		{name: "admin is not a participant", status: vo.StatusNew, actor: admin(), reason: "x", errType: apperrors.ErrorTypeForbidden},
		{name: "unassigned contractor", status: vo.StatusSentToContractors, actor: contractor(), reason: "x", errType: apperrors.ErrorTypeForbidden},
		{name: "reason required", status: vo.StatusNew, actor: customer(), reason: "", errType: apperrors.ErrorTypeValidation},
		{name: "completed is terminal", status: vo.StatusCompleted, actor: customer(), reason: "x", errType: apperrors.ErrorTypeInvalidTransition},
		{name: "cancelled is terminal", status: vo.StatusCancelled, actor: customer(), reason: "x", errType: apperrors.ErrorTypeInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			r := stateFor(t, tt.status)
			f.withRequest(r)
			before := r.Snapshot()
			uc := NewCancelRequestUseCase(f.store, f.log)

			out, err := uc.Execute(context.Background(), CancelRequestCommand{Actor: tt.actor, RequestID: r.ID(), Reason: tt.reason})

			if tt.errType != "" {
				require.Error(t, err)
				assert.Equal(t, tt.errType, apperrors.GetAppError(err).Type)
				assert.Equal(t, before, r.Snapshot())
				assert.Zero(t, f.requests.updateCalls)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "cancelled", out.Status)
			require.NotNil(t, out.ManagerComment)
			assert.Equal(t, tt.reason, *out.ManagerComment)
		})
	}
}

func TestTransitions_SucceedWhenPublishFails(t *testing.T) {
	tests := []struct {
		name      string
		status    vo.Status
		wantState vo.Status
		run       func(f *fixture, id uint) (*dto.RequestDTO, error)
	}{
		{
			name:      "send to contractors",
			status:    vo.StatusManagerReview,
			wantState: vo.StatusSentToContractors,
			run: func(f *fixture, id uint) (*dto.RequestDTO, error) {
				return NewSendToContractorsUseCase(f.store, f.log).Execute(context.Background(), SendToContractorsCommand{Actor: manager(), RequestID: id})
			},
		},
		{
			name:      "start work",
			status:    vo.StatusAssigned,
			wantState: vo.StatusInProgress,
			run: func(f *fixture, id uint) (*dto.RequestDTO, error) {
				return NewStartWorkUseCase(f.store, f.log).Execute(context.Background(), StartWorkCommand{Actor: contractor(), RequestID: id})
			},
		},
		{
			name:      "complete work",
			status:    vo.StatusInProgress,
			wantState: vo.StatusCompleted,
			run: func(f *fixture, id uint) (*dto.RequestDTO, error) {
				return NewCompleteWorkUseCase(f.store, f.log).Execute(context.Background(), CompleteWorkCommand{Actor: contractor(), RequestID: id})
			},
		},
		{
			name:      "cancel",
			status:    vo.StatusManagerReview,
			wantState: vo.StatusCancelled,
			run: func(f *fixture, id uint) (*dto.RequestDTO, error) {
				return NewCancelRequestUseCase(f.store, f.log).Execute(context.Background(), CancelRequestCommand{Actor: customer(), RequestID: id, Reason: "found another shop"})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.publisher.PublishFunc = func(events.DomainEvent) error { return events.ErrBufferFull }
			r := stateFor(t, tt.status)
			f.withRequest(r)

			out, err := tt.run(f, r.ID())

			require.NoError(t, err)
			assert.Equal(t, tt.wantState.String(), out.Status)
			assert.Equal(t, tt.wantState, r.Status())
			assert.Equal(t, 1, f.requests.updateCalls)
			require.NotEmpty(t, f.history.appended)
			assert.Equal(t, tt.wantState, f.history.appended[len(f.history.appended)-1].ToStatus)
			assert.Empty(t, f.publisher.published)
		})
	}
}

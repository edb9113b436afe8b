package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minerepair/repairhub/internal/domain/request"
	vo "github.com/minerepair/repairhub/internal/domain/request/valueobjects"
	"github.com/minerepair/repairhub/internal/shared/authorization"
	apperrors "github.com/minerepair/repairhub/internal/shared/errors"
)

func TestUpdateRequestUseCase_CustomerPatch(t *testing.T) {
	f := newFixture()
	r := stateFor(t, vo.StatusNew)
	f.withRequest(r)
	uc := NewUpdateRequestUseCase(f.store, f.log)

	urgency := vo.UrgencyCritical
	out, err := uc.Execute(context.Background(), UpdateRequestCommand{
		Actor:     customer(),
		RequestID: r.ID(),
		Customer: &request.CustomerPatch{
			Title:     stringPtr("Excavator <i>boom</i> leak"),
			Urgency:   &urgency,
			Latitude:  float64Ptr(56.84),
			Longitude: float64Ptr(60.61),
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "Excavator boom leak", out.Title)
	assert.Equal(t, "critical", out.Urgency)
	require.NotNil(t, out.Location)
	assert.Equal(t, 56.84, out.Location.Latitude)
	assert.Empty(t, f.history.appended)
}

func TestUpdateRequestUseCase_ManagerPatch(t *testing.T) {
	f := newFixture()
	r := stateFor(t, vo.StatusManagerReview)
	f.withRequest(r)
	uc := NewUpdateRequestUseCase(f.store, f.log)

	priority := vo.PriorityUrgent
	out, err := uc.Execute(context.Background(), UpdateRequestCommand{
		Actor:     manager(),
		RequestID: r.ID(),
		Manager:   &request.ManagerPatch{Priority: &priority, EstimatedCost: float64Ptr(50000)},
	})

	require.NoError(t, err)
	assert.Equal(t, "urgent", out.Priority)
	assert.Equal(t, 50000.0, *out.EstimatedCost)
}

func TestUpdateRequestUseCase_Rejections(t *testing.T) {
	badPriority := vo.Priority("asap")
	lat := float64Ptr(95)

	tests := []struct {
		name    string
		status  vo.Status
		cmd     UpdateRequestCommand
		errType apperrors.ErrorType
	}{
		{
			name:    "no patch",
			status:  vo.StatusNew,
			cmd:     UpdateRequestCommand{Actor: customer(), RequestID: 100},
			errType: apperrors.ErrorTypeValidation,
		},
		{
			name:    "empty patch",
			status:  vo.StatusNew,
			cmd:     UpdateRequestCommand{Actor: customer(), RequestID: 100, Customer: &request.CustomerPatch{}},
			errType: apperrors.ErrorTypeValidation,
		},
		{
			name:    "latitude out of range",
			status:  vo.StatusNew,
			cmd:     UpdateRequestCommand{Actor: customer(), RequestID: 100, Customer: &request.CustomerPatch{Latitude: lat, Longitude: float64Ptr(10)}},
			errType: apperrors.ErrorTypeValidation,
		},
		{
			name:    "unknown priority",
			status:  vo.StatusManagerReview,
			cmd:     UpdateRequestCommand{Actor: manager(), RequestID: 100, Manager: &request.ManagerPatch{Priority: &badPriority}},
			errType: apperrors.ErrorTypeValidation,
		},
		{
			name:    "customer after review started",
			status:  vo.StatusManagerReview,
			cmd:     UpdateRequestCommand{Actor: customer(), RequestID: 100, Customer: &request.CustomerPatch{City: stringPtr("Perm")}},
			errType: apperrors.ErrorTypeInvalidTransition,
		},
		{
			name:    "manager patch from customer",
			status:  vo.StatusManagerReview,
			cmd:     UpdateRequestCommand{Actor: customer(), RequestID: 100, Manager: &request.ManagerPatch{EstimatedCost: float64Ptr(1)}},
			errType: apperrors.ErrorTypeForbidden,
		},
		{
			name:   "customer patch from another customer",
			status: vo.StatusNew,
			cmd: UpdateRequestCommand{
				Actor:     authorization.Principal{UserID: 500, Role: authorization.RoleCustomer},
				RequestID: 100,
				Customer:  &request.CustomerPatch{City: stringPtr("Perm")},
			},
			errType: apperrors.ErrorTypeForbidden,
		},
		{
			name:    "manager on completed request",
			status:  vo.StatusCompleted,
			cmd:     UpdateRequestCommand{Actor: manager(), RequestID: 100, Manager: &request.ManagerPatch{EstimatedCost: float64Ptr(1)}},
			errType: apperrors.ErrorTypeInvalidTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			r := stateFor(t, tt.status)
			f.withRequest(r)
			uc := NewUpdateRequestUseCase(f.store, f.log)

			_, err := uc.Execute(context.Background(), tt.cmd)

			require.Error(t, err)
			assert.Equal(t, tt.errType, apperrors.GetAppError(err).Type)
			assert.Zero(t, f.requests.updateCalls)
		})
	}
}

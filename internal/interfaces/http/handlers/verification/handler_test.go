package verification

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minerepair/repairhub/internal/application/verification/dto"
	"github.com/minerepair/repairhub/internal/application/verification/usecases"
	"github.com/minerepair/repairhub/internal/interfaces/http/handlers/testutil"
	"github.com/minerepair/repairhub/internal/shared/authorization"
	"github.com/minerepair/repairhub/internal/shared/errors"
)

type mockSecurityCheckUC struct {
	got usecases.SecurityCheckCommand
	err error
}

func (m *mockSecurityCheckUC) Execute(_ context.Context, cmd usecases.SecurityCheckCommand) (*dto.VerificationDTO, error) {
	m.got = cmd
	if m.err != nil {
		return nil, m.err
	}
	return &dto.VerificationDTO{ContractorID: cmd.ContractorID, OverallStatus: "pending_manager"}, nil
}

type mockCanRespondUC struct {
	err error
}

func (m *mockCanRespondUC) Execute(_ context.Context, q usecases.CanRespondQuery) (*dto.CanRespondDTO, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &dto.CanRespondDTO{ContractorID: q.ContractorID, CanRespond: true, OverallStatus: "approved"}, nil
}

type mockListUC struct {
	got usecases.ListVerificationsQuery
}

func (m *mockListUC) Execute(_ context.Context, q usecases.ListVerificationsQuery) (*usecases.ListVerificationsResult, error) {
	m.got = q
	return &usecases.ListVerificationsResult{Verifications: []*dto.VerificationDTO{}, Page: 1, PageSize: q.PageSize}, nil
}

func TestVerificationHandler_SecurityCheck(t *testing.T) {
	tests := []struct {
		name     string
		body     any
		ucErr    error
		status   int
		approved bool
	}{
		{"approve", map[string]any{"approved": true}, nil, http.StatusOK, true},
		{"reject", map[string]any{"approved": false, "notes": "criminal record"}, nil, http.StatusOK, false},
		{"missing decision", map[string]any{"notes": "?"}, nil, http.StatusBadRequest, false},
		{"wrong role", map[string]any{"approved": true}, errors.NewForbiddenError("permission denied"), http.StatusForbidden, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockSecurityCheckUC{err: tt.ucErr}
			handler := NewVerificationHandler(UseCases{SecurityCheck: mockUC}, testutil.NewMockLogger())

			c, w := testutil.NewTestContext(http.MethodPost, "/verifications/8/security-check", tt.body)
			testutil.SetAuthContext(c, 2, authorization.RoleSecurity)
			testutil.SetURLParam(c, "contractor_id", "8")

			handler.SecurityCheck(c)

			assert.Equal(t, tt.status, w.Code)
			if tt.status != http.StatusBadRequest {
				assert.Equal(t, uint(8), mockUC.got.ContractorID)
				assert.Equal(t, tt.approved, mockUC.got.Approved)
			}
		})
	}
}

func TestVerificationHandler_CanRespond(t *testing.T) {
	handler := NewVerificationHandler(UseCases{CanRespond: &mockCanRespondUC{}}, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/verifications/8/can-respond", nil)
	testutil.SetAuthContext(c, 8, authorization.RoleContractor)
	testutil.SetURLParam(c, "contractor_id", "8")

	handler.CanRespond(c)

	require.Equal(t, http.StatusOK, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.Contains(t, string(resp.Data), `"can_respond":true`)
}

func TestVerificationHandler_CanRespond_BadID(t *testing.T) {
	handler := NewVerificationHandler(UseCases{CanRespond: &mockCanRespondUC{}}, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/verifications/x/can-respond", nil)
	testutil.SetAuthContext(c, 8, authorization.RoleContractor)
	testutil.SetURLParam(c, "contractor_id", "x")

	handler.CanRespond(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerificationHandler_ListVerifications(t *testing.T) {
	mockUC := &mockListUC{}
	handler := NewVerificationHandler(UseCases{List: mockUC}, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/verifications", nil)
	testutil.SetAuthContext(c, 2, authorization.RoleHR)
	testutil.SetQueryParams(c, map[string]string{"status": "pending_security", "page_size": "5"})

	handler.ListVerifications(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pending_security", mockUC.got.Status)
	assert.Equal(t, 5, mockUC.got.PageSize)
}

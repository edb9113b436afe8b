package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		wantType ErrorType
		wantCode int
	}{
		{"validation", NewValidationError("title is required"), ErrorTypeValidation, http.StatusBadRequest},
		{"not found", NewNotFoundError("request not found"), ErrorTypeNotFound, http.StatusNotFound},
		{"forbidden", NewForbiddenError("not the owning manager"), ErrorTypeForbidden, http.StatusForbidden},
		{"invalid transition", NewInvalidTransitionError("contractor is not verified"), ErrorTypeInvalidTransition, http.StatusBadRequest},
		{"conflict", NewConflictError("already responded"), ErrorTypeConflict, http.StatusConflict},
		{"internal", NewInternalError("failed to save"), ErrorTypeInternal, http.StatusInternalServerError},
		{"token expired", NewTokenExpiredError(), ErrorTypeTokenExpired, http.StatusUnauthorized},
		{"account inactive", NewAccountInactiveError(), ErrorTypeAccountInactive, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.err.Type)
			assert.Equal(t, tt.wantCode, tt.err.Code)
		})
	}
}

func TestAppError_Error(t *testing.T) {
	assert.Equal(t, "not_found: request not found", NewNotFoundError("request not found").Error())
	assert.Equal(t, "forbidden: denied (role customer)", NewForbiddenError("denied", "role customer").Error())
}

func TestTypePredicates_SeeThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("assign contractor: %w", NewInvalidTransitionError("contractor is not verified"))

	assert.True(t, IsInvalidTransitionError(wrapped))
	assert.False(t, IsForbiddenError(wrapped))
	assert.True(t, IsForbiddenError(NewForbiddenError("x")))
	assert.True(t, IsNotFoundError(NewNotFoundError("x")))
	assert.False(t, IsAppError(fmt.Errorf("plain")))
}

func TestIsDuplicateError(t *testing.T) {
	assert.True(t, IsDuplicateError(fmt.Errorf("Error 1062: Duplicate entry '1-2' for key 'uk_response'")))
	assert.True(t, IsDuplicateError(fmt.Errorf("UNIQUE constraint failed: contractor_responses.request_id")))
	assert.True(t, IsDuplicateError(fmt.Errorf("ERROR: duplicate key value violates unique constraint")))
	assert.False(t, IsDuplicateError(nil))
	assert.False(t, IsDuplicateError(fmt.Errorf("connection reset")))
}

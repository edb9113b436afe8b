package errors

import "net/http"

// Authentication-specific error types
const (
	ErrorTypeTokenExpired    ErrorType = "token_expired"
	ErrorTypeTokenInvalid    ErrorType = "token_invalid"
	ErrorTypeAccountInactive ErrorType = "account_inactive"
)

// NewTokenExpiredError is returned when the bearer token is past its expiry.
func NewTokenExpiredError() *AppError {
	return newAppError(ErrorTypeTokenExpired, http.StatusUnauthorized, "access token expired", nil)
}

// NewTokenInvalidError is returned for malformed or badly signed tokens.
func NewTokenInvalidError(details ...string) *AppError {
	return newAppError(ErrorTypeTokenInvalid, http.StatusUnauthorized, "invalid access token", details)
}

// NewAccountInactiveError is returned when a deactivated account calls the API.
func NewAccountInactiveError() *AppError {
	return newAppError(ErrorTypeAccountInactive, http.StatusForbidden, "account is deactivated", nil)
}

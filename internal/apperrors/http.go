package apperrors

import (
	"errors"
	"net/http"
)

// statusMapping lists the sentinels in match order with their HTTP status and client message.
var statusMapping = []struct {
	err     error
	code    int
	message string
}{
	{ErrMissingToken, http.StatusUnauthorized, "Unauthorized - no token provided"},
	{ErrInvalidToken, http.StatusUnauthorized, "Unauthorized - invalid token"},
	{ErrSessionSuperseded, http.StatusUnauthorized, "You have been logged out because you logged in on another device"},
	{ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
	{ErrUnauthorized, http.StatusUnauthorized, "Unauthorized"},
	{ErrNotVerified, http.StatusForbidden, "Please verify your email first"},
	{ErrForbidden, http.StatusForbidden, "Access denied"},
	{ErrUserNotFound, http.StatusNotFound, "User not found"},
	{ErrNotFound, http.StatusNotFound, "Resource not found"},
	{ErrAlreadyVerified, http.StatusBadRequest, "User already verified"},
	{ErrInvalidOrExpiredCode, http.StatusBadRequest, "Invalid or expired code"},
	{ErrNoEmailFromProvider, http.StatusBadRequest, "No email address available from the identity provider"},
	{ErrValidation, http.StatusBadRequest, "Invalid input"},
	{ErrDuplicate, http.StatusConflict, "Resource already exists"},
}

// HTTPStatus resolves the status code and client-safe message of err.
// An AppError anywhere in the chain wins; unknown errors map to 500 with a generic message.
func HTTPStatus(err error) (int, string) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code, appErr.Message
	}
	for _, m := range statusMapping {
		if errors.Is(err, m.err) {
			return m.code, m.message
		}
	}
	return http.StatusInternalServerError, "Server error"
}

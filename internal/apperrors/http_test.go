package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"app error wins", fmt.Errorf("wrapped: %w", NewConflictError("Username already in use")), http.StatusConflict, "Username already in use"},
		{"bad request", NewBadRequestError("Email is required."), http.StatusBadRequest, "Email is required."},
		{"superseded", fmt.Errorf("ctx: %w", ErrSessionSuperseded), http.StatusUnauthorized, "You have been logged out because you logged in on another device"},
		{"invalid token", fmt.Errorf("%w: token is expired", ErrInvalidToken), http.StatusUnauthorized, "Unauthorized - invalid token"},
		{"not verified", ErrNotVerified, http.StatusForbidden, "Please verify your email first"},
		{"user not found", ErrUserNotFound, http.StatusNotFound, "User not found"},
		{"expired code", ErrInvalidOrExpiredCode, http.StatusBadRequest, "Invalid or expired code"},
		{"duplicate", ErrDuplicate, http.StatusConflict, "Resource already exists"},
		{"unknown", errors.New("connection reset by peer"), http.StatusInternalServerError, "Server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, msg := HTTPStatus(tt.err)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

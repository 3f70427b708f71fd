package apperrors

import (
	"errors"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized is the generic authentication failure.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the caller is authenticated but lacks the required role.
var ErrForbidden = errors.New("forbidden")

// ErrInvalidCredentials is returned for an unknown identifier or a wrong password.
// Both cases share one error so the response does not reveal which one happened.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Session guard failures.
var (
	ErrMissingToken      = errors.New("no session token provided")
	ErrInvalidToken      = errors.New("invalid or expired session token")
	ErrUserNotFound      = errors.New("user not found")
	ErrSessionSuperseded = errors.New("user logged in on another device")
	ErrNotVerified       = errors.New("email address not verified")
)

// One-time code and OAuth failures.
var (
	ErrAlreadyVerified      = errors.New("user already verified")
	ErrInvalidOrExpiredCode = errors.New("invalid or expired code")
	ErrNoEmailFromProvider  = errors.New("identity provider returned no email")
)

// AppError is an error that carries the HTTP status it should be reported with.
type AppError struct {
	Code    int    `json:"-"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewBadRequestError creates a 400 AppError wrapping ErrValidation.
func NewBadRequestError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message, ErrValidation)
}

// NewConflictError creates a 409 AppError wrapping ErrDuplicate.
func NewConflictError(message string) *AppError {
	return NewAppError(http.StatusConflict, message, ErrDuplicate)
}

// NewInternalServerError creates a 500 AppError.
func NewInternalServerError(message string) *AppError {
	return NewAppError(http.StatusInternalServerError, message, nil)
}

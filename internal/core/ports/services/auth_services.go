package services

import (
	"context"
	"time"

	"github.com/freshmanexams/fe_backend/internal/core/domain"
)

// TokenSvcFacade issues and parses signed session tokens. It performs no I/O.
type TokenSvcFacade interface {
	// IssueSessionToken signs a token bound to userID and returns it with its expiry.
	IssueSessionToken(ctx context.Context, userID string) (string, time.Time, error)
	// ParseSessionToken verifies signature and expiry and returns the user ID.
	ParseSessionToken(ctx context.Context, token string) (string, error)
	// TTL is the lifetime of every issued token.
	TTL() time.Duration
}

// SessionSvcFacade enforces the one-active-session-per-account policy.
type SessionSvcFacade interface {
	// Authenticate resolves the user behind token. The token must be the one
	// currently stored on the user record.
	Authenticate(ctx context.Context, token string) (*domain.User, error)
	// AuthenticateVerified is Authenticate plus a verified-email requirement.
	AuthenticateVerified(ctx context.Context, token string) (*domain.User, error)
	// StartSession issues a token and stores it as the user's only valid session.
	StartSession(ctx context.Context, user *domain.User) (*domain.Session, error)
	// EndSession clears the stored session while it still equals token.
	EndSession(ctx context.Context, userID string, token string) error
}

// VerificationSvcFacade runs the email-verification one-time-code flow.
type VerificationSvcFacade interface {
	// AssignCode sets a fresh code and expiry on user without persisting it.
	AssignCode(ctx context.Context, user *domain.User) error
	// DeliverCode sends the stored code and reports whether delivery succeeded.
	DeliverCode(ctx context.Context, user *domain.User) bool
	// ResendCode redelivers an unexpired code or mints a new one.
	ResendCode(ctx context.Context, userID string) (bool, error)
	// Verify consumes code, marks its owner verified and starts a session.
	Verify(ctx context.Context, code string) (*domain.User, *domain.Session, error)
}

// PasswordResetSvcFacade runs the password-reset one-time-token flow.
type PasswordResetSvcFacade interface {
	// RequestReset never reveals whether email belongs to an account.
	RequestReset(ctx context.Context, email string) error
	// ResetPassword consumes token and replaces the password of its owner.
	ResetPassword(ctx context.Context, token string, newPassword string) error
}

// GoogleOAuthHandlerSvcFacade defines the interface for Google OAuth operations.
type GoogleOAuthHandlerSvcFacade interface {
	// GenerateStateString creates a secure random string to be used as a CSRF token for OAuth flow.
	GenerateStateString(ctx context.Context) (string, error)
	// GetGoogleLoginURL returns the URL to redirect the user to for Google login.
	GetGoogleLoginURL(ctx context.Context, state string) string
	// ResolveProfile exchanges an authorization code and returns the Google profile.
	ResolveProfile(ctx context.Context, code string) (*domain.GoogleUserInfo, error)
}

// OAuthBridgeSvc maps a federated identity onto a local account.
type OAuthBridgeSvc interface {
	SignInWithGoogle(ctx context.Context, profile *domain.GoogleUserInfo) (*domain.User, *domain.Session, error)
}

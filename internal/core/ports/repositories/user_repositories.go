package repositories

import (
	"context"
	"time"

	"github.com/freshmanexams/fe_backend/internal/core/domain"
)

// UserReader defines read operations for user data.
// Lookups that find nothing return apperrors.ErrNotFound.
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByUsername retrieves a user by exact username.
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// FindUserByEmail retrieves a user by exact email.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindUserByIdentifier retrieves a user whose username or email equals identifier.
	FindUserByIdentifier(ctx context.Context, identifier string) (*domain.User, error)

	// UsernameExists reports whether any user holds the username.
	UsernameExists(ctx context.Context, username string) (bool, error)

	// FindUsers retrieves a page of users ordered by creation time.
	FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error)

	// FindUsersByRole retrieves every user with the given role.
	FindUsersByRole(ctx context.Context, role domain.Role) ([]domain.User, error)

	// CountUsers returns the total and the verified number of users.
	CountUsers(ctx context.Context) (total int, verified int, err error)
}

// OneTimeCodeReader resolves users from their single-use codes.
type OneTimeCodeReader interface {
	// FindUserByVerificationCode returns the user holding code with an expiry after now.
	FindUserByVerificationCode(ctx context.Context, code string, now time.Time) (*domain.User, error)

	// FindUserByResetToken returns the user holding token with an expiry after now.
	FindUserByResetToken(ctx context.Context, token string, now time.Time) (*domain.User, error)
}

// UserWriter defines write operations for user data.
type UserWriter interface {
	// SaveUser persists a new user. Unique violations return apperrors.ErrDuplicate.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUser overwrites every mutable field of an existing user.
	UpdateUser(ctx context.Context, user domain.User) error
}

// SessionWriter persists the single session slot of a user.
type SessionWriter interface {
	// UpdateSessionToken replaces the stored session token and records the login time.
	UpdateSessionToken(ctx context.Context, userID string, token string, lastLogin time.Time) error

	// ClearSessionToken empties the slot only while it still holds token.
	ClearSessionToken(ctx context.Context, userID string, token string) error
}

// UserLifecycleManager defines operations for managing user lifecycle.
type UserLifecycleManager interface {
	// DeleteUser removes a user permanently.
	DeleteUser(ctx context.Context, userID string) error
}

// UserRepositoryFacade combines all user-related repository interfaces.
type UserRepositoryFacade interface {
	UserReader
	OneTimeCodeReader
	UserWriter
	SessionWriter
	UserLifecycleManager
}

package services

import (
	"context"

	"github.com/freshmanexams/fe_backend/internal/core/domain"
	"github.com/freshmanexams/fe_backend/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}

// UserAuthSvc defines the credential based account operations.
type UserAuthSvc interface {
	// Register creates an account. The boolean reports whether the
	// verification email was delivered; it is false for roles that skip verification.
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, bool, error)

	// Login authenticates by username or email and starts a new session,
	// superseding any previous one.
	Login(ctx context.Context, identifier, password string) (*domain.User, *domain.Session, error)
}

// UserProfileSvc defines self-service profile operations.
type UserProfileSvc interface {
	// UpdateProfile changes the username and/or password of userID.
	UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*domain.User, error)

	// DeleteAccount removes userID after re-checking password.
	DeleteAccount(ctx context.Context, userID string, password string) error
}

// UserAdminSvc defines operator-only user management.
type UserAdminSvc interface {
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error)
	CountUsers(ctx context.Context) (total int, verified int, err error)
	ListAdmins(ctx context.Context) ([]domain.User, error)
	SetVerified(ctx context.Context, username string, verified bool) (*domain.User, error)
	ResetPasswordByUsername(ctx context.Context, username, newPassword string) (*domain.User, error)
	DeleteUserByUsername(ctx context.Context, username string) error
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserAuthSvc
	UserProfileSvc
	UserAdminSvc
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/freshmanexams/fe_backend/internal/apperrors"
	"github.com/freshmanexams/fe_backend/internal/core/domain"
	portsrepo "github.com/freshmanexams/fe_backend/internal/core/ports/repositories"
	portssvc "github.com/freshmanexams/fe_backend/internal/core/ports/services"
	"github.com/freshmanexams/fe_backend/internal/dto"
	"github.com/freshmanexams/fe_backend/internal/utils"
	"github.com/google/uuid"
)

type userService struct {
	BaseService
	users        portsrepo.UserRepositoryFacade
	progress     portsrepo.ProgressRepositoryFacade
	sessions     portssvc.SessionSvcFacade
	verification portssvc.VerificationSvcFacade
}

func NewUserService(
	users portsrepo.UserRepositoryFacade,
	progress portsrepo.ProgressRepositoryFacade,
	sessions portssvc.SessionSvcFacade,
	verification portssvc.VerificationSvcFacade,
	opts ...ServiceOption,
) portssvc.UserSvcFacade {
	return &userService{
		BaseService:  newBaseService(opts...),
		users:        users,
		progress:     progress,
		sessions:     sessions,
		verification: verification,
	}
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// normalizeIdentifier lower-cases identifiers that look like emails.
// Usernames cannot contain '@' and keep their case.
func normalizeIdentifier(identifier string) string {
	identifier = strings.TrimSpace(identifier)
	if strings.Contains(identifier, "@") {
		return NormalizeEmail(identifier)
	}
	return identifier
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by ID in service: %w", err)
	}
	return user, nil
}

func (s *userService) findByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.users.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return user, nil
}

// Register creates a local account. Roles that require verification start
// unverified with a fresh code; privileged roles are verified on creation.
func (s *userService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, bool, error) {
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return nil, false, apperrors.NewBadRequestError("Invalid role.")
	}
	policy := role.Policy()

	username := strings.TrimSpace(req.Username)
	email := NormalizeEmail(req.Email)
	if username == "" || req.Password == "" || (policy.RequiresEmail && email == "") {
		if policy.RequiresEmail {
			return nil, false, apperrors.NewBadRequestError("Username, email, and password are required.")
		}
		return nil, false, apperrors.NewBadRequestError("Username and password are required.")
	}

	exists, err := s.users.UsernameExists(ctx, username)
	if err != nil {
		return nil, false, fmt.Errorf("failed to check username: %w", err)
	}
	if !exists && email != "" {
		_, err = s.users.FindUserByEmail(ctx, email)
		switch {
		case err == nil:
			exists = true
		case !errors.Is(err, apperrors.ErrNotFound):
			return nil, false, fmt.Errorf("failed to check email: %w", err)
		}
	}
	if exists {
		return nil, false, apperrors.NewConflictError("A user with that email or username already exists.")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, false, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     username,
		Email:        email,
		AuthProvider: domain.ProviderLocal,
		PasswordHash: &hash,
		IsVerified:   !policy.RequiresVerification,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if policy.RequiresVerification {
		if err := s.verification.AssignCode(ctx, &user); err != nil {
			return nil, false, err
		}
	}

	if err := s.users.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, false, apperrors.NewConflictError("A user with that email or username already exists.")
		}
		s.LogError(ctx, err, "Failed to save registered user")
		return nil, false, fmt.Errorf("failed to create user in service: %w", err)
	}

	emailSent := false
	if policy.RequiresVerification {
		emailSent = s.verification.DeliverCode(ctx, &user)
	}

	s.LogInfo(ctx, "User registered",
		slog.String("user_id", user.UserID),
		slog.String("role", string(user.Role)),
		slog.Bool("email_sent", emailSent))
	return &user, emailSent, nil
}

// Login checks the password before the verified flag, so only the holder of
// the credentials learns that an account is unverified.
func (s *userService) Login(ctx context.Context, identifier, password string) (*domain.User, *domain.Session, error) {
	user, err := s.users.FindUserByIdentifier(ctx, normalizeIdentifier(identifier))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, apperrors.ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !user.HasPassword() || !utils.CheckPasswordHash(password, *user.PasswordHash) {
		s.LogInfo(ctx, "Login rejected: bad credentials", slog.String("user_id", user.UserID))
		return nil, nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsVerified {
		return nil, nil, apperrors.ErrNotVerified
	}

	session, err := s.sessions.StartSession(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	s.LogInfo(ctx, "User logged in", slog.String("user_id", user.UserID))
	return user, session, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*domain.User, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Username != nil {
		newName := strings.TrimSpace(*req.Username)
		if newName != "" && newName != user.Username {
			exists, err := s.users.UsernameExists(ctx, newName)
			if err != nil {
				return nil, fmt.Errorf("failed to check username: %w", err)
			}
			if exists {
				return nil, apperrors.NewConflictError("Username already in use")
			}
			user.Username = newName
			updated = true
		}
	}

	if req.NewPassword != "" {
		if req.CurrentPassword == "" {
			return nil, apperrors.NewBadRequestError("Current password is required to set a new password")
		}
		if !user.HasPassword() || !utils.CheckPasswordHash(req.CurrentPassword, *user.PasswordHash) {
			return nil, apperrors.ErrInvalidCredentials
		}
		hash, err := utils.HashPassword(req.NewPassword)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = &hash
		updated = true
	}

	if !updated {
		return nil, apperrors.NewBadRequestError("No changes detected")
	}

	user.UpdatedAt = s.Now()
	if err := s.users.UpdateUser(ctx, *user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError("Username already in use")
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	s.LogInfo(ctx, "Profile updated", slog.String("user_id", user.UserID))
	return user, nil
}

func (s *userService) DeleteAccount(ctx context.Context, userID string, password string) error {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if password == "" {
		return apperrors.NewBadRequestError("Password is required to delete account")
	}
	if !user.HasPassword() || !utils.CheckPasswordHash(password, *user.PasswordHash) {
		return apperrors.ErrInvalidCredentials
	}
	return s.deleteUser(ctx, user)
}

func (s *userService) deleteUser(ctx context.Context, user *domain.User) error {
	if err := s.users.DeleteUser(ctx, user.UserID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if err := s.progress.DeleteProgressByUserName(ctx, user.Username); err != nil {
		s.LogWarn(ctx, err, "Failed to delete progress of removed user", slog.String("user_id", user.UserID))
	}
	s.LogInfo(ctx, "User deleted", slog.String("user_id", user.UserID))
	return nil
}

func (s *userService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	users, err := s.users.FindUsers(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users in service: %w", err)
	}
	return users, nil
}

func (s *userService) CountUsers(ctx context.Context) (int, int, error) {
	total, verified, err := s.users.CountUsers(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count users in service: %w", err)
	}
	return total, verified, nil
}

func (s *userService) ListAdmins(ctx context.Context) ([]domain.User, error) {
	admins, err := s.users.FindUsersByRole(ctx, domain.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to list admins in service: %w", err)
	}
	return admins, nil
}

func (s *userService) SetVerified(ctx context.Context, username string, verified bool) (*domain.User, error) {
	user, err := s.findByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	user.IsVerified = verified
	if verified {
		user.ClearVerificationCode()
	}
	user.UpdatedAt = s.Now()
	if err := s.users.UpdateUser(ctx, *user); err != nil {
		return nil, fmt.Errorf("failed to update verification status: %w", err)
	}
	s.LogInfo(ctx, "Verification status changed by operator",
		slog.String("user_id", user.UserID), slog.Bool("is_verified", verified))
	return user, nil
}

func (s *userService) ResetPasswordByUsername(ctx context.Context, username, newPassword string) (*domain.User, error) {
	if newPassword == "" {
		return nil, apperrors.NewBadRequestError("All fields are required")
	}
	user, err := s.findByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = &hash
	user.ClearResetToken()
	user.UpdatedAt = s.Now()
	if err := s.users.UpdateUser(ctx, *user); err != nil {
		return nil, fmt.Errorf("failed to store new password: %w", err)
	}
	s.LogInfo(ctx, "Password reset by operator", slog.String("user_id", user.UserID))
	return user, nil
}

func (s *userService) DeleteUserByUsername(ctx context.Context, username string) error {
	user, err := s.findByUsername(ctx, username)
	if err != nil {
		return err
	}
	return s.deleteUser(ctx, user)
}

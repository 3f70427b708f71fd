package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/freshmanexams/fe_backend/internal/apperrors"
	portsrepo "github.com/freshmanexams/fe_backend/internal/core/ports/repositories"
	portssvc "github.com/freshmanexams/fe_backend/internal/core/ports/services"
	"github.com/freshmanexams/fe_backend/internal/utils"
)

const resetTokenBytes = 20

// PasswordResetConfig configures the reset link and token lifetime.
type PasswordResetConfig struct {
	ClientURL string
	TokenTTL  time.Duration
}

type passwordResetService struct {
	BaseService
	users  portsrepo.UserRepositoryFacade
	mailer portssvc.EmailSender
	cfg    PasswordResetConfig
}

func NewPasswordResetService(
	users portsrepo.UserRepositoryFacade,
	mailer portssvc.EmailSender,
	cfg PasswordResetConfig,
	opts ...ServiceOption,
) portssvc.PasswordResetSvcFacade {
	return &passwordResetService{BaseService: newBaseService(opts...), users: users, mailer: mailer, cfg: cfg}
}

// RequestReset returns nil both for unknown emails and for delivery failures.
func (s *passwordResetService) RequestReset(ctx context.Context, email string) error {
	email = NormalizeEmail(email)
	if email == "" {
		return apperrors.NewBadRequestError("Email is required.")
	}
	user, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "Password reset requested for unknown email")
			return nil
		}
		return fmt.Errorf("failed to look up user by email: %w", err)
	}

	token, err := utils.GenerateSecureRandomString(resetTokenBytes)
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	now := s.Now()
	user.SetResetToken(utils.HashToken(token), now.Add(s.cfg.TokenTTL))
	user.UpdatedAt = now
	if err := s.users.UpdateUser(ctx, *user); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	resetURL := fmt.Sprintf("%s/user/Reset-Password/%s", s.cfg.ClientURL, token)
	if err := s.mailer.SendPasswordResetEmail(ctx, user.Email, resetURL); err != nil {
		s.LogWarn(ctx, err, "Failed to send password reset email", slog.String("user_id", user.UserID))
		return nil
	}
	s.LogInfo(ctx, "Password reset email sent", slog.String("user_id", user.UserID))
	return nil
}

func (s *passwordResetService) ResetPassword(ctx context.Context, token string, newPassword string) error {
	if newPassword == "" {
		return apperrors.NewBadRequestError("New password is required.")
	}
	if token == "" {
		return apperrors.ErrInvalidOrExpiredCode
	}

	user, err := s.users.FindUserByResetToken(ctx, utils.HashToken(token), s.Now())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrInvalidOrExpiredCode
		}
		return fmt.Errorf("failed to look up reset token: %w", err)
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.PasswordHash = &hash
	user.ClearResetToken()
	user.UpdatedAt = s.Now()
	if err := s.users.UpdateUser(ctx, *user); err != nil {
		return fmt.Errorf("failed to store new password: %w", err)
	}

	if user.Email != "" {
		if err := s.mailer.SendResetSuccessEmail(ctx, user.Email); err != nil {
			s.LogWarn(ctx, err, "Failed to send reset confirmation email", slog.String("user_id", user.UserID))
		}
	}
	s.LogInfo(ctx, "Password reset completed", slog.String("user_id", user.UserID))
	return nil
}

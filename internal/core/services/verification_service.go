package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/freshmanexams/fe_backend/internal/apperrors"
	"github.com/freshmanexams/fe_backend/internal/core/domain"
	portsrepo "github.com/freshmanexams/fe_backend/internal/core/ports/repositories"
	portssvc "github.com/freshmanexams/fe_backend/internal/core/ports/services"
	"github.com/freshmanexams/fe_backend/internal/utils"
)

const (
	verificationCodeDigits = 6
	maxCodeMintAttempts    = 5
)

type verificationService struct {
	BaseService
	users    portsrepo.UserRepositoryFacade
	sessions portssvc.SessionSvcFacade
	mailer   portssvc.EmailSender
	codeTTL  time.Duration
}

func NewVerificationService(
	users portsrepo.UserRepositoryFacade,
	sessions portssvc.SessionSvcFacade,
	mailer portssvc.EmailSender,
	codeTTL time.Duration,
	opts ...ServiceOption,
) portssvc.VerificationSvcFacade {
	return &verificationService{
		BaseService: newBaseService(opts...),
		users:       users,
		sessions:    sessions,
		mailer:      mailer,
		codeTTL:     codeTTL,
	}
}

// AssignCode mints a code no other user currently holds, so a lookup by
// code always resolves to a single account.
func (s *verificationService) AssignCode(ctx context.Context, user *domain.User) error {
	now := s.Now()
	for attempt := 0; attempt < maxCodeMintAttempts; attempt++ {
		code, err := utils.GenerateNumericCode(verificationCodeDigits)
		if err != nil {
			return fmt.Errorf("failed to generate verification code: %w", err)
		}

		holder, err := s.users.FindUserByVerificationCode(ctx, code, now)
		if errors.Is(err, apperrors.ErrNotFound) || (err == nil && holder.UserID == user.UserID) {
			user.SetVerificationCode(code, now.Add(s.codeTTL))
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to check verification code uniqueness: %w", err)
		}
		s.LogDebug(ctx, "Verification code collision, retrying", slog.Int("attempt", attempt+1))
	}
	return fmt.Errorf("could not mint a unique verification code after %d attempts", maxCodeMintAttempts)
}

func (s *verificationService) DeliverCode(ctx context.Context, user *domain.User) bool {
	if user.Email == "" || user.VerificationCode == nil {
		return false
	}
	if err := s.mailer.SendVerificationEmail(ctx, user.Email, *user.VerificationCode); err != nil {
		s.LogWarn(ctx, err, "Failed to send verification email", slog.String("user_id", user.UserID))
		return false
	}
	return true
}

// ResendCode reuses an unexpired code so an email already in flight stays valid.
func (s *verificationService) ResendCode(ctx context.Context, userID string) (bool, error) {
	user, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, apperrors.ErrUserNotFound
		}
		return false, fmt.Errorf("failed to load user: %w", err)
	}
	if user.IsVerified {
		return false, apperrors.ErrAlreadyVerified
	}

	if !user.HasVerificationCode(s.Now()) {
		if err := s.AssignCode(ctx, user); err != nil {
			return false, err
		}
		user.UpdatedAt = s.Now()
		if err := s.users.UpdateUser(ctx, *user); err != nil {
			return false, fmt.Errorf("failed to store verification code: %w", err)
		}
		s.LogInfo(ctx, "Issued new verification code", slog.String("user_id", user.UserID))
	}

	return s.DeliverCode(ctx, user), nil
}

func (s *verificationService) Verify(ctx context.Context, code string) (*domain.User, *domain.Session, error) {
	if code == "" {
		return nil, nil, apperrors.ErrInvalidOrExpiredCode
	}

	user, err := s.users.FindUserByVerificationCode(ctx, code, s.Now())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, apperrors.ErrInvalidOrExpiredCode
		}
		return nil, nil, fmt.Errorf("failed to look up verification code: %w", err)
	}

	user.IsVerified = true
	user.ClearVerificationCode()
	user.UpdatedAt = s.Now()
	if err := s.users.UpdateUser(ctx, *user); err != nil {
		return nil, nil, fmt.Errorf("failed to mark user verified: %w", err)
	}

	session, err := s.sessions.StartSession(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	if user.Email != "" {
		if err := s.mailer.SendWelcomeEmail(ctx, user.Email, user.Username); err != nil {
			s.LogWarn(ctx, err, "Failed to send welcome email", slog.String("user_id", user.UserID))
		}
	}

	s.LogInfo(ctx, "User verified email", slog.String("user_id", user.UserID))
	return user, session, nil
}

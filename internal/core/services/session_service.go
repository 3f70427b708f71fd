package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/freshmanexams/fe_backend/internal/apperrors"
	"github.com/freshmanexams/fe_backend/internal/core/domain"
	portsrepo "github.com/freshmanexams/fe_backend/internal/core/ports/repositories"
	portssvc "github.com/freshmanexams/fe_backend/internal/core/ports/services"
	"github.com/freshmanexams/fe_backend/internal/utils"
)

// sessionService enforces a single active session per account. The user
// record stores the digest of the only token that is currently accepted.
type sessionService struct {
	BaseService
	users  portsrepo.UserRepositoryFacade
	tokens portssvc.TokenSvcFacade
}

func NewSessionService(users portsrepo.UserRepositoryFacade, tokens portssvc.TokenSvcFacade, opts ...ServiceOption) portssvc.SessionSvcFacade {
	return &sessionService{BaseService: newBaseService(opts...), users: users, tokens: tokens}
}

func (s *sessionService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, apperrors.ErrMissingToken
	}

	userID, err := s.tokens.ParseSessionToken(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load session user: %w", err)
	}

	if !utils.CompareTokenHash(token, user.SessionToken) {
		s.LogInfo(ctx, "Rejected superseded session token", slog.String("user_id", user.UserID))
		return nil, apperrors.ErrSessionSuperseded
	}
	return user, nil
}

func (s *sessionService) AuthenticateVerified(ctx context.Context, token string) (*domain.User, error) {
	user, err := s.Authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	if !user.IsVerified {
		return nil, apperrors.ErrNotVerified
	}
	return user, nil
}

// StartSession replaces whatever session the user had. Earlier tokens stop
// being accepted as soon as the new digest is stored.
func (s *sessionService) StartSession(ctx context.Context, user *domain.User) (*domain.Session, error) {
	token, expiresAt, err := s.tokens.IssueSessionToken(ctx, user.UserID)
	if err != nil {
		s.LogError(ctx, err, "Failed to issue session token", slog.String("user_id", user.UserID))
		return nil, err
	}

	now := s.Now()
	digest := utils.HashToken(token)
	if err := s.users.UpdateSessionToken(ctx, user.UserID, digest, now); err != nil {
		return nil, fmt.Errorf("failed to store session token: %w", err)
	}

	user.SessionToken = digest
	user.LastLogin = &now
	user.UpdatedAt = now
	return &domain.Session{Token: token, ExpiresAt: expiresAt}, nil
}

func (s *sessionService) EndSession(ctx context.Context, userID string, token string) error {
	if err := s.users.ClearSessionToken(ctx, userID, utils.HashToken(token)); err != nil {
		return fmt.Errorf("failed to clear session token: %w", err)
	}
	return nil
}

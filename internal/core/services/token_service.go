package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/freshmanexams/fe_backend/internal/apperrors"
	portssvc "github.com/freshmanexams/fe_backend/internal/core/ports/services"
	"github.com/freshmanexams/fe_backend/internal/utils"
	"github.com/golang-jwt/jwt/v5"
)

// TokenConfig holds the signing parameters of session tokens.
type TokenConfig struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

// tokenService implements the TokenSvcFacade with HS256 signed JWTs.
type tokenService struct {
	BaseService
	cfg TokenConfig
}

// NewTokenService creates a new instance of tokenService. An empty secret is rejected.
func NewTokenService(cfg TokenConfig, opts ...ServiceOption) (portssvc.TokenSvcFacade, error) {
	if cfg.Secret == "" {
		return nil, errors.New("token service: signing secret is empty")
	}
	if cfg.TTL <= 0 {
		return nil, errors.New("token service: ttl must be positive")
	}
	return &tokenService{BaseService: newBaseService(opts...), cfg: cfg}, nil
}

// IssueSessionToken creates a new JWT for the given user.
func (s *tokenService) IssueSessionToken(ctx context.Context, userID string) (string, time.Time, error) {
	now := s.Now()
	token, err := utils.GenerateJWT(userID, s.cfg.Secret, s.cfg.TTL, s.cfg.Issuer, now)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}
	// Claims carry second precision.
	return token, now.Add(s.cfg.TTL).Truncate(time.Second), nil
}

// ParseSessionToken validates signature, expiry and issuer and returns the subject.
func (s *tokenService) ParseSessionToken(ctx context.Context, token string) (string, error) {
	claims, err := utils.ParseAndValidateJWT(token, s.cfg.Secret,
		jwt.WithIssuer(s.cfg.Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.Now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", apperrors.ErrInvalidToken)
	}
	return claims.Subject, nil
}

func (s *tokenService) TTL() time.Duration {
	return s.cfg.TTL
}

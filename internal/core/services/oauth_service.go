package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/freshmanexams/fe_backend/internal/apperrors"
	"github.com/freshmanexams/fe_backend/internal/core/domain"
	portsrepo "github.com/freshmanexams/fe_backend/internal/core/ports/repositories"
	portssvc "github.com/freshmanexams/fe_backend/internal/core/ports/services"
	"github.com/freshmanexams/fe_backend/internal/utils"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
	googleoauth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

// --- GoogleOAuthHandlerSvcFacade Implementation ---

// GoogleOAuthConfig holds the OAuth client registration.
type GoogleOAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// googleOAuthHandlerService implements the GoogleOAuthHandlerSvcFacade.
type googleOAuthHandlerService struct {
	BaseService
	clientID string
	// oauth2Config is configured at initialization time
	oauth2Config *oauth2.Config
}

// NewGoogleOAuthHandlerService creates a new instance of googleOAuthHandlerService.
func NewGoogleOAuthHandlerService(cfg GoogleOAuthConfig, opts ...ServiceOption) portssvc.GoogleOAuthHandlerSvcFacade {
	return &googleOAuthHandlerService{
		BaseService: newBaseService(opts...),
		clientID:    cfg.ClientID,
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"openid", "https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

// GenerateStateString creates a secure random string to be used as a CSRF token for OAuth flow.
func (s *googleOAuthHandlerService) GenerateStateString(ctx context.Context) (string, error) {
	// 16 bytes -> 32 char hex string
	state, err := utils.GenerateSecureRandomString(16)
	if err != nil {
		return "", fmt.Errorf("failed to generate state string for OAuth: %w", err)
	}
	return state, nil
}

// GetGoogleLoginURL returns the URL to redirect the user to for Google login.
func (s *googleOAuthHandlerService) GetGoogleLoginURL(ctx context.Context, state string) string {
	return s.oauth2Config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// ResolveProfile exchanges the authorization code and reads the profile from
// the validated ID token, falling back to the userinfo endpoint when the token
// carries no email.
func (s *googleOAuthHandlerService) ResolveProfile(ctx context.Context, code string) (*domain.GoogleUserInfo, error) {
	if s.clientID == "" {
		return nil, errors.New("google client ID is not configured in the application")
	}

	token, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange oauth code for token: %w", err)
	}

	if rawIDToken, ok := token.Extra("id_token").(string); ok && rawIDToken != "" {
		payload, err := idtoken.Validate(ctx, rawIDToken, s.clientID)
		if err != nil {
			return nil, fmt.Errorf("google ID token validation failed: %w", err)
		}
		profile := profileFromIDToken(payload)
		if profile.Email != "" {
			return profile, nil
		}
		s.LogDebug(ctx, "ID token carried no email, falling back to userinfo")
	}

	return s.fetchUserInfo(ctx, token)
}

func profileFromIDToken(payload *idtoken.Payload) *domain.GoogleUserInfo {
	claimString := func(key string) string {
		v, _ := payload.Claims[key].(string)
		return v
	}
	verified, _ := payload.Claims["email_verified"].(bool)
	return &domain.GoogleUserInfo{
		ID:            payload.Subject,
		Email:         claimString("email"),
		VerifiedEmail: verified,
		Name:          claimString("name"),
		Picture:       claimString("picture"),
	}
}

func (s *googleOAuthHandlerService) fetchUserInfo(ctx context.Context, token *oauth2.Token) (*domain.GoogleUserInfo, error) {
	svc, err := googleoauth2.NewService(ctx, option.WithTokenSource(s.oauth2Config.TokenSource(ctx, token)))
	if err != nil {
		return nil, fmt.Errorf("failed to create google oauth2 client: %w", err)
	}
	info, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get user info from google: %w", err)
	}
	verified := info.VerifiedEmail != nil && *info.VerifiedEmail
	return &domain.GoogleUserInfo{
		ID:            info.Id,
		Email:         info.Email,
		VerifiedEmail: verified,
		Name:          info.Name,
		Picture:       info.Picture,
	}, nil
}

// --- OAuthBridgeSvc Implementation ---

const (
	maxUsernameBaseLen   = 20
	maxUsernameSuffixes  = 1000
	maxOAuthSaveAttempts = 3
)

type oauthBridgeService struct {
	BaseService
	users    portsrepo.UserRepositoryFacade
	progress portsrepo.ProgressRepositoryFacade
	sessions portssvc.SessionSvcFacade
}

func NewOAuthBridgeService(
	users portsrepo.UserRepositoryFacade,
	progress portsrepo.ProgressRepositoryFacade,
	sessions portssvc.SessionSvcFacade,
	opts ...ServiceOption,
) portssvc.OAuthBridgeSvc {
	return &oauthBridgeService{BaseService: newBaseService(opts...), users: users, progress: progress, sessions: sessions}
}

// SignInWithGoogle links the profile to the account owning its email, or
// creates a verified passwordless account, and starts a session either way.
func (s *oauthBridgeService) SignInWithGoogle(ctx context.Context, profile *domain.GoogleUserInfo) (*domain.User, *domain.Session, error) {
	if profile == nil || strings.TrimSpace(profile.Email) == "" {
		return nil, nil, apperrors.ErrNoEmailFromProvider
	}
	if !profile.VerifiedEmail {
		return nil, nil, fmt.Errorf("%w: google reports the email as unverified", apperrors.ErrNoEmailFromProvider)
	}
	email := NormalizeEmail(profile.Email)

	user, err := s.users.FindUserByEmail(ctx, email)
	switch {
	case err == nil:
		if err := s.linkExisting(ctx, user, profile); err != nil {
			return nil, nil, err
		}
	case errors.Is(err, apperrors.ErrNotFound):
		user, err = s.createFromProfile(ctx, email, profile)
		if err != nil {
			return nil, nil, err
		}
	default:
		return nil, nil, fmt.Errorf("failed to look up user by email: %w", err)
	}

	session, err := s.sessions.StartSession(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	s.LogInfo(ctx, "User signed in with Google", slog.String("user_id", user.UserID))
	return user, session, nil
}

func (s *oauthBridgeService) linkExisting(ctx context.Context, user *domain.User, profile *domain.GoogleUserInfo) error {
	if user.GoogleID == nil {
		googleID := profile.ID
		user.GoogleID = &googleID
		user.AuthProvider = domain.ProviderGoogle
		user.Role = domain.RoleUser
		user.AdoptPhoto(profile.Picture)
		s.LogInfo(ctx, "Linked Google account to existing user", slog.String("user_id", user.UserID))
	}
	user.IsVerified = true
	user.ClearVerificationCode()
	user.UpdatedAt = s.Now()
	if err := s.users.UpdateUser(ctx, *user); err != nil {
		return fmt.Errorf("failed to link google account: %w", err)
	}
	return nil
}

func (s *oauthBridgeService) createFromProfile(ctx context.Context, email string, profile *domain.GoogleUserInfo) (*domain.User, error) {
	base := usernameBase(email, profile.Name)
	googleID := profile.ID

	// A concurrent signup can take the chosen username between the check and
	// the insert, so a duplicate triggers a fresh pick.
	var lastErr error
	for attempt := 0; attempt < maxOAuthSaveAttempts; attempt++ {
		username, err := s.uniqueUsername(ctx, base)
		if err != nil {
			return nil, err
		}
		now := s.Now()
		user := domain.User{
			UserID:       uuid.NewString(),
			Username:     username,
			Email:        email,
			GoogleID:     &googleID,
			AuthProvider: domain.ProviderGoogle,
			IsVerified:   true,
			Role:         domain.RoleUser,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		user.AdoptPhoto(profile.Picture)
		lastErr = s.users.SaveUser(ctx, user)
		if lastErr == nil {
			s.initProgress(ctx, username)
			s.LogInfo(ctx, "Created user from Google profile", slog.String("user_id", user.UserID))
			return &user, nil
		}
		if !errors.Is(lastErr, apperrors.ErrDuplicate) {
			break
		}
	}
	return nil, fmt.Errorf("failed to create user from google profile: %w", lastErr)
}

func (s *oauthBridgeService) initProgress(ctx context.Context, username string) {
	now := s.Now()
	err := s.progress.CreateProgress(ctx, domain.ProgressRecord{
		ID:        uuid.NewString(),
		UserName:  username,
		Entries:   []domain.ProgressEntry{},
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil && !errors.Is(err, apperrors.ErrDuplicate) {
		s.LogWarn(ctx, err, "Failed to initialise progress record", slog.String("username", username))
	}
}

// uniqueUsername returns base, base1, base2, ... whichever is free first.
func (s *oauthBridgeService) uniqueUsername(ctx context.Context, base string) (string, error) {
	for i := 0; i < maxUsernameSuffixes; i++ {
		candidate := base
		if i > 0 {
			candidate = base + strconv.Itoa(i)
		}
		exists, err := s.users.UsernameExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check username: %w", err)
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no free username for base %q", base)
}

// usernameBase derives a username stem from the email local part, falling
// back to the display name: lower-cased, [a-z0-9] only, at most 20 chars.
func usernameBase(email, displayName string) string {
	source := email
	if at := strings.Index(email, "@"); at >= 0 {
		source = email[:at]
	}
	base := sanitizeUsername(source)
	if base == "" {
		base = sanitizeUsername(displayName)
	}
	if base == "" {
		return "user"
	}
	return base
}

func sanitizeUsername(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			if b.Len() == maxUsernameBaseLen {
				break
			}
		}
	}
	return b.String()
}

package services

import (
	"fmt"

	portsrepo "github.com/freshmanexams/fe_backend/internal/core/ports/repositories"
	portssvc "github.com/freshmanexams/fe_backend/internal/core/ports/services"
	"github.com/freshmanexams/fe_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(
	cfg *config.Config,
	repos portsrepo.RepositoryProvider,
	mailer portssvc.EmailSender,
	opts ...ServiceOption,
) (*portssvc.ServiceContainer, error) {
	container := &portssvc.ServiceContainer{}

	tokens, err := NewTokenService(TokenConfig{
		Secret: cfg.JWTSecret,
		Issuer: cfg.JWTIssuer,
		TTL:    cfg.SessionTokenTTL,
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}
	container.Token = tokens

	// Session service first since every credential flow ends in a session
	container.Session = NewSessionService(repos.UserRepo, container.Token, opts...)
	container.Verification = NewVerificationService(repos.UserRepo, container.Session, mailer, cfg.VerificationCodeTTL, opts...)
	container.PasswordReset = NewPasswordResetService(repos.UserRepo, mailer, PasswordResetConfig{
		ClientURL: cfg.ClientURL,
		TokenTTL:  cfg.ResetTokenTTL,
	}, opts...)
	container.User = NewUserService(repos.UserRepo, repos.ProgressRepo, container.Session, container.Verification, opts...)

	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(GoogleOAuthConfig{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleRedirectURL,
	}, opts...)
	container.OAuthBridge = NewOAuthBridgeService(repos.UserRepo, repos.ProgressRepo, container.Session, opts...)

	container.Progress = NewProgressService(repos.ProgressRepo, opts...)
	container.Views = NewViewService(repos.ViewRepo, opts...)
	container.Contact = NewContactService(mailer, cfg.ContactInboxEmail, opts...)

	return container, nil
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.UserSvcFacade               = (*userService)(nil)
	_ portssvc.TokenSvcFacade              = (*tokenService)(nil)
	_ portssvc.SessionSvcFacade            = (*sessionService)(nil)
	_ portssvc.VerificationSvcFacade       = (*verificationService)(nil)
	_ portssvc.PasswordResetSvcFacade      = (*passwordResetService)(nil)
	_ portssvc.GoogleOAuthHandlerSvcFacade = (*googleOAuthHandlerService)(nil)
	_ portssvc.OAuthBridgeSvc              = (*oauthBridgeService)(nil)
	_ portssvc.ProgressSvcFacade           = (*progressService)(nil)
	_ portssvc.ViewSvcFacade               = (*viewService)(nil)
	_ portssvc.ContactSvcFacade            = (*contactService)(nil)
)

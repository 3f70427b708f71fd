package services

import (
	"context"

	"github.com/freshmanexams/fe_backend/internal/core/domain"
)

// EmailSender delivers the transactional emails of the auth flows and
// relays contact-form messages. Auth flows treat every method as best effort.
type EmailSender interface {
	SendVerificationEmail(ctx context.Context, to, code string) error
	SendWelcomeEmail(ctx context.Context, to, name string) error
	SendPasswordResetEmail(ctx context.Context, to, resetURL string) error
	SendResetSuccessEmail(ctx context.Context, to string) error
	SendContactEmail(ctx context.Context, to string, msg domain.ContactMessage) error
}

// ContactSvcFacade relays messages from the public contact form.
type ContactSvcFacade interface {
	Relay(ctx context.Context, msg domain.ContactMessage) (domain.ContactMessage, error)
}

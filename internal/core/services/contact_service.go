package services

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/freshmanexams/fe_backend/internal/apperrors"
	"github.com/freshmanexams/fe_backend/internal/core/domain"
	portssvc "github.com/freshmanexams/fe_backend/internal/core/ports/services"
)

type contactService struct {
	BaseService
	mailer portssvc.EmailSender
	inbox  string
}

// NewContactService relays contact-form messages to inbox. An empty inbox
// delivers each message to the address that submitted it.
func NewContactService(mailer portssvc.EmailSender, inbox string, opts ...ServiceOption) portssvc.ContactSvcFacade {
	return &contactService{BaseService: newBaseService(opts...), mailer: mailer, inbox: inbox}
}

// Relay sends the message and returns it with trimmed fields.
func (s *contactService) Relay(ctx context.Context, msg domain.ContactMessage) (domain.ContactMessage, error) {
	msg = msg.Trimmed()
	if !msg.Complete() {
		return msg, apperrors.NewBadRequestError("All fields are required")
	}

	to := s.inbox
	if to == "" {
		to = msg.Email
	}
	if err := s.mailer.SendContactEmail(ctx, to, msg); err != nil {
		s.LogError(ctx, err, "Failed to relay contact message", slog.String("from", msg.Email))
		return msg, apperrors.NewAppError(http.StatusInternalServerError, "Internal Server Error", err)
	}
	s.LogInfo(ctx, "Contact message relayed", slog.String("from", msg.Email))
	return msg, nil
}

package mail

import (
	"context"
	"log/slog"

	"github.com/freshmanexams/fe_backend/internal/core/domain"
	portssvc "github.com/freshmanexams/fe_backend/internal/core/ports/services"
)

// ConsoleSender writes every email to the logger instead of delivering it.
// It is the development default and never fails.
type ConsoleSender struct {
	logger *slog.Logger
}

var _ portssvc.EmailSender = (*ConsoleSender)(nil)

func NewConsoleSender(logger *slog.Logger) *ConsoleSender {
	return &ConsoleSender{logger: logger}
}

func (c *ConsoleSender) print(ctx context.Context, category, to, subject, body string) {
	c.logger.InfoContext(ctx, "EMAIL",
		slog.String("category", category),
		slog.String("to", to),
		slog.String("subject", subject),
		slog.String("body", body),
	)
}

func (c *ConsoleSender) SendVerificationEmail(ctx context.Context, to string, code string) error {
	m := verificationMessage(code)
	c.print(ctx, m.Category, to, m.Subject, m.Text)
	return nil
}

func (c *ConsoleSender) SendWelcomeEmail(ctx context.Context, to string, name string) error {
	m := welcomeMessage(name)
	c.print(ctx, m.Category, to, m.Subject, m.Text)
	return nil
}

func (c *ConsoleSender) SendPasswordResetEmail(ctx context.Context, to string, resetURL string) error {
	m := passwordResetMessage(resetURL)
	c.print(ctx, m.Category, to, m.Subject, m.Text)
	return nil
}

func (c *ConsoleSender) SendResetSuccessEmail(ctx context.Context, to string) error {
	m := resetSuccessMessage()
	c.print(ctx, m.Category, to, m.Subject, m.Text)
	return nil
}

func (c *ConsoleSender) SendContactEmail(ctx context.Context, to string, msg domain.ContactMessage) error {
	m := contactMessage(msg)
	c.print(ctx, m.Category, to, m.Subject, m.Text)
	return nil
}

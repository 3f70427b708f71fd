package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/freshmanexams/fe_backend/internal/core/domain"
	portssvc "github.com/freshmanexams/fe_backend/internal/core/ports/services"
)

// MailtrapConfig configures the Mailtrap sending API client.
type MailtrapConfig struct {
	Endpoint  string
	Token     string
	FromEmail string
	FromName  string
}

// MailtrapSender delivers email through the Mailtrap HTTP sending API.
type MailtrapSender struct {
	cfg    MailtrapConfig
	client *http.Client
}

var _ portssvc.EmailSender = (*MailtrapSender)(nil)

func NewMailtrapSender(cfg MailtrapConfig, client *http.Client) *MailtrapSender {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &MailtrapSender{cfg: cfg, client: client}
}

type mailtrapAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type mailtrapRequest struct {
	From     mailtrapAddress   `json:"from"`
	To       []mailtrapAddress `json:"to"`
	ReplyTo  *mailtrapAddress  `json:"reply_to,omitempty"`
	Subject  string            `json:"subject"`
	Text     string            `json:"text"`
	Category string            `json:"category,omitempty"`
}

func (m *MailtrapSender) send(ctx context.Context, to string, msg message) error {
	payload := mailtrapRequest{
		From:     mailtrapAddress{Email: m.cfg.FromEmail, Name: m.cfg.FromName},
		To:       []mailtrapAddress{{Email: to}},
		Subject:  msg.Subject,
		Text:     msg.Text,
		Category: msg.Category,
	}
	if msg.ReplyTo != "" {
		payload.ReplyTo = &mailtrapAddress{Email: msg.ReplyTo}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode %s email: %w", msg.Category, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build %s email request: %w", msg.Category, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.cfg.Token)

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send %s email: %w", msg.Category, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("mailtrap rejected %s email: status %d: %s", msg.Category, resp.StatusCode, detail)
	}
	return nil
}

func (m *MailtrapSender) SendVerificationEmail(ctx context.Context, to string, code string) error {
	return m.send(ctx, to, verificationMessage(code))
}

func (m *MailtrapSender) SendWelcomeEmail(ctx context.Context, to string, name string) error {
	return m.send(ctx, to, welcomeMessage(name))
}

func (m *MailtrapSender) SendPasswordResetEmail(ctx context.Context, to string, resetURL string) error {
	return m.send(ctx, to, passwordResetMessage(resetURL))
}

func (m *MailtrapSender) SendResetSuccessEmail(ctx context.Context, to string) error {
	return m.send(ctx, to, resetSuccessMessage())
}

func (m *MailtrapSender) SendContactEmail(ctx context.Context, to string, msg domain.ContactMessage) error {
	return m.send(ctx, to, contactMessage(msg))
}

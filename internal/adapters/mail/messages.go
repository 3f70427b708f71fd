package mail

import (
	"fmt"

	"github.com/freshmanexams/fe_backend/internal/core/domain"
)

// message is the provider-neutral content of one email.
type message struct {
	Subject  string
	Text     string
	Category string
	ReplyTo  string
}

func verificationMessage(code string) message {
	return message{
		Subject:  "FreshmanExams Verification Code",
		Text:     fmt.Sprintf("Your verification code is: %s\nThe code expires in 24 hours.", code),
		Category: "Email Verification",
	}
}

func welcomeMessage(name string) message {
	return message{
		Subject:  "Welcome to FreshmanExams",
		Text:     fmt.Sprintf("Hi %s,\nyour email is verified. Welcome to FreshmanExams!", name),
		Category: "Welcome",
	}
}

func passwordResetMessage(resetURL string) message {
	return message{
		Subject:  "Reset your password",
		Text:     fmt.Sprintf("We received a request to reset your password. Open the link below within one hour:\n%s\nIf you did not ask for this, ignore this email.", resetURL),
		Category: "Password Reset",
	}
}

func resetSuccessMessage() message {
	return message{
		Subject:  "Password Reset Successful",
		Text:     "Your password has been reset. If you did not do this, contact support immediately.",
		Category: "Password Reset Success",
	}
}

func contactMessage(msg domain.ContactMessage) message {
	return message{
		Subject:  msg.Subject,
		Text:     fmt.Sprintf("New message from %s <%s>:\n\n%s", msg.Name, msg.Email, msg.Message),
		Category: "Email Notification",
		ReplyTo:  msg.Email,
	}
}

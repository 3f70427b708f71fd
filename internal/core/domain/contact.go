package domain

import "strings"

// ContactMessage is a message submitted through the public contact form.
type ContactMessage struct {
	Email   string
	Name    string
	Subject string
	Message string
}

// Trimmed returns a copy with surrounding whitespace removed from every field.
func (m ContactMessage) Trimmed() ContactMessage {
	return ContactMessage{
		Email:   strings.TrimSpace(m.Email),
		Name:    strings.TrimSpace(m.Name),
		Subject: strings.TrimSpace(m.Subject),
		Message: strings.TrimSpace(m.Message),
	}
}

// Complete reports whether every field carries text.
func (m ContactMessage) Complete() bool {
	return m.Email != "" && m.Name != "" && m.Subject != "" && m.Message != ""
}

package dto

import "github.com/freshmanexams/fe_backend/internal/core/domain"

// ContactRequest is the body of POST /email.
type ContactRequest struct {
	Email   string `json:"email" binding:"required" example:"visitor@x.com"`
	Name    string `json:"name" binding:"required" example:"Visitor"`
	Subject string `json:"subject" binding:"required" example:"Question"`
	Message string `json:"message" binding:"required" example:"When is the next mock exam?"`
}

func (r ContactRequest) ToDomain() domain.ContactMessage {
	return domain.ContactMessage{Email: r.Email, Name: r.Name, Subject: r.Subject, Message: r.Message}
}

// ContactResponse echoes the submitter address after a relayed message.
type ContactResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Email   string `json:"email"`
}

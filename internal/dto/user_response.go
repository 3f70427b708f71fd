package dto

import (
	"time"

	"github.com/freshmanexams/fe_backend/internal/core/domain"
)

// UserResponse is the safe projection of a user: no password hash,
// session token or one-time codes.
type UserResponse struct {
	UserID     string     `json:"_id"`
	Username   string     `json:"username"`
	Email      string     `json:"email,omitempty"`
	Provider   string     `json:"provider"`
	IsVerified bool       `json:"isVerified"`
	Role       string     `json:"role"`
	Photo      string     `json:"photo,omitempty"`
	LastLogin  *time.Time `json:"lastLogin,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

func ToUserResponse(u *domain.User) UserResponse {
	var photo string
	if u.Photo != nil {
		photo = *u.Photo
	}
	return UserResponse{
		UserID:     u.UserID,
		Username:   u.Username,
		Email:      u.Email,
		Provider:   string(u.AuthProvider),
		IsVerified: u.IsVerified,
		Role:       string(u.Role),
		Photo:      photo,
		LastLogin:  u.LastLogin,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

// ToUserResponses converts a slice of domain users.
func ToUserResponses(users []domain.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i := range users {
		out[i] = ToUserResponse(&users[i])
	}
	return out
}

package dto

// MessageResponse is the envelope shared by every JSON response.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// AuthResponse is returned by endpoints that resolve or log in a user.
type AuthResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	User    UserResponse `json:"user"`
}

// RegisterResponse is returned by POST /register.
type RegisterResponse struct {
	Success   bool         `json:"success"`
	Message   string       `json:"message"`
	User      UserResponse `json:"user"`
	EmailSent bool         `json:"emailSent"`
}

// ResendVerificationResponse is returned by POST /resend-verification.
type ResendVerificationResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	EmailSent bool   `json:"emailSent"`
}

// ListUsersResponse wraps the admin user listing.
type ListUsersResponse struct {
	Success            bool           `json:"success"`
	TotalUsers         int            `json:"totalUsers"`
	VerifiedUsersCount int            `json:"verifiedUsersCount"`
	Users              []UserResponse `json:"users"`
}

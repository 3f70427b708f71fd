package dto

// RegisterRequest is the body of POST /register.
// Email is required for every role except admin; the service enforces that rule.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,username" example:"alice"`
	Email    string `json:"email" binding:"omitempty,email" example:"alice@x.com"`
	Password string `json:"password" binding:"required" example:"pw123"`
	Role     string `json:"role" binding:"omitempty,role" example:"user"`
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	EmailOrUsername string `json:"emailOrUsername" binding:"required" example:"alice"`
	Password        string `json:"password" binding:"required" example:"pw123"`
}

// VerifyEmailRequest is the body of POST /verify.
type VerifyEmailRequest struct {
	Code string `json:"code" binding:"required" example:"123456"`
}

// ForgotPasswordRequest is the body of POST /forgot-password.
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email" example:"alice@x.com"`
}

// ResetPasswordRequest is the body of POST /reset-password/:token.
type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest defines the data allowed for updating a profile.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateProfileRequest struct {
	Username        *string `json:"username" binding:"omitempty,username"`
	CurrentPassword string  `json:"currentPassword"`
	NewPassword     string  `json:"newPassword"`
}

// DeleteAccountRequest is the body of DELETE /delete.
type DeleteAccountRequest struct {
	Password string `json:"password"`
}

// SetVerifiedRequest is the body of POST /IsVerified.
type SetVerifiedRequest struct {
	Username   string `json:"username" binding:"required"`
	IsVerified *bool  `json:"isVerified" binding:"required"`
}

// AdminResetPasswordRequest is the body of POST /ResetAdminPassword.
type AdminResetPasswordRequest struct {
	UserName    string `json:"userName" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

// DeleteAdminRequest is the body of POST /deleteAdmin.
type DeleteAdminRequest struct {
	UserName string `json:"userName" binding:"required"`
}

// ListUsersParams defines query parameters for listing users.
type ListUsersParams struct {
	Limit  int `form:"limit,default=100" binding:"min=1,max=500"`
	Offset int `form:"offset,default=0" binding:"min=0"`
}

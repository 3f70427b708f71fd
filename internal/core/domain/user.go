package domain

import "time"

// AuthProvider identifies how a user authenticates.
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "local"
	ProviderGoogle AuthProvider = "google"
)

// User represents an identity record of the platform.
type User struct {
	UserID       string       `json:"userID"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	GoogleID     *string      `json:"googleID,omitempty"`
	AuthProvider AuthProvider `json:"provider"`
	PasswordHash *string      `json:"-"`
	IsVerified   bool         `json:"isVerified"`
	Role         Role         `json:"role"`
	Photo        *string      `json:"photo,omitempty"`

	// SessionToken is the single valid session marker. Empty means no session.
	SessionToken string     `json:"-"`
	LastLogin    *time.Time `json:"lastLogin,omitempty"`

	VerificationCode          *string    `json:"-"`
	VerificationCodeExpiresAt *time.Time `json:"-"`

	ResetPasswordToken     *string    `json:"-"`
	ResetPasswordExpiresAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AdoptPhoto stores the provider picture unless the user already has one.
func (u *User) AdoptPhoto(url string) {
	if url == "" || (u.Photo != nil && *u.Photo != "") {
		return
	}
	u.Photo = &url
}

// HasPassword reports whether the user can authenticate with local credentials.
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

// HasVerificationCode reports whether an unexpired verification code is stored.
func (u *User) HasVerificationCode(now time.Time) bool {
	return u.VerificationCode != nil && u.VerificationCodeExpiresAt != nil && u.VerificationCodeExpiresAt.After(now)
}

// SetVerificationCode stores a verification code and its absolute expiry.
func (u *User) SetVerificationCode(code string, expiresAt time.Time) {
	u.VerificationCode = &code
	u.VerificationCodeExpiresAt = &expiresAt
}

// ClearVerificationCode removes the verification code; codes are single use.
func (u *User) ClearVerificationCode() {
	u.VerificationCode = nil
	u.VerificationCodeExpiresAt = nil
}

// SetResetToken stores a password-reset token and its absolute expiry.
func (u *User) SetResetToken(token string, expiresAt time.Time) {
	u.ResetPasswordToken = &token
	u.ResetPasswordExpiresAt = &expiresAt
}

// ClearResetToken removes the password-reset token.
func (u *User) ClearResetToken() {
	u.ResetPasswordToken = nil
	u.ResetPasswordExpiresAt = nil
}

// GoogleUserInfo is the profile resolved from Google after a successful code exchange.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

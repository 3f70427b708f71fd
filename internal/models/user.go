package models

import (
	"database/sql"
	"time"
)

// User is the row layout of the users table.
type User struct {
	UserID       string         `db:"user_id"`
	Username     string         `db:"username"`
	Email        sql.NullString `db:"email"`
	GoogleID     sql.NullString `db:"google_id"`
	AuthProvider string         `db:"auth_provider"`
	PasswordHash sql.NullString `db:"password_hash"`
	IsVerified   bool           `db:"is_verified"`
	Role         string         `db:"role"`
	Photo        sql.NullString `db:"photo"`

	// SessionToken holds the hash of the active session token, empty when none.
	SessionToken string       `db:"session_token"`
	LastLogin    sql.NullTime `db:"last_login"`

	VerificationCode          sql.NullString `db:"verification_code"`
	VerificationCodeExpiresAt sql.NullTime   `db:"verification_code_expires_at"`
	ResetPasswordToken        sql.NullString `db:"reset_password_token"`
	ResetPasswordExpiresAt    sql.NullTime   `db:"reset_password_expires_at"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

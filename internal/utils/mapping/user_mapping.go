package mapping

import (
	"database/sql"
	"time"

	"github.com/freshmanexams/fe_backend/internal/core/domain"
	"github.com/freshmanexams/fe_backend/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:                    d.UserID,
		Username:                  d.Username,
		Email:                     nullString(emptyToNil(d.Email)),
		GoogleID:                  nullString(d.GoogleID),
		AuthProvider:              string(d.AuthProvider),
		PasswordHash:              nullString(d.PasswordHash),
		IsVerified:                d.IsVerified,
		Role:                      string(d.Role),
		Photo:                     nullString(d.Photo),
		SessionToken:              d.SessionToken,
		LastLogin:                 nullTime(d.LastLogin),
		VerificationCode:          nullString(d.VerificationCode),
		VerificationCodeExpiresAt: nullTime(d.VerificationCodeExpiresAt),
		ResetPasswordToken:        nullString(d.ResetPasswordToken),
		ResetPasswordExpiresAt:    nullTime(d.ResetPasswordExpiresAt),
		CreatedAt:                 d.CreatedAt,
		UpdatedAt:                 d.UpdatedAt,
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:                    m.UserID,
		Username:                  m.Username,
		Email:                     m.Email.String,
		GoogleID:                  stringPtr(m.GoogleID),
		AuthProvider:              domain.AuthProvider(m.AuthProvider),
		PasswordHash:              stringPtr(m.PasswordHash),
		IsVerified:                m.IsVerified,
		Role:                      domain.Role(m.Role),
		Photo:                     stringPtr(m.Photo),
		SessionToken:              m.SessionToken,
		LastLogin:                 timePtr(m.LastLogin),
		VerificationCode:          stringPtr(m.VerificationCode),
		VerificationCodeExpiresAt: timePtr(m.VerificationCodeExpiresAt),
		ResetPasswordToken:        stringPtr(m.ResetPasswordToken),
		ResetPasswordExpiresAt:    timePtr(m.ResetPasswordExpiresAt),
		CreatedAt:                 m.CreatedAt,
		UpdatedAt:                 m.UpdatedAt,
	}
}

// ToDomainUserSlice converts a slice of model Users to a slice of domain Users
func ToDomainUserSlice(ms []models.User) []domain.User {
	ds := make([]domain.User, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainUser(m)
	}
	return ds
}

func emptyToNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}

package mapping

import (
	"testing"
	"time"

	"github.com/freshmanexams/fe_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestUserMapping_OptionalFields(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	hash := "bcrypt-hash"
	code := "123456"
	d := domain.User{
		UserID:                    "u-1",
		Username:                  "root",
		AuthProvider:              domain.ProviderLocal,
		PasswordHash:              &hash,
		Role:                      domain.RoleAdmin,
		VerificationCode:          &code,
		VerificationCodeExpiresAt: &now,
		CreatedAt:                 now,
		UpdatedAt:                 now,
	}

	m := ToModelUser(d)
	assert.False(t, m.Email.Valid, "empty email must be stored as NULL")
	assert.False(t, m.GoogleID.Valid)
	assert.True(t, m.PasswordHash.Valid)
	assert.False(t, m.LastLogin.Valid)

	back := ToDomainUser(m)
	assert.Equal(t, d, back)
}

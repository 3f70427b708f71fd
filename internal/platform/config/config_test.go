package config

import (
	"net/http"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestViper(overrides map[string]any) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	for k, val := range overrides {
		v.Set(k, val)
	}
	return v
}

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(newTestViper(map[string]any{"STORE_DRIVER": "memory"}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 168*time.Hour, cfg.SessionTokenTTL)
	assert.Equal(t, 24*time.Hour, cfg.VerificationCodeTTL)
	assert.Equal(t, time.Hour, cfg.ResetTokenTTL)
	assert.Equal(t, "token", cfg.SessionCookieName)
	assert.Equal(t, http.SameSiteStrictMode, cfg.SessionCookieSameSite)
	assert.Equal(t, devJWTSecret, cfg.JWTSecret)
	assert.Equal(t, MailDriverConsole, cfg.MailDriver)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "5-H", cfg.RateLimits.Verify)
	assert.Equal(t, "10-H", cfg.RateLimits.Contact)
	assert.Empty(t, cfg.ContactInboxEmail)
}

func TestFromViper_ContactInbox(t *testing.T) {
	cfg, err := fromViper(newTestViper(map[string]any{
		"STORE_DRIVER":        "memory",
		"CONTACT_INBOX_EMAIL": " support@freshmanexams.com ",
		"RATE_LIMIT_CONTACT":  "3-H",
	}))
	require.NoError(t, err)
	assert.Equal(t, "support@freshmanexams.com", cfg.ContactInboxEmail)
	assert.Equal(t, "3-H", cfg.RateLimits.Contact)
}

func TestFromViper_ProductionRequiresSecret(t *testing.T) {
	_, err := fromViper(newTestViper(map[string]any{
		"IS_PRODUCTION": true,
		"PGSQL_URL":     "postgres://localhost/fe",
	}))
	assert.Error(t, err)

	cfg, err := fromViper(newTestViper(map[string]any{
		"IS_PRODUCTION": true,
		"PGSQL_URL":     "postgres://localhost/fe",
		"JWT_SECRET":    "prod-secret",
	}))
	require.NoError(t, err)
	assert.Equal(t, "prod-secret", cfg.JWTSecret)
}

func TestFromViper_PostgresRequiresURL(t *testing.T) {
	_, err := fromViper(newTestViper(nil))
	assert.Error(t, err)
}

func TestFromViper_InvalidValues(t *testing.T) {
	_, err := fromViper(newTestViper(map[string]any{"STORE_DRIVER": "mongo"}))
	assert.Error(t, err)

	_, err = fromViper(newTestViper(map[string]any{"STORE_DRIVER": "memory", "SESSION_COOKIE_SAMESITE": "sideways"}))
	assert.Error(t, err)

	_, err = fromViper(newTestViper(map[string]any{"STORE_DRIVER": "memory", "MAIL_DRIVER": "mailtrap"}))
	assert.Error(t, err)

	cfg, err := fromViper(newTestViper(map[string]any{"STORE_DRIVER": "memory", "SESSION_TOKEN_TTL": "soon"}))
	require.NoError(t, err)
	assert.Equal(t, 168*time.Hour, cfg.SessionTokenTTL)
}

func TestFromViper_ParsesOriginsAndSameSite(t *testing.T) {
	cfg, err := fromViper(newTestViper(map[string]any{
		"STORE_DRIVER":            "memory",
		"CORS_ALLOWED_ORIGINS":    "https://a.example, https://b.example,",
		"SESSION_COOKIE_SAMESITE": "Lax",
		"CLIENT_URL":              "https://fe.example/",
	}))
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, http.SameSiteLaxMode, cfg.SessionCookieSameSite)
	assert.Equal(t, "https://fe.example", cfg.ClientURL)
}

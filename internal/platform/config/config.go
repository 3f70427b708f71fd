package config

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"

	MailDriverConsole  = "console"
	MailDriverMailtrap = "mailtrap"
)

// RateLimits holds ulule formatted rates (e.g. "5-H") for the limited routes.
type RateLimits struct {
	Global         string
	Login          string
	Register       string
	Verify         string
	ForgotPassword string
	Resend         string
	Contact        string
}

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	StoreDriver   string
	RunMigrations bool
	Port          string
	IsProduction  bool

	JWTSecret string
	JWTIssuer string

	// Session cookie
	SessionTokenTTL       time.Duration
	SessionCookieName     string
	SessionCookieSameSite http.SameSite

	VerificationCodeTTL time.Duration
	ResetTokenTTL       time.Duration

	ClientURL          string
	CORSAllowedOrigins []string

	// External OAuth Providers
	GoogleClientID       string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret   string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL    string `mapstructure:"GOOGLE_REDIRECT_URL"`
	OAuthSuccessRedirect string `mapstructure:"OAUTH_SUCCESS_REDIRECT"`
	OAuthFailureRedirect string `mapstructure:"OAUTH_FAILURE_REDIRECT"`

	// Mail
	MailDriver       string
	MailtrapToken    string
	MailtrapEndpoint string
	MailFromEmail    string
	MailFromName     string

	// ContactInboxEmail receives contact-form messages. Empty sends them to the submitter.
	ContactInboxEmail string

	AdminRegistrationKey string
	PosthogAPIKey        string

	RateLimits RateLimits
}

const devJWTSecret = "dev-only-secret-change-me-before-deploying"

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("STORE_DRIVER", StoreDriverPostgres)
	v.SetDefault("RUN_MIGRATIONS", true)
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_ISSUER", "freshmanexams")
	v.SetDefault("SESSION_TOKEN_TTL", "168h")
	v.SetDefault("SESSION_COOKIE_NAME", "token")
	v.SetDefault("SESSION_COOKIE_SAMESITE", "strict")
	v.SetDefault("VERIFICATION_CODE_TTL", "24h")
	v.SetDefault("RESET_TOKEN_TTL", "1h")
	v.SetDefault("CLIENT_URL", "http://localhost:5173")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")
	v.SetDefault("GOOGLE_CLIENT_ID", "")
	v.SetDefault("GOOGLE_CLIENT_SECRET", "")
	v.SetDefault("GOOGLE_REDIRECT_URL", "")
	v.SetDefault("OAUTH_SUCCESS_REDIRECT", "http://localhost:5173/")
	v.SetDefault("OAUTH_FAILURE_REDIRECT", "http://localhost:5173/user/login")
	v.SetDefault("MAIL_DRIVER", MailDriverConsole)
	v.SetDefault("MAILTRAP_TOKEN", "")
	v.SetDefault("MAILTRAP_ENDPOINT", "https://send.api.mailtrap.io/api/send")
	v.SetDefault("MAIL_FROM_EMAIL", "hello@freshmanexams.com")
	v.SetDefault("MAIL_FROM_NAME", "FreshmanExams")
	v.SetDefault("CONTACT_INBOX_EMAIL", "")
	v.SetDefault("ADMIN_REGISTRATION_KEY", "")
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("RATE_LIMIT_GLOBAL", "300-M")
	v.SetDefault("RATE_LIMIT_LOGIN", "50-M")
	v.SetDefault("RATE_LIMIT_REGISTER", "30-M")
	v.SetDefault("RATE_LIMIT_VERIFY", "5-H")
	v.SetDefault("RATE_LIMIT_FORGOT_PASSWORD", "5-H")
	v.SetDefault("RATE_LIMIT_RESEND", "20-H")
	v.SetDefault("RATE_LIMIT_CONTACT", "10-H")
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		DatabaseURL:          v.GetString("PGSQL_URL"),
		StoreDriver:          strings.ToLower(v.GetString("STORE_DRIVER")),
		RunMigrations:        v.GetBool("RUN_MIGRATIONS"),
		Port:                 v.GetString("PORT"),
		IsProduction:         v.GetBool("IS_PRODUCTION"),
		JWTSecret:            v.GetString("JWT_SECRET"),
		JWTIssuer:            v.GetString("JWT_ISSUER"),
		SessionCookieName:    v.GetString("SESSION_COOKIE_NAME"),
		ClientURL:            strings.TrimRight(v.GetString("CLIENT_URL"), "/"),
		GoogleClientID:       v.GetString("GOOGLE_CLIENT_ID"),
		GoogleClientSecret:   v.GetString("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:    v.GetString("GOOGLE_REDIRECT_URL"),
		OAuthSuccessRedirect: v.GetString("OAUTH_SUCCESS_REDIRECT"),
		OAuthFailureRedirect: v.GetString("OAUTH_FAILURE_REDIRECT"),
		MailDriver:           strings.ToLower(v.GetString("MAIL_DRIVER")),
		MailtrapToken:        v.GetString("MAILTRAP_TOKEN"),
		MailtrapEndpoint:     v.GetString("MAILTRAP_ENDPOINT"),
		MailFromEmail:        v.GetString("MAIL_FROM_EMAIL"),
		MailFromName:         v.GetString("MAIL_FROM_NAME"),
		ContactInboxEmail:    strings.TrimSpace(v.GetString("CONTACT_INBOX_EMAIL")),
		AdminRegistrationKey: v.GetString("ADMIN_REGISTRATION_KEY"),
		PosthogAPIKey:        v.GetString("POSTHOG_API_KEY"),
		RateLimits: RateLimits{
			Global:         v.GetString("RATE_LIMIT_GLOBAL"),
			Login:          v.GetString("RATE_LIMIT_LOGIN"),
			Register:       v.GetString("RATE_LIMIT_REGISTER"),
			Verify:         v.GetString("RATE_LIMIT_VERIFY"),
			ForgotPassword: v.GetString("RATE_LIMIT_FORGOT_PASSWORD"),
			Resend:         v.GetString("RATE_LIMIT_RESEND"),
			Contact:        v.GetString("RATE_LIMIT_CONTACT"),
		},
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	switch cfg.StoreDriver {
	case StoreDriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, errors.New("PGSQL_URL must be set when STORE_DRIVER is postgres")
		}
	case StoreDriverMemory:
		if cfg.IsProduction {
			return nil, errors.New("STORE_DRIVER=memory is not allowed in production")
		}
	default:
		return nil, errors.New("STORE_DRIVER must be one of: postgres, memory")
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction {
			return nil, errors.New("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = devJWTSecret
		log.Println("Warning: JWT_SECRET environment variable not set. Using development key.")
	}

	cfg.SessionTokenTTL = durationOrDefault(v, "SESSION_TOKEN_TTL", 7*24*time.Hour)
	cfg.VerificationCodeTTL = durationOrDefault(v, "VERIFICATION_CODE_TTL", 24*time.Hour)
	cfg.ResetTokenTTL = durationOrDefault(v, "RESET_TOKEN_TTL", time.Hour)

	sameSite, err := parseSameSite(v.GetString("SESSION_COOKIE_SAMESITE"))
	if err != nil {
		return nil, err
	}
	cfg.SessionCookieSameSite = sameSite

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if o := strings.TrimSpace(origin); o != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
		}
	}

	switch cfg.MailDriver {
	case MailDriverConsole:
	case MailDriverMailtrap:
		if cfg.MailtrapToken == "" {
			return nil, errors.New("MAILTRAP_TOKEN must be set when MAIL_DRIVER is mailtrap")
		}
	default:
		return nil, errors.New("MAIL_DRIVER must be one of: console, mailtrap")
	}

	// Log warnings for missing critical OAuth ENV variables
	if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" || cfg.GoogleRedirectURL == "" {
		log.Println("Warning: Google OAuth is not fully configured. Google sign-in will not function.")
	}

	return cfg, nil
}

func durationOrDefault(v *viper.Viper, key string, def time.Duration) time.Duration {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def)
		}
		return def
	}
	return d
}

func parseSameSite(s string) (http.SameSite, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "strict":
		return http.SameSiteStrictMode, nil
	case "lax":
		return http.SameSiteLaxMode, nil
	case "none":
		return http.SameSiteNoneMode, nil
	default:
		return 0, errors.New("SESSION_COOKIE_SAMESITE must be one of: strict, lax, none")
	}
}

package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/freshmanexams/fe_backend/internal/adapters/database/memory"
	"github.com/freshmanexams/fe_backend/internal/adapters/database/pgsql"
	"github.com/freshmanexams/fe_backend/internal/adapters/mail"
	portsrepo "github.com/freshmanexams/fe_backend/internal/core/ports/repositories"
	portssvc "github.com/freshmanexams/fe_backend/internal/core/ports/services"
	"github.com/freshmanexams/fe_backend/internal/core/services"
	"github.com/freshmanexams/fe_backend/internal/handlers"
	"github.com/freshmanexams/fe_backend/internal/middleware"
	"github.com/freshmanexams/fe_backend/internal/platform/config"
	"github.com/freshmanexams/fe_backend/internal/utils"
	"github.com/freshmanexams/fe_backend/pkg/database"
	"github.com/gin-gonic/gin"
)

const mailHTTPTimeout = 10 * time.Second

// @title FreshmanExams Backend API
// @version 1.0
// @description Accounts, sessions, progress tracking and view counters for the FreshmanExams site.

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name token
// @description Session token cookie. A Bearer Authorization header is accepted as well.
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos, closeStore, err := openStore(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize store", slog.String("driver", cfg.StoreDriver), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()

	serviceContainer, err := services.NewServiceContainer(cfg, repos, newMailer(cfg, logger))
	if err != nil {
		logger.Error("Failed to build services", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := handlers.RegisterValidators(); err != nil {
		logger.Error("Failed to register request validators", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	err = r.SetTrustedProxies(nil)
	if err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	analytics := utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	defer analytics.Close()

	if err := handlers.RegisterRoutes(r, cfg, serviceContainer, analytics); err != nil {
		logger.Error("Failed to register routes", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("store", cfg.StoreDriver))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// openStore returns the repositories for the configured driver and a func releasing them.
func openStore(cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		logger.Warn("Using the in-memory store; data is lost on restart")
		return memory.NewRepositoryProvider(), func() {}, nil
	}

	if cfg.RunMigrations {
		if err := database.RunMigrations(cfg.DatabaseURL, logger); err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
	}

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, logger)
	if err != nil {
		return portsrepo.RepositoryProvider{}, nil, err
	}
	return pgsql.NewRepositoryProvider(dbPool), func() { database.ClosePgxPool(dbPool, logger) }, nil
}

func newMailer(cfg *config.Config, logger *slog.Logger) portssvc.EmailSender {
	if cfg.MailDriver == config.MailDriverMailtrap {
		return mail.NewMailtrapSender(mail.MailtrapConfig{
			Endpoint:  cfg.MailtrapEndpoint,
			Token:     cfg.MailtrapToken,
			FromEmail: cfg.MailFromEmail,
			FromName:  cfg.MailFromName,
		}, &http.Client{Timeout: mailHTTPTimeout})
	}
	return mail.NewConsoleSender(logger)
}

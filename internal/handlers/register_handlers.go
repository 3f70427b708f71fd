package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/freshmanexams/fe_backend/cmd/docs"
	portssvc "github.com/freshmanexams/fe_backend/internal/core/ports/services"
	"github.com/freshmanexams/fe_backend/internal/middleware"
	"github.com/freshmanexams/fe_backend/internal/platform/config"
	"github.com/freshmanexams/fe_backend/internal/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	analytics *utils.PosthogClientWrapper,
) error {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", adminRegistrationKeyHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	global, err := middleware.NewLimiter(cfg.RateLimits.Global)
	if err != nil {
		return fmt.Errorf("global rate limit: %w", err)
	}
	r.Use(middleware.GlobalRateLimit(global), middleware.PosthogMiddleware(analytics))

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	limits, err := newAuthLimiters(cfg.RateLimits)
	if err != nil {
		return err
	}

	cookie := middleware.SessionCookie{
		Name:     cfg.SessionCookieName,
		SameSite: cfg.SessionCookieSameSite,
		Secure:   cfg.IsProduction,
		MaxAge:   cfg.SessionTokenTTL,
	}
	guard := middleware.SessionGuard(services.Session, cookie)

	api := r.Group("/api")
	authH := newAuthHandler(services, cookie, cfg.AdminRegistrationKey, analytics)
	registerAuthRoutes(api, authH, guard, limits)
	registerGoogleOAuthRoutes(api, NewGoogleOAuthHandler(services, cookie, GoogleOAuthRedirects{
		Success: cfg.OAuthSuccessRedirect,
		Failure: cfg.OAuthFailureRedirect,
	}, analytics), guard, authH.checkAuth)
	registerProgressRoutes(api, services.Progress)
	registerViewRoutes(api, services.Views)

	contactLimit, err := middleware.NewLimiter(cfg.RateLimits.Contact)
	if err != nil {
		return fmt.Errorf("contact rate limit: %w", err)
	}
	registerEmailRoutes(api, services.Contact, middleware.RateLimit(contactLimit))

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
	return nil
}

func newAuthLimiters(rates config.RateLimits) (authLimiters, error) {
	build := func(name, rate string) (gin.HandlerFunc, error) {
		lim, err := middleware.NewLimiter(rate)
		if err != nil {
			return nil, fmt.Errorf("%s rate limit: %w", name, err)
		}
		return middleware.RateLimit(lim), nil
	}

	var limits authLimiters
	var err error
	if limits.login, err = build("login", rates.Login); err != nil {
		return limits, err
	}
	if limits.register, err = build("register", rates.Register); err != nil {
		return limits, err
	}
	if limits.verify, err = build("verify", rates.Verify); err != nil {
		return limits, err
	}
	if limits.forgotPassword, err = build("forgot-password", rates.ForgotPassword); err != nil {
		return limits, err
	}
	if limits.resend, err = build("resend-verification", rates.Resend); err != nil {
		return limits, err
	}
	return limits, nil
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

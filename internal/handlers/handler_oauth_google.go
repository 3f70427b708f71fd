package handlers

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	portssvc "github.com/freshmanexams/fe_backend/internal/core/ports/services"
	"github.com/freshmanexams/fe_backend/internal/middleware"
	"github.com/freshmanexams/fe_backend/internal/utils"
	"github.com/gin-gonic/gin"
)

const (
	oauthStateCookie = "oauthstate"
	// oauthStateMaxAge is the lifetime of the state cookie in seconds.
	oauthStateMaxAge = 10 * 60
)

// GoogleOAuthHandler handles the browser redirect flow of Google sign-in.
type GoogleOAuthHandler struct {
	googleOAuthService portssvc.GoogleOAuthHandlerSvcFacade
	oauthBridge        portssvc.OAuthBridgeSvc
	cookie             middleware.SessionCookie
	secureCookies      bool
	successRedirect    string
	failureRedirect    string
	analytics          *utils.PosthogClientWrapper
}

// GoogleOAuthRedirects are the client URLs the callback sends the browser to.
type GoogleOAuthRedirects struct {
	Success string
	Failure string
}

// NewGoogleOAuthHandler creates a new instance of GoogleOAuthHandler.
func NewGoogleOAuthHandler(
	services *portssvc.ServiceContainer,
	cookie middleware.SessionCookie,
	redirects GoogleOAuthRedirects,
	analytics *utils.PosthogClientWrapper,
) *GoogleOAuthHandler {
	return &GoogleOAuthHandler{
		googleOAuthService: services.GoogleOAuthHandler,
		oauthBridge:        services.OAuthBridge,
		cookie:             cookie,
		secureCookies:      cookie.Secure,
		successRedirect:    redirects.Success,
		failureRedirect:    redirects.Failure,
		analytics:          analytics,
	}
}

// Login godoc
// @Summary Start Google sign-in
// @Description Sets a short-lived state cookie and redirects to the Google consent screen.
// @Tags oauth
// @Success 307 "Redirect to Google"
// @Failure 500 {object} dto.MessageResponse
// @Router /google [get]
func (h *GoogleOAuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()
	state, err := h.googleOAuthService.GenerateStateString(ctx)
	if err != nil {
		respondError(c, err, "Failed to start Google sign-in")
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthStateCookie, state, oauthStateMaxAge, "/", "", h.secureCookies, true)
	c.Redirect(http.StatusTemporaryRedirect, h.googleOAuthService.GetGoogleLoginURL(ctx, state))
}

// Callback godoc
// @Summary Google sign-in callback
// @Description Checks the state, resolves the Google profile, links or creates the account, sets the session cookie and redirects to the client. Any failure redirects to the failure URL.
// @Tags oauth
// @Param state query string true "CSRF state"
// @Param code query string true "Authorization code"
// @Success 307 "Redirect to the client"
// @Router /google/callback [get]
func (h *GoogleOAuthHandler) Callback(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromContext(c)

	expected, err := c.Cookie(oauthStateCookie)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthStateCookie, "", -1, "/", "", h.secureCookies, true)
	state := c.Query("state")
	if err != nil || expected == "" || subtle.ConstantTimeCompare([]byte(expected), []byte(state)) != 1 {
		logger.Warn("Google callback with mismatched OAuth state")
		h.fail(c)
		return
	}

	code := c.Query("code")
	if code == "" {
		logger.Warn("Google callback without authorization code", slog.String("error", c.Query("error")))
		h.fail(c)
		return
	}

	profile, err := h.googleOAuthService.ResolveProfile(ctx, code)
	if err != nil {
		logger.Error("Failed to resolve Google profile", slog.String("error", err.Error()))
		h.fail(c)
		return
	}

	user, session, err := h.oauthBridge.SignInWithGoogle(ctx, profile)
	if err != nil {
		logger.Error("Google sign-in failed", slog.String("error", err.Error()))
		h.fail(c)
		return
	}

	// The callback is a cross-site top-level navigation, so the session cookie must be Lax.
	h.cookie.SetWithSameSite(c, session.Token, http.SameSiteLaxMode)
	middleware.PosthogEvent(c, h.analytics, user.UserID, "user_logged_in_google", nil)
	c.Redirect(http.StatusTemporaryRedirect, h.successRedirect)
}

func (h *GoogleOAuthHandler) fail(c *gin.Context) {
	c.Redirect(http.StatusTemporaryRedirect, h.failureRedirect)
}

// registerGoogleOAuthRoutes registers the Google OAuth routes. me answers
// the current-user lookup the frontend issues right after the redirect.
func registerGoogleOAuthRoutes(rg *gin.RouterGroup, h *GoogleOAuthHandler, guard gin.HandlerFunc, me gin.HandlerFunc) {
	googleRoutes := rg.Group("/google")
	{
		googleRoutes.GET("", h.Login)
		googleRoutes.GET("/callback", h.Callback)
		googleRoutes.GET("/me", guard, me)
	}
}

package middleware

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/freshmanexams/fe_backend/internal/apperrors"
	"github.com/freshmanexams/fe_backend/internal/core/domain"
	portssvc "github.com/freshmanexams/fe_backend/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// SessionGuard creates a Gin middleware handler that resolves the session
// token to its user. The cookie is read first, then an Authorization Bearer header.
func SessionGuard(sessions portssvc.SessionSvcFacade, cookie SessionCookie) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		token := tokenFromRequest(c, cookie.Name)
		user, err := sessions.Authenticate(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, apperrors.ErrSessionSuperseded) {
				cookie.Clear(c)
			}
			logger.Info("Session rejected", slog.String("reason", err.Error()))
			AbortWithError(c, err)
			return
		}

		// Add user ID to the logger and store the enriched logger back
		enrichedLogger := logger.With(slog.String("user_id", user.UserID))
		ctx := withAuthenticatedUser(c.Request.Context(), user, token)
		c.Request = c.Request.WithContext(WithLogger(ctx, enrichedLogger))

		c.Next()
	}
}

func tokenFromRequest(c *gin.Context, cookieName string) string {
	if token, err := c.Cookie(cookieName); err == nil && token != "" {
		return token
	}
	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// RequireVerified rejects users whose email is not verified. It must run after SessionGuard.
func RequireVerified() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := GetUserFromContext(c)
		if !ok {
			AbortWithError(c, apperrors.ErrUnauthorized)
			return
		}
		if !user.IsVerified {
			AbortWithError(c, apperrors.ErrNotVerified)
			return
		}
		c.Next()
	}
}

// RequireRole only lets users holding one of roles through. It must run after SessionGuard.
func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	allowed := make(map[domain.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		user, ok := GetUserFromContext(c)
		if !ok {
			AbortWithError(c, apperrors.ErrUnauthorized)
			return
		}
		if !allowed[user.Role] {
			GetLoggerFromContext(c).Warn("Role not permitted", slog.String("role", string(user.Role)))
			AbortWithError(c, apperrors.ErrForbidden)
			return
		}
		c.Next()
	}
}

// AbortWithError stops the chain with the status and message err maps to.
func AbortWithError(c *gin.Context, err error) {
	code, message := apperrors.HTTPStatus(err)
	c.AbortWithStatusJSON(code, gin.H{"success": false, "message": message})
}

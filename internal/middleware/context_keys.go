package middleware

import (
	"context"

	"github.com/freshmanexams/fe_backend/internal/core/domain"
	"github.com/gin-gonic/gin"
)

const (
	userCtxKey         = contextKey("user")
	sessionTokenCtxKey = contextKey("sessionToken")
)

// withAuthenticatedUser stores the user resolved by the session guard and the
// raw token it was resolved from.
func withAuthenticatedUser(ctx context.Context, user *domain.User, token string) context.Context {
	ctx = context.WithValue(ctx, userCtxKey, user)
	return context.WithValue(ctx, sessionTokenCtxKey, token)
}

// GetUserFromContext retrieves the authenticated user from the Gin context.
// It returns the user and a boolean indicating if it was found.
func GetUserFromContext(c *gin.Context) (*domain.User, bool) {
	user, ok := c.Request.Context().Value(userCtxKey).(*domain.User)
	return user, ok && user != nil
}

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	user, ok := GetUserFromContext(c)
	if !ok {
		return "", false
	}
	return user.UserID, true
}

// GetSessionTokenFromContext returns the token the current request authenticated with.
func GetSessionTokenFromContext(c *gin.Context) (string, bool) {
	token, ok := c.Request.Context().Value(sessionTokenCtxKey).(string)
	return token, ok && token != ""
}

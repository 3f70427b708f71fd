package middleware

import (
	"net/http"

	"github.com/freshmanexams/fe_backend/internal/utils"
	"github.com/gin-gonic/gin"
)

// trackedRoutes names the analytics event of each tracked authenticated route.
// Routes missing here, and routes carrying one-time tokens in their path, are not tracked.
var trackedRoutes = map[string]string{
	"GET /api/auth/check-auth":           "session_checked",
	"POST /api/auth/logout":              "user_logged_out",
	"PUT /api/auth/update-profile":       "profile_updated",
	"DELETE /api/auth/delete":            "account_deleted",
	"POST /api/auth/resend-verification": "verification_resent",
	"POST /api/auth/IsVerified":          "admin_set_verified",
	"POST /api/auth/ResetAdminPassword":  "admin_reset_password",
	"POST /api/auth/deleteAdmin":         "admin_deleted_user",
}

// PosthogMiddleware reports successful requests to tracked routes as events of the session user.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !posthogClient.IsInitialized() {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		eventName, ok := trackedRoutes[c.Request.Method+" "+c.FullPath()]
		if !ok {
			return
		}
		// Set by SessionGuard.
		user, ok := GetUserFromContext(c)
		if !ok {
			return
		}

		posthogClient.Enqueue(user.UserID, eventName, map[string]any{
			"method":      c.Request.Method,
			"route":       c.FullPath(),
			"status_code": c.Writer.Status(),
			"role":        string(user.Role),
		})
	}
}

// PosthogEvent sends a custom event for distinctID. Handlers use it for
// auth events that happen before a session exists, such as signup and login.
func PosthogEvent(c *gin.Context, posthogClient *utils.PosthogClientWrapper, distinctID, eventName string, properties map[string]any) {
	if posthogClient == nil || !posthogClient.IsInitialized() || distinctID == "" {
		return
	}

	// Ensure properties is not nil
	if properties == nil {
		properties = make(map[string]any)
	}

	// Add request context
	properties["method"] = c.Request.Method
	properties["path"] = c.Request.URL.Path

	posthogClient.Enqueue(distinctID, eventName, properties)
}

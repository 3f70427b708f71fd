package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// SessionCookie describes the cookie that carries the session token.
type SessionCookie struct {
	Name     string
	SameSite http.SameSite
	Secure   bool
	MaxAge   time.Duration
}

// Set writes token as an HttpOnly cookie living as long as the token.
func (sc SessionCookie) Set(c *gin.Context, token string) {
	sc.SetWithSameSite(c, token, sc.SameSite)
}

// SetWithSameSite is Set with an explicit SameSite mode. The OAuth callback
// needs lax so the cookie survives the cross-site redirect.
func (sc SessionCookie) SetWithSameSite(c *gin.Context, token string, mode http.SameSite) {
	c.SetSameSite(mode)
	c.SetCookie(sc.Name, token, int(sc.MaxAge.Seconds()), "/", "", sc.Secure, true)
}

// Clear expires the cookie on the client.
func (sc SessionCookie) Clear(c *gin.Context) {
	c.SetSameSite(sc.SameSite)
	c.SetCookie(sc.Name, "", -1, "/", "", sc.Secure, true)
}

package domain

import "time"

// Session is a freshly issued bearer token together with its expiry.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

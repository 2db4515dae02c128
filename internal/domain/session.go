package domain

import "time"

// Session is an issued admin session.
// Token is an opaque bearer token; ExpiresAt is when it stops verifying.
type Session struct {
	Token     string
	Email     string
	ExpiresAt time.Time
}

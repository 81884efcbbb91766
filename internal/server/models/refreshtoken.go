package models

import "time"

// RefreshToken is a server-tracked opaque credential. Token is the primary
// lookup key; at most one row exists per user.
type RefreshToken struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the token's expiry instant has passed.
func (t *RefreshToken) Expired(now time.Time) bool {
	return t.ExpiresAt.Before(now)
}

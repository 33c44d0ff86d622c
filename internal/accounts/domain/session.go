package domain

import "time"

// Session is the store-side record of an issued bearer token. The token itself
// is never stored, only its fingerprint.
type Session struct {
	ID        string
	AccountID string
	TokenHash string // deterministic fingerprint (base64url SHA-256)
	Revoked   bool
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Active reports whether the session can still authenticate requests at now.
func (s Session) Active(now time.Time) bool {
	return !s.Revoked && now.Before(s.ExpiresAt)
}

// LoginResult is what a successful login hands back to the caller.
type LoginResult struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"` // always "Bearer"
	ExpiresIn int64  `json:"expires_in"` // seconds
}

package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL is how long a session bearer token stays valid.
const DefaultSessionTTL = 24 * time.Hour

// Claims are the session-token claims shared by the accounts service and
// anything that wants to verify its tokens. The subject is the account email.
type Claims struct {
	jwt.RegisteredClaims

	// Session ID, matches the stored session row.
	SID string `json:"sid,omitempty"`

	// Role of the account at issue time: "ADMIN", "MERCHANT", "BUYER", "GUEST".
	Role string `json:"role,omitempty"`

	// UID is the stable account identifier. The subject carries the email
	// which can change through account deletion and re-registration.
	UID string `json:"uid,omitempty"`
}

// NewSessionClaims builds minimally-correct claims for a session token.
func NewSessionClaims(
	email, accountID, role, sid string,
	ttl time.Duration,
	issuer string,
	now time.Time,
) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		SID:  sid,
		Role: role,
		UID:  accountID,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim. Two tokens
// minted in the same second for the same account must still differ, since
// sessions are keyed by the token fingerprint.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// ValidateIssuer is a no-op for an empty expected issuer.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected != "" && c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateAudience passes when any of expected appears in aud.
func (c *Claims) ValidateAudience(expected []string) error {
	if len(expected) == 0 || slices.ContainsFunc(expected, func(a string) bool {
		return slices.Contains(c.Audience, a)
	}) {
		return nil
	}
	return ErrAudience
}

func (c *Claims) ValidateExpiry() error {
	return c.ValidateExpiryWithLeeway(0)
}

// ValidateExpiryWithLeeway checks exp and nbf, tolerating leeway of clock
// skew on both.
func (c *Claims) ValidateExpiryWithLeeway(leeway time.Duration) error {
	now := time.Now().UTC()
	switch {
	case c.ExpiresAt != nil && now.After(c.ExpiresAt.Add(leeway)):
		return ErrExpired
	case c.NotBefore != nil && now.Before(c.NotBefore.Add(-leeway)):
		return ErrNotYetValid
	}
	return nil
}

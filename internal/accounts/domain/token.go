package domain

import "time"

// TokenKind separates the one-time token namespaces. A token minted for one
// kind can never be consumed as the other.
type TokenKind string

const (
	TokenActivation    TokenKind = "activation"
	TokenPasswordReset TokenKind = "password_reset"
)

// OneTimeToken binds the fingerprint of a single-use token to an email.
type OneTimeToken struct {
	TokenHash string
	Kind      TokenKind
	Email     string
	CreatedAt time.Time
	ExpiresAt time.Time
}

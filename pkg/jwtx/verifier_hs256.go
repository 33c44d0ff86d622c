package jwtx

import (
	"github.com/golang-jwt/jwt/v5"
)

// HS256Verifier validates JWTs signed with a shared HMAC secret.
type HS256Verifier struct {
	secret []byte
	issuer string
	aud    []string
}

// NewVerifierHS256 creates a verifier for tokens signed with secret.
func NewVerifierHS256(secret []byte, issuer string, aud []string) *HS256Verifier {
	key := make([]byte, len(secret))
	copy(key, secret)
	return &HS256Verifier{secret: key, issuer: issuer, aud: aud}
}

func (v *HS256Verifier) Verify(tokenStr string) (Claims, error) {
	return parseClaims(tokenStr, jwt.SigningMethodHS256, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, v.issuer, v.aud)
}

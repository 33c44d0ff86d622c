package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
)

// Entropy sizes in bytes. Encoded lengths are 22, 43 and 86 characters.
const (
	TokenSize128 = 16 // key ids
	TokenSize256 = 32 // activation and reset links
	TokenSize512 = 64 // generated signing secrets
)

// GenerateToken reads size random bytes and returns them base64url encoded
// without padding, safe to embed in a link.
func GenerateToken(size int) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("cryptox: token size must be positive, got %d", size)
	}

	raw := make([]byte, size)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("cryptox: read random: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// MustGenerateToken panics where GenerateToken would fail.
func MustGenerateToken(size int) string {
	tok, err := GenerateToken(size)
	if err != nil {
		panic(err)
	}
	return tok
}

// FingerprintToken is the SHA-256 of token, base64url encoded. Only
// fingerprints of one-time tokens are persisted.
func FingerprintToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

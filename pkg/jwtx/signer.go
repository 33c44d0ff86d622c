package jwtx

import "crypto/ed25519"

// Signer signs session claims.
type Signer interface {
	Alg() string
	KID() string
	Sign(Claims) (string, error)
	Validate() error
}

// PublicSigner is a Signer backed by an asymmetric key whose public half can
// be published in a JWKS.
type PublicSigner interface {
	Signer
	PublicJWK() JWK
}

// NewSignerHS256 creates an HS256 signer from a shared secret.
func NewSignerHS256(kid string, secret []byte) (Signer, error) {
	return newHS256Signer(kid, secret)
}

// NewSignerEdDSA wraps an existing Ed25519 private key.
func NewSignerEdDSA(kid string, key ed25519.PrivateKey) (PublicSigner, error) {
	s := newEdDSASigner(kid, key)
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// GenerateSignerEdDSA creates a signer with a fresh Ed25519 key that only
// lives in memory.
func GenerateSignerEdDSA(kid string) (PublicSigner, error) {
	_, key, err := ed25519.GenerateKey(nil)
	if err != nil {
		return nil, err
	}
	return newEdDSASigner(kid, key), nil
}

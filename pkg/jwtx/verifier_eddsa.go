package jwtx

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// EdDSAVerifier validates JWTs signed by any Ed25519 key in a KeySet. The
// kid header picks the key.
type EdDSAVerifier struct {
	keys   *KeySet
	issuer string
	aud    []string
}

func NewVerifierEdDSA(keys *KeySet, issuer string, aud []string) *EdDSAVerifier {
	return &EdDSAVerifier{keys: keys, issuer: issuer, aud: aud}
}

func (v *EdDSAVerifier) Verify(tokenStr string) (Claims, error) {
	return parseClaims(tokenStr, jwt.SigningMethodEdDSA, v.lookup, v.issuer, v.aud)
}

func (v *EdDSAVerifier) lookup(t *jwt.Token) (any, error) {
	kid, _ := t.Header["kid"].(string)
	if kid == "" {
		return nil, errors.New("jwtx: missing kid")
	}

	pub, err := v.keys.Get(kid)
	if err != nil {
		return nil, fmt.Errorf("%w %q", ErrUnknownKID, kid)
	}
	return pub, nil
}

package jwtx_test

import (
	"crypto/ed25519"
	"testing"
	"time"

	"github.com/flowmerce/accounts/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newEdDSASigner(t *testing.T, kid string) jwtx.PublicSigner {
	t.Helper()
	signer, err := jwtx.GenerateSignerEdDSA(kid)
	require.NoError(t, err)
	return signer
}

func TestEdDSASignAndVerify(t *testing.T) {
	signer := newEdDSASigner(t, "test-key-eddsa")
	require.NoError(t, signer.Validate())
	require.Equal(t, "EdDSA", signer.Alg())
	require.Equal(t, "test-key-eddsa", signer.KID())

	claims := jwtx.NewSessionClaims("merchant@example.com", "acc-1", "MERCHANT", "sid-1", 5*time.Minute, exampleIssuer, time.Now().UTC())

	token, err := signer.Sign(claims)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	keyset := jwtx.NewKeySet()
	require.NoError(t, keyset.AddSigner(signer))

	jwks := keyset.PublicJWKS()
	require.Len(t, jwks.Keys, 1)
	require.Equal(t, "OKP", jwks.Keys[0].Kty)
	require.Equal(t, "Ed25519", jwks.Keys[0].Crv)

	parsed, err := jwtx.NewVerifierEdDSA(keyset, exampleIssuer, nil).Verify(token)
	require.NoError(t, err)
	require.Equal(t, claims.Subject, parsed.Subject)
	require.Equal(t, claims.Role, parsed.Role)
	require.Equal(t, claims.UID, parsed.UID)
	require.Equal(t, claims.SID, parsed.SID)
	require.Equal(t, claims.ID, parsed.ID)
}

func TestEdDSAVerifyFailsForWrongIssuer(t *testing.T) {
	signer := newEdDSASigner(t, "k1")
	claims := jwtx.NewSessionClaims("a@example.com", "acc", "BUYER", "sid", time.Minute, exampleIssuer, time.Now().UTC())

	token, err := signer.Sign(claims)
	require.NoError(t, err)

	keyset := jwtx.NewKeySet()
	require.NoError(t, keyset.AddSigner(signer))

	_, err = jwtx.NewVerifierEdDSA(keyset, "wrong-issuer", nil).Verify(token)
	require.ErrorIs(t, err, jwtx.ErrIssuer)
}

func TestEdDSAVerifyFailsForUnknownKey(t *testing.T) {
	signer1 := newEdDSASigner(t, "key1")
	signer2 := newEdDSASigner(t, "key2")

	claims := jwtx.NewSessionClaims("a@example.com", "acc", "BUYER", "sid", time.Minute, exampleIssuer, time.Now().UTC())
	token, err := signer1.Sign(claims)
	require.NoError(t, err)

	keyset := jwtx.NewKeySet()
	require.NoError(t, keyset.AddSigner(signer2))

	_, err = jwtx.NewVerifierEdDSA(keyset, exampleIssuer, nil).Verify(token)
	require.ErrorIs(t, err, jwtx.ErrUnknownKID)
}

func TestEdDSAVerifyFailsForExpiredToken(t *testing.T) {
	signer := newEdDSASigner(t, "k1")
	claims := jwtx.NewSessionClaims("a@example.com", "acc", "BUYER", "sid", time.Minute, exampleIssuer, time.Now().Add(-time.Hour))

	token, err := signer.Sign(claims)
	require.NoError(t, err)

	keyset := jwtx.NewKeySet()
	require.NoError(t, keyset.AddSigner(signer))

	_, err = jwtx.NewVerifierEdDSA(keyset, exampleIssuer, nil).Verify(token)
	require.ErrorIs(t, err, jwtx.ErrExpired)
}

func TestNewSignerEdDSA(t *testing.T) {
	_, key, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	signer, err := jwtx.NewSignerEdDSA("k", key)
	require.NoError(t, err)
	require.Equal(t, "k", signer.PublicJWK().Kid)

	_, err = jwtx.NewSignerEdDSA("k", ed25519.PrivateKey("too short"))
	require.Error(t, err)
}

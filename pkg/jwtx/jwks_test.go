package jwtx

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJWK_PEM_Ed25519(t *testing.T) {
	publicKey, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	jwk := NewEd25519JWK("test-key-id", "sig", "EdDSA", publicKey)

	pemStr, err := jwk.PEM()
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(pemStr, "-----BEGIN PUBLIC KEY-----"))

	block, _ := pem.Decode([]byte(pemStr))
	require.NotNil(t, block, "PEM block should be valid")
	require.Equal(t, "PUBLIC KEY", block.Type)

	parsedKey, err := x509.ParsePKIXPublicKey(block.Bytes)
	require.NoError(t, err)

	edPub, ok := parsedKey.(ed25519.PublicKey)
	require.True(t, ok, "parsed key should be an Ed25519 public key")
	require.Equal(t, publicKey, edPub)
}

func TestJWK_PEM_UnsupportedKeyType(t *testing.T) {
	_, err := JWK{Kty: "RSA", Kid: "test-key"}.PEM()
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported kty")
}

func TestJWK_PEM_InvalidBase64(t *testing.T) {
	_, err := JWK{Kty: "OKP", Crv: "Ed25519", Kid: "test-key", X: "!!!invalid-base64!!!"}.PEM()
	require.Error(t, err)
}

func TestKeySet_PublicJWKSIsSnapshot(t *testing.T) {
	publicKey, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	ks := NewKeySet()
	require.Equal(t, 0, ks.Len())
	require.NotNil(t, ks.PublicJWKS().Keys, "empty set must still encode as an array")

	require.NoError(t, ks.AddJWK(NewEd25519JWK("k1", "sig", "EdDSA", publicKey)))
	snap := ks.PublicJWKS()
	snap.Keys[0].Kid = "mutated"

	require.Equal(t, "k1", ks.PublicJWKS().Keys[0].Kid)
	_, err = ks.Get("k1")
	require.NoError(t, err)
	_, err = ks.Get("nope")
	require.ErrorIs(t, err, ErrNoKey)
}

package jwtx_test

import (
	"testing"
	"time"

	"github.com/flowmerce/accounts/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestNewKeyManager(t *testing.T) {
	tests := []struct {
		name         string
		opts         jwtx.KeyManagerOptions
		wantSigners  int
		wantJWKSKeys int
	}{
		{
			name:         "HS256 shared secret",
			opts:         jwtx.KeyManagerOptions{Algorithm: jwtx.AlgorithmHS256, Issuer: exampleIssuer, Secret: testSecret},
			wantSigners:  1,
			wantJWKSKeys: 0,
		},
		{
			name:         "EdDSA single key",
			opts:         jwtx.KeyManagerOptions{Algorithm: jwtx.AlgorithmEdDSA, Issuer: exampleIssuer},
			wantSigners:  1,
			wantJWKSKeys: 1,
		},
		{
			name:         "EdDSA three keys",
			opts:         jwtx.KeyManagerOptions{Algorithm: jwtx.AlgorithmEdDSA, Issuer: exampleIssuer, NumKeys: 3},
			wantSigners:  3,
			wantJWKSKeys: 3,
		},
		{
			name:         "EdDSA capped at ten",
			opts:         jwtx.KeyManagerOptions{Algorithm: jwtx.AlgorithmEdDSA, Issuer: exampleIssuer, NumKeys: 50},
			wantSigners:  10,
			wantJWKSKeys: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			km, err := jwtx.NewKeyManager(tt.opts)
			require.NoError(t, err)
			require.True(t, km.IsReady())
			require.Equal(t, tt.opts.Algorithm, km.Algorithm())
			require.Equal(t, tt.wantSigners, km.NumSigners())
			require.Len(t, km.KeySet.PublicJWKS().Keys, tt.wantJWKSKeys)

			claims := jwtx.NewSessionClaims("a@example.com", "acc", "BUYER", "sid", time.Hour, exampleIssuer, time.Now().UTC())
			token, err := km.GetSigner().Sign(claims)
			require.NoError(t, err)

			parsed, err := km.Verifier.Verify(token)
			require.NoError(t, err)
			require.Equal(t, "a@example.com", parsed.Subject)
		})
	}
}

func TestNewKeyManager_Errors(t *testing.T) {
	_, err := jwtx.NewKeyManager(jwtx.KeyManagerOptions{Algorithm: jwtx.AlgorithmHS256, Secret: testSecret})
	require.Error(t, err, "issuer is required")

	_, err = jwtx.NewKeyManager(jwtx.KeyManagerOptions{Algorithm: jwtx.AlgorithmHS256, Issuer: exampleIssuer})
	require.ErrorIs(t, err, jwtx.ErrWeakSecret)

	_, err = jwtx.NewKeyManager(jwtx.KeyManagerOptions{Algorithm: "RS256", Issuer: exampleIssuer})
	require.Error(t, err)
}

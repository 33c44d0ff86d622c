package accounts_test

import (
	"testing"

	"github.com/flowmerce/accounts/pkg/accountsdk"
	"github.com/stretchr/testify/require"
)

// TestHealthEndpoints verifies the liveness, readiness and JWKS endpoints.
func TestHealthEndpoints(t *testing.T) {
	baseURL, cleanup := setupAccountsContainer(t, nil)
	defer cleanup()

	client := accountsdk.NewClient(baseURL)

	health, err := client.GetLiveness(t.Context())
	assertHealthy(t, health, err)

	health, err = client.GetReadiness(t.Context())
	assertHealthy(t, health, err)
	require.NotNil(t, health.Checks)
	require.Equal(t, "ok", health.Checks.Database)

	jwks, err := client.GetJWKS(t.Context())
	require.NoError(t, err)
	require.Empty(t, jwks.Keys, "HS256 keys are never published")
}

// TestJWKSEndpoint_EdDSA verifies public keys are published in EdDSA mode.
func TestJWKSEndpoint_EdDSA(t *testing.T) {
	baseURL, cleanup := setupAccountsContainer(t, map[string]string{"AUTH_ALGORITHM": "EdDSA"})
	defer cleanup()

	client := accountsdk.NewClient(baseURL)

	jwks, err := client.GetJWKS(t.Context())
	require.NoError(t, err)
	require.NotEmpty(t, jwks.Keys)

	for _, key := range jwks.Keys {
		require.Equal(t, "OKP", key.Kty)
		require.Equal(t, "EdDSA", key.Alg)
		t.Logf("Key ID: %s, Algorithm: %s", key.Kid, key.Alg)
	}

	session := registerAndLogin(t, client, "eddsa@example.com")
	_, err = session.Profile(t.Context())
	require.NoError(t, err)
}

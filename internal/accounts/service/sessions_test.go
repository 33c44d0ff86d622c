package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/flowmerce/accounts/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestSessionManager_Validate(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	a := env.register(t, "lou@x.com", "Passw0rd!")

	t.Run("tampered token", func(t *testing.T) {
		token := env.login(t, "lou@x.com", "Passw0rd!")
		i := strings.LastIndex(token, ".") + 5
		swap := byte('A')
		if token[i] == 'A' {
			swap = 'B'
		}
		tampered := token[:i] + string(swap) + token[i+1:]
		env.requireInvalid(t, tampered)
	})

	t.Run("token signed by another key", func(t *testing.T) {
		other, err := jwtx.NewKeyManager(jwtx.KeyManagerOptions{
			Algorithm: jwtx.AlgorithmHS256,
			Issuer:    testIssuer,
			Secret:    []byte("another-secret-another-secret-00"),
		})
		require.NoError(t, err)
		forged := &SessionManager{Store: env.store, KeyManager: other, Issuer: testIssuer}
		token, _, err := forged.Issue(ctx, a)
		require.NoError(t, err)

		env.requireInvalid(t, token)
	})

	t.Run("row expiry is enforced", func(t *testing.T) {
		env := newTestEnv(t)
		env.register(t, "exp@x.com", "Passw0rd!")
		token := env.login(t, "exp@x.com", "Passw0rd!")
		env.requireValid(t, token)

		env.clock.Advance(jwtx.DefaultSessionTTL + time.Second)
		env.requireInvalid(t, token)
	})
}

func TestSessionManager_RevokeAll(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	a := env.register(t, "mia@x.com", "Passw0rd!")

	t1 := env.login(t, "mia@x.com", "Passw0rd!")
	t2 := env.login(t, "mia@x.com", "Passw0rd!")

	n, err := env.sessions.ActiveCount(ctx, a.ID)
	require.NoError(t, err)
	require.EqualValues(t, 2, n)

	require.NoError(t, env.sessions.RevokeAll(ctx, a.ID))
	require.NoError(t, env.sessions.RevokeAll(ctx, a.ID))
	require.NoError(t, env.sessions.RevokeAll(ctx, "no-such-account"))

	env.requireInvalid(t, t1)
	env.requireInvalid(t, t2)

	n, err = env.sessions.ActiveCount(ctx, a.ID)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestSessionManager_AuthenticateRefreshesRole(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	a := env.register(t, "ned@x.com", "Passw0rd!")
	token := env.login(t, "ned@x.com", "Passw0rd!")

	claims, err := env.sessions.Authenticate(ctx, token)
	require.NoError(t, err)
	require.Equal(t, "BUYER", claims.Role)

	_, err = env.merchants.CreateProfile(ctx, a.ID, "Ned's Nuts")
	require.NoError(t, err)

	claims, err = env.sessions.Authenticate(ctx, token)
	require.NoError(t, err)
	require.Equal(t, "MERCHANT", claims.Role)
	require.Equal(t, a.ID, claims.UID)
}

func TestSessionManager_PurgeExpired(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.register(t, "oli@x.com", "Passw0rd!")
	env.login(t, "oli@x.com", "Passw0rd!")

	n, err := env.sessions.PurgeExpired(ctx)
	require.NoError(t, err)
	require.Zero(t, n)

	env.clock.Advance(jwtx.DefaultSessionTTL + DefaultSessionRetention + time.Minute)

	n, err = env.sessions.PurgeExpired(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
}

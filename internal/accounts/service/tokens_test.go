package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/flowmerce/accounts/internal/accounts/domain"
	"github.com/stretchr/testify/require"
)

func TestTokenRegistry(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	t.Run("default ttls", func(t *testing.T) {
		require.Equal(t, 24*time.Hour, env.tokens.TTL(domain.TokenActivation))
		require.Equal(t, time.Hour, env.tokens.TTL(domain.TokenPasswordReset))

		custom := &TokenRegistry{ActivationTTL: time.Minute, ResetTTL: 2 * time.Minute}
		require.Equal(t, time.Minute, custom.TTL(domain.TokenActivation))
		require.Equal(t, 2*time.Minute, custom.TTL(domain.TokenPasswordReset))
	})

	t.Run("issue and consume once", func(t *testing.T) {
		token, err := env.tokens.Issue(ctx, domain.TokenPasswordReset, "pat@x.com")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		email, err := env.tokens.Consume(ctx, domain.TokenPasswordReset, token)
		require.NoError(t, err)
		require.Equal(t, "pat@x.com", email)

		_, err = env.tokens.Consume(ctx, domain.TokenPasswordReset, token)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("tokens are unique", func(t *testing.T) {
		seen := map[string]bool{}
		for range 20 {
			token, err := env.tokens.Issue(ctx, domain.TokenActivation, "uniq@x.com")
			require.NoError(t, err)
			require.False(t, seen[token])
			seen[token] = true
		}
	})
}

func TestTokenRegistry_ConcurrentConsume(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	token, err := env.tokens.Issue(ctx, domain.TokenPasswordReset, "quinn@x.com")
	require.NoError(t, err)

	var (
		wg      sync.WaitGroup
		success atomic.Int32
	)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.tokens.Consume(ctx, domain.TokenPasswordReset, token)
			switch {
			case err == nil:
				success.Add(1)
			case !errors.Is(err, ErrInvalidToken):
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	require.EqualValues(t, 1, success.Load())
}

func TestTokenRegistry_PurgeExpired(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.tokens.Issue(ctx, domain.TokenPasswordReset, "rae@x.com")
	require.NoError(t, err)
	_, err = env.tokens.Issue(ctx, domain.TokenActivation, "rae@x.com")
	require.NoError(t, err)

	env.clock.Advance(2 * time.Hour)

	n, err := env.tokens.PurgeExpired(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	pending, err := env.tokens.Pending(ctx, domain.TokenActivation, "rae@x.com")
	require.NoError(t, err)
	require.EqualValues(t, 1, pending)
}

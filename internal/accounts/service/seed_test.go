package service

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/flowmerce/accounts/internal/accounts/domain"
	"github.com/stretchr/testify/require"
)

func TestSeedAdmin(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	seed := &SeedService{Store: env.store, Credentials: env.creds}

	res, err := seed.SeedAdmin(ctx, "admin@x.com", "")
	require.NoError(t, err)
	require.True(t, res.Created)
	require.NotEmpty(t, res.GeneratedPassword)

	admin, err := env.creds.FindByEmail(ctx, "admin@x.com")
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, admin.Role)
	require.True(t, admin.Activated())

	env.login(t, "admin@x.com", res.GeneratedPassword)

	again, err := seed.SeedAdmin(ctx, "admin@x.com", "")
	require.NoError(t, err)
	require.False(t, again.Created)
	require.Empty(t, again.GeneratedPassword)
	require.Equal(t, res.AccountID, again.AccountID)

	t.Run("promotes an existing account", func(t *testing.T) {
		a := env.register(t, "boss@x.com", "Passw0rd!")
		res, err := seed.SeedAdmin(ctx, "boss@x.com", "ignored")
		require.NoError(t, err)
		require.False(t, res.Created)
		require.Equal(t, a.ID, res.AccountID)

		got, err := env.creds.FindByID(ctx, a.ID)
		require.NoError(t, err)
		require.Equal(t, domain.RoleAdmin, got.Role)
		env.login(t, "boss@x.com", "Passw0rd!")
	})

	t.Run("email is required", func(t *testing.T) {
		_, err := seed.SeedAdmin(ctx, "", "x")
		require.Error(t, err)
	})
}

func TestHousekeeping_Cleanup(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.register(t, "xena@x.com", "Passw0rd!")
	env.login(t, "xena@x.com", "Passw0rd!")

	hk := NewHousekeepingService(env.tokens, env.sessions, slog.New(slog.DiscardHandler), time.Minute)

	hk.Cleanup(ctx)
	pending, err := env.tokens.Pending(ctx, domain.TokenActivation, "xena@x.com")
	require.NoError(t, err)
	require.EqualValues(t, 1, pending)

	env.clock.Advance(DefaultSessionRetention + 48*time.Hour)
	hk.Cleanup(ctx)

	pending, err = env.tokens.Pending(ctx, domain.TokenActivation, "xena@x.com")
	require.NoError(t, err)
	require.Zero(t, pending)

	n, err := env.sessions.PurgeExpired(ctx)
	require.NoError(t, err)
	require.Zero(t, n, "cleanup already removed the expired session")
}

func TestHousekeeping_StartStop(t *testing.T) {
	env := newTestEnv(t)
	hk := NewHousekeepingService(env.tokens, env.sessions, slog.New(slog.DiscardHandler), 0)
	require.Equal(t, time.Hour, hk.Interval)

	hk.Start()
	hk.Stop()
}

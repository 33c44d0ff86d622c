package jwtx_test

import (
	"testing"
	"time"

	"github.com/flowmerce/accounts/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const exampleIssuer = "https://accounts.flowmerce.test"

func TestNewSessionClaims(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	c := jwtx.NewSessionClaims("alice@example.com", "01HACCOUNT", "BUYER", "01HSESSION", 24*time.Hour, exampleIssuer, now)

	require.Equal(t, "alice@example.com", c.Subject)
	require.Equal(t, "01HACCOUNT", c.UID)
	require.Equal(t, "BUYER", c.Role)
	require.Equal(t, "01HSESSION", c.SID)
	require.Equal(t, exampleIssuer, c.Issuer)
	require.Equal(t, now.Add(24*time.Hour), c.ExpiresAt.Time)
	require.NotEmpty(t, c.ID)

	other := jwtx.NewSessionClaims("alice@example.com", "01HACCOUNT", "BUYER", "01HSESSION", 24*time.Hour, exampleIssuer, now)
	require.NotEqual(t, c.ID, other.ID, "jti must differ between tokens minted in the same second")
}

func TestValidateIssuer(t *testing.T) {
	c := &jwtx.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer: "accounts",
		},
	}

	t.Run("matching issuer", func(t *testing.T) {
		require.NoError(t, c.ValidateIssuer("accounts"))
	})

	t.Run("empty expected issuer", func(t *testing.T) {
		require.NoError(t, c.ValidateIssuer(""))
	})

	t.Run("mismatched issuer", func(t *testing.T) {
		require.ErrorIs(t, c.ValidateIssuer("catalog"), jwtx.ErrIssuer)
	})
}

func TestValidateAudience(t *testing.T) {
	c := &jwtx.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Audience: []string{"storefront", "merchant-portal"},
		},
	}

	require.NoError(t, c.ValidateAudience([]string{"storefront"}))
	require.NoError(t, c.ValidateAudience([]string{"foo", "merchant-portal"}))
	require.NoError(t, c.ValidateAudience(nil))
	require.ErrorIs(t, c.ValidateAudience([]string{"admin"}), jwtx.ErrAudience)
}

func TestValidateExpiry(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name    string
		claims  jwt.RegisteredClaims
		wantErr error
	}{
		{
			name:   "valid token",
			claims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute))},
		},
		{
			name:    "expired token",
			claims:  jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute))},
			wantErr: jwtx.ErrExpired,
		},
		{
			name:    "not yet valid",
			claims:  jwt.RegisteredClaims{NotBefore: jwt.NewNumericDate(now.Add(time.Minute))},
			wantErr: jwtx.ErrNotYetValid,
		},
		{
			name: "no exp or nbf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &jwtx.Claims{RegisteredClaims: tt.claims}
			err := c.ValidateExpiry()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateExpiryWithLeeway(t *testing.T) {
	now := time.Now().UTC()

	t.Run("valid with leeway", func(t *testing.T) {
		c := &jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(-10 * time.Second)),
		}}
		require.NoError(t, c.ValidateExpiryWithLeeway(30*time.Second))
	})

	t.Run("expired beyond leeway", func(t *testing.T) {
		c := &jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(-2 * time.Minute)),
		}}
		require.ErrorIs(t, c.ValidateExpiryWithLeeway(30*time.Second), jwtx.ErrExpired)
	})
}

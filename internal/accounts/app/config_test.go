package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/flowmerce/accounts/pkg/httpx"
	"github.com/flowmerce/accounts/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, jwtx.AlgorithmHS256, cfg.Algorithm)
	require.Equal(t, 24*time.Hour, cfg.SessionTTL)
	require.Equal(t, 24*time.Hour, cfg.ActivationTTL)
	require.Equal(t, time.Hour, cfg.ResetTTL)
	require.False(t, cfg.RequireActivation)
	require.Equal(t, "log", cfg.MailDriver)
	require.Equal(t, "AU", cfg.PhoneRegion)
	require.Empty(t, cfg.RateLimits)
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("AUTH_ALGORITHM", "EdDSA")
	t.Setenv("AUTH_SESSION_TTL", "2h")
	t.Setenv("AUTH_REQUIRE_ACTIVATION", "true")
	t.Setenv("PHONE_DEFAULT_REGION", "nz")
	t.Setenv("RATELIMIT_STRICT_REQUESTS", "50")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, 9090, cfg.Port)
	require.Equal(t, jwtx.AlgorithmEdDSA, cfg.Algorithm)
	require.Equal(t, 2*time.Hour, cfg.SessionTTL)
	require.True(t, cfg.RequireActivation)
	require.Equal(t, "NZ", cfg.PhoneRegion)

	require.Len(t, cfg.RateLimits, 1)
	strict := cfg.RateLimits["strict"]
	require.Equal(t, 50, strict.RequestsPerWindow)
	require.Equal(t, httpx.StrictLimit.Window, strict.Window)
	require.Equal(t, httpx.StrictLimit.Burst, strict.Burst)
}

func TestLoadConfig_File(t *testing.T) {
	file := filepath.Join(t.TempDir(), "accounts.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
port: 7070
auth_issuer: https://accounts.example.com
mail_driver: smtp
smtp_host: mail.example.com
`), 0o600))

	t.Setenv(ConfigFileEnv, file)
	t.Setenv("PORT", "7171")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, 7171, cfg.Port, "environment wins over the file")
	require.Equal(t, "https://accounts.example.com", cfg.Issuer)
	require.Equal(t, "smtp", cfg.MailDriver)
	require.Equal(t, "mail.example.com", cfg.SMTPHost)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	t.Setenv(ConfigFileEnv, filepath.Join(t.TempDir(), "nope.yaml"))
	_, err := LoadConfig()
	require.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	base, err := LoadConfig()
	require.NoError(t, err)

	tests := map[string]func(*Config){
		"unknown algorithm": func(c *Config) { c.Algorithm = "RS256" },
		"empty issuer":      func(c *Config) { c.Issuer = "" },
		"zero session ttl":  func(c *Config) { c.SessionTTL = 0 },
		"smtp without host": func(c *Config) { c.MailDriver = "smtp" },
		"unknown driver":    func(c *Config) { c.MailDriver = "pigeon" },
		"bad rate limit": func(c *Config) {
			c.RateLimits = map[string]httpx.RateLimitConfig{"strict": {RequestsPerWindow: 1}}
		},
	}

	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := base
			mutate(&cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

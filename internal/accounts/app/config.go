package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/flowmerce/accounts/pkg/httpx"
	"github.com/flowmerce/accounts/pkg/jwtx"
	"github.com/spf13/viper"
)

// ConfigFileEnv names the environment variable pointing at an optional YAML
// config file. Environment variables win over values from the file.
const ConfigFileEnv = "ACCOUNTS_CONFIG_FILE"

type Config struct {
	Port                 int           // HTTP server port (default: 8080)
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)

	Issuer            string        // Issuer claim for session tokens
	Algorithm         string        // HS256 or EdDSA (default: HS256)
	SigningSecret     string        // HS256 shared secret, at least 32 bytes
	SessionTTL        time.Duration // Session lifetime (default: 24h)
	ActivationTTL     time.Duration // Activation token lifetime (default: 24h)
	ResetTTL          time.Duration // Password reset token lifetime (default: 1h)
	RequireActivation bool          // Reject logins from unactivated accounts (default: false)

	DatabaseFile string // Path to the SQLite database file (default: accounts.db)
	PepperFile   string // Path to the password pepper file (default: pepper)

	BaseURL       string // Public base URL used in emailed links
	MailDriver    string // log or smtp (default: log)
	MailFrom      string
	SMTPHost      string
	SMTPPort      int
	SMTPUsername  string
	SMTPPassword  string
	MailWorkers   int
	MailQueueSize int

	PhoneRegion string // Region for phone numbers without a country code (default: AU)

	SeedAdminEmail    string // Optional: ensure this account exists as ADMIN
	SeedAdminPassword string // Optional: generated and logged when empty

	// RateLimits overrides the built in profiles, keyed by strict, moderate,
	// lenient and public. Profiles without overrides are absent.
	RateLimits map[string]httpx.RateLimitConfig
}

var rateLimitProfiles = []string{"strict", "moderate", "lenient", "public"}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", 8080)
	v.SetDefault("env", "dev")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("shutdown_grace_period", 10*time.Second)
	v.SetDefault("housekeeping_interval", time.Hour)

	v.SetDefault("auth_issuer", "flowmerce-accounts")
	v.SetDefault("auth_algorithm", jwtx.AlgorithmHS256)
	v.SetDefault("auth_signing_secret", "")
	v.SetDefault("auth_session_ttl", 24*time.Hour)
	v.SetDefault("auth_activation_ttl", 24*time.Hour)
	v.SetDefault("auth_reset_ttl", time.Hour)
	v.SetDefault("auth_require_activation", false)
	v.SetDefault("auth_database_file", "accounts.db")
	v.SetDefault("auth_pepper_file", "pepper")

	v.SetDefault("app_base_url", "http://localhost:8080")
	v.SetDefault("mail_driver", "log")
	v.SetDefault("mail_from", "no-reply@flowmerce.local")
	v.SetDefault("smtp_host", "")
	v.SetDefault("smtp_port", 587)
	v.SetDefault("smtp_username", "")
	v.SetDefault("smtp_password", "")
	v.SetDefault("mail_workers", 2)
	v.SetDefault("mail_queue_size", 100)

	v.SetDefault("phone_default_region", "AU")

	v.SetDefault("seed_admin_email", "")
	v.SetDefault("seed_admin_password", "")
}

// LoadConfig reads the configuration from the environment and, when
// ACCOUNTS_CONFIG_FILE is set, from that YAML file.
func LoadConfig() (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if file := v.GetString(ConfigFileEnv); file != "" {
		v.SetConfigFile(file)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	cfg := Config{
		Port:                 v.GetInt("port"),
		Env:                  v.GetString("env"),
		LogLevel:             v.GetString("log_level"),
		LogFormat:            v.GetString("log_format"),
		ShutdownGracePeriod:  v.GetDuration("shutdown_grace_period"),
		HousekeepingInterval: v.GetDuration("housekeeping_interval"),

		Issuer:            v.GetString("auth_issuer"),
		Algorithm:         v.GetString("auth_algorithm"),
		SigningSecret:     v.GetString("auth_signing_secret"),
		SessionTTL:        v.GetDuration("auth_session_ttl"),
		ActivationTTL:     v.GetDuration("auth_activation_ttl"),
		ResetTTL:          v.GetDuration("auth_reset_ttl"),
		RequireActivation: v.GetBool("auth_require_activation"),
		DatabaseFile:      v.GetString("auth_database_file"),
		PepperFile:        v.GetString("auth_pepper_file"),

		BaseURL:       v.GetString("app_base_url"),
		MailDriver:    strings.ToLower(v.GetString("mail_driver")),
		MailFrom:      v.GetString("mail_from"),
		SMTPHost:      v.GetString("smtp_host"),
		SMTPPort:      v.GetInt("smtp_port"),
		SMTPUsername:  v.GetString("smtp_username"),
		SMTPPassword:  v.GetString("smtp_password"),
		MailWorkers:   v.GetInt("mail_workers"),
		MailQueueSize: v.GetInt("mail_queue_size"),

		PhoneRegion: strings.ToUpper(v.GetString("phone_default_region")),

		SeedAdminEmail:    v.GetString("seed_admin_email"),
		SeedAdminPassword: v.GetString("seed_admin_password"),

		RateLimits: loadRateLimits(v),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// loadRateLimits reads RATELIMIT_<PROFILE>_REQUESTS, _WINDOW and _BURST. A
// partial override keeps the built in values for the missing parts.
func loadRateLimits(v *viper.Viper) map[string]httpx.RateLimitConfig {
	builtin := map[string]httpx.RateLimitConfig{
		"strict":   httpx.StrictLimit,
		"moderate": httpx.ModerateLimit,
		"lenient":  httpx.LenientLimit,
		"public":   httpx.PublicLimit,
	}

	out := make(map[string]httpx.RateLimitConfig)
	for _, name := range rateLimitProfiles {
		prefix := "ratelimit_" + name + "_"
		for _, suffix := range []string{"requests", "window", "burst"} {
			_ = v.BindEnv(prefix+suffix, strings.ToUpper(prefix+suffix))
		}
		if !v.IsSet(prefix+"requests") && !v.IsSet(prefix+"window") && !v.IsSet(prefix+"burst") {
			continue
		}

		limit := builtin[name]
		if v.IsSet(prefix + "requests") {
			limit.RequestsPerWindow = v.GetInt(prefix + "requests")
		}
		if v.IsSet(prefix + "window") {
			limit.Window = v.GetDuration(prefix + "window")
		}
		if v.IsSet(prefix + "burst") {
			limit.Burst = v.GetInt(prefix + "burst")
		}
		out[name] = limit
	}
	return out
}

// Validate rejects configurations the service cannot start with.
func (c Config) Validate() error {
	var errs []error

	switch c.Algorithm {
	case jwtx.AlgorithmHS256, jwtx.AlgorithmEdDSA:
	default:
		errs = append(errs, fmt.Errorf("AUTH_ALGORITHM must be HS256 or EdDSA, got %q", c.Algorithm))
	}
	if c.Issuer == "" {
		errs = append(errs, errors.New("AUTH_ISSUER must not be empty"))
	}
	if c.SessionTTL <= 0 || c.ActivationTTL <= 0 || c.ResetTTL <= 0 {
		errs = append(errs, errors.New("token lifetimes must be positive"))
	}

	switch c.MailDriver {
	case "log":
	case "smtp":
		if c.SMTPHost == "" {
			errs = append(errs, errors.New("SMTP_HOST is required when MAIL_DRIVER=smtp"))
		}
	default:
		errs = append(errs, fmt.Errorf("MAIL_DRIVER must be log or smtp, got %q", c.MailDriver))
	}

	for name, limit := range c.RateLimits {
		if !limit.Valid() {
			errs = append(errs, fmt.Errorf("rate limit profile %s: requests, window and burst must be positive", name))
		}
	}

	return errors.Join(errs...)
}

// applyRateLimits installs the configured overrides. It must run before the
// router registers its routes.
func applyRateLimits(limits map[string]httpx.RateLimitConfig) {
	for name, limit := range limits {
		switch name {
		case "strict":
			httpx.StrictLimit = limit
		case "moderate":
			httpx.ModerateLimit = limit
		case "lenient":
			httpx.LenientLimit = limit
		case "public":
			httpx.PublicLimit = limit
		}
	}
}

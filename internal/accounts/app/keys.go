package app

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/flowmerce/accounts/pkg/cryptox"
	"github.com/flowmerce/accounts/pkg/jwtx"
	"github.com/flowmerce/accounts/pkg/slogx"
)

// InitSessionKeys creates the KeyManager that signs session tokens.
//
// Algorithms:
//   - "HS256": one shared secret from AUTH_SIGNING_SECRET. Outside of
//     development the secret is required; in development a random one is
//     generated, so every session dies with the process.
//   - "EdDSA": ephemeral Ed25519 keys generated on startup and published on
//     the JWKS endpoint.
func InitSessionKeys(cfg Config, logger *slog.Logger) (*jwtx.KeyManager, error) {
	opts := jwtx.KeyManagerOptions{
		Algorithm: cfg.Algorithm,
		Issuer:    cfg.Issuer,
	}

	if cfg.Algorithm == jwtx.AlgorithmHS256 {
		secret := cfg.SigningSecret
		if secret == "" {
			if !slogx.IsDevelopment(cfg.Env) {
				return nil, errors.New("AUTH_SIGNING_SECRET is required for HS256 outside development")
			}
			generated, err := cryptox.GenerateToken(cryptox.TokenSize512)
			if err != nil {
				return nil, fmt.Errorf("failed to generate signing secret: %w", err)
			}
			secret = generated
			logger.Warn("AUTH_SIGNING_SECRET not set, using a random secret; sessions will not survive a restart")
		}
		opts.Secret = []byte(secret)
	}

	keyManager, err := jwtx.NewKeyManager(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize key manager: %w", err)
	}

	logger.Info("session signing keys ready",
		"algorithm", keyManager.Algorithm(),
		"num_keys", keyManager.NumSigners(),
		"issuer", cfg.Issuer,
	)
	return keyManager, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/flowmerce/accounts/internal/accounts/domain"
	"github.com/flowmerce/accounts/internal/accounts/store"
	"github.com/flowmerce/accounts/pkg/cryptox"
)

const (
	DefaultActivationTTL = 24 * time.Hour
	DefaultResetTTL      = time.Hour
)

// TokenRegistry mints and redeems single-use activation and password reset
// tokens. Only the fingerprint of a token is stored.
type TokenRegistry struct {
	Store         store.Store
	ActivationTTL time.Duration
	ResetTTL      time.Duration
	Now           func() time.Time
}

// With returns a copy bound to s, typically a transaction.
func (r *TokenRegistry) With(s store.Store) *TokenRegistry {
	cp := *r
	cp.Store = s
	return &cp
}

func (r *TokenRegistry) now() time.Time {
	if r.Now != nil {
		return r.Now().UTC()
	}
	return time.Now().UTC()
}

// TTL is the validity window for tokens of kind.
func (r *TokenRegistry) TTL(kind domain.TokenKind) time.Duration {
	switch kind {
	case domain.TokenActivation:
		if r.ActivationTTL > 0 {
			return r.ActivationTTL
		}
		return DefaultActivationTTL
	default:
		if r.ResetTTL > 0 {
			return r.ResetTTL
		}
		return DefaultResetTTL
	}
}

// Issue mints a 256-bit random token bound to email. The email is not checked
// against the account table.
func (r *TokenRegistry) Issue(ctx context.Context, kind domain.TokenKind, email string) (string, error) {
	raw, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}

	now := r.now()
	err = r.Store.OneTimeTokens().CreateOneTimeToken(ctx, domain.OneTimeToken{
		TokenHash: cryptox.FingerprintToken(raw),
		Kind:      kind,
		Email:     email,
		CreatedAt: now,
		ExpiresAt: now.Add(r.TTL(kind)),
	})
	if err != nil {
		return "", err
	}
	return raw, nil
}

// Consume redeems token and returns the bound email. The row is removed in
// the same statement that reads it, so of two concurrent calls at most one
// succeeds. Unknown, wrong-kind and expired tokens all yield ErrInvalidToken.
func (r *TokenRegistry) Consume(ctx context.Context, kind domain.TokenKind, token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrInvalidToken
	}

	t, err := r.Store.OneTimeTokens().ConsumeOneTimeToken(ctx, kind, cryptox.FingerprintToken(token))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrInvalidToken
		}
		return "", err
	}

	if !r.now().Before(t.ExpiresAt) {
		return "", ErrInvalidToken
	}
	return t.Email, nil
}

// Pending counts unconsumed tokens of kind for email.
func (r *TokenRegistry) Pending(ctx context.Context, kind domain.TokenKind, email string) (int64, error) {
	return r.Store.OneTimeTokens().CountOneTimeTokens(ctx, kind, email)
}

// PurgeExpired deletes tokens whose window has passed.
func (r *TokenRegistry) PurgeExpired(ctx context.Context) (int64, error) {
	return r.Store.OneTimeTokens().DeleteExpiredOneTimeTokens(ctx, r.now())
}

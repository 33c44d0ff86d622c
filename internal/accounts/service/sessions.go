package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/flowmerce/accounts/internal/accounts/domain"
	"github.com/flowmerce/accounts/internal/accounts/store"
	"github.com/flowmerce/accounts/pkg/cryptox"
	"github.com/flowmerce/accounts/pkg/idx"
	"github.com/flowmerce/accounts/pkg/jwtx"
)

// DefaultSessionRetention is how long expired session rows are kept before
// housekeeping deletes them.
const DefaultSessionRetention = 7 * 24 * time.Hour

// SessionManager issues, validates and revokes bearer session tokens. A token
// is a signed JWT and a session row keyed by its fingerprint; both must check
// out for the token to be accepted.
type SessionManager struct {
	Store      store.Store
	KeyManager *jwtx.KeyManager
	Issuer     string
	TTL        time.Duration
	Retention  time.Duration
	Now        func() time.Time
}

// With returns a copy bound to s, typically a transaction.
func (m *SessionManager) With(s store.Store) *SessionManager {
	cp := *m
	cp.Store = s
	return &cp
}

func (m *SessionManager) now() time.Time {
	if m.Now != nil {
		return m.Now().UTC()
	}
	return time.Now().UTC()
}

func (m *SessionManager) ttl() time.Duration {
	if m.TTL > 0 {
		return m.TTL
	}
	return jwtx.DefaultSessionTTL
}

// Issue signs a session token for the account and records its session row.
func (m *SessionManager) Issue(ctx context.Context, a domain.Account) (string, domain.Session, error) {
	signer := m.KeyManager.GetSigner()
	if signer == nil {
		return "", domain.Session{}, errors.New("no signing key available")
	}

	// JWT timestamps are whole seconds; keep the row in step with the token.
	now := m.now().Truncate(time.Second)
	sid := idx.NewAt(now).String()

	claims := jwtx.NewSessionClaims(a.Email, a.ID, string(a.Role), sid, m.ttl(), m.Issuer, now)
	token, err := signer.Sign(claims)
	if err != nil {
		return "", domain.Session{}, fmt.Errorf("sign session token: %w", err)
	}

	s := domain.Session{
		ID:        sid,
		AccountID: a.ID,
		TokenHash: cryptox.FingerprintToken(token),
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl()),
	}
	if err := m.Store.Sessions().CreateSession(ctx, s); err != nil {
		return "", domain.Session{}, err
	}
	return token, s, nil
}

// Validate accepts token only when the JWT verifies AND a live session row
// exists for it. Every rejection is ErrInvalidSession.
func (m *SessionManager) Validate(ctx context.Context, token string) (jwtx.Claims, domain.Session, error) {
	claims, err := m.KeyManager.Verifier.Verify(token)
	if err != nil {
		return jwtx.Claims{}, domain.Session{}, fmt.Errorf("%w: %w", ErrInvalidSession, err)
	}

	s, err := m.Store.Sessions().GetSessionByHash(ctx, cryptox.FingerprintToken(token))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return jwtx.Claims{}, domain.Session{}, ErrInvalidSession
		}
		return jwtx.Claims{}, domain.Session{}, err
	}

	if !s.Active(m.now()) || s.ID != claims.SID || s.AccountID != claims.UID {
		return jwtx.Claims{}, domain.Session{}, ErrInvalidSession
	}
	return claims, s, nil
}

// Authenticate validates token and replaces the role claim with the
// account's current role, so a role upgrade applies to existing sessions.
func (m *SessionManager) Authenticate(ctx context.Context, token string) (jwtx.Claims, error) {
	claims, s, err := m.Validate(ctx, token)
	if err != nil {
		return jwtx.Claims{}, err
	}

	a, err := m.Store.Accounts().GetAccountByID(ctx, s.AccountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return jwtx.Claims{}, ErrInvalidSession
		}
		return jwtx.Claims{}, err
	}
	claims.Role = string(a.Role)
	return claims, nil
}

// Revoke marks the session for token as revoked. Revoking a token that is
// unknown, already revoked or past its expiry is a BadRequest.
func (m *SessionManager) Revoke(ctx context.Context, token string) error {
	err := m.Store.Sessions().RevokeSession(ctx, cryptox.FingerprintToken(token), m.now())
	if errors.Is(err, store.ErrNotFound) {
		return newError(ErrBadRequest, "Token is already revoked or does not exist.")
	}
	return err
}

// RevokeAll revokes every session of the account. It never fails for an
// account without sessions.
func (m *SessionManager) RevokeAll(ctx context.Context, accountID string) error {
	_, err := m.Store.Sessions().RevokeAccountSessions(ctx, accountID)
	return err
}

// ActiveCount counts the account's sessions that would still validate.
func (m *SessionManager) ActiveCount(ctx context.Context, accountID string) (int64, error) {
	return m.Store.Sessions().CountActiveSessions(ctx, accountID, m.now())
}

// PurgeExpired deletes session rows that expired longer ago than Retention.
func (m *SessionManager) PurgeExpired(ctx context.Context) (int64, error) {
	retention := m.Retention
	if retention <= 0 {
		retention = DefaultSessionRetention
	}
	return m.Store.Sessions().DeleteExpiredSessions(ctx, m.now().Add(-retention))
}

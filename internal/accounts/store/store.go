package store

import (
	"context"
	"errors"
	"time"

	"github.com/flowmerce/accounts/internal/accounts/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers implement it and
// expose one sub-repository per table. Repositories obtained from a Tx run
// inside that transaction; repositories obtained from the Store do not.
type Store interface {
	Accounts() Accounts
	Sessions() Sessions
	OneTimeTokens() OneTimeTokens
	Merchants() Merchants

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. The transaction is committed
	// when fn returns nil and rolled back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Accounts interface {
	// CreateAccount inserts a new account. A duplicate email yields
	// ErrAlreadyExists.
	CreateAccount(ctx context.Context, a domain.Account) error

	GetAccountByID(ctx context.Context, id string) (domain.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (domain.Account, error)

	// ListAccounts returns every account, oldest first.
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// CountAccounts is used by readiness and seeding.
	CountAccounts(ctx context.Context) (int64, error)

	UpdateProfile(ctx context.Context, id, fullName, phone string) error
	UpdatePasswordHash(ctx context.Context, id, hash string) error
	UpdateRole(ctx context.Context, id string, role domain.Role) error

	// MarkActivated records the first activation time for email. Accounts
	// that are already activated keep their original timestamp.
	MarkActivated(ctx context.Context, email string, at time.Time) error

	// DeleteAccount removes the account; its sessions cascade.
	DeleteAccount(ctx context.Context, id string) error
}

type Sessions interface {
	CreateSession(ctx context.Context, s domain.Session) error

	// GetSessionByHash returns the session recorded for a token fingerprint,
	// revoked or not.
	GetSessionByHash(ctx context.Context, hash string) (domain.Session, error)

	// RevokeSession flips revoked=1 on a live session. ErrNotFound when no
	// unrevoked session expiring after now carries hash.
	RevokeSession(ctx context.Context, hash string, now time.Time) error

	// RevokeAccountSessions revokes every session of the account and reports
	// how many changed. Zero is not an error.
	RevokeAccountSessions(ctx context.Context, accountID string) (int64, error)

	CountActiveSessions(ctx context.Context, accountID string, now time.Time) (int64, error)

	// DeleteExpiredSessions is housekeeping for rows that expired before cutoff.
	DeleteExpiredSessions(ctx context.Context, cutoff time.Time) (int64, error)
}

type OneTimeTokens interface {
	CreateOneTimeToken(ctx context.Context, t domain.OneTimeToken) error

	// ConsumeOneTimeToken atomically removes and returns the token of the
	// given kind. Expired rows are removed too; the caller checks ExpiresAt.
	ConsumeOneTimeToken(ctx context.Context, kind domain.TokenKind, hash string) (domain.OneTimeToken, error)

	CountOneTimeTokens(ctx context.Context, kind domain.TokenKind, email string) (int64, error)

	DeleteExpiredOneTimeTokens(ctx context.Context, now time.Time) (int64, error)
}

type Merchants interface {
	// CreateMerchant inserts a merchant profile. A second profile for the
	// same account yields ErrAlreadyExists.
	CreateMerchant(ctx context.Context, m domain.Merchant) error

	GetMerchantByID(ctx context.Context, id string) (domain.MerchantProfile, error)
	GetMerchantByAccountID(ctx context.Context, accountID string) (domain.MerchantProfile, error)
	ListMerchants(ctx context.Context) ([]domain.MerchantProfile, error)

	VerifyMerchant(ctx context.Context, id string) error
	DeleteMerchant(ctx context.Context, id string) error
}

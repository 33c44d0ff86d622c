package gen

import (
	"context"
	"time"
)

const createSession = `-- name: CreateSession :exec
INSERT INTO sessions (id, account_id, token_hash, revoked, created_at, expires_at)
VALUES (?, ?, ?, ?, ?, ?)
`

type CreateSessionParams struct {
	ID        string
	AccountID string
	TokenHash string
	Revoked   bool
	CreatedAt time.Time
	ExpiresAt time.Time
}

func (q *Queries) CreateSession(ctx context.Context, arg CreateSessionParams) error {
	_, err := q.db.ExecContext(ctx, createSession,
		arg.ID,
		arg.AccountID,
		arg.TokenHash,
		arg.Revoked,
		arg.CreatedAt,
		arg.ExpiresAt,
	)
	return err
}

const getSessionByTokenHash = `-- name: GetSessionByTokenHash :one
SELECT id, account_id, token_hash, revoked, created_at, expires_at
FROM sessions WHERE token_hash = ?
`

func (q *Queries) GetSessionByTokenHash(ctx context.Context, tokenHash string) (Session, error) {
	row := q.db.QueryRowContext(ctx, getSessionByTokenHash, tokenHash)
	var i Session
	err := row.Scan(
		&i.ID,
		&i.AccountID,
		&i.TokenHash,
		&i.Revoked,
		&i.CreatedAt,
		&i.ExpiresAt,
	)
	return i, err
}

const revokeSession = `-- name: RevokeSession :execrows
UPDATE sessions SET revoked = 1 WHERE token_hash = ? AND revoked = 0 AND expires_at > ?
`

type RevokeSessionParams struct {
	TokenHash string
	Now       time.Time
}

func (q *Queries) RevokeSession(ctx context.Context, arg RevokeSessionParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, revokeSession, arg.TokenHash, arg.Now)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const revokeAccountSessions = `-- name: RevokeAccountSessions :execrows
UPDATE sessions SET revoked = 1 WHERE account_id = ? AND revoked = 0
`

func (q *Queries) RevokeAccountSessions(ctx context.Context, accountID string) (int64, error) {
	result, err := q.db.ExecContext(ctx, revokeAccountSessions, accountID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const countActiveAccountSessions = `-- name: CountActiveAccountSessions :one
SELECT COUNT(*) FROM sessions WHERE account_id = ? AND revoked = 0 AND expires_at > ?
`

type CountActiveAccountSessionsParams struct {
	AccountID string
	Now       time.Time
}

func (q *Queries) CountActiveAccountSessions(ctx context.Context, arg CountActiveAccountSessionsParams) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countActiveAccountSessions, arg.AccountID, arg.Now).Scan(&count)
	return count, err
}

const deleteExpiredSessions = `-- name: DeleteExpiredSessions :execrows
DELETE FROM sessions WHERE expires_at < ?
`

func (q *Queries) DeleteExpiredSessions(ctx context.Context, before time.Time) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteExpiredSessions, before)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

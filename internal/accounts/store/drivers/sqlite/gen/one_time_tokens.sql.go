package gen

import (
	"context"
	"time"
)

const createOneTimeToken = `-- name: CreateOneTimeToken :exec
INSERT INTO one_time_tokens (token_hash, kind, email, created_at, expires_at)
VALUES (?, ?, ?, ?, ?)
`

type CreateOneTimeTokenParams struct {
	TokenHash string
	Kind      string
	Email     string
	CreatedAt time.Time
	ExpiresAt time.Time
}

func (q *Queries) CreateOneTimeToken(ctx context.Context, arg CreateOneTimeTokenParams) error {
	_, err := q.db.ExecContext(ctx, createOneTimeToken,
		arg.TokenHash,
		arg.Kind,
		arg.Email,
		arg.CreatedAt,
		arg.ExpiresAt,
	)
	return err
}

// Deleting and returning in one statement makes the lookup and the removal a
// single atomic step; two racing consumers can never both see the row.
const consumeOneTimeToken = `-- name: ConsumeOneTimeToken :one
DELETE FROM one_time_tokens
WHERE token_hash = ? AND kind = ?
RETURNING token_hash, kind, email, created_at, expires_at
`

type ConsumeOneTimeTokenParams struct {
	TokenHash string
	Kind      string
}

func (q *Queries) ConsumeOneTimeToken(ctx context.Context, arg ConsumeOneTimeTokenParams) (OneTimeToken, error) {
	row := q.db.QueryRowContext(ctx, consumeOneTimeToken, arg.TokenHash, arg.Kind)
	var i OneTimeToken
	err := row.Scan(
		&i.TokenHash,
		&i.Kind,
		&i.Email,
		&i.CreatedAt,
		&i.ExpiresAt,
	)
	return i, err
}

const countOneTimeTokens = `-- name: CountOneTimeTokens :one
SELECT COUNT(*) FROM one_time_tokens WHERE email = ? AND kind = ?
`

type CountOneTimeTokensParams struct {
	Email string
	Kind  string
}

func (q *Queries) CountOneTimeTokens(ctx context.Context, arg CountOneTimeTokensParams) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countOneTimeTokens, arg.Email, arg.Kind).Scan(&count)
	return count, err
}

const deleteExpiredOneTimeTokens = `-- name: DeleteExpiredOneTimeTokens :execrows
DELETE FROM one_time_tokens WHERE expires_at < ?
`

func (q *Queries) DeleteExpiredOneTimeTokens(ctx context.Context, now time.Time) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteExpiredOneTimeTokens, now)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

package gen

import (
	"context"
	"time"
)

const createMerchant = `-- name: CreateMerchant :exec
INSERT INTO merchants (id, account_id, business_name, verified, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
`

type CreateMerchantParams struct {
	ID           string
	AccountID    string
	BusinessName string
	Verified     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (q *Queries) CreateMerchant(ctx context.Context, arg CreateMerchantParams) error {
	_, err := q.db.ExecContext(ctx, createMerchant,
		arg.ID,
		arg.AccountID,
		arg.BusinessName,
		arg.Verified,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const merchantProfileSelect = `
SELECT m.id, m.account_id, m.business_name, m.verified, m.created_at, m.updated_at,
       a.email, a.full_name
FROM merchants m
JOIN accounts a ON a.id = m.account_id
`

func scanMerchantProfile(row interface{ Scan(...any) error }) (MerchantProfileRow, error) {
	var i MerchantProfileRow
	err := row.Scan(
		&i.ID,
		&i.AccountID,
		&i.BusinessName,
		&i.Verified,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.Email,
		&i.FullName,
	)
	return i, err
}

const getMerchantByID = `-- name: GetMerchantByID :one` + merchantProfileSelect + `WHERE m.id = ?
`

func (q *Queries) GetMerchantByID(ctx context.Context, id string) (MerchantProfileRow, error) {
	return scanMerchantProfile(q.db.QueryRowContext(ctx, getMerchantByID, id))
}

const getMerchantByAccountID = `-- name: GetMerchantByAccountID :one` + merchantProfileSelect + `WHERE m.account_id = ?
`

func (q *Queries) GetMerchantByAccountID(ctx context.Context, accountID string) (MerchantProfileRow, error) {
	return scanMerchantProfile(q.db.QueryRowContext(ctx, getMerchantByAccountID, accountID))
}

const listMerchants = `-- name: ListMerchants :many` + merchantProfileSelect + `ORDER BY m.created_at, m.id
`

func (q *Queries) ListMerchants(ctx context.Context) ([]MerchantProfileRow, error) {
	rows, err := q.db.QueryContext(ctx, listMerchants)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []MerchantProfileRow
	for rows.Next() {
		i, err := scanMerchantProfile(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const verifyMerchant = `-- name: VerifyMerchant :execrows
UPDATE merchants SET verified = 1, updated_at = ? WHERE id = ?
`

type VerifyMerchantParams struct {
	UpdatedAt time.Time
	ID        string
}

func (q *Queries) VerifyMerchant(ctx context.Context, arg VerifyMerchantParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, verifyMerchant, arg.UpdatedAt, arg.ID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteMerchant = `-- name: DeleteMerchant :execrows
DELETE FROM merchants WHERE id = ?
`

func (q *Queries) DeleteMerchant(ctx context.Context, id string) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteMerchant, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

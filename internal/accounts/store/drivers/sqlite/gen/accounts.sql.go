package gen

import (
	"context"
	"database/sql"
	"time"
)

const accountColumns = `id, email, password_hash, full_name, phone, role, mfa_enabled, activated_at, created_at, updated_at`

func scanAccount(row interface{ Scan(...any) error }) (Account, error) {
	var i Account
	err := row.Scan(
		&i.ID,
		&i.Email,
		&i.PasswordHash,
		&i.FullName,
		&i.Phone,
		&i.Role,
		&i.MfaEnabled,
		&i.ActivatedAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createAccount = `-- name: CreateAccount :exec
INSERT INTO accounts (` + accountColumns + `)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

type CreateAccountParams struct {
	ID           string
	Email        string
	PasswordHash string
	FullName     string
	Phone        sql.NullString
	Role         string
	MfaEnabled   bool
	ActivatedAt  sql.NullTime
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (q *Queries) CreateAccount(ctx context.Context, arg CreateAccountParams) error {
	_, err := q.db.ExecContext(ctx, createAccount,
		arg.ID,
		arg.Email,
		arg.PasswordHash,
		arg.FullName,
		arg.Phone,
		arg.Role,
		arg.MfaEnabled,
		arg.ActivatedAt,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const getAccountByID = `-- name: GetAccountByID :one
SELECT ` + accountColumns + ` FROM accounts WHERE id = ?
`

func (q *Queries) GetAccountByID(ctx context.Context, id string) (Account, error) {
	return scanAccount(q.db.QueryRowContext(ctx, getAccountByID, id))
}

const getAccountByEmail = `-- name: GetAccountByEmail :one
SELECT ` + accountColumns + ` FROM accounts WHERE email = ?
`

func (q *Queries) GetAccountByEmail(ctx context.Context, email string) (Account, error) {
	return scanAccount(q.db.QueryRowContext(ctx, getAccountByEmail, email))
}

const listAccounts = `-- name: ListAccounts :many
SELECT ` + accountColumns + ` FROM accounts ORDER BY created_at, id
`

func (q *Queries) ListAccounts(ctx context.Context) ([]Account, error) {
	rows, err := q.db.QueryContext(ctx, listAccounts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Account
	for rows.Next() {
		i, err := scanAccount(rows)
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

const countAccounts = `-- name: CountAccounts :one
SELECT COUNT(*) FROM accounts
`

func (q *Queries) CountAccounts(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countAccounts).Scan(&count)
	return count, err
}

const updateAccountProfile = `-- name: UpdateAccountProfile :execrows
UPDATE accounts SET full_name = ?, phone = ?, updated_at = ? WHERE id = ?
`

type UpdateAccountProfileParams struct {
	FullName  string
	Phone     sql.NullString
	UpdatedAt time.Time
	ID        string
}

func (q *Queries) UpdateAccountProfile(ctx context.Context, arg UpdateAccountProfileParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateAccountProfile, arg.FullName, arg.Phone, arg.UpdatedAt, arg.ID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const updateAccountPasswordHash = `-- name: UpdateAccountPasswordHash :execrows
UPDATE accounts SET password_hash = ?, updated_at = ? WHERE id = ?
`

type UpdateAccountPasswordHashParams struct {
	PasswordHash string
	UpdatedAt    time.Time
	ID           string
}

func (q *Queries) UpdateAccountPasswordHash(ctx context.Context, arg UpdateAccountPasswordHashParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateAccountPasswordHash, arg.PasswordHash, arg.UpdatedAt, arg.ID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const updateAccountRole = `-- name: UpdateAccountRole :execrows
UPDATE accounts SET role = ?, updated_at = ? WHERE id = ?
`

type UpdateAccountRoleParams struct {
	Role      string
	UpdatedAt time.Time
	ID        string
}

func (q *Queries) UpdateAccountRole(ctx context.Context, arg UpdateAccountRoleParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateAccountRole, arg.Role, arg.UpdatedAt, arg.ID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const markAccountActivated = `-- name: MarkAccountActivated :execrows
UPDATE accounts
SET activated_at = COALESCE(activated_at, ?), updated_at = ?
WHERE email = ?
`

type MarkAccountActivatedParams struct {
	ActivatedAt time.Time
	UpdatedAt   time.Time
	Email       string
}

func (q *Queries) MarkAccountActivated(ctx context.Context, arg MarkAccountActivatedParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, markAccountActivated, arg.ActivatedAt, arg.UpdatedAt, arg.Email)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteAccount = `-- name: DeleteAccount :execrows
DELETE FROM accounts WHERE id = ?
`

func (q *Queries) DeleteAccount(ctx context.Context, id string) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteAccount, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

package sqlite

import (
	"context"
	"time"

	"github.com/flowmerce/accounts/internal/accounts/domain"
	"github.com/flowmerce/accounts/internal/accounts/store/drivers/sqlite/gen"
)

type accountsRepo struct {
	q *gen.Queries
}

func (r *accountsRepo) CreateAccount(ctx context.Context, a domain.Account) error {
	created := orNow(a.CreatedAt)
	updated := a.UpdatedAt
	if updated.IsZero() {
		updated = created
	}
	err := r.q.CreateAccount(ctx, gen.CreateAccountParams{
		ID:           a.ID,
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
		FullName:     a.FullName,
		Phone:        mapStringNull(a.Phone),
		Role:         string(a.Role),
		MfaEnabled:   a.MFAEnabled,
		ActivatedAt:  mapOptionalTime(a.ActivatedAt),
		CreatedAt:    created,
		UpdatedAt:    updated.UTC(),
	})
	return mapConstraint(err)
}

func (r *accountsRepo) GetAccountByID(ctx context.Context, id string) (domain.Account, error) {
	row, err := r.q.GetAccountByID(ctx, id)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return mapAccount(row), nil
}

func (r *accountsRepo) GetAccountByEmail(ctx context.Context, email string) (domain.Account, error) {
	row, err := r.q.GetAccountByEmail(ctx, email)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return mapAccount(row), nil
}

func (r *accountsRepo) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	rows, err := r.q.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Account, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapAccount(row))
	}
	return out, nil
}

func (r *accountsRepo) CountAccounts(ctx context.Context) (int64, error) {
	return r.q.CountAccounts(ctx)
}

func (r *accountsRepo) UpdateProfile(ctx context.Context, id, fullName, phone string) error {
	return requireRows(r.q.UpdateAccountProfile(ctx, gen.UpdateAccountProfileParams{
		FullName:  fullName,
		Phone:     mapStringNull(phone),
		UpdatedAt: now(),
		ID:        id,
	}))
}

func (r *accountsRepo) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	return requireRows(r.q.UpdateAccountPasswordHash(ctx, gen.UpdateAccountPasswordHashParams{
		PasswordHash: hash,
		UpdatedAt:    now(),
		ID:           id,
	}))
}

func (r *accountsRepo) UpdateRole(ctx context.Context, id string, role domain.Role) error {
	return requireRows(r.q.UpdateAccountRole(ctx, gen.UpdateAccountRoleParams{
		Role:      string(role),
		UpdatedAt: now(),
		ID:        id,
	}))
}

func (r *accountsRepo) MarkActivated(ctx context.Context, email string, at time.Time) error {
	return requireRows(r.q.MarkAccountActivated(ctx, gen.MarkAccountActivatedParams{
		ActivatedAt: at.UTC(),
		UpdatedAt:   now(),
		Email:       email,
	}))
}

func (r *accountsRepo) DeleteAccount(ctx context.Context, id string) error {
	return requireRows(r.q.DeleteAccount(ctx, id))
}

package sqlite

import (
	"context"

	"github.com/flowmerce/accounts/internal/accounts/domain"
	"github.com/flowmerce/accounts/internal/accounts/store/drivers/sqlite/gen"
)

type merchantsRepo struct {
	q *gen.Queries
}

func (r *merchantsRepo) CreateMerchant(ctx context.Context, m domain.Merchant) error {
	created := orNow(m.CreatedAt)
	err := r.q.CreateMerchant(ctx, gen.CreateMerchantParams{
		ID:           m.ID,
		AccountID:    m.AccountID,
		BusinessName: m.BusinessName,
		Verified:     m.Verified,
		CreatedAt:    created,
		UpdatedAt:    created,
	})
	return mapConstraint(err)
}

func (r *merchantsRepo) GetMerchantByID(ctx context.Context, id string) (domain.MerchantProfile, error) {
	row, err := r.q.GetMerchantByID(ctx, id)
	if err != nil {
		return domain.MerchantProfile{}, mapNotFound(err)
	}
	return mapMerchantProfile(row), nil
}

func (r *merchantsRepo) GetMerchantByAccountID(ctx context.Context, accountID string) (domain.MerchantProfile, error) {
	row, err := r.q.GetMerchantByAccountID(ctx, accountID)
	if err != nil {
		return domain.MerchantProfile{}, mapNotFound(err)
	}
	return mapMerchantProfile(row), nil
}

func (r *merchantsRepo) ListMerchants(ctx context.Context) ([]domain.MerchantProfile, error) {
	rows, err := r.q.ListMerchants(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.MerchantProfile, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapMerchantProfile(row))
	}
	return out, nil
}

func (r *merchantsRepo) VerifyMerchant(ctx context.Context, id string) error {
	return requireRows(r.q.VerifyMerchant(ctx, gen.VerifyMerchantParams{
		UpdatedAt: now(),
		ID:        id,
	}))
}

func (r *merchantsRepo) DeleteMerchant(ctx context.Context, id string) error {
	return requireRows(r.q.DeleteMerchant(ctx, id))
}

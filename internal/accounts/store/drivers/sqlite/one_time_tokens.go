package sqlite

import (
	"context"
	"time"

	"github.com/flowmerce/accounts/internal/accounts/domain"
	"github.com/flowmerce/accounts/internal/accounts/store/drivers/sqlite/gen"
)

type oneTimeTokensRepo struct {
	q *gen.Queries
}

func (r *oneTimeTokensRepo) CreateOneTimeToken(ctx context.Context, t domain.OneTimeToken) error {
	err := r.q.CreateOneTimeToken(ctx, gen.CreateOneTimeTokenParams{
		TokenHash: t.TokenHash,
		Kind:      string(t.Kind),
		Email:     t.Email,
		CreatedAt: orNow(t.CreatedAt),
		ExpiresAt: t.ExpiresAt.UTC(),
	})
	return mapConstraint(err)
}

func (r *oneTimeTokensRepo) ConsumeOneTimeToken(
	ctx context.Context,
	kind domain.TokenKind,
	hash string,
) (domain.OneTimeToken, error) {
	row, err := r.q.ConsumeOneTimeToken(ctx, gen.ConsumeOneTimeTokenParams{
		TokenHash: hash,
		Kind:      string(kind),
	})
	if err != nil {
		return domain.OneTimeToken{}, mapNotFound(err)
	}
	return mapOneTimeToken(row), nil
}

func (r *oneTimeTokensRepo) CountOneTimeTokens(ctx context.Context, kind domain.TokenKind, email string) (int64, error) {
	return r.q.CountOneTimeTokens(ctx, gen.CountOneTimeTokensParams{
		Email: email,
		Kind:  string(kind),
	})
}

func (r *oneTimeTokensRepo) DeleteExpiredOneTimeTokens(ctx context.Context, at time.Time) (int64, error) {
	return r.q.DeleteExpiredOneTimeTokens(ctx, at.UTC())
}

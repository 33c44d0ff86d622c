package sqlite

import (
	"context"
	"time"

	"github.com/flowmerce/accounts/internal/accounts/domain"
	"github.com/flowmerce/accounts/internal/accounts/store/drivers/sqlite/gen"
)

type sessionsRepo struct {
	q *gen.Queries
}

func (r *sessionsRepo) CreateSession(ctx context.Context, s domain.Session) error {
	err := r.q.CreateSession(ctx, gen.CreateSessionParams{
		ID:        s.ID,
		AccountID: s.AccountID,
		TokenHash: s.TokenHash,
		Revoked:   s.Revoked,
		CreatedAt: orNow(s.CreatedAt),
		ExpiresAt: s.ExpiresAt.UTC(),
	})
	return mapConstraint(err)
}

func (r *sessionsRepo) GetSessionByHash(ctx context.Context, hash string) (domain.Session, error) {
	row, err := r.q.GetSessionByTokenHash(ctx, hash)
	if err != nil {
		return domain.Session{}, mapNotFound(err)
	}
	return mapSession(row), nil
}

func (r *sessionsRepo) RevokeSession(ctx context.Context, hash string, now time.Time) error {
	return requireRows(r.q.RevokeSession(ctx, gen.RevokeSessionParams{TokenHash: hash, Now: now}))
}

func (r *sessionsRepo) RevokeAccountSessions(ctx context.Context, accountID string) (int64, error) {
	return r.q.RevokeAccountSessions(ctx, accountID)
}

func (r *sessionsRepo) CountActiveSessions(ctx context.Context, accountID string, at time.Time) (int64, error) {
	return r.q.CountActiveAccountSessions(ctx, gen.CountActiveAccountSessionsParams{
		AccountID: accountID,
		Now:       at.UTC(),
	})
}

func (r *sessionsRepo) DeleteExpiredSessions(ctx context.Context, cutoff time.Time) (int64, error) {
	return r.q.DeleteExpiredSessions(ctx, cutoff.UTC())
}

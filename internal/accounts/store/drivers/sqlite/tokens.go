package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/university/internal/accounts/domain"
	"github.com/aussiebroadwan/university/internal/accounts/store/drivers/sqlite/gen"
)

type outstandingRepo struct {
	q *gen.Queries
}

func (r *outstandingRepo) CreateOutstandingToken(ctx context.Context, t domain.OutstandingToken) error {
	err := r.q.CreateOutstandingToken(ctx, gen.CreateOutstandingTokenParams{
		Jti:       t.JTI,
		UserID:    t.UserID,
		ExpiresAt: unix(t.ExpiresAt),
		CreatedAt: unix(t.CreatedAt),
	})
	return mapConstraint(err)
}

func (r *outstandingRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return r.q.DeleteExpiredOutstandingTokens(ctx, unix(now))
}

type blacklistRepo struct {
	q *gen.Queries
}

func (r *blacklistRepo) Add(ctx context.Context, t domain.BlacklistedToken) error {
	err := r.q.InsertBlacklistedToken(ctx, gen.InsertBlacklistedTokenParams{
		Jti:           t.JTI,
		UserID:        t.UserID,
		ExpiresAt:     unix(t.ExpiresAt),
		BlacklistedAt: unix(t.BlacklistedAt),
	})
	return mapConstraint(err)
}

func (r *blacklistRepo) Contains(ctx context.Context, jti string) (bool, error) {
	found, err := r.q.IsTokenBlacklisted(ctx, jti)
	if err != nil {
		return false, err
	}
	return found == 1, nil
}

func (r *blacklistRepo) AddAllForUser(ctx context.Context, userID string, now time.Time) (int64, error) {
	return r.q.BlacklistLiveUserTokens(ctx, gen.BlacklistLiveUserTokensParams{
		BlacklistedAt: unix(now),
		UserID:        userID,
	})
}

func (r *blacklistRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return r.q.DeleteExpiredBlacklistedTokens(ctx, unix(now))
}

package repository

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/bossygit/vibes-arc-sub000/internal/core/domain"
)

var _ domain.Transactor = (*CachedTransactor)(nil)

// CachedTransactor drops both snapshots once a transaction ends, since writes
// made inside it bypass the cached repositories.
type CachedTransactor struct {
	next  domain.Transactor
	cache *redis.Client
}

func NewCachedTransactor(next domain.Transactor, cache *redis.Client) *CachedTransactor {
	return &CachedTransactor{
		next:  next,
		cache: cache,
	}
}

func (t *CachedTransactor) WithinTx(ctx context.Context, fn func(domain.HabitRepository, domain.IdentityRepository) error) error {
	defer invalidate(ctx, t.cache, habitsCacheKey)
	defer invalidate(ctx, t.cache, identitiesCacheKey)
	return t.next.WithinTx(ctx, fn)
}

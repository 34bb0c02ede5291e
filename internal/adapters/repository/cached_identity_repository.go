package repository

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/bossygit/vibes-arc-sub000/internal/core/domain"
)

var _ domain.IdentityRepository = (*CachedIdentityRepository)(nil)

type CachedIdentityRepository struct {
	next  domain.IdentityRepository
	cache *redis.Client
}

func NewCachedIdentityRepository(next domain.IdentityRepository, cache *redis.Client) *CachedIdentityRepository {
	return &CachedIdentityRepository{
		next:  next,
		cache: cache,
	}
}

func (r *CachedIdentityRepository) List(ctx context.Context) ([]*domain.Identity, error) {
	return cachedList(ctx, r.cache, identitiesCacheKey, r.next.List)
}

func (r *CachedIdentityRepository) GetByID(ctx context.Context, id int64) (*domain.Identity, error) {
	return r.next.GetByID(ctx, id)
}

func (r *CachedIdentityRepository) Create(ctx context.Context, identity *domain.Identity) error {
	if err := r.next.Create(ctx, identity); err != nil {
		return err
	}
	invalidate(ctx, r.cache, identitiesCacheKey)
	return nil
}

func (r *CachedIdentityRepository) Update(ctx context.Context, identity *domain.Identity) error {
	if err := r.next.Update(ctx, identity); err != nil {
		return err
	}
	invalidate(ctx, r.cache, identitiesCacheKey)
	return nil
}

func (r *CachedIdentityRepository) Delete(ctx context.Context, id int64) error {
	defer invalidate(ctx, r.cache, identitiesCacheKey)
	return r.next.Delete(ctx, id)
}

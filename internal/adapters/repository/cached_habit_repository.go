package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/bossygit/vibes-arc-sub000/internal/core/domain"
)

const (
	habitsCacheKey     = "vibes:habits:all"
	identitiesCacheKey = "vibes:identities:all"
	snapshotTTL        = 30 * time.Minute
)

var _ domain.HabitRepository = (*CachedHabitRepository)(nil)

// CachedHabitRepository keeps the full habit list in Redis. Reports read the
// list on every call; any write drops the cached copy.
type CachedHabitRepository struct {
	next  domain.HabitRepository
	cache *redis.Client
}

func NewCachedHabitRepository(next domain.HabitRepository, cache *redis.Client) *CachedHabitRepository {
	return &CachedHabitRepository{
		next:  next,
		cache: cache,
	}
}

func invalidate(ctx context.Context, cache *redis.Client, key string) {
	if err := cache.Del(ctx, key).Err(); err != nil {
		log.WithError(err).WithField("key", key).Warn("[CACHE] Failed to invalidate")
	}
}

// cachedList serves key from Redis, falling back to load and repopulating.
// Redis failures only degrade to a direct read.
func cachedList[T any](ctx context.Context, cache *redis.Client, key string, load func(context.Context) ([]T, error)) ([]T, error) {
	val, err := cache.Get(ctx, key).Result()
	if err == nil {
		var items []T
		if err := json.Unmarshal([]byte(val), &items); err == nil {
			return items, nil
		}

		log.WithField("key", key).Warn("[CACHE] Corrupted data, cleaning up key")
		cache.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		log.WithError(err).Warn("[CACHE] Redis read error")
	}

	items, err := load(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(items); err == nil {
		if setErr := cache.Set(ctx, key, data, snapshotTTL).Err(); setErr != nil {
			log.WithError(setErr).Warn("[CACHE] Redis set error")
		}
	}

	return items, nil
}

func (r *CachedHabitRepository) List(ctx context.Context) ([]*domain.Habit, error) {
	return cachedList(ctx, r.cache, habitsCacheKey, r.next.List)
}

func (r *CachedHabitRepository) GetByID(ctx context.Context, id int64) (*domain.Habit, error) {
	return r.next.GetByID(ctx, id)
}

func (r *CachedHabitRepository) Create(ctx context.Context, habit *domain.Habit) error {
	if err := r.next.Create(ctx, habit); err != nil {
		return err
	}
	invalidate(ctx, r.cache, habitsCacheKey)
	return nil
}

func (r *CachedHabitRepository) Update(ctx context.Context, habit *domain.Habit) error {
	if err := r.next.Update(ctx, habit); err != nil {
		return err
	}
	invalidate(ctx, r.cache, habitsCacheKey)
	return nil
}

func (r *CachedHabitRepository) Delete(ctx context.Context, id int64) error {
	defer invalidate(ctx, r.cache, habitsCacheKey)
	return r.next.Delete(ctx, id)
}

func (r *CachedHabitRepository) UnlinkIdentity(ctx context.Context, identityID int64) error {
	defer invalidate(ctx, r.cache, habitsCacheKey)
	return r.next.UnlinkIdentity(ctx, identityID)
}

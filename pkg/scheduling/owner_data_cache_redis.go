package scheduling

import (
	"context"
	"time"

	"github.com/go-redis/cache/v8"
	"github.com/go-redis/redis/v8"
)

// OwnerDataCacheRedis caches often needed owner data in Redis so multiple
// instances share it
type OwnerDataCacheRedis struct {
	Cache *cache.Cache
}

// NewOwnerCacheRedis initializes a new OwnerDataCacheRedis
func NewOwnerCacheRedis(redisClient *redis.Client) (*OwnerDataCacheRedis, error) {
	redisCache := cache.New(&cache.Options{
		Redis: redisClient,
	})

	return &OwnerDataCacheRedis{
		Cache: redisCache,
	}, nil
}

// Add adds an OwnerDataCacheEntry
func (c *OwnerDataCacheRedis) Add(ctx context.Context, key string, entry *OwnerDataCacheEntry) error {
	err := c.Cache.Set(&cache.Item{
		Ctx:   ctx,
		Key:   key,
		Value: entry,
		TTL:   time.Minute * 10,
	})
	if err != nil {
		return err
	}

	return nil
}

// Invalidate invalidates an entry
func (c *OwnerDataCacheRedis) Invalidate(ctx context.Context, key string) error {
	err := c.Cache.Delete(ctx, key)
	if err != nil {
		return err
	}

	return nil
}

// Get retrieves an OwnerDataCacheEntry
func (c *OwnerDataCacheRedis) Get(ctx context.Context, key string) (*OwnerDataCacheEntry, error) {
	result := OwnerDataCacheEntry{}
	err := c.Cache.Get(ctx, key, &result)
	if err != nil {
		return nil, err
	}

	return &result, nil
}

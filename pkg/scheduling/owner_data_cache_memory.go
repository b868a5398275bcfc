package scheduling

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru"
)

// OwnerDataCacheMemory caches often needed owner data in process memory
type OwnerDataCacheMemory struct {
	Cache *lru.Cache
}

// NewOwnerCacheMemory initializes a new OwnerDataCacheMemory
func NewOwnerCacheMemory() (*OwnerDataCacheMemory, error) {
	cache, err := lru.New(100)
	if err != nil {
		return nil, err
	}

	return &OwnerDataCacheMemory{
		Cache: cache,
	}, nil
}

// Add adds an OwnerDataCacheEntry to the cache
func (c *OwnerDataCacheMemory) Add(_ context.Context, key string, entry *OwnerDataCacheEntry) error {
	_ = c.Cache.Add(key, entry)
	return nil
}

// Invalidate removes an OwnerDataCacheEntry from the cache
func (c *OwnerDataCacheMemory) Invalidate(_ context.Context, key string) error {
	c.Cache.Remove(key)
	return nil
}

// Get retrieves an OwnerDataCacheEntry from the cache
func (c *OwnerDataCacheMemory) Get(_ context.Context, key string) (*OwnerDataCacheEntry, error) {
	result, ok := c.Cache.Get(key)
	if !ok {
		return nil, fmt.Errorf("could not find key %s in owner cache", key)
	}

	ownerCache, ok := result.(*OwnerDataCacheEntry)
	if !ok {
		return nil, fmt.Errorf("cache entry was not an owner cache entry")
	}

	return ownerCache, nil
}

package scheduling

import (
	"context"

	"github.com/sanrasta/psychology/pkg/owners"
)

// OwnerDataCacheInterface caches per-owner data that every availability
// request needs
type OwnerDataCacheInterface interface {
	Add(ctx context.Context, key string, entry *OwnerDataCacheEntry) error
	Invalidate(ctx context.Context, key string) error
	Get(ctx context.Context, key string) (*OwnerDataCacheEntry, error)
}

// OwnerDataCacheEntry holds an owner and their persisted schedule. A nil
// Schedule is meaningful: it records "schedule absent" so repeated requests
// don't re-query the database before the default policy kicks in.
type OwnerDataCacheEntry struct {
	Owner    *owners.Owner
	Schedule *Schedule
}

package locking

import (
	"context"
	"time"
)

// LockerInterface represents a Locker. Schedule saves for a single owner are
// serialized through it.
type LockerInterface interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (LockInterface, error)
}

// LockInterface represents a Lock
type LockInterface interface {
	Key() string
	Release(ctx context.Context) error
}

package cache

import (
	"context"
	"time"
)

//go:generate mockgen -source=cache.go -destination=mock/cache.go -package=mock_cache

// Cache is a keyed store with per-entry expiry. A zero ttl never expires.
type Cache[K comparable, V any] interface {
	Get(key K) (V, bool)
	Put(key K, value V, ttl time.Duration)
	Remove(key K) bool
	Len() int
	SetOnEvicted(onEvicted func(key K, value V))
	RunCleanup(ctx context.Context, interval time.Duration)
}

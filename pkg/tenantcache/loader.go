package tenantcache

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"
)

// LoaderCache wraps a Cache with singleflight-coalesced loading: concurrent
// GetOrLoad calls for the same key that all miss the cache invoke loader
// exactly once, and every caller receives its result.
type LoaderCache[V any] struct {
	cache *Cache[V]
	group singleflight.Group
	ttl   time.Duration
}

// NewLoaderCache wraps cache with a default TTL applied to loaded values.
func NewLoaderCache[V any](cache *Cache[V], ttl time.Duration) *LoaderCache[V] {
	return &LoaderCache[V]{cache: cache, ttl: ttl}
}

// GetOrLoad returns the cached value for key, or calls loader on a miss.
// Concurrent misses for the same key share one loader call.
func (l *LoaderCache[V]) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (V, error)) (V, error) {
	if v, ok := l.cache.Get(key); ok {
		return v, nil
	}

	result, err, _ := l.group.Do(key, func() (any, error) {
		v, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		l.cache.Set(key, v, l.ttl)
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}

	return result.(V), nil
}

// Cache returns the underlying Cache so callers can invalidate directly.
func (l *LoaderCache[V]) Cache() *Cache[V] {
	return l.cache
}

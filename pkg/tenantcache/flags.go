package tenantcache

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/commercecore/pkg/feature"
)

// FlagTTL is how long a resolved tenant feature-flag value stays cached
// before the next check re-queries the provider.
const FlagTTL = 30 * time.Second

// FlagCache caches per-tenant feature-flag evaluations in front of a
// feature.Provider, so a hot request path doesn't re-evaluate a flag's
// strategy on every call.
type FlagCache struct {
	loader   *LoaderCache[bool]
	provider feature.Provider
}

// NewFlagCache wraps provider with a bounded TTL+LRU cache.
func NewFlagCache(provider feature.Provider, maxSize int) *FlagCache {
	return &FlagCache{
		loader:   NewLoaderCache(New[bool](maxSize), FlagTTL),
		provider: provider,
	}
}

// IsEnabled returns whether flagName is enabled for tenantID, using the
// cached value when available and coalescing concurrent provider calls on
// a miss.
func (f *FlagCache) IsEnabled(ctx context.Context, tenantID uuid.UUID, flagName string) (bool, error) {
	return f.loader.GetOrLoad(ctx, FlagKey(tenantID, flagName), func(ctx context.Context) (bool, error) {
		return f.provider.IsEnabled(ctx, flagName)
	})
}

// Invalidate drops every cached flag value for tenantID, e.g. after an
// admin changes a flag's rollout strategy.
func (f *FlagCache) Invalidate(tenantID uuid.UUID) {
	f.loader.Cache().Invalidate(tenantID, ReasonDataChanged)
}

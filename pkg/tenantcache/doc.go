// Package tenantcache caches tenant-scoped query results with TTL+LRU
// eviction and singleflight-coalesced loading. Keys are always prefixed by
// tenant id so an admin write to one tenant's data can invalidate exactly
// that tenant's cached entries without touching any other tenant's.
package tenantcache

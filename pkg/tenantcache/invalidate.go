package tenantcache

import "github.com/google/uuid"

// InvalidationReason documents why a tenant's cached entries were dropped,
// useful for logging at the call site.
type InvalidationReason string

const (
	ReasonTenantSuspended InvalidationReason = "tenant_suspended"
	ReasonTenantUpdated   InvalidationReason = "tenant_updated"
	ReasonDataChanged     InvalidationReason = "data_changed"
)

// Invalidate drops every entry belonging to tenantID. reason is accepted
// for call-site logging only; the cache itself doesn't branch on it.
func (c *Cache[V]) Invalidate(tenantID uuid.UUID, reason InvalidationReason) int {
	return c.DeletePrefix(TenantPrefix(tenantID))
}

// InvalidateQuery drops the single cached entry for one paginated search.
func (c *Cache[V]) InvalidateQuery(tenantID uuid.UUID, query string, page, size int) {
	c.Delete(QueryKey(tenantID, query, page, size))
}

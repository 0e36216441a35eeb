package tenantcache

import (
	"hash/fnv"
	"strconv"

	"github.com/google/uuid"
)

// maxQueryKeyLength caps the raw query text embedded in a key before it's
// hashed down, mirroring ratelimiter.Composite's long-key handling.
const maxQueryKeyLength = 64

// QueryKey builds the cache key for a paginated search result:
// tenant:{tid}:search:{hash(q)}:page:{p}:size:{s}.
func QueryKey(tenantID uuid.UUID, query string, page, size int) string {
	return "tenant:" + tenantID.String() + ":search:" + hashQuery(query) +
		":page:" + strconv.Itoa(page) + ":size:" + strconv.Itoa(size)
}

// FlagKey builds the cache key for a tenant-scoped feature flag value:
// tenant:{tid}:flag:{name}.
func FlagKey(tenantID uuid.UUID, name string) string {
	return "tenant:" + tenantID.String() + ":flag:" + name
}

// TenantPrefix returns the key prefix shared by every entry belonging to
// tenantID, used by Invalidate to find them all.
func TenantPrefix(tenantID uuid.UUID) string {
	return "tenant:" + tenantID.String() + ":"
}

func hashQuery(q string) string {
	if len(q) <= maxQueryKeyLength {
		return q
	}
	h := fnv.New64a()
	h.Write([]byte(q))
	return strconv.FormatUint(h.Sum64(), 36)
}

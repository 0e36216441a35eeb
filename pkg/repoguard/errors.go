package repoguard

import "errors"

var (
	// ErrTenantMismatch is returned by Persist when an entity already
	// carries a tenant id that disagrees with the current tenant context.
	ErrTenantMismatch = errors.New("repoguard: entity tenant id does not match context")

	// ErrMissingTenantFilter is panicked by MustFilterTenant when the given
	// SQL has no tenant_id predicate. It is a var, not a sentinel an
	// application is expected to recover from, because a query missing its
	// tenant filter is a programming error, not a runtime condition.
	ErrMissingTenantFilter = errors.New("repoguard: query is missing a tenant_id filter")
)

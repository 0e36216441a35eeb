// Package repoguard wraps a pgxpool.Pool so every domain repository reads
// and writes through a tenant filter it cannot forget. Three operations
// cover the access patterns the rest of the codebase needs:
//
//   - Query runs a SELECT whose builder was constructed with
//     MustFilterTenant, so a query missing the tenant_id predicate panics
//     at construction time rather than leaking cross-tenant rows.
//   - Persist fills in an entity's tenant id from the current tenant
//     context if it is unset, or rejects the write with ErrTenantMismatch
//     if it disagrees with the context.
//   - Load applies a defensive re-check after a row has already been
//     scanned: a row whose tenant id disagrees with the context is
//     dropped and counted rather than returned.
//
// None of this replaces a composite (tenant_id, ...) unique constraint or
// an ON DELETE CASCADE foreign key — those stay schema-level concerns, not
// something this package can enforce from Go.
package repoguard

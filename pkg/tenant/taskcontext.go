package tenant

import (
	"context"

	"github.com/google/uuid"
)

// Set binds tenant to ctx, enforcing the "at most once per task" rule: a
// second call carrying a different tenant id than one already present fails
// with ErrContextConflict. Setting the same tenant id again is a no-op.
//
// Unlike a thread-local, this does not mutate anything in place — it
// returns a derived context that the caller must propagate. Handlers and
// job workers are expected to call Set exactly once, at the top of the
// task, before any repository access.
func Set(ctx context.Context, t *Tenant) (context.Context, error) {
	if t == nil {
		return ctx, ErrNoContext
	}

	if existing, ok := FromContext(ctx); ok && existing != nil {
		if existing.ID != t.ID {
			return ctx, ErrContextConflict
		}
		return ctx, nil
	}

	return WithTenant(ctx, t), nil
}

// Current returns the tenant id bound to ctx. It fails with ErrNoContext
// when no tenant has been set — this is a programmer error, not a
// user-facing one, and callers should not attempt to recover from it by
// guessing a tenant.
func Current(ctx context.Context) (uuid.UUID, error) {
	id, ok := IDFromContext(ctx)
	if !ok {
		return uuid.UUID{}, ErrNoContext
	}
	return id, nil
}

// HasContext reports whether ctx carries a (non-nil) tenant.
func HasContext(ctx context.Context) bool {
	t, ok := FromContext(ctx)
	return ok && t != nil
}

// Clear returns a context in which no tenant is bound. Because
// context.Context values are immutable, this cannot reach back and scrub
// copies already handed to other goroutines — every exit path (including
// panics recovered by the caller) should simply stop propagating the
// tenant-bearing context. Clear exists for the cases that must explicitly
// hand a "no tenant" context onward, such as shared connection-pool
// housekeeping that runs outside any single tenant's scope.
func Clear(ctx context.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, (*Tenant)(nil))
}

// RunAs is the background-job entry point: it builds a minimal tenant
// context from a bare tenant id (as recovered from a job payload), runs fn
// with it, and never leaks that context beyond the call. It restores
// nothing afterward because the context passed to fn is itself derived —
// the caller's original ctx is untouched.
//
// RunAs does not consult Set's conflict rule: a job's tenant id is
// authoritative for the duration of that job, and a worker pulling one job
// after another must be able to switch tenants freely between them.
func RunAs(ctx context.Context, tenantID uuid.UUID, fn func(context.Context) error) error {
	scoped := WithTenant(ctx, &Tenant{ID: tenantID, Status: StatusActive})
	return fn(scoped)
}

package repoguard

import (
	"context"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/commercecore/pkg/tenant"
)

// TenantScoped is implemented by any row/entity type that carries a tenant
// id, which is every persisted row in a multi-tenant schema.
type TenantScoped interface {
	GetTenantID() uuid.UUID
	SetTenantID(uuid.UUID)
}

// crossTenantHits counts rows elided by Load because their tenant id
// disagreed with the context. It is process-wide rather than per-Guard
// because a non-zero count is itself the alarm signal, regardless of which
// repository surfaced it.
var crossTenantHits atomic.Int64

// CrossTenantHits returns the number of rows Load has elided so far.
func CrossTenantHits() int64 {
	return crossTenantHits.Load()
}

// Guard wraps a connection pool and forces every access through the
// current tenant context.
type Guard struct {
	pool *pgxpool.Pool
}

// New wraps pool in a Guard.
func New(pool *pgxpool.Pool) *Guard {
	return &Guard{pool: pool}
}

// Query runs q against the pool with the current tenant id bound as $1.
func (g *Guard) Query(ctx context.Context, q Query) (pgx.Rows, error) {
	tenantID, err := tenant.Current(ctx)
	if err != nil {
		return nil, err
	}

	args := make([]any, 0, len(q.args)+1)
	args = append(args, tenantID)
	args = append(args, q.args...)

	return g.pool.Query(ctx, q.sql, args...)
}

// QueryRow runs q against the pool with the current tenant id bound as $1,
// returning a single row.
func (g *Guard) QueryRow(ctx context.Context, q Query) (pgx.Row, error) {
	tenantID, err := tenant.Current(ctx)
	if err != nil {
		return nil, err
	}

	args := make([]any, 0, len(q.args)+1)
	args = append(args, tenantID)
	args = append(args, q.args...)

	return g.pool.QueryRow(ctx, q.sql, args...), nil
}

// Persist validates entity's tenant id against the current context —
// filling it in if unset, rejecting the write if it disagrees — and then
// runs write, which is expected to perform the actual INSERT/UPDATE. write
// is invoked only after the tenant id check passes.
func Persist[T TenantScoped](ctx context.Context, entity T, write func(context.Context, T) error) error {
	tenantID, err := tenant.Current(ctx)
	if err != nil {
		return err
	}

	var zero uuid.UUID
	switch current := entity.GetTenantID(); current {
	case zero:
		entity.SetTenantID(tenantID)
	case tenantID:
		// already consistent
	default:
		return ErrTenantMismatch
	}

	return write(ctx, entity)
}

// Load applies the defensive re-check: row is returned only if its tenant
// id matches the current context. A mismatch elides the row and increments
// CrossTenantHits rather than returning an error, since by the time a row
// has been scanned back out of the database the caller's query itself
// already should have filtered on tenant_id — a mismatch here means that
// filter was bypassed somewhere upstream, and the right response is to
// never hand the row to the caller at all.
func Load[T TenantScoped](ctx context.Context, row T) (T, bool) {
	var zero T

	tenantID, err := tenant.Current(ctx)
	if err != nil {
		return zero, false
	}

	if row.GetTenantID() != tenantID {
		crossTenantHits.Add(1)
		return zero, false
	}

	return row, true
}

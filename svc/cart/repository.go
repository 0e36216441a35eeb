package cart

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmitrymomot/commercecore/pkg/pg"
	"github.com/dmitrymomot/commercecore/pkg/repoguard"
)

// Repository persists Carts. PostgresRepository is the production
// implementation; memoryRepository (repository_memory.go) backs tests.
type Repository interface {
	// FindByOwner returns the open cart for ownerType/ownerID, if any.
	FindByOwner(ctx context.Context, ownerType OwnerType, ownerID string) (*Cart, error)

	// Save upserts cart. Callers must route every mutation through
	// repoguard.Persist first - Save itself trusts cart.TenantID.
	Save(ctx context.Context, cart *Cart) error
}

// PostgresRepository implements Repository on top of a repoguard.Guard,
// so every read and write is forced through the current tenant context the
// way every other tenant-scoped repository in this codebase is.
type PostgresRepository struct {
	guard *repoguard.Guard
}

// NewPostgresRepository wraps guard for cart persistence.
func NewPostgresRepository(guard *repoguard.Guard) *PostgresRepository {
	return &PostgresRepository{guard: guard}
}

type cartRow struct {
	id        uuid.UUID
	tenantID  uuid.UUID
	ownerType string
	ownerID   string
	currency  string
	lines     []byte
	version   int
}

func (r *PostgresRepository) FindByOwner(ctx context.Context, ownerType OwnerType, ownerID string) (*Cart, error) {
	q := repoguard.MustFilterTenant(
		`SELECT id, tenant_id, owner_type, owner_id, currency, lines, version
		 FROM carts WHERE tenant_id = $1 AND owner_type = $2 AND owner_id = $3`,
		string(ownerType), ownerID,
	)

	row, err := r.guard.QueryRow(ctx, q)
	if err != nil {
		return nil, err
	}

	var rr cartRow
	if err := row.Scan(&rr.id, &rr.tenantID, &rr.ownerType, &rr.ownerID, &rr.currency, &rr.lines, &rr.version); err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("cart: find by owner: %w", err)
	}

	cart := &Cart{
		ID:        rr.id,
		TenantID:  rr.tenantID,
		OwnerType: OwnerType(rr.ownerType),
		OwnerID:   rr.ownerID,
		Currency:  rr.currency,
		Version:   rr.version,
	}
	if err := json.Unmarshal(rr.lines, &cart.Lines); err != nil {
		return nil, fmt.Errorf("cart: unmarshal lines: %w", err)
	}

	loaded, ok := repoguard.Load(ctx, cart)
	if !ok {
		return nil, ErrNotFound
	}
	return loaded, nil
}

// Save upserts cart. On first save (Version == 0) it inserts a fresh row
// at version 1. On every later save it updates only if the stored version
// still matches cart.Version, reporting ErrConflict otherwise - the same
// compare-and-swap an UPDATE ... WHERE version = $n would give a plain SQL
// table, just expressed through ON CONFLICT so insert and update share one
// round trip.
func (r *PostgresRepository) Save(ctx context.Context, cart *Cart) error {
	return repoguard.Persist(ctx, cart, func(ctx context.Context, c *Cart) error {
		lines, err := json.Marshal(c.Lines)
		if err != nil {
			return fmt.Errorf("cart: marshal lines: %w", err)
		}
		if c.ID == uuid.Nil {
			c.ID = uuid.New()
		}

		q := repoguard.MustFilterTenant(
			`INSERT INTO carts (id, tenant_id, owner_type, owner_id, currency, lines, version, updated_at)
			 VALUES ($2, $1, $3, $4, $5, $6, 1, now())
			 ON CONFLICT (tenant_id, owner_type, owner_id) DO UPDATE
			 SET currency = $5, lines = $6, version = carts.version + 1, updated_at = now()
			 WHERE carts.tenant_id = $1 AND carts.version = $7
			 RETURNING version`,
			c.ID, string(c.OwnerType), c.OwnerID, c.Currency, lines, c.Version,
		)

		row, err := r.guard.QueryRow(ctx, q)
		if err != nil {
			return err
		}

		var newVersion int
		if err := row.Scan(&newVersion); err != nil {
			if pg.IsNotFoundError(err) {
				return ErrConflict
			}
			return fmt.Errorf("cart: save: %w", err)
		}

		c.Version = newVersion
		return nil
	})
}

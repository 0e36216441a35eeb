package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmitrymomot/commercecore/pkg/pg"
	"github.com/dmitrymomot/commercecore/pkg/repoguard"
)

// PostgresLevelRepository implements LevelRepository over a
// repoguard.Guard. Every mutation is a single statement so two concurrent
// transfers against the same row serialize at the database instead of
// racing in application code.
type PostgresLevelRepository struct {
	guard *repoguard.Guard
}

// NewPostgresLevelRepository wraps guard for inventory level persistence.
func NewPostgresLevelRepository(guard *repoguard.Guard) *PostgresLevelRepository {
	return &PostgresLevelRepository{guard: guard}
}

func (r *PostgresLevelRepository) Get(ctx context.Context, variantID uuid.UUID, locationID string) (*Level, error) {
	q := repoguard.MustFilterTenant(
		`SELECT tenant_id, variant_id, location_id, on_hand, reserved
		 FROM inventory_levels WHERE tenant_id = $1 AND variant_id = $2 AND location_id = $3`,
		variantID, locationID,
	)
	row, err := r.guard.QueryRow(ctx, q)
	if err != nil {
		return nil, err
	}
	var l Level
	if err := row.Scan(&l.TenantID, &l.VariantID, &l.LocationID, &l.OnHand, &l.Reserved); err != nil {
		if pg.IsNotFoundError(err) {
			return &Level{VariantID: variantID, LocationID: locationID}, nil
		}
		return nil, fmt.Errorf("inventory: get level: %w", err)
	}
	return &l, nil
}

// Reserve upserts the row, incrementing Reserved by qty only if the
// resulting Reserved never exceeds OnHand - the RETURNING clause comes
// back empty (not-found) when the WHERE guard rejects the update, which
// this method reports as ErrInsufficientStock.
func (r *PostgresLevelRepository) Reserve(ctx context.Context, variantID uuid.UUID, locationID string, qty int) error {
	q := repoguard.MustFilterTenant(
		`INSERT INTO inventory_levels (tenant_id, variant_id, location_id, on_hand, reserved)
		 VALUES ($1, $2, $3, 0, $4)
		 ON CONFLICT (tenant_id, variant_id, location_id) DO UPDATE
		 SET reserved = inventory_levels.reserved + $4
		 WHERE inventory_levels.tenant_id = $1
		   AND inventory_levels.on_hand - inventory_levels.reserved >= $4
		 RETURNING reserved`,
		variantID, locationID, qty,
	)
	row, err := r.guard.QueryRow(ctx, q)
	if err != nil {
		return err
	}
	var reserved int
	if err := row.Scan(&reserved); err != nil {
		if pg.IsNotFoundError(err) {
			return ErrInsufficientStock
		}
		return fmt.Errorf("inventory: reserve: %w", err)
	}
	return nil
}

func (r *PostgresLevelRepository) Release(ctx context.Context, variantID uuid.UUID, locationID string, qty int) error {
	return r.exec(ctx,
		`UPDATE inventory_levels SET reserved = reserved - $4
		 WHERE tenant_id = $1 AND variant_id = $2 AND location_id = $3`,
		variantID, locationID, qty,
	)
}

func (r *PostgresLevelRepository) CommitReservation(ctx context.Context, variantID uuid.UUID, locationID string, qty int) error {
	return r.exec(ctx,
		`UPDATE inventory_levels SET on_hand = on_hand - $4, reserved = reserved - $4
		 WHERE tenant_id = $1 AND variant_id = $2 AND location_id = $3`,
		variantID, locationID, qty,
	)
}

func (r *PostgresLevelRepository) Credit(ctx context.Context, variantID uuid.UUID, locationID string, qty int) error {
	return r.exec(ctx,
		`INSERT INTO inventory_levels (tenant_id, variant_id, location_id, on_hand, reserved)
		 VALUES ($1, $2, $3, $4, 0)
		 ON CONFLICT (tenant_id, variant_id, location_id) DO UPDATE
		 SET on_hand = inventory_levels.on_hand + $4`,
		variantID, locationID, qty,
	)
}

func (r *PostgresLevelRepository) Adjust(ctx context.Context, variantID uuid.UUID, locationID string, delta int) error {
	q := repoguard.MustFilterTenant(
		`INSERT INTO inventory_levels (tenant_id, variant_id, location_id, on_hand, reserved)
		 VALUES ($1, $2, $3, GREATEST($4, 0), 0)
		 ON CONFLICT (tenant_id, variant_id, location_id) DO UPDATE
		 SET on_hand = inventory_levels.on_hand + $4
		 WHERE inventory_levels.tenant_id = $1 AND inventory_levels.on_hand + $4 >= 0
		 RETURNING on_hand`,
		variantID, locationID, delta,
	)
	row, err := r.guard.QueryRow(ctx, q)
	if err != nil {
		return err
	}
	var onHand int
	if err := row.Scan(&onHand); err != nil {
		if pg.IsNotFoundError(err) {
			return ErrInvalidQuantity
		}
		return fmt.Errorf("inventory: adjust: %w", err)
	}
	return nil
}

func (r *PostgresLevelRepository) exec(ctx context.Context, sql string, variantID uuid.UUID, locationID string, qty int) error {
	q := repoguard.MustFilterTenant(sql, variantID, locationID, qty)
	rows, err := r.guard.Query(ctx, q)
	if err != nil {
		return fmt.Errorf("inventory: exec: %w", err)
	}
	rows.Close()
	return nil
}

// PostgresTransferRepository implements TransferRepository.
type PostgresTransferRepository struct {
	guard *repoguard.Guard
}

// NewPostgresTransferRepository wraps guard for transfer persistence.
func NewPostgresTransferRepository(guard *repoguard.Guard) *PostgresTransferRepository {
	return &PostgresTransferRepository{guard: guard}
}

func (r *PostgresTransferRepository) Get(ctx context.Context, id uuid.UUID) (*Transfer, error) {
	q := repoguard.MustFilterTenant(
		`SELECT id, tenant_id, variant_id, source_location_id, dest_location_id, quantity, status, created_at, received_at
		 FROM inventory_transfers WHERE tenant_id = $1 AND id = $2`, id,
	)
	row, err := r.guard.QueryRow(ctx, q)
	if err != nil {
		return nil, err
	}
	var t Transfer
	if err := row.Scan(&t.ID, &t.TenantID, &t.VariantID, &t.SourceLocationID, &t.DestLocationID, &t.Quantity, &t.Status, &t.CreatedAt, &t.ReceivedAt); err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrTransferNotFound
		}
		return nil, fmt.Errorf("inventory: get transfer: %w", err)
	}
	loaded, ok := repoguard.Load(ctx, &t)
	if !ok {
		return nil, ErrTransferNotFound
	}
	return loaded, nil
}

func (r *PostgresTransferRepository) Save(ctx context.Context, t *Transfer) error {
	return repoguard.Persist(ctx, t, func(ctx context.Context, t *Transfer) error {
		if t.ID == uuid.Nil {
			t.ID = uuid.New()
		}
		q := repoguard.MustFilterTenant(
			`INSERT INTO inventory_transfers (id, tenant_id, variant_id, source_location_id, dest_location_id, quantity, status, created_at, received_at)
			 VALUES ($2, $1, $3, $4, $5, $6, $7, $8, $9)
			 ON CONFLICT (id) DO UPDATE
			 SET status = $7, received_at = $9
			 WHERE inventory_transfers.tenant_id = $1`,
			t.ID, t.VariantID, t.SourceLocationID, t.DestLocationID, t.Quantity, t.Status, t.CreatedAt, t.ReceivedAt,
		)
		rows, err := r.guard.Query(ctx, q)
		if err != nil {
			return fmt.Errorf("inventory: save transfer: %w", err)
		}
		rows.Close()
		return nil
	})
}

// PostgresAdjustmentRepository implements AdjustmentRepository.
type PostgresAdjustmentRepository struct {
	guard *repoguard.Guard
}

// NewPostgresAdjustmentRepository wraps guard for adjustment persistence.
func NewPostgresAdjustmentRepository(guard *repoguard.Guard) *PostgresAdjustmentRepository {
	return &PostgresAdjustmentRepository{guard: guard}
}

func (r *PostgresAdjustmentRepository) Save(ctx context.Context, a *Adjustment) error {
	return repoguard.Persist(ctx, a, func(ctx context.Context, a *Adjustment) error {
		if a.ID == uuid.Nil {
			a.ID = uuid.New()
		}
		q := repoguard.MustFilterTenant(
			`INSERT INTO inventory_adjustments (id, tenant_id, variant_id, location_id, delta, reason, created_at)
			 VALUES ($2, $1, $3, $4, $5, $6, $7)`,
			a.ID, a.VariantID, a.LocationID, a.Delta, a.Reason, a.CreatedAt,
		)
		rows, err := r.guard.Query(ctx, q)
		if err != nil {
			return fmt.Errorf("inventory: save adjustment: %w", err)
		}
		rows.Close()
		return nil
	})
}

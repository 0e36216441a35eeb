package consignment

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmitrymomot/commercecore/pkg/pg"
	"github.com/dmitrymomot/commercecore/pkg/repoguard"
)

// PostgresConsignorRepository implements ConsignorRepository over a
// repoguard.Guard.
type PostgresConsignorRepository struct {
	guard *repoguard.Guard
}

// NewPostgresConsignorRepository wraps guard for consignor persistence.
func NewPostgresConsignorRepository(guard *repoguard.Guard) *PostgresConsignorRepository {
	return &PostgresConsignorRepository{guard: guard}
}

func (r *PostgresConsignorRepository) Get(ctx context.Context, id uuid.UUID) (*Consignor, error) {
	q := repoguard.MustFilterTenant(
		`SELECT id, tenant_id, name, email, created_at
		 FROM consignors WHERE tenant_id = $1 AND id = $2`, id,
	)
	row, err := r.guard.QueryRow(ctx, q)
	if err != nil {
		return nil, err
	}
	var c Consignor
	if err := row.Scan(&c.ID, &c.TenantID, &c.Name, &c.Email, &c.CreatedAt); err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("consignment: get consignor: %w", err)
	}
	return &c, nil
}

func (r *PostgresConsignorRepository) Save(ctx context.Context, c *Consignor) error {
	return repoguard.Persist(ctx, c, func(ctx context.Context, c *Consignor) error {
		if c.ID == uuid.Nil {
			c.ID = uuid.New()
		}
		q := repoguard.MustFilterTenant(
			`INSERT INTO consignors (id, tenant_id, name, email, created_at)
			 VALUES ($2, $1, $3, $4, $5)
			 ON CONFLICT (id) DO UPDATE SET name = $3, email = $4
			 WHERE consignors.tenant_id = $1`,
			c.ID, c.Name, c.Email, c.CreatedAt,
		)
		rows, err := r.guard.Query(ctx, q)
		if err != nil {
			return fmt.Errorf("consignment: save consignor: %w", err)
		}
		rows.Close()
		return nil
	})
}

// PostgresItemRepository implements ItemRepository over a repoguard.Guard.
type PostgresItemRepository struct {
	guard *repoguard.Guard
}

// NewPostgresItemRepository wraps guard for item persistence.
func NewPostgresItemRepository(guard *repoguard.Guard) *PostgresItemRepository {
	return &PostgresItemRepository{guard: guard}
}

func (r *PostgresItemRepository) Get(ctx context.Context, id uuid.UUID) (*Item, error) {
	q := repoguard.MustFilterTenant(
		`SELECT id, tenant_id, consignor_id, variant_id, commission_rate, intake_at
		 FROM consignment_items WHERE tenant_id = $1 AND id = $2`, id,
	)
	row, err := r.guard.QueryRow(ctx, q)
	if err != nil {
		return nil, err
	}
	var i Item
	if err := row.Scan(&i.ID, &i.TenantID, &i.ConsignorID, &i.VariantID, &i.CommissionRate, &i.IntakeAt); err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("consignment: get item: %w", err)
	}
	return &i, nil
}

func (r *PostgresItemRepository) Save(ctx context.Context, i *Item) error {
	return repoguard.Persist(ctx, i, func(ctx context.Context, i *Item) error {
		if i.ID == uuid.Nil {
			i.ID = uuid.New()
		}
		q := repoguard.MustFilterTenant(
			`INSERT INTO consignment_items (id, tenant_id, consignor_id, variant_id, commission_rate, intake_at)
			 VALUES ($2, $1, $3, $4, $5, $6)
			 ON CONFLICT (id) DO UPDATE SET commission_rate = $5
			 WHERE consignment_items.tenant_id = $1`,
			i.ID, i.ConsignorID, i.VariantID, i.CommissionRate, i.IntakeAt,
		)
		rows, err := r.guard.Query(ctx, q)
		if err != nil {
			return fmt.Errorf("consignment: save item: %w", err)
		}
		rows.Close()
		return nil
	})
}

func (r *PostgresItemRepository) ListByConsignor(ctx context.Context, consignorID uuid.UUID) ([]*Item, error) {
	q := repoguard.MustFilterTenant(
		`SELECT id, tenant_id, consignor_id, variant_id, commission_rate, intake_at
		 FROM consignment_items WHERE tenant_id = $1 AND consignor_id = $2
		 ORDER BY intake_at ASC`, consignorID,
	)
	rows, err := r.guard.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("consignment: list items: %w", err)
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		var i Item
		if err := rows.Scan(&i.ID, &i.TenantID, &i.ConsignorID, &i.VariantID, &i.CommissionRate, &i.IntakeAt); err != nil {
			return nil, fmt.Errorf("consignment: scan item: %w", err)
		}
		items = append(items, &i)
	}
	return items, rows.Err()
}

// PostgresPayoutRepository implements PayoutRepository over a
// repoguard.Guard. Lines are stored as a JSON column since their shape
// (per-item sale/commission breakdown) has no independent query need of
// its own.
type PostgresPayoutRepository struct {
	guard *repoguard.Guard
}

// NewPostgresPayoutRepository wraps guard for payout batch persistence.
func NewPostgresPayoutRepository(guard *repoguard.Guard) *PostgresPayoutRepository {
	return &PostgresPayoutRepository{guard: guard}
}

func (r *PostgresPayoutRepository) Get(ctx context.Context, id uuid.UUID) (*PayoutBatch, error) {
	q := repoguard.MustFilterTenant(
		`SELECT id, tenant_id, consignor_id, period_start, period_end, lines, status, total_payout, created_at, completed_at
		 FROM payout_batches WHERE tenant_id = $1 AND id = $2`, id,
	)
	row, err := r.guard.QueryRow(ctx, q)
	if err != nil {
		return nil, err
	}
	var b PayoutBatch
	var lines []byte
	if err := row.Scan(&b.ID, &b.TenantID, &b.ConsignorID, &b.PeriodStart, &b.PeriodEnd, &lines, &b.Status, &b.TotalPayout, &b.CreatedAt, &b.CompletedAt); err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("consignment: get payout batch: %w", err)
	}
	if len(lines) > 0 {
		if err := json.Unmarshal(lines, &b.Lines); err != nil {
			return nil, fmt.Errorf("consignment: decode payout lines: %w", err)
		}
	}
	return &b, nil
}

func (r *PostgresPayoutRepository) Save(ctx context.Context, b *PayoutBatch) error {
	return repoguard.Persist(ctx, b, func(ctx context.Context, b *PayoutBatch) error {
		if b.ID == uuid.Nil {
			b.ID = uuid.New()
		}
		lines, err := json.Marshal(b.Lines)
		if err != nil {
			return fmt.Errorf("consignment: encode payout lines: %w", err)
		}
		q := repoguard.MustFilterTenant(
			`INSERT INTO payout_batches (id, tenant_id, consignor_id, period_start, period_end, lines, status, total_payout, created_at, completed_at)
			 VALUES ($2, $1, $3, $4, $5, $6, $7, $8, $9, $10)
			 ON CONFLICT (id) DO UPDATE SET status = $7, total_payout = $8, completed_at = $10
			 WHERE payout_batches.tenant_id = $1`,
			b.ID, b.ConsignorID, b.PeriodStart, b.PeriodEnd, lines, b.Status, b.TotalPayout, b.CreatedAt, b.CompletedAt,
		)
		rows, err := r.guard.Query(ctx, q)
		if err != nil {
			return fmt.Errorf("consignment: save payout batch: %w", err)
		}
		rows.Close()
		return nil
	})
}

package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmitrymomot/commercecore/pkg/pg"
	"github.com/dmitrymomot/commercecore/pkg/repoguard"
)

// PostgresRepository implements Repository over a repoguard.Guard.
type PostgresRepository struct {
	guard *repoguard.Guard
}

// NewPostgresRepository wraps guard for product persistence.
func NewPostgresRepository(guard *repoguard.Guard) *PostgresRepository {
	return &PostgresRepository{guard: guard}
}

func scanProduct(row interface{ Scan(...any) error }) (*Product, error) {
	var p Product
	if err := row.Scan(&p.ID, &p.TenantID, &p.SKU, &p.Title, &p.Description, &p.Price, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id uuid.UUID) (*Product, error) {
	q := repoguard.MustFilterTenant(
		`SELECT id, tenant_id, sku, title, description, price, status, created_at, updated_at
		 FROM products WHERE tenant_id = $1 AND id = $2`, id,
	)
	row, err := r.guard.QueryRow(ctx, q)
	if err != nil {
		return nil, err
	}
	p, err := scanProduct(row)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("catalog: get: %w", err)
	}
	loaded, ok := repoguard.Load(ctx, p)
	if !ok {
		return nil, ErrNotFound
	}
	return loaded, nil
}

func (r *PostgresRepository) GetBySKU(ctx context.Context, sku string) (*Product, error) {
	q := repoguard.MustFilterTenant(
		`SELECT id, tenant_id, sku, title, description, price, status, created_at, updated_at
		 FROM products WHERE tenant_id = $1 AND sku = $2`, sku,
	)
	row, err := r.guard.QueryRow(ctx, q)
	if err != nil {
		return nil, err
	}
	p, err := scanProduct(row)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("catalog: get by sku: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) Create(ctx context.Context, p *Product) error {
	return repoguard.Persist(ctx, p, func(ctx context.Context, p *Product) error {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		q := repoguard.MustFilterTenant(
			`INSERT INTO products (id, tenant_id, sku, title, description, price, status, created_at, updated_at)
			 VALUES ($2, $1, $3, $4, $5, $6, $7, now(), now())`,
			p.ID, p.SKU, p.Title, p.Description, p.Price, p.Status,
		)
		rows, err := r.guard.Query(ctx, q)
		if err != nil {
			if pg.IsDuplicateKeyError(err) {
				return ErrDuplicateSKU
			}
			return fmt.Errorf("catalog: create: %w", err)
		}
		rows.Close()
		return nil
	})
}

func (r *PostgresRepository) Update(ctx context.Context, p *Product) error {
	return repoguard.Persist(ctx, p, func(ctx context.Context, p *Product) error {
		q := repoguard.MustFilterTenant(
			`UPDATE products SET sku = $3, title = $4, description = $5, price = $6, status = $7, updated_at = now()
			 WHERE tenant_id = $1 AND id = $2`,
			p.ID, p.SKU, p.Title, p.Description, p.Price, p.Status,
		)
		rows, err := r.guard.Query(ctx, q)
		if err != nil {
			if pg.IsDuplicateKeyError(err) {
				return ErrDuplicateSKU
			}
			return fmt.Errorf("catalog: update: %w", err)
		}
		rows.Close()
		return nil
	})
}

func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	q := repoguard.MustFilterTenant(`DELETE FROM products WHERE tenant_id = $1 AND id = $2`, id)
	rows, err := r.guard.Query(ctx, q)
	if err != nil {
		return fmt.Errorf("catalog: delete: %w", err)
	}
	rows.Close()
	return nil
}

func (r *PostgresRepository) List(ctx context.Context, page, size int) ([]*Product, int, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 20
	}

	countQ := repoguard.MustFilterTenant(`SELECT count(*) FROM products WHERE tenant_id = $1`)
	countRow, err := r.guard.QueryRow(ctx, countQ)
	if err != nil {
		return nil, 0, err
	}
	var total int
	if err := countRow.Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("catalog: count: %w", err)
	}

	listQ := repoguard.MustFilterTenant(
		`SELECT id, tenant_id, sku, title, description, price, status, created_at, updated_at
		 FROM products WHERE tenant_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		size, (page-1)*size,
	)
	rows, err := r.guard.Query(ctx, listQ)
	if err != nil {
		return nil, 0, fmt.Errorf("catalog: list: %w", err)
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("catalog: scan list row: %w", err)
		}
		products = append(products, p)
	}
	return products, total, rows.Err()
}

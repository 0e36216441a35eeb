package media

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

// NewPostgresRepository wraps guard for asset persistence.
func NewPostgresRepository(guard *repoguard.Guard) *PostgresRepository {
	return &PostgresRepository{guard: guard}
}

func (r *PostgresRepository) Get(ctx context.Context, id uuid.UUID) (*Asset, error) {
	q := repoguard.MustFilterTenant(
		`SELECT id, tenant_id, asset_type, status, filename, content_type, size_bytes,
		        storage_key, checksum, quota_charged, download_attempts, created_at, updated_at
		 FROM media_assets WHERE tenant_id = $1 AND id = $2`, id,
	)
	row, err := r.guard.QueryRow(ctx, q)
	if err != nil {
		return nil, err
	}
	var a Asset
	if err := row.Scan(&a.ID, &a.TenantID, &a.AssetType, &a.Status, &a.Filename, &a.ContentType, &a.SizeBytes,
		&a.StorageKey, &a.Checksum, &a.QuotaCharged, &a.DownloadAttempts, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("media: get asset: %w", err)
	}
	return &a, nil
}

func (r *PostgresRepository) Save(ctx context.Context, a *Asset) error {
	return repoguard.Persist(ctx, a, func(ctx context.Context, a *Asset) error {
		if a.ID == uuid.Nil {
			a.ID = uuid.New()
		}
		q := repoguard.MustFilterTenant(
			`INSERT INTO media_assets (id, tenant_id, asset_type, status, filename, content_type, size_bytes,
			                            storage_key, checksum, quota_charged, download_attempts, created_at, updated_at)
			 VALUES ($2, $1, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			 ON CONFLICT (id) DO UPDATE
			 SET status = $4, checksum = $9, quota_charged = $10, download_attempts = $11, updated_at = $13
			 WHERE media_assets.tenant_id = $1`,
			a.ID, a.AssetType, a.Status, a.Filename, a.ContentType, a.SizeBytes,
			a.StorageKey, a.Checksum, a.QuotaCharged, a.DownloadAttempts, a.CreatedAt, a.UpdatedAt,
		)
		rows, err := r.guard.Query(ctx, q)
		if err != nil {
			return fmt.Errorf("media: save asset: %w", err)
		}
		rows.Close()
		return nil
	})
}

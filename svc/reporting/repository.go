package reporting

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmitrymomot/commercecore/pkg/pg"
	"github.com/dmitrymomot/commercecore/pkg/repoguard"
)

// PostgresJobRepository implements JobRepository over a repoguard.Guard.
type PostgresJobRepository struct {
	guard *repoguard.Guard
}

// NewPostgresJobRepository wraps guard for report job persistence.
func NewPostgresJobRepository(guard *repoguard.Guard) *PostgresJobRepository {
	return &PostgresJobRepository{guard: guard}
}

func (r *PostgresJobRepository) Get(ctx context.Context, id uuid.UUID) (*ReportJob, error) {
	q := repoguard.MustFilterTenant(
		`SELECT id, tenant_id, report_type, format, params, status, storage_key, download_url, fail_reason, created_at, completed_at
		 FROM report_jobs WHERE tenant_id = $1 AND id = $2`, id,
	)
	row, err := r.guard.QueryRow(ctx, q)
	if err != nil {
		return nil, err
	}
	var j ReportJob
	var params []byte
	if err := row.Scan(&j.ID, &j.TenantID, &j.ReportType, &j.Format, &params, &j.Status, &j.StorageKey, &j.DownloadURL, &j.FailReason, &j.CreatedAt, &j.CompletedAt); err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reporting: get job: %w", err)
	}
	if len(params) > 0 {
		if err := json.Unmarshal(params, &j.Params); err != nil {
			return nil, fmt.Errorf("reporting: decode job params: %w", err)
		}
	}
	return &j, nil
}

func (r *PostgresJobRepository) Save(ctx context.Context, j *ReportJob) error {
	return repoguard.Persist(ctx, j, func(ctx context.Context, j *ReportJob) error {
		if j.ID == uuid.Nil {
			j.ID = uuid.New()
		}
		params, err := json.Marshal(j.Params)
		if err != nil {
			return fmt.Errorf("reporting: encode job params: %w", err)
		}
		q := repoguard.MustFilterTenant(
			`INSERT INTO report_jobs (id, tenant_id, report_type, format, params, status, storage_key, download_url, fail_reason, created_at, completed_at)
			 VALUES ($2, $1, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			 ON CONFLICT (id) DO UPDATE
			 SET status = $6, storage_key = $7, download_url = $8, fail_reason = $9, completed_at = $11
			 WHERE report_jobs.tenant_id = $1`,
			j.ID, j.ReportType, j.Format, params, j.Status, j.StorageKey, j.DownloadURL, j.FailReason, j.CreatedAt, j.CompletedAt,
		)
		rows, err := r.guard.Query(ctx, q)
		if err != nil {
			return fmt.Errorf("reporting: save job: %w", err)
		}
		rows.Close()
		return nil
	})
}

package reporting

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/commercecore/pkg/collab"
	"github.com/dmitrymomot/commercecore/pkg/jobqueue"
)

// JobRepository persists ReportJob rows.
type JobRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*ReportJob, error)
	Save(ctx context.Context, j *ReportJob) error
}

// ProjectionStore persists the denormalized rows Refresh rebuilds and
// Export reads from.
type ProjectionStore interface {
	Upsert(ctx context.Context, row ProjectionRow) error
	Rows(ctx context.Context, tenantID uuid.UUID, aggregateType string) ([]ProjectionRow, error)
}

// AggregateSource computes the current aggregate data for one
// (tenantID, aggregateType, period) tuple - the domain-specific query
// Refresh delegates to rather than owning itself.
type AggregateSource interface {
	Aggregate(ctx context.Context, tenantID uuid.UUID, aggregateType, period string) (map[string]any, error)
}

// Enqueuer is the narrow slice of *jobqueue.JobProcessor Service needs to
// schedule export jobs.
type Enqueuer interface {
	Submit(job *jobqueue.Job) bool
}

// Storage is the object store Export uploads CSV bytes to.
type Storage = collab.ObjectStorageClient

// exportExpiry is how long an export's signed download URL stays valid.
const exportExpiry = 24 * time.Hour

package media

import (
	"context"

	"github.com/google/uuid"

	"github.com/dmitrymomot/commercecore/pkg/collab"
	"github.com/dmitrymomot/commercecore/pkg/jobqueue"
)

// Repository persists Asset rows.
type Repository interface {
	Get(ctx context.Context, id uuid.UUID) (*Asset, error)
	Save(ctx context.Context, a *Asset) error
}

// QuotaTracker exposes a tenant's storage quota, charged once per asset
// the first time its original bytes are accounted for.
type QuotaTracker interface {
	HasAvailable(ctx context.Context, tenantID uuid.UUID, size int64) (bool, error)
	Charge(ctx context.Context, tenantID uuid.UUID, size int64) (remaining int64, err error)
}

// Enqueuer is the narrow slice of *jobqueue.JobProcessor Service needs to
// schedule a processing job after upload completion.
type Enqueuer interface {
	Submit(job *jobqueue.Job) bool
}

// Storage and Processor alias the capability-set collaborators Service
// depends on, named for readability at the call site.
type (
	Storage   = collab.ObjectStorageClient
	Processor = collab.MediaProcessor
)

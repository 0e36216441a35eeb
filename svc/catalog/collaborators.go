package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/dmitrymomot/commercecore/pkg/jobqueue"
)

// Repository is the system-of-record store for Products.
type Repository interface {
	Get(ctx context.Context, id uuid.UUID) (*Product, error)
	GetBySKU(ctx context.Context, sku string) (*Product, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, page, size int) ([]*Product, int, error)
}

// SearchIndex is the keyword-search backend CatalogService keeps in sync
// with Repository. Grounded on OpenSearch the way pkg/opensearch's bare
// client is meant to be used by a domain-specific index on top of it.
type SearchIndex interface {
	Index(ctx context.Context, p *Product) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	Search(ctx context.Context, tenantID uuid.UUID, query string, page, size int) (ids []uuid.UUID, total int, err error)
}

// Enqueuer is the narrow slice of *jobqueue.JobProcessor CatalogService
// needs to schedule a reindex job - it never needs to dequeue or register
// handlers itself.
type Enqueuer interface {
	Submit(job *jobqueue.Job) bool
}

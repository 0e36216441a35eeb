package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/commercecore/pkg/jobqueue"
	"github.com/dmitrymomot/commercecore/pkg/tenantcache"
)

// searchCacheTTL bounds how long a cached search-result page can survive
// before it's re-fetched from SearchIndex even without an invalidation.
const searchCacheTTL = 60 * time.Second

// ReindexJob is the payload enqueued whenever a mutation needs its
// product re-synced into SearchIndex out of band, registered via
// jobqueue.NewTaskHandler so the task name is derived from this type.
type ReindexJob struct {
	TenantID  uuid.UUID `json:"tenant_id"`
	ProductID uuid.UUID `json:"product_id"`
}

// Service implements product CRUD and keyword search, invalidating the
// search-result cache on every mutation so a stale page never survives a
// product update.
type Service struct {
	repo   Repository
	search SearchIndex
	jobs   Enqueuer
	cache  *tenantcache.Cache[[]uuid.UUID]
}

// NewService builds a Service. cache may be nil to disable search-result
// caching (e.g. in tests that assert on freshly-searched results).
func NewService(repo Repository, search SearchIndex, jobs Enqueuer, cache *tenantcache.Cache[[]uuid.UUID]) *Service {
	return &Service{repo: repo, search: search, jobs: jobs, cache: cache}
}

// Get returns a single product by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Product, error) {
	return s.repo.Get(ctx, id)
}

// List returns a page of every product for the current tenant, ordered by
// creation time.
func (s *Service) List(ctx context.Context, page, size int) (PageResult[*Product], error) {
	products, total, err := s.repo.List(ctx, page, size)
	if err != nil {
		return PageResult[*Product]{}, err
	}
	return newPageResult(products, total, page, size), nil
}

// Create validates and persists a new product, then schedules a reindex.
func (s *Service) Create(ctx context.Context, p *Product) (*Product, error) {
	if p.SKU == "" || p.Title == "" || p.Price.IsNegative() {
		return nil, ErrInvalidProduct
	}
	if p.Status == "" {
		p.Status = StatusDraft
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.afterMutation(ctx, p)
	return p, nil
}

// Update persists changes to an existing product and schedules a reindex.
func (s *Service) Update(ctx context.Context, p *Product) (*Product, error) {
	if p.SKU == "" || p.Title == "" || p.Price.IsNegative() {
		return nil, ErrInvalidProduct
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.afterMutation(ctx, p)
	return p, nil
}

// Delete removes a product from the catalog and its search entry.
func (s *Service) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.search.Delete(ctx, tenantID, id); err != nil {
		return fmt.Errorf("catalog: delete from search index: %w", err)
	}
	if s.cache != nil {
		s.cache.Invalidate(tenantID, tenantcache.ReasonDataChanged)
	}
	return nil
}

// Search runs a keyword query against SearchIndex, serving a cached
// result list when the exact tenant/query/page/size tuple was seen
// recently.
func (s *Service) Search(ctx context.Context, tenantID uuid.UUID, query string, page, size int) (PageResult[*Product], error) {
	ids, total, err := s.searchIDs(ctx, tenantID, query, page, size)
	if err != nil {
		return PageResult[*Product]{}, err
	}

	products := make([]*Product, 0, len(ids))
	for _, id := range ids {
		p, err := s.repo.Get(ctx, id)
		if err != nil {
			continue // index briefly ahead of a row that was since deleted
		}
		products = append(products, p)
	}

	return newPageResult(products, total, page, size), nil
}

func (s *Service) searchIDs(ctx context.Context, tenantID uuid.UUID, query string, page, size int) ([]uuid.UUID, int, error) {
	if s.cache == nil {
		return s.search.Search(ctx, tenantID, query, page, size)
	}

	key := tenantcache.QueryKey(tenantID, query, page, size)
	if cached, ok := s.cache.Get(key); ok {
		return cached, len(cached), nil
	}

	ids, total, err := s.search.Search(ctx, tenantID, query, page, size)
	if err != nil {
		return nil, 0, err
	}
	s.cache.Set(key, ids, searchCacheTTL)
	return ids, total, nil
}

// afterMutation schedules an async reindex and invalidates any cached
// search results for the product's tenant. Reindexing happens off the
// mutation's request path since OpenSearch availability must never block
// a catalog write.
func (s *Service) afterMutation(ctx context.Context, p *Product) {
	if s.cache != nil {
		s.cache.Invalidate(p.TenantID, tenantcache.ReasonDataChanged)
	}
	if s.jobs == nil {
		return
	}

	payload, err := json.Marshal(ReindexJob{TenantID: p.TenantID, ProductID: p.ID})
	if err != nil {
		return
	}
	job := jobqueue.NewJob(p.TenantID, "catalog.reindex", jobqueue.Low, payload)
	s.jobs.Submit(job)
}

// ReindexHandler returns the typed jobqueue.Handler this service's
// reindex jobs are processed by: it re-fetches the product (the payload
// only carries its id) and re-indexes it.
func (s *Service) ReindexHandler() jobqueue.Handler {
	return jobqueue.NewNamedTaskHandler("catalog.reindex", func(ctx context.Context, job ReindexJob) error {
		p, err := s.repo.Get(ctx, job.ProductID)
		if err != nil {
			if err == ErrNotFound {
				return s.search.Delete(ctx, job.TenantID, job.ProductID)
			}
			return err
		}
		return s.search.Index(ctx, p)
	})
}

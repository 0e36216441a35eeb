package reporting

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/commercecore/pkg/repoguard"
	"github.com/dmitrymomot/commercecore/pkg/tenant"
)

type memoryJobRepository struct {
	mu   sync.Mutex
	jobs map[uuid.UUID]*ReportJob
}

// NewMemoryJobRepositoryForTest returns an in-memory JobRepository for use
// by svc/reporting's external test package.
func NewMemoryJobRepositoryForTest() JobRepository {
	return &memoryJobRepository{jobs: make(map[uuid.UUID]*ReportJob)}
}

func (r *memoryJobRepository) Get(ctx context.Context, id uuid.UUID) (*ReportJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *j
	return &cp, nil
}

func (r *memoryJobRepository) Save(ctx context.Context, j *ReportJob) error {
	return repoguard.Persist(ctx, j, func(ctx context.Context, j *ReportJob) error {
		r.mu.Lock()
		defer r.mu.Unlock()
		if j.ID == uuid.Nil {
			j.ID = uuid.New()
		}
		cp := *j
		r.jobs[j.ID] = &cp
		return nil
	})
}

type memoryProjectionStore struct {
	mu   sync.Mutex
	rows map[string]ProjectionRow
}

// NewMemoryProjectionStoreForTest returns an in-memory ProjectionStore.
func NewMemoryProjectionStoreForTest() ProjectionStore {
	return &memoryProjectionStore{rows: make(map[string]ProjectionRow)}
}

func (s *memoryProjectionStore) Upsert(ctx context.Context, row ProjectionRow) error {
	if _, err := tenant.Current(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[projectionKey(row.TenantID, row.AggregateType, row.Period)] = row
	return nil
}

func (s *memoryProjectionStore) Rows(ctx context.Context, tenantID uuid.UUID, aggregateType string) ([]ProjectionRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []ProjectionRow
	for _, row := range s.rows {
		if row.TenantID == tenantID && row.AggregateType == aggregateType {
			out = append(out, row)
		}
	}
	return out, nil
}

func projectionKey(tenantID uuid.UUID, aggregateType, period string) string {
	return tenantID.String() + "/" + aggregateType + "/" + period
}

package media

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/commercecore/pkg/repoguard"
)

type memoryRepository struct {
	mu     sync.Mutex
	assets map[uuid.UUID]*Asset
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{assets: make(map[uuid.UUID]*Asset)}
}

// NewMemoryRepositoryForTest exposes memoryRepository to media_test.
func NewMemoryRepositoryForTest() Repository {
	return newMemoryRepository()
}

func (m *memoryRepository) Get(ctx context.Context, id uuid.UUID) (*Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.assets[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *a
	loaded, ok := repoguard.Load(ctx, &clone)
	if !ok {
		return nil, ErrNotFound
	}
	return loaded, nil
}

func (m *memoryRepository) Save(ctx context.Context, a *Asset) error {
	return repoguard.Persist(ctx, a, func(ctx context.Context, a *Asset) error {
		m.mu.Lock()
		defer m.mu.Unlock()

		if a.ID == uuid.Nil {
			a.ID = uuid.New()
		}
		clone := *a
		m.assets[a.ID] = &clone
		return nil
	})
}

// memoryQuotaTracker is a fixed-limit QuotaTracker test double.
type memoryQuotaTracker struct {
	mu    sync.Mutex
	limit int64
	used  map[uuid.UUID]int64
}

func newMemoryQuotaTracker(limit int64) *memoryQuotaTracker {
	return &memoryQuotaTracker{limit: limit, used: make(map[uuid.UUID]int64)}
}

// NewMemoryQuotaTrackerForTest exposes memoryQuotaTracker to media_test.
func NewMemoryQuotaTrackerForTest(limit int64) QuotaTracker {
	return newMemoryQuotaTracker(limit)
}

func (m *memoryQuotaTracker) HasAvailable(ctx context.Context, tenantID uuid.UUID, size int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.used[tenantID]+size <= m.limit, nil
}

func (m *memoryQuotaTracker) Charge(ctx context.Context, tenantID uuid.UUID, size int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.used[tenantID] += size
	return m.limit - m.used[tenantID], nil
}

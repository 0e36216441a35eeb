package catalog

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/commercecore/pkg/repoguard"
	"github.com/dmitrymomot/commercecore/pkg/tenant"
)

type memoryRepository struct {
	mu       sync.Mutex
	products map[uuid.UUID]*Product
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{products: make(map[uuid.UUID]*Product)}
}

// NewMemoryRepositoryForTest exposes memoryRepository to catalog_test.
func NewMemoryRepositoryForTest() Repository {
	return newMemoryRepository()
}

func (m *memoryRepository) Get(ctx context.Context, id uuid.UUID) (*Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *p
	loaded, ok := repoguard.Load(ctx, &clone)
	if !ok {
		return nil, ErrNotFound
	}
	return loaded, nil
}

func (m *memoryRepository) GetBySKU(ctx context.Context, sku string) (*Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	tenantID, err := tenant.Current(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range m.products {
		if p.TenantID == tenantID && p.SKU == sku {
			clone := *p
			return &clone, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memoryRepository) Create(ctx context.Context, p *Product) error {
	return repoguard.Persist(ctx, p, func(ctx context.Context, p *Product) error {
		m.mu.Lock()
		defer m.mu.Unlock()

		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		for _, existing := range m.products {
			if existing.TenantID == p.TenantID && existing.SKU == p.SKU {
				return ErrDuplicateSKU
			}
		}
		now := time.Now().UTC()
		p.CreatedAt, p.UpdatedAt = now, now
		clone := *p
		m.products[p.ID] = &clone
		return nil
	})
}

func (m *memoryRepository) Update(ctx context.Context, p *Product) error {
	return repoguard.Persist(ctx, p, func(ctx context.Context, p *Product) error {
		m.mu.Lock()
		defer m.mu.Unlock()

		existing, ok := m.products[p.ID]
		if !ok || existing.TenantID != p.TenantID {
			return ErrNotFound
		}
		for _, other := range m.products {
			if other.ID != p.ID && other.TenantID == p.TenantID && other.SKU == p.SKU {
				return ErrDuplicateSKU
			}
		}
		p.UpdatedAt = time.Now().UTC()
		clone := *p
		m.products[p.ID] = &clone
		return nil
	})
}

func (m *memoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.products, id)
	return nil
}

func (m *memoryRepository) List(ctx context.Context, page, size int) ([]*Product, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	tenantID, err := tenant.Current(ctx)
	if err != nil {
		return nil, 0, err
	}
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 20
	}

	var all []*Product
	for _, p := range m.products {
		if p.TenantID == tenantID {
			clone := *p
			all = append(all, &clone)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.Before(all[j].CreatedAt) })

	total := len(all)
	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}

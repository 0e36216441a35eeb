package consignment

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/commercecore/pkg/repoguard"
)

type memoryConsignorRepository struct {
	mu         sync.Mutex
	consignors map[uuid.UUID]*Consignor
}

func newMemoryConsignorRepository() *memoryConsignorRepository {
	return &memoryConsignorRepository{consignors: make(map[uuid.UUID]*Consignor)}
}

// NewMemoryConsignorRepositoryForTest exposes memoryConsignorRepository to
// consignment_test.
func NewMemoryConsignorRepositoryForTest() ConsignorRepository {
	return newMemoryConsignorRepository()
}

func (m *memoryConsignorRepository) Get(ctx context.Context, id uuid.UUID) (*Consignor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.consignors[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *c
	loaded, ok := repoguard.Load(ctx, &clone)
	if !ok {
		return nil, ErrNotFound
	}
	return loaded, nil
}

func (m *memoryConsignorRepository) Save(ctx context.Context, c *Consignor) error {
	return repoguard.Persist(ctx, c, func(ctx context.Context, c *Consignor) error {
		m.mu.Lock()
		defer m.mu.Unlock()

		if c.ID == uuid.Nil {
			c.ID = uuid.New()
		}
		clone := *c
		m.consignors[c.ID] = &clone
		return nil
	})
}

type memoryItemRepository struct {
	mu    sync.Mutex
	items map[uuid.UUID]*Item
}

func newMemoryItemRepository() *memoryItemRepository {
	return &memoryItemRepository{items: make(map[uuid.UUID]*Item)}
}

// NewMemoryItemRepositoryForTest exposes memoryItemRepository to
// consignment_test.
func NewMemoryItemRepositoryForTest() ItemRepository {
	return newMemoryItemRepository()
}

func (m *memoryItemRepository) Get(ctx context.Context, id uuid.UUID) (*Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i, ok := m.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *i
	loaded, ok := repoguard.Load(ctx, &clone)
	if !ok {
		return nil, ErrNotFound
	}
	return loaded, nil
}

func (m *memoryItemRepository) Save(ctx context.Context, i *Item) error {
	return repoguard.Persist(ctx, i, func(ctx context.Context, i *Item) error {
		m.mu.Lock()
		defer m.mu.Unlock()

		if i.ID == uuid.Nil {
			i.ID = uuid.New()
		}
		clone := *i
		m.items[i.ID] = &clone
		return nil
	})
}

func (m *memoryItemRepository) ListByConsignor(ctx context.Context, consignorID uuid.UUID) ([]*Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*Item
	for _, i := range m.items {
		if i.ConsignorID != consignorID {
			continue
		}
		clone := *i
		if loaded, ok := repoguard.Load(ctx, &clone); ok {
			out = append(out, loaded)
		}
	}
	return out, nil
}

type memoryPayoutRepository struct {
	mu      sync.Mutex
	batches map[uuid.UUID]*PayoutBatch
}

func newMemoryPayoutRepository() *memoryPayoutRepository {
	return &memoryPayoutRepository{batches: make(map[uuid.UUID]*PayoutBatch)}
}

// NewMemoryPayoutRepositoryForTest exposes memoryPayoutRepository to
// consignment_test.
func NewMemoryPayoutRepositoryForTest() PayoutRepository {
	return newMemoryPayoutRepository()
}

func (m *memoryPayoutRepository) Get(ctx context.Context, id uuid.UUID) (*PayoutBatch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.batches[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *b
	clone.Lines = append([]PayoutLine(nil), b.Lines...)
	loaded, ok := repoguard.Load(ctx, &clone)
	if !ok {
		return nil, ErrNotFound
	}
	return loaded, nil
}

func (m *memoryPayoutRepository) Save(ctx context.Context, b *PayoutBatch) error {
	return repoguard.Persist(ctx, b, func(ctx context.Context, b *PayoutBatch) error {
		m.mu.Lock()
		defer m.mu.Unlock()

		if b.ID == uuid.Nil {
			b.ID = uuid.New()
		}
		clone := *b
		clone.Lines = append([]PayoutLine(nil), b.Lines...)
		m.batches[b.ID] = &clone
		return nil
	})
}

package inventory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/commercecore/pkg/repoguard"
	"github.com/dmitrymomot/commercecore/pkg/tenant"
)

type levelKey struct {
	variantID  uuid.UUID
	locationID string
}

type memoryLevelRepository struct {
	mu     sync.Mutex
	levels map[uuid.UUID]map[levelKey]*Level
}

func newMemoryLevelRepository() *memoryLevelRepository {
	return &memoryLevelRepository{levels: make(map[uuid.UUID]map[levelKey]*Level)}
}

// NewMemoryLevelRepositoryForTest exposes memoryLevelRepository to
// inventory_test.
func NewMemoryLevelRepositoryForTest() LevelRepository {
	return newMemoryLevelRepository()
}

func (m *memoryLevelRepository) get(tenantID uuid.UUID, variantID uuid.UUID, locationID string) *Level {
	byKey, ok := m.levels[tenantID]
	if !ok {
		return nil
	}
	return byKey[levelKey{variantID, locationID}]
}

func (m *memoryLevelRepository) set(l *Level) {
	byKey, ok := m.levels[l.TenantID]
	if !ok {
		byKey = make(map[levelKey]*Level)
		m.levels[l.TenantID] = byKey
	}
	clone := *l
	byKey[levelKey{l.VariantID, l.LocationID}] = &clone
}

func (m *memoryLevelRepository) Get(ctx context.Context, variantID uuid.UUID, locationID string) (*Level, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	tenantID, err := tenant.Current(ctx)
	if err != nil {
		return nil, err
	}
	if l := m.get(tenantID, variantID, locationID); l != nil {
		clone := *l
		return &clone, nil
	}
	return &Level{TenantID: tenantID, VariantID: variantID, LocationID: locationID}, nil
}

func (m *memoryLevelRepository) Reserve(ctx context.Context, variantID uuid.UUID, locationID string, qty int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tenantID, err := tenant.Current(ctx)
	if err != nil {
		return err
	}
	l := m.get(tenantID, variantID, locationID)
	if l == nil {
		l = &Level{TenantID: tenantID, VariantID: variantID, LocationID: locationID}
	}
	if l.Available() < qty {
		return ErrInsufficientStock
	}
	l.Reserved += qty
	m.set(l)
	return nil
}

func (m *memoryLevelRepository) Release(ctx context.Context, variantID uuid.UUID, locationID string, qty int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tenantID, err := tenant.Current(ctx)
	if err != nil {
		return err
	}
	l := m.get(tenantID, variantID, locationID)
	if l == nil {
		return nil
	}
	l.Reserved -= qty
	m.set(l)
	return nil
}

func (m *memoryLevelRepository) CommitReservation(ctx context.Context, variantID uuid.UUID, locationID string, qty int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tenantID, err := tenant.Current(ctx)
	if err != nil {
		return err
	}
	l := m.get(tenantID, variantID, locationID)
	if l == nil {
		return ErrInvalidQuantity
	}
	l.OnHand -= qty
	l.Reserved -= qty
	m.set(l)
	return nil
}

func (m *memoryLevelRepository) Credit(ctx context.Context, variantID uuid.UUID, locationID string, qty int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tenantID, err := tenant.Current(ctx)
	if err != nil {
		return err
	}
	l := m.get(tenantID, variantID, locationID)
	if l == nil {
		l = &Level{TenantID: tenantID, VariantID: variantID, LocationID: locationID}
	}
	l.OnHand += qty
	m.set(l)
	return nil
}

func (m *memoryLevelRepository) Adjust(ctx context.Context, variantID uuid.UUID, locationID string, delta int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tenantID, err := tenant.Current(ctx)
	if err != nil {
		return err
	}
	l := m.get(tenantID, variantID, locationID)
	if l == nil {
		l = &Level{TenantID: tenantID, VariantID: variantID, LocationID: locationID}
	}
	if l.OnHand+delta < 0 {
		return ErrInvalidQuantity
	}
	l.OnHand += delta
	m.set(l)
	return nil
}

type memoryTransferRepository struct {
	mu        sync.Mutex
	transfers map[uuid.UUID]*Transfer
}

func newMemoryTransferRepository() *memoryTransferRepository {
	return &memoryTransferRepository{transfers: make(map[uuid.UUID]*Transfer)}
}

// NewMemoryTransferRepositoryForTest exposes memoryTransferRepository to
// inventory_test.
func NewMemoryTransferRepositoryForTest() TransferRepository {
	return newMemoryTransferRepository()
}

func (m *memoryTransferRepository) Get(ctx context.Context, id uuid.UUID) (*Transfer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.transfers[id]
	if !ok {
		return nil, ErrTransferNotFound
	}
	clone := *t
	loaded, ok := repoguard.Load(ctx, &clone)
	if !ok {
		return nil, ErrTransferNotFound
	}
	return loaded, nil
}

func (m *memoryTransferRepository) Save(ctx context.Context, t *Transfer) error {
	return repoguard.Persist(ctx, t, func(ctx context.Context, t *Transfer) error {
		m.mu.Lock()
		defer m.mu.Unlock()

		if t.ID == uuid.Nil {
			t.ID = uuid.New()
		}
		clone := *t
		m.transfers[t.ID] = &clone
		return nil
	})
}

type memoryAdjustmentRepository struct {
	mu          sync.Mutex
	adjustments []*Adjustment
}

func newMemoryAdjustmentRepository() *memoryAdjustmentRepository {
	return &memoryAdjustmentRepository{}
}

// NewMemoryAdjustmentRepositoryForTest exposes memoryAdjustmentRepository
// to inventory_test.
func NewMemoryAdjustmentRepositoryForTest() AdjustmentRepository {
	return newMemoryAdjustmentRepository()
}

func (m *memoryAdjustmentRepository) Save(ctx context.Context, a *Adjustment) error {
	return repoguard.Persist(ctx, a, func(ctx context.Context, a *Adjustment) error {
		m.mu.Lock()
		defer m.mu.Unlock()

		if a.ID == uuid.Nil {
			a.ID = uuid.New()
		}
		clone := *a
		m.adjustments = append(m.adjustments, &clone)
		return nil
	})
}

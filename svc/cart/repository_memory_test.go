package cart

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/commercecore/pkg/repoguard"
	"github.com/dmitrymomot/commercecore/pkg/tenant"
)

// memoryRepository is an in-process Repository for tests; it applies the
// same repoguard.Persist/Load rules a PostgresRepository would.
type memoryRepository struct {
	mu    sync.Mutex
	carts map[string]*Cart // keyed by tenantID:ownerType:ownerID
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{carts: make(map[string]*Cart)}
}

// NewMemoryRepositoryForTest exposes memoryRepository to cart_test so
// service-level tests exercise the same Repository contract a
// PostgresRepository must satisfy.
func NewMemoryRepositoryForTest() Repository {
	return newMemoryRepository()
}

func ownerKey(tenantID uuid.UUID, ownerType OwnerType, ownerID string) string {
	return tenantID.String() + ":" + string(ownerType) + ":" + ownerID
}

func (m *memoryRepository) FindByOwner(ctx context.Context, ownerType OwnerType, ownerID string) (*Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	tenantID, err := tenant.Current(ctx)
	if err != nil {
		return nil, err
	}

	found, ok := m.carts[ownerKey(tenantID, ownerType, ownerID)]
	if !ok {
		return nil, ErrNotFound
	}

	clone := *found
	clone.Lines = append([]Line(nil), found.Lines...)

	loaded, ok := repoguard.Load(ctx, &clone)
	if !ok {
		return nil, ErrNotFound
	}
	return loaded, nil
}

func (m *memoryRepository) Save(ctx context.Context, cart *Cart) error {
	return repoguard.Persist(ctx, cart, func(ctx context.Context, c *Cart) error {
		m.mu.Lock()
		defer m.mu.Unlock()

		if c.ID == uuid.Nil {
			c.ID = uuid.New()
		}
		key := ownerKey(c.TenantID, c.OwnerType, c.OwnerID)

		existing, ok := m.carts[key]
		switch {
		case !ok && c.Version != 0:
			return ErrConflict
		case ok && existing.Version != c.Version:
			return ErrConflict
		}

		c.Version++
		clone := *c
		clone.Lines = append([]Line(nil), c.Lines...)
		m.carts[key] = &clone
		return nil
	})
}

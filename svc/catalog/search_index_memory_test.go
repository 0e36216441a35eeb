package catalog

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
)

type memorySearchIndex struct {
	mu   sync.Mutex
	docs map[uuid.UUID]*Product
}

func newMemorySearchIndex() *memorySearchIndex {
	return &memorySearchIndex{docs: make(map[uuid.UUID]*Product)}
}

// NewMemorySearchIndexForTest exposes memorySearchIndex to catalog_test.
func NewMemorySearchIndexForTest() SearchIndex {
	return newMemorySearchIndex()
}

func (m *memorySearchIndex) Index(ctx context.Context, p *Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *p
	m.docs[p.ID] = &clone
	return nil
}

func (m *memorySearchIndex) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs, id)
	return nil
}

func (m *memorySearchIndex) Search(ctx context.Context, tenantID uuid.UUID, query string, page, size int) ([]uuid.UUID, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 20
	}

	var matches []uuid.UUID
	q := strings.ToLower(query)
	for id, p := range m.docs {
		if p.TenantID != tenantID {
			continue
		}
		if strings.Contains(strings.ToLower(p.Title), q) ||
			strings.Contains(strings.ToLower(p.Description), q) ||
			strings.Contains(strings.ToLower(p.SKU), q) {
			matches = append(matches, id)
		}
	}

	total := len(matches)
	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}
	return matches[start:end], total, nil
}

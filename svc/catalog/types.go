package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductStatus is the publication state of a catalog entry.
type ProductStatus string

const (
	StatusDraft    ProductStatus = "draft"
	StatusActive   ProductStatus = "active"
	StatusArchived ProductStatus = "archived"
)

// Product is a sellable catalog entry. Variant/pricing detail beyond a
// single list price is out of scope here - CatalogService owns discovery
// (CRUD + search), not merchandising.
type Product struct {
	ID          uuid.UUID
	TenantID    uuid.UUID
	SKU         string
	Title       string
	Description string
	Price       decimal.Decimal
	Status      ProductStatus
	Tags        []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// GetTenantID satisfies repoguard.TenantScoped.
func (p *Product) GetTenantID() uuid.UUID { return p.TenantID }

// SetTenantID satisfies repoguard.TenantScoped.
func (p *Product) SetTenantID(id uuid.UUID) { p.TenantID = id }

// Links is the set of pagination URLs a PageResult returns alongside its
// items, per the standard external list-endpoint contract.
type Links struct {
	Self string
	Next string
	Prev string
}

// PageResult is the pagination envelope every list/search endpoint
// returns: items, the total count across all pages, the number of pages
// at the current page size, navigation links, and the timestamp of the
// data backing the result - meaningful because search results are served
// from an index that lags primary storage by however long reindexing
// takes.
type PageResult[T any] struct {
	Items             []T
	TotalCount        int
	PageCount         int
	Links             Links
	DataFreshnessTime time.Time
}

func newPageResult[T any](items []T, total, page, size int) PageResult[T] {
	pageCount := total / size
	if total%size != 0 {
		pageCount++
	}
	return PageResult[T]{
		Items:             items,
		TotalCount:        total,
		PageCount:         pageCount,
		DataFreshnessTime: time.Now().UTC(),
	}
}

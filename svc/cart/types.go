package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dmitrymomot/commercecore/svc/checkout"
)

// OwnerType distinguishes a cart tied to a signed-in user from one tied
// only to an anonymous session, since a shopper can add to a cart before
// ever authenticating.
type OwnerType string

const (
	OwnerUser    OwnerType = "user"
	OwnerSession OwnerType = "session"
)

// Line is a single SKU/quantity pair in a Cart. UnitPrice is snapshotted
// when the line is first added so a later price change never reprices an
// item a shopper already has in their cart.
type Line struct {
	ID         uuid.UUID
	VariantID  uuid.UUID
	LocationID string
	Quantity   int
	UnitPrice  decimal.Decimal
	AddedAt    time.Time
}

// Subtotal returns Quantity * UnitPrice for this line alone.
func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is a tenant-scoped, owner-scoped bag of Lines. Version is bumped on
// every mutation and used for optimistic concurrency: a write naming a
// stale Version fails with ErrConflict instead of silently clobbering a
// concurrent update.
type Cart struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	OwnerType OwnerType
	OwnerID   string // user id or session id, per OwnerType
	Currency  string
	Lines     []Line
	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GetTenantID satisfies repoguard.TenantScoped.
func (c *Cart) GetTenantID() uuid.UUID { return c.TenantID }

// SetTenantID satisfies repoguard.TenantScoped.
func (c *Cart) SetTenantID(id uuid.UUID) { c.TenantID = id }

// Subtotal sums every line's Subtotal.
func (c Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Snapshot copies Cart into the point-in-time checkout.CartSnapshot a
// CheckoutSaga run takes as input, so a saga's view of the cart can never
// change out from under it while checkout is in flight.
func (c *Cart) Snapshot() checkout.CartSnapshot {
	lines := make([]checkout.CartSnapshotLine, len(c.Lines))
	for i, l := range c.Lines {
		lines[i] = checkout.CartSnapshotLine{
			VariantID:  l.VariantID,
			LocationID: l.LocationID,
			Quantity:   l.Quantity,
			UnitPrice:  l.UnitPrice,
		}
	}
	return checkout.CartSnapshot{
		ID:       c.ID,
		TenantID: c.TenantID,
		Currency: c.Currency,
		Lines:    lines,
	}
}

// lineIndex returns the index of the line for variantID at locationID, or
// -1 if the cart has no such line.
func (c *Cart) lineIndex(variantID uuid.UUID, locationID string) int {
	for i, l := range c.Lines {
		if l.VariantID == variantID && l.LocationID == locationID {
			return i
		}
	}
	return -1
}

package consignment

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Consignor is a third-party supplier whose items are sold on the
// tenant's behalf for a commission.
type Consignor struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	Name      string
	Email     string
	CreatedAt time.Time
}

// GetTenantID satisfies repoguard.TenantScoped.
func (c *Consignor) GetTenantID() uuid.UUID { return c.TenantID }

// SetTenantID satisfies repoguard.TenantScoped.
func (c *Consignor) SetTenantID(id uuid.UUID) { c.TenantID = id }

// Item links a consignor to a sellable variant at a fixed commission
// rate, a percentage in [0, 100] stored at scale 2, HALF_UP.
type Item struct {
	ID             uuid.UUID
	TenantID       uuid.UUID
	ConsignorID    uuid.UUID
	VariantID      uuid.UUID
	CommissionRate decimal.Decimal
	IntakeAt       time.Time
}

// GetTenantID satisfies repoguard.TenantScoped.
func (i *Item) GetTenantID() uuid.UUID { return i.TenantID }

// SetTenantID satisfies repoguard.TenantScoped.
func (i *Item) SetTenantID(id uuid.UUID) { i.TenantID = id }

// PayoutStatus is the lifecycle of a PayoutBatch.
type PayoutStatus string

const (
	PayoutPending   PayoutStatus = "pending"
	PayoutCompleted PayoutStatus = "completed"
)

// PayoutLine is one sold item's contribution to a PayoutBatch:
// SaleAmount comes from the committed order line item it was sold on,
// CommissionAmount is SaleAmount * (100-rate)/100 rounded HALF_UP to
// scale 2 - the consignor's share after commission.
type PayoutLine struct {
	ItemID           uuid.UUID
	ConsignorID      uuid.UUID
	OrderID          uuid.UUID
	SaleAmount       decimal.Decimal
	CommissionRate   decimal.Decimal
	CommissionAmount decimal.Decimal
	ConsignorPayout  decimal.Decimal
}

// PayoutBatch is the set of payout lines owed to consignors over a
// period, completed together once funds are disbursed.
type PayoutBatch struct {
	ID          uuid.UUID
	TenantID    uuid.UUID
	ConsignorID uuid.UUID
	PeriodStart time.Time
	PeriodEnd   time.Time
	Lines       []PayoutLine
	Status      PayoutStatus
	TotalPayout decimal.Decimal
	CreatedAt   time.Time
	CompletedAt *time.Time
}

// GetTenantID satisfies repoguard.TenantScoped.
func (b *PayoutBatch) GetTenantID() uuid.UUID { return b.TenantID }

// SetTenantID satisfies repoguard.TenantScoped.
func (b *PayoutBatch) SetTenantID(id uuid.UUID) { b.TenantID = id }

// SoldLine is a committed order line item attributable to a consignment
// item, the input PayoutBatch construction sources sale amounts from.
type SoldLine struct {
	ItemID    uuid.UUID
	OrderID   uuid.UUID
	VariantID uuid.UUID
	SoldAt    time.Time
	Amount    decimal.Decimal
}

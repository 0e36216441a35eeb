package checkout

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartSnapshotLine is one line item being checked out, reserved at a
// single inventory location. It is a point-in-time copy of a
// svc/cart.Line (see svc/cart's Snapshot method), not a live reference -
// a saga run must not see a cart mutate out from under it mid-checkout.
type CartSnapshotLine struct {
	VariantID  uuid.UUID
	LocationID string
	Quantity   int
	UnitPrice  decimal.Decimal
}

// CartSnapshot is the set of lines a saga run finalizes into an order.
type CartSnapshot struct {
	ID       uuid.UUID
	TenantID uuid.UUID
	Currency string
	Lines    []CartSnapshotLine
}

// Total sums every line's quantity * unit price.
func (c CartSnapshot) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.Lines {
		total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}

// TenderType identifies the funding source of a non-card PaymentTender.
type TenderType string

const (
	TenderGiftCard    TenderType = "gift_card"
	TenderStoreCredit TenderType = "store_credit"
)

// TenderRequest is a caller-supplied instruction to apply amount from a
// gift card or store credit account toward the order total.
type TenderRequest struct {
	Type     TenderType
	SourceID string
	Amount   decimal.Decimal
}

// TenderRecord is a tender request after it has been applied and ledgered,
// carrying the id the ledger assigned so it can be voided on compensation.
type TenderRecord struct {
	ID        string
	Request   TenderRequest
	SagaRunID uuid.UUID
}

// OrderStatus is the final disposition of a saga run's order.
type OrderStatus string

const (
	OrderCompleted OrderStatus = "completed"
	OrderFailed    OrderStatus = "failed"
)

// OrderLine is a committed order's line item, carried on Order so
// downstream consumers (consignment payouts) can source sale amounts
// from the order rather than a placeholder constant.
type OrderLine struct {
	VariantID uuid.UUID
	Quantity  int
	UnitPrice decimal.Decimal
}

// Order is the saga's terminal output.
type Order struct {
	ID         uuid.UUID
	TenantID   uuid.UUID
	CartID     uuid.UUID
	Status     OrderStatus
	FailReason string
	GrandTotal decimal.Decimal
	LineItems  []OrderLine
	Tenders    []TenderRecord
	IntentRef  string
}

// OrderPaidEvent is published once a saga reaches Completed.
type OrderPaidEvent struct {
	OrderID    uuid.UUID
	TenantID   uuid.UUID
	GrandTotal decimal.Decimal
}

// OrderFailedEvent is published once a saga reaches Failed.
type OrderFailedEvent struct {
	OrderID    uuid.UUID
	TenantID   uuid.UUID
	FailReason string
}

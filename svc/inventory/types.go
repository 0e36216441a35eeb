package inventory

import (
	"time"

	"github.com/google/uuid"
)

// Level is the on-hand/reserved stock count for one variant at one
// location. Available = OnHand - Reserved.
type Level struct {
	TenantID   uuid.UUID
	VariantID  uuid.UUID
	LocationID string
	OnHand     int
	Reserved   int
}

// GetTenantID satisfies repoguard.TenantScoped.
func (l *Level) GetTenantID() uuid.UUID { return l.TenantID }

// SetTenantID satisfies repoguard.TenantScoped.
func (l *Level) SetTenantID(id uuid.UUID) { l.TenantID = id }

// Available returns the quantity free to reserve.
func (l Level) Available() int { return l.OnHand - l.Reserved }

// TransferStatus is the lifecycle state of a Transfer.
type TransferStatus string

const (
	TransferPending   TransferStatus = "pending"
	TransferReceived  TransferStatus = "received"
	TransferCancelled TransferStatus = "cancelled"
)

// Transfer moves reserved stock from one location to another. Creating one
// reserves Quantity at SourceLocationID; receiving it commits that
// reservation and credits DestLocationID; cancelling releases the
// reservation without ever touching DestLocationID.
type Transfer struct {
	ID               uuid.UUID
	TenantID         uuid.UUID
	VariantID        uuid.UUID
	SourceLocationID string
	DestLocationID   string
	Quantity         int
	Status           TransferStatus
	CreatedAt        time.Time
	ReceivedAt       *time.Time
}

// GetTenantID satisfies repoguard.TenantScoped.
func (t *Transfer) GetTenantID() uuid.UUID { return t.TenantID }

// SetTenantID satisfies repoguard.TenantScoped.
func (t *Transfer) SetTenantID(id uuid.UUID) { t.TenantID = id }

// AdjustmentReason labels why RecordAdjustment changed a Level outside of
// a transfer (cycle count, damage, theft, found stock).
type AdjustmentReason string

const (
	ReasonCycleCount AdjustmentReason = "cycle_count"
	ReasonDamage     AdjustmentReason = "damage"
	ReasonTheft      AdjustmentReason = "theft"
	ReasonFound      AdjustmentReason = "found"
)

// Adjustment is the audit row RecordAdjustment writes alongside the level
// change it makes.
type Adjustment struct {
	ID         uuid.UUID
	TenantID   uuid.UUID
	VariantID  uuid.UUID
	LocationID string
	Delta      int
	Reason     AdjustmentReason
	CreatedAt  time.Time
}

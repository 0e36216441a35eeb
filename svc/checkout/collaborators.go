package checkout

import (
	"context"

	"github.com/google/uuid"
)

// InventoryReserver is the domain-internal collaborator that reserves,
// releases, and commits stock for a saga run. Unlike pkg/collab's
// interfaces (payment, media, storage), this wraps an in-repo service
// rather than an external system, so it lives here instead.
type InventoryReserver interface {
	// Reserve increments reserved quantity for every line, each at its own
	// location. Returns ErrInsufficientStock (wrapped) on any line that
	// can't be fully reserved; lines already reserved in this call are
	// rolled back before returning.
	Reserve(ctx context.Context, tenantID uuid.UUID, sagaRunID uuid.UUID, lines []CartSnapshotLine) error

	// Release undoes a prior Reserve for sagaRunID.
	Release(ctx context.Context, tenantID uuid.UUID, sagaRunID uuid.UUID) error

	// Commit converts a prior Reserve into a permanent on-hand decrement.
	Commit(ctx context.Context, tenantID uuid.UUID, sagaRunID uuid.UUID) error
}

// TenderLedger applies and voids non-card tenders (gift card, store
// credit), writing the ledger entries the saga's atomicity guarantee
// depends on.
type TenderLedger interface {
	// Apply writes a PaymentTender row and the matching ledger entry,
	// returning the assigned TenderRecord.
	Apply(ctx context.Context, tenantID uuid.UUID, sagaRunID uuid.UUID, req TenderRequest) (TenderRecord, error)

	// Void reverses a previously applied tender, restoring the source
	// account's balance.
	Void(ctx context.Context, tenantID uuid.UUID, tender TenderRecord) error
}

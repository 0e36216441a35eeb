package inventory

import (
	"context"

	"github.com/google/uuid"

	"github.com/dmitrymomot/commercecore/pkg/jobqueue"
)

// LevelRepository persists per-location stock Levels. Reserve/Release/
// Commit/Credit/Adjust are the atomic primitives every Service operation
// composes from, so concurrent transfers against the same variant/location
// never interleave a read-modify-write race.
type LevelRepository interface {
	Get(ctx context.Context, variantID uuid.UUID, locationID string) (*Level, error)

	// Reserve increments Reserved by qty if Available() >= qty, creating
	// the row (OnHand 0) if it doesn't exist yet. Returns
	// ErrInsufficientStock otherwise.
	Reserve(ctx context.Context, variantID uuid.UUID, locationID string, qty int) error

	// Release decrements Reserved by qty, undoing a prior Reserve.
	Release(ctx context.Context, variantID uuid.UUID, locationID string, qty int) error

	// CommitReservation decrements both OnHand and Reserved by qty,
	// converting a reservation into a permanent decrement.
	CommitReservation(ctx context.Context, variantID uuid.UUID, locationID string, qty int) error

	// Credit increments OnHand by qty, creating the row if it doesn't
	// exist yet (Reserved 0).
	Credit(ctx context.Context, variantID uuid.UUID, locationID string, qty int) error

	// Adjust applies delta directly to OnHand, creating the row on first
	// touch. Returns ErrInvalidQuantity if the result would be negative.
	Adjust(ctx context.Context, variantID uuid.UUID, locationID string, delta int) error
}

// TransferRepository persists Transfer rows.
type TransferRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*Transfer, error)
	Save(ctx context.Context, t *Transfer) error
}

// AdjustmentRepository persists the audit trail RecordAdjustment writes.
type AdjustmentRepository interface {
	Save(ctx context.Context, a *Adjustment) error
}

// Enqueuer is the narrow slice of *jobqueue.JobProcessor Service needs to
// schedule a barcode-label job after a transfer is created.
type Enqueuer interface {
	Submit(job *jobqueue.Job) bool
}

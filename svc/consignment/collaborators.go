package consignment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/commercecore/pkg/jobqueue"
)

// ConsignorRepository persists Consignor rows.
type ConsignorRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*Consignor, error)
	Save(ctx context.Context, c *Consignor) error
}

// ItemRepository persists consignment Item rows.
type ItemRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*Item, error)
	Save(ctx context.Context, i *Item) error
	ListByConsignor(ctx context.Context, consignorID uuid.UUID) ([]*Item, error)
}

// PayoutRepository persists PayoutBatch rows.
type PayoutRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*PayoutBatch, error)
	Save(ctx context.Context, b *PayoutBatch) error
}

// SalesSource resolves the committed order line items sold against a
// consignor's items in a period - the payout batch's sale-amount input,
// sourced from checkout's committed orders rather than a placeholder
// constant.
type SalesSource interface {
	SoldLines(ctx context.Context, consignorID uuid.UUID, start, end time.Time) ([]SoldLine, error)
}

// Enqueuer is the narrow slice of *jobqueue.JobProcessor Service needs to
// schedule a payout-statement job after a batch completes.
type Enqueuer interface {
	Submit(job *jobqueue.Job) bool
}

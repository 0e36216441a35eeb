package consignment

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dmitrymomot/commercecore/pkg/jobqueue"
)

var (
	zero    = decimal.Zero
	hundred = decimal.NewFromInt(100)
)

// PayoutStatementJob is the payload enqueued once a payout batch completes,
// rendering the consignor-facing statement of what they were paid and why.
type PayoutStatementJob struct {
	TenantID uuid.UUID `json:"tenant_id"`
	BatchID  uuid.UUID `json:"batch_id"`
}

// pendingGauge tracks the pending-payout total per tenant, incremented on
// batch creation and decremented on completion - the "gauge" §4.7
// describes, kept in-process since no metrics client is part of the stack.
type pendingGauge struct {
	mu     sync.Mutex
	totals map[uuid.UUID]decimal.Decimal
}

func newPendingGauge() *pendingGauge {
	return &pendingGauge{totals: make(map[uuid.UUID]decimal.Decimal)}
}

func (g *pendingGauge) add(tenantID uuid.UUID, amount decimal.Decimal) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.totals[tenantID] = g.totals[tenantID].Add(amount)
}

func (g *pendingGauge) value(tenantID uuid.UUID) decimal.Decimal {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.totals[tenantID]
}

// Service implements consignor/item management and payout batch
// processing.
type Service struct {
	consignors ConsignorRepository
	items      ItemRepository
	payouts    PayoutRepository
	sales      SalesSource
	jobs       Enqueuer
	pending    *pendingGauge
}

// NewService builds a Service.
func NewService(consignors ConsignorRepository, items ItemRepository, payouts PayoutRepository, sales SalesSource, jobs Enqueuer) *Service {
	return &Service{
		consignors: consignors,
		items:      items,
		payouts:    payouts,
		sales:      sales,
		jobs:       jobs,
		pending:    newPendingGauge(),
	}
}

// CreateConsignor persists a new consignor.
func (s *Service) CreateConsignor(ctx context.Context, tenantID uuid.UUID, name, email string) (*Consignor, error) {
	if name == "" {
		return nil, ErrInvalidConsignor
	}
	c := &Consignor{
		TenantID:  tenantID,
		Name:      name,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.consignors.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// GetConsignor returns a consignor by id.
func (s *Service) GetConsignor(ctx context.Context, id uuid.UUID) (*Consignor, error) {
	return s.consignors.Get(ctx, id)
}

// IntakeItem records a consignment item at a commission rate, validated
// and rounded HALF_UP to scale 2 per the literal scenario: 15.126 stores
// as 15.13, 100.00 stores as 100.00, 100.01 fails validation.
func (s *Service) IntakeItem(ctx context.Context, tenantID, consignorID, variantID uuid.UUID, commissionRate decimal.Decimal) (*Item, error) {
	rate := commissionRate.Round(2)
	if rate.LessThan(zero) || rate.GreaterThan(hundred) {
		return nil, ErrInvalidCommissionRate
	}

	item := &Item{
		TenantID:       tenantID,
		ConsignorID:    consignorID,
		VariantID:      variantID,
		CommissionRate: rate,
		IntakeAt:       time.Now().UTC(),
	}
	if err := s.items.Save(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// CreatePayoutBatch sources sold lines for consignorID's items from the
// SalesSource (committed order line items) over [start, end), computes
// each line's commission and consignor payout HALF_UP at scale 2, and
// persists a pending PayoutBatch.
func (s *Service) CreatePayoutBatch(ctx context.Context, tenantID, consignorID uuid.UUID, start, end time.Time) (*PayoutBatch, error) {
	sold, err := s.sales.SoldLines(ctx, consignorID, start, end)
	if err != nil {
		return nil, err
	}
	if len(sold) == 0 {
		return nil, ErrEmptyPeriod
	}

	itemCache := make(map[uuid.UUID]*Item)
	lines := make([]PayoutLine, 0, len(sold))
	total := zero
	for _, sl := range sold {
		item, ok := itemCache[sl.ItemID]
		if !ok {
			item, err = s.items.Get(ctx, sl.ItemID)
			if err != nil {
				return nil, err
			}
			itemCache[sl.ItemID] = item
		}

		commission := sl.Amount.Mul(item.CommissionRate).Div(hundred).Round(2)
		payout := sl.Amount.Sub(commission).Round(2)
		lines = append(lines, PayoutLine{
			ItemID:           sl.ItemID,
			ConsignorID:      consignorID,
			OrderID:          sl.OrderID,
			SaleAmount:       sl.Amount,
			CommissionRate:   item.CommissionRate,
			CommissionAmount: commission,
			ConsignorPayout:  payout,
		})
		total = total.Add(payout)
	}

	batch := &PayoutBatch{
		TenantID:    tenantID,
		ConsignorID: consignorID,
		PeriodStart: start,
		PeriodEnd:   end,
		Lines:       lines,
		Status:      PayoutPending,
		TotalPayout: total,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.payouts.Save(ctx, batch); err != nil {
		return nil, err
	}

	s.pending.add(tenantID, total)
	return batch, nil
}

// CompletePayout marks a batch completed once funds are disbursed and
// relieves it from the pending-payout gauge.
func (s *Service) CompletePayout(ctx context.Context, tenantID, id uuid.UUID) (*PayoutBatch, error) {
	batch, err := s.payouts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if batch.Status != PayoutPending {
		return nil, ErrAlreadyCompleted
	}

	now := time.Now().UTC()
	batch.Status = PayoutCompleted
	batch.CompletedAt = &now
	if err := s.payouts.Save(ctx, batch); err != nil {
		return nil, err
	}

	s.pending.add(tenantID, batch.TotalPayout.Neg())
	s.enqueueStatement(tenantID, batch.ID)
	return batch, nil
}

// PendingPayoutTotal returns the current pending-payout gauge value for
// tenantID.
func (s *Service) PendingPayoutTotal(tenantID uuid.UUID) decimal.Decimal {
	return s.pending.value(tenantID)
}

func (s *Service) enqueueStatement(tenantID, batchID uuid.UUID) {
	if s.jobs == nil {
		return
	}
	payload, err := json.Marshal(PayoutStatementJob{TenantID: tenantID, BatchID: batchID})
	if err != nil {
		return
	}
	s.jobs.Submit(jobqueue.NewJob(tenantID, "consignment.payout_statement", jobqueue.Default, payload))
}

// PayoutStatementHandler returns the typed jobqueue.Handler payout
// statement jobs are processed by. Statement rendering itself is a
// presentation concern; this handler's job is to confirm the batch still
// resolves before a downstream renderer picks it up.
func (s *Service) PayoutStatementHandler() jobqueue.Handler {
	return jobqueue.NewNamedTaskHandler("consignment.payout_statement", func(ctx context.Context, job PayoutStatementJob) error {
		_, err := s.payouts.Get(ctx, job.BatchID)
		return err
	})
}

package checkout

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dmitrymomot/commercecore/pkg/broadcast"
	"github.com/dmitrymomot/commercecore/pkg/collab"
	"github.com/dmitrymomot/commercecore/pkg/statemachine"
)

// cartLinesData carries the run and the cart lines to reserve, or nil lines
// when firing a release (release needs only run.ID, not the original cart).
type cartLinesData struct {
	run   *Run
	lines []CartSnapshotLine
}

// tenderData carries the run and the caller's tender requests for the
// apply-tenders transition.
type tenderData struct {
	run  *Run
	reqs []TenderRequest
}

// authorizeData carries the run and the residual amount to authorize
// against the payment provider.
type authorizeData struct {
	run      *Run
	residual decimal.Decimal
}

// commitData carries the run for the terminal payment-succeeded transition,
// which commits the inventory reservation.
type commitData struct {
	run *Run
}

// voidData carries the run whose applied tenders must be voided.
type voidData struct {
	run *Run
}

// failData carries the run and the reason recorded on the terminal failed
// state.
type failData struct {
	run    *Run
	reason string
}

// Run is one saga execution in progress, tracking its state machine and
// the side effects it has already committed so HandlePaymentEvent and
// compensation know what to undo.
type Run struct {
	ID         uuid.UUID
	TenantID   uuid.UUID
	CartID     uuid.UUID
	Currency   string
	GrandTotal decimal.Decimal
	Lines      []CartSnapshotLine
	Tenders    []TenderRecord
	IntentRef  collab.PaymentIntentRef

	machine statemachine.StateMachine
}

// CheckoutSaga coordinates inventory reservation, non-card tender
// application, and card payment authorization into a single order,
// compensating in reverse on any step's failure.
type CheckoutSaga struct {
	inventory InventoryReserver
	tenders   TenderLedger
	payments  collab.PaymentProvider
	audit     collab.AuditSink
	events    broadcast.Broadcaster[any]
	logger    *slog.Logger
}

// Option configures a CheckoutSaga.
type Option func(*CheckoutSaga)

// WithLogger overrides the default slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *CheckoutSaga) {
		s.logger = logger
	}
}

// WithEventBroadcaster wires a broadcast.Broadcaster to publish
// OrderPaidEvent/OrderFailedEvent on saga completion. Without one, saga
// completion is silent beyond its return value.
func WithEventBroadcaster(b broadcast.Broadcaster[any]) Option {
	return func(s *CheckoutSaga) {
		s.events = b
	}
}

// NewCheckoutSaga wires the saga's three collaborators plus the audit
// sink every completed or failed run writes to.
func NewCheckoutSaga(inventory InventoryReserver, tenders TenderLedger, payments collab.PaymentProvider, audit collab.AuditSink, opts ...Option) *CheckoutSaga {
	s := &CheckoutSaga{
		inventory: inventory,
		tenders:   tenders,
		payments:  payments,
		audit:     audit,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start runs steps 1-3 of the saga: reserve inventory, apply non-card
// tenders, and authorize a payment intent for the residual. If the
// residual is zero, no card payment is needed and the order completes
// immediately. On any failure, already-applied steps are compensated in
// reverse before the error is returned.
func (s *CheckoutSaga) Start(ctx context.Context, cart CartSnapshot, tenderReqs []TenderRequest) (*Run, *Order, error) {
	currency := cart.Currency
	if currency == "" {
		currency = "usd"
	}
	run := &Run{
		ID:         uuid.New(),
		TenantID:   cart.TenantID,
		CartID:     cart.ID,
		Currency:   currency,
		GrandTotal: cart.Total(),
		Lines:      cart.Lines,
		machine:    s.buildMachine(),
	}

	tenderTotal := decimal.Zero
	for _, req := range tenderReqs {
		tenderTotal = tenderTotal.Add(req.Amount)
	}
	if tenderTotal.GreaterThan(run.GrandTotal) {
		return run, nil, ErrTenderExceedsTotal
	}

	if err := run.machine.Fire(ctx, EventReserveInventory, cartLinesData{run, cart.Lines}); err != nil {
		order := s.failWithoutCompensation(ctx, run, "insufficient_stock")
		return run, order, fmt.Errorf("%w: %w", ErrInsufficientStock, err)
	}

	if err := run.machine.Fire(ctx, EventApplyTenders, tenderData{run, tenderReqs}); err != nil {
		order := s.compensateFromInventoryReserved(ctx, run, "tender_application_failed")
		return run, order, err
	}

	residual := run.GrandTotal.Sub(tenderTotal)
	if residual.IsZero() {
		order, err := s.complete(ctx, run, EventPaymentSucceeded)
		return run, order, err
	}

	if err := run.machine.Fire(ctx, EventAuthorizePayment, authorizeData{run, residual}); err != nil {
		order := s.compensateFromTenderApplied(ctx, run, "payment_authorization_failed")
		return run, order, fmt.Errorf("%w: %w", ErrPaymentDeclined, err)
	}

	return run, nil, nil
}

// HandlePaymentEvent applies a PaymentProvider webhook to an in-flight
// run. A succeeded event commits the inventory reservation and completes
// the order; any other outcome voids tenders, releases inventory, and
// fails the order.
func (s *CheckoutSaga) HandlePaymentEvent(ctx context.Context, run *Run, event collab.PaymentEvent) (*Order, error) {
	if event.IntentRef != run.IntentRef {
		return nil, ErrUnknownEvent
	}

	if event.Succeeded {
		return s.complete(ctx, run, EventPaymentSucceeded)
	}

	reason := event.FailReason
	if reason == "" {
		reason = "card_declined"
	}
	return s.compensateFromPaymentAuthorized(ctx, run, reason), nil
}

func (s *CheckoutSaga) complete(ctx context.Context, run *Run, event statemachine.Event) (*Order, error) {
	if err := run.machine.Fire(ctx, event, commitData{run}); err != nil {
		return nil, fmt.Errorf("checkout: commit failed: %w", err)
	}

	order := &Order{
		ID:         run.ID,
		TenantID:   run.TenantID,
		CartID:     run.CartID,
		Status:     OrderCompleted,
		GrandTotal: run.GrandTotal,
		LineItems:  orderLinesFrom(run.Lines),
		Tenders:    run.Tenders,
		IntentRef:  string(run.IntentRef),
	}

	if err := s.audit.Write(ctx, "checkout.completed", map[string]any{
		"order_id":  run.ID.String(),
		"tenant_id": run.TenantID.String(),
	}); err != nil {
		s.logger.Error("checkout: audit write failed for completed order", "order_id", run.ID, "error", err)
		return order, fmt.Errorf("%w: %w", ErrAuditWriteFailed, err)
	}

	s.publish(ctx, OrderPaidEvent{OrderID: run.ID, TenantID: run.TenantID, GrandTotal: run.GrandTotal})

	return order, nil
}

// compensateFromInventoryReserved handles a failure after inventory was
// reserved but before any tender was applied - only inventory release is
// needed.
func (s *CheckoutSaga) compensateFromInventoryReserved(ctx context.Context, run *Run, reason string) *Order {
	if err := run.machine.Fire(ctx, EventReleaseInventory, cartLinesData{run, nil}); err != nil {
		s.logger.Error("checkout: inventory release transition failed", "saga_run_id", run.ID, "error", err)
	}
	return s.fail(ctx, run, reason)
}

// compensateFromTenderApplied handles a failure after tenders were
// applied but before (or instead of) payment authorization - tenders are
// voided first, then inventory is released, mirroring the reverse order
// of application.
func (s *CheckoutSaga) compensateFromTenderApplied(ctx context.Context, run *Run, reason string) *Order {
	if err := run.machine.Fire(ctx, EventVoidTenders, voidData{run}); err != nil {
		s.logger.Error("checkout: void-tenders transition failed", "saga_run_id", run.ID, "error", err)
	}
	if err := run.machine.Fire(ctx, EventReleaseInventory, cartLinesData{run, nil}); err != nil {
		s.logger.Error("checkout: inventory release transition failed", "saga_run_id", run.ID, "error", err)
	}
	return s.fail(ctx, run, reason)
}

// compensateFromPaymentAuthorized handles a declined/failed payment after
// an intent was already created.
func (s *CheckoutSaga) compensateFromPaymentAuthorized(ctx context.Context, run *Run, reason string) *Order {
	return s.compensateFromTenderApplied(ctx, run, reason)
}

// fail runs the terminal MarkFailed transition and returns the failed
// order, publishing OrderFailedEvent and writing an audit record. Unlike
// the completed path, an audit failure here is logged but doesn't block
// return - the order is already in a terminal failed state regardless.
func (s *CheckoutSaga) fail(ctx context.Context, run *Run, reason string) *Order {
	if err := run.machine.Fire(ctx, EventMarkFailed, failData{run, reason}); err != nil {
		s.logger.Error("checkout: mark-failed transition rejected", "saga_run_id", run.ID, "current_state", run.machine.Current().Name(), "error", err)
	}

	order := &Order{
		ID:         run.ID,
		TenantID:   run.TenantID,
		CartID:     run.CartID,
		Status:     OrderFailed,
		FailReason: reason,
		GrandTotal: run.GrandTotal,
	}

	if err := s.audit.Write(ctx, "checkout.failed", map[string]any{
		"order_id":    run.ID.String(),
		"tenant_id":   run.TenantID.String(),
		"fail_reason": reason,
	}); err != nil {
		s.logger.Error("checkout: audit write failed for failed order", "order_id", run.ID, "error", err)
	}

	s.publish(ctx, OrderFailedEvent{OrderID: run.ID, TenantID: run.TenantID, FailReason: reason})

	return order
}

// failWithoutCompensation is used when the very first step (inventory
// reservation) fails - there is nothing to compensate.
func (s *CheckoutSaga) failWithoutCompensation(ctx context.Context, run *Run, reason string) *Order {
	return s.fail(ctx, run, reason)
}

func (s *CheckoutSaga) publish(ctx context.Context, event any) {
	if s.events == nil {
		return
	}
	if err := s.events.Broadcast(ctx, broadcast.Message[any]{Data: event}); err != nil {
		s.logger.Warn("checkout: failed to publish order event", "error", err)
	}
}

// buildMachine wires the transition table a fresh Run fires through:
// reservation and tender application can each fail outright or be
// compensated in reverse once a later step fails, and either card
// settlement or a zero-residual cart reaches Completed directly from
// TenderApplied.
func (s *CheckoutSaga) buildMachine() statemachine.StateMachine {
	return statemachine.MustNew(StateDraft, statemachine.WithTransitions([]statemachine.TransitionDef{
		{
			From: StateDraft, To: StateInventoryReserved, Event: EventReserveInventory,
			Actions: []statemachine.Action{s.reserveInventoryAction},
		},
		{
			From: StateDraft, To: StateFailed, Event: EventMarkFailed,
		},
		{
			From: StateInventoryReserved, To: StateTenderApplied, Event: EventApplyTenders,
			Actions: []statemachine.Action{s.applyTendersAction},
		},
		{
			From: StateInventoryReserved, To: StateReleasingInventory, Event: EventReleaseInventory,
			Actions: []statemachine.Action{s.releaseInventoryAction},
		},
		{
			From: StateTenderApplied, To: StatePaymentAuthorized, Event: EventAuthorizePayment,
			Actions: []statemachine.Action{s.authorizePaymentAction},
		},
		{
			From: StateTenderApplied, To: StateCompleted, Event: EventPaymentSucceeded,
			Actions: []statemachine.Action{s.commitInventoryAction},
		},
		{
			From: StateTenderApplied, To: StateRefundingTenders, Event: EventVoidTenders,
			Actions: []statemachine.Action{s.voidTendersAction},
		},
		{
			From: StatePaymentAuthorized, To: StateCompleted, Event: EventPaymentSucceeded,
			Actions: []statemachine.Action{s.commitInventoryAction},
		},
		{
			From: StatePaymentAuthorized, To: StateRefundingTenders, Event: EventVoidTenders,
			Actions: []statemachine.Action{s.voidTendersAction},
		},
		{
			From: StateRefundingTenders, To: StateReleasingInventory, Event: EventReleaseInventory,
			Actions: []statemachine.Action{s.releaseInventoryAction},
		},
		{
			From: StateReleasingInventory, To: StateFailed, Event: EventMarkFailed,
		},
	}))
}

func (s *CheckoutSaga) reserveInventoryAction(ctx context.Context, from, to statemachine.State, event statemachine.Event, data any) error {
	d := data.(cartLinesData)
	return s.inventory.Reserve(ctx, d.run.TenantID, d.run.ID, d.lines)
}

func (s *CheckoutSaga) releaseInventoryAction(ctx context.Context, from, to statemachine.State, event statemachine.Event, data any) error {
	d := data.(cartLinesData)
	return s.inventory.Release(ctx, d.run.TenantID, d.run.ID)
}

func (s *CheckoutSaga) commitInventoryAction(ctx context.Context, from, to statemachine.State, event statemachine.Event, data any) error {
	d := data.(commitData)
	return s.inventory.Commit(ctx, d.run.TenantID, d.run.ID)
}

// applyTendersAction applies every tender request in order, rolling back
// the ones already applied in this call if a later one fails - the saga's
// own compensation (voidTendersAction) only runs for tenders recorded on
// run.Tenders, so a partially-applied batch must never be left there.
func (s *CheckoutSaga) applyTendersAction(ctx context.Context, from, to statemachine.State, event statemachine.Event, data any) error {
	d := data.(tenderData)

	applied := make([]TenderRecord, 0, len(d.reqs))
	for _, req := range d.reqs {
		record, err := s.tenders.Apply(ctx, d.run.TenantID, d.run.ID, req)
		if err != nil {
			for i := len(applied) - 1; i >= 0; i-- {
				if voidErr := s.tenders.Void(ctx, d.run.TenantID, applied[i]); voidErr != nil {
					s.logger.Error("checkout: failed to roll back partially applied tender", "saga_run_id", d.run.ID, "tender_id", applied[i].ID, "error", voidErr)
				}
			}
			return err
		}
		applied = append(applied, record)
	}

	d.run.Tenders = applied
	return nil
}

// voidTendersAction voids every applied tender in reverse order. Errors
// from individual voids are logged but don't stop the rest from running -
// compensation must make a best effort against every tender regardless of
// one failing.
func (s *CheckoutSaga) voidTendersAction(ctx context.Context, from, to statemachine.State, event statemachine.Event, data any) error {
	d := data.(voidData)

	var firstErr error
	for i := len(d.run.Tenders) - 1; i >= 0; i-- {
		if err := s.tenders.Void(ctx, d.run.TenantID, d.run.Tenders[i]); err != nil {
			s.logger.Error("checkout: failed to void tender", "saga_run_id", d.run.ID, "tender_id", d.run.Tenders[i].ID, "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (s *CheckoutSaga) authorizePaymentAction(ctx context.Context, from, to statemachine.State, event statemachine.Event, data any) error {
	d := data.(authorizeData)

	metadata := map[string]string{
		"saga_run_id": d.run.ID.String(),
		"tenant_id":   d.run.TenantID.String(),
	}
	intentRef, err := s.payments.CreateIntent(ctx, d.residual, d.run.Currency, metadata, d.run.ID.String())
	if err != nil {
		return err
	}
	d.run.IntentRef = intentRef
	return nil
}

func orderLinesFrom(lines []CartSnapshotLine) []OrderLine {
	if len(lines) == 0 {
		return nil
	}
	out := make([]OrderLine, len(lines))
	for i, l := range lines {
		out[i] = OrderLine{VariantID: l.VariantID, Quantity: l.Quantity, UnitPrice: l.UnitPrice}
	}
	return out
}

package checkout

import "github.com/dmitrymomot/commercecore/pkg/statemachine"

// States, per spec.md §4.11: Draft -> InventoryReserved -> TenderApplied ->
// PaymentAuthorized -> Completed, with compensating branches into
// ReleasingInventory -> Failed and RefundingTenders -> Failed.
var (
	StateDraft              = statemachine.StringState("draft")
	StateInventoryReserved  = statemachine.StringState("inventory_reserved")
	StateTenderApplied      = statemachine.StringState("tender_applied")
	StatePaymentAuthorized  = statemachine.StringState("payment_authorized")
	StateCompleted          = statemachine.StringState("completed")
	StateReleasingInventory = statemachine.StringState("releasing_inventory")
	StateRefundingTenders   = statemachine.StringState("refunding_tenders")
	StateFailed             = statemachine.StringState("failed")
)

var (
	EventReserveInventory = statemachine.StringEvent("reserve_inventory")
	EventApplyTenders     = statemachine.StringEvent("apply_tenders")
	EventAuthorizePayment = statemachine.StringEvent("authorize_payment")
	EventPaymentSucceeded = statemachine.StringEvent("payment_succeeded")
	EventReleaseInventory = statemachine.StringEvent("release_inventory")
	EventVoidTenders      = statemachine.StringEvent("void_tenders")
	EventMarkFailed       = statemachine.StringEvent("mark_failed")
)

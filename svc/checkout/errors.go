package checkout

import "errors"

var (
	// ErrInsufficientStock is returned when inventory reservation fails for
	// at least one line. Never retried - the caller must adjust the cart.
	ErrInsufficientStock = errors.New("checkout: insufficient stock")

	// ErrTenderExceedsTotal is returned when the sum of tender requests
	// would exceed the cart's grand total.
	ErrTenderExceedsTotal = errors.New("checkout: tender amount exceeds cart total")

	// ErrPaymentDeclined is returned when the payment provider rejects the
	// residual-amount intent (a PermanentExternal failure - never retried,
	// surfaced to the caller immediately).
	ErrPaymentDeclined = errors.New("checkout: payment declined")

	// ErrUnknownEvent is returned by HandlePaymentEvent for an intent ref
	// this saga run doesn't recognize.
	ErrUnknownEvent = errors.New("checkout: payment event does not match this saga run's intent")

	// ErrAuditWriteFailed wraps an AuditSink failure. Per the audit-write
	// contract this is fatal: the step it would have recorded must not be
	// allowed to stand, so the saga fails the run rather than continuing.
	ErrAuditWriteFailed = errors.New("checkout: audit write failed")

	// ErrInvalidSagaState is returned when a saga method is called against
	// a run whose state machine rejects the requested transition - a
	// programmer error, not a business failure.
	ErrInvalidSagaState = errors.New("checkout: invalid saga state transition")
)

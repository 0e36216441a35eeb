package collab

import (
	"context"

	"github.com/shopspring/decimal"
)

// PaymentIntentRef identifies a payment intent created with a PaymentProvider.
type PaymentIntentRef string

// RefundRef identifies a refund issued against a payment intent.
type RefundRef string

// PaymentEvent is a provider webhook normalized to the fields the saga
// needs. Providers deliver webhooks at least once; callers dedupe by
// EventID.
type PaymentEvent struct {
	EventID    string
	IntentRef  PaymentIntentRef
	Succeeded  bool
	FailReason string
}

// PaymentProvider authorizes and settles the card-rail portion of an
// order total the saga couldn't satisfy with non-card tenders.
type PaymentProvider interface {
	// CreateIntent authorizes amount in currency for later capture.
	// idempotencyKey is the saga-run id; a retried call with the same key
	// must return the same intent rather than double-authorizing.
	CreateIntent(ctx context.Context, amount decimal.Decimal, currency string, metadata map[string]string, idempotencyKey string) (PaymentIntentRef, error)

	// Webhook verifies signature and parses body into a normalized event.
	Webhook(ctx context.Context, signature string, body []byte) (PaymentEvent, error)

	// Refund issues a refund of amount against a previously created intent.
	Refund(ctx context.Context, intentRef PaymentIntentRef, amount decimal.Decimal) (RefundRef, error)
}

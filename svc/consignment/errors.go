package consignment

import "errors"

var (
	// ErrNotFound is returned when a consignor, item, or batch id doesn't
	// resolve within the current tenant.
	ErrNotFound = errors.New("consignment: not found")

	// ErrInvalidCommissionRate is returned when a commission rate falls
	// outside [0, 100] after rounding to scale 2, HALF_UP.
	ErrInvalidCommissionRate = errors.New("consignment: commission rate must be between 0 and 100")

	// ErrInvalidConsignor is returned for a consignor with a blank name.
	ErrInvalidConsignor = errors.New("consignment: consignor name is required")

	// ErrEmptyPeriod is returned when a payout batch period contains no
	// sold lines for the consignor.
	ErrEmptyPeriod = errors.New("consignment: no sold lines in period")

	// ErrAlreadyCompleted is returned by CompletePayout against a batch
	// that already left the pending state.
	ErrAlreadyCompleted = errors.New("consignment: payout batch already completed")
)

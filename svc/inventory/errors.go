package inventory

import "errors"

var (
	// ErrInsufficientStock is returned when a reservation would exceed a
	// Level's available quantity.
	ErrInsufficientStock = errors.New("inventory: insufficient stock")

	// ErrSameLocation is returned by CreateTransfer when source and
	// destination are identical - never a meaningful transfer.
	ErrSameLocation = errors.New("inventory: source and destination location are the same")

	// ErrTransferNotFound is returned when a transfer id doesn't resolve.
	ErrTransferNotFound = errors.New("inventory: transfer not found")

	// ErrTransferNotPending is returned by ReceiveTransfer/CancelTransfer
	// against a transfer that already left the pending state.
	ErrTransferNotPending = errors.New("inventory: transfer is not pending")

	// ErrInvalidQuantity is returned for a zero or negative transfer
	// quantity or adjustment delta that would drive on-hand negative.
	ErrInvalidQuantity = errors.New("inventory: invalid quantity")
)

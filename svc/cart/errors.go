package cart

import "errors"

var (
	// ErrNotFound is returned when no cart exists for the requested owner.
	ErrNotFound = errors.New("cart: not found")

	// ErrConflict is returned when a mutation names a Version that no
	// longer matches the stored cart - the caller read a stale copy and
	// must reload before retrying.
	ErrConflict = errors.New("cart: version conflict")

	// ErrLineNotFound is returned by UpdateQty/RemoveItem when the
	// variant/location pair isn't in the cart.
	ErrLineNotFound = errors.New("cart: line not found")

	// ErrInvalidQuantity is returned for a zero or negative quantity on
	// AddItem/UpdateQty.
	ErrInvalidQuantity = errors.New("cart: quantity must be positive")
)

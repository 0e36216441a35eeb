package catalog

import "errors"

var (
	// ErrNotFound is returned when no product matches the requested id/SKU.
	ErrNotFound = errors.New("catalog: product not found")

	// ErrDuplicateSKU is returned when Create/Update would collide with
	// another product's SKU within the same tenant.
	ErrDuplicateSKU = errors.New("catalog: sku already exists")

	// ErrInvalidProduct is returned when a product fails basic validation
	// (missing SKU/title, negative price).
	ErrInvalidProduct = errors.New("catalog: invalid product")
)

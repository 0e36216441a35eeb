// Package checkout coordinates order finalization: inventory reservation,
// non-card tender application, and card payment authorization, with
// compensation run in reverse on any failure. It is the one place in the
// domain that touches three collaborators (inventory, tender ledger,
// payment provider) inside a single unit of work, so its correctness rests
// entirely on always running compensation before surfacing a failure.
package checkout

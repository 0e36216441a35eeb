package tenant

import "errors"

var (
	// ErrTenantNotFound is returned when a tenant cannot be found.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrInvalidIdentifier is returned when the identifier format is invalid.
	ErrInvalidIdentifier = errors.New("invalid tenant identifier")

	// ErrNoTenantInContext is returned when no tenant is found in context.
	ErrNoTenantInContext = errors.New("no tenant in context")

	// ErrInactiveTenant is returned when trying to use an inactive tenant.
	ErrInactiveTenant = errors.New("tenant is inactive")

	// ErrTenantSuspended is returned when a suspended tenant is resolved.
	// Callers should render the branded suspension response, not a generic error.
	ErrTenantSuspended = errors.New("tenant is suspended")

	// ErrContextConflict is returned when Context.Set is called a second time
	// for the same task with a different tenant id.
	ErrContextConflict = errors.New("tenant: context already set for a different tenant")

	// ErrNoContext is a programmer error: code read the current tenant before
	// one was established for this task.
	ErrNoContext = errors.New("tenant: no tenant context for current task")

	// ErrResolverUnavailable is returned when the underlying tenant store
	// faults during resolution; it never identifies which tenant was sought.
	ErrResolverUnavailable = errors.New("tenant: resolver unavailable")
)

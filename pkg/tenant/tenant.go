package tenant

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a tenant account.
type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
	StatusDeleted   Status = "deleted"
)

// Tenant represents a tenant in the system with minimal information
// needed for request-scoped operations and UI display.
type Tenant struct {
	ID        uuid.UUID `json:"id"`
	Subdomain string    `json:"subdomain"`
	// CustomDomains holds zero or more verified custom hostnames that also
	// resolve to this tenant, in addition to its subdomain.
	CustomDomains []string  `json:"custom_domains,omitempty"`
	Name          string    `json:"name"`
	Logo          string    `json:"logo_url"`
	PlanID        string    `json:"plan_id"`
	Status        Status    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// IsActive reports whether the tenant may serve ordinary requests.
func (t *Tenant) IsActive() bool {
	return t.Status == StatusActive
}

// IsSuspended reports whether the tenant should receive only the branded
// suspension response.
func (t *Tenant) IsSuspended() bool {
	return t.Status == StatusSuspended
}

// Provider loads tenant information from a data source.
// Implementations should handle various identifier formats
// (UUID, subdomain, etc.) based on application needs.
type Provider interface {
	// GetByIdentifier retrieves a tenant using any unique identifier.
	// The identifier could be a UUID, subdomain, or any other unique field.
	// Returns ErrTenantNotFound if no tenant matches the identifier.
	GetByIdentifier(ctx context.Context, identifier string) (*Tenant, error)
}

// Package tenant provides the administrative operations performed against
// tenant accounts: suspension, reactivation, and domain reassignment. It
// sits above pkg/tenant, which owns resolution, request-scoped context, and
// the task-context API — this package only mutates tenant state and makes
// sure resolver caches and the subdomain index never serve a stale record
// after a write.
package tenant

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmitrymomot/commercecore/pkg/tenant"
)

// Store is the write side of tenant persistence. Read access for ordinary
// request handling goes through tenant.Provider; Store is only consulted by
// administrative operations.
type Store interface {
	GetByID(ctx context.Context, id uuid.UUID) (*tenant.Tenant, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status tenant.Status) error
	AddCustomDomain(ctx context.Context, id uuid.UUID, domain string) error
}

// ErrDomainAlreadyAssigned is returned when a custom domain is already bound
// to a different tenant.
var ErrDomainAlreadyAssigned = errors.New("tenant: custom domain already assigned to another tenant")

// AdminService performs lifecycle operations on tenant accounts and keeps
// the resolver cache consistent with the store afterward.
type AdminService struct {
	store Store
	cache tenant.Cache
}

// NewAdminService builds an AdminService. cache may be nil, in which case
// invalidation is a no-op (suitable for deployments that resolve tenants
// without a cache in front of the store).
func NewAdminService(store Store, cache tenant.Cache) *AdminService {
	return &AdminService{store: store, cache: cache}
}

// Suspend transitions a tenant to the suspended state. Every cached copy of
// the tenant (keyed by id, subdomain, or custom domain) must be evicted so
// the next request sees the suspension immediately rather than after the
// cache TTL lapses.
func (s *AdminService) Suspend(ctx context.Context, id uuid.UUID) error {
	return s.transition(ctx, id, tenant.StatusSuspended)
}

// Activate reinstates a suspended tenant.
func (s *AdminService) Activate(ctx context.Context, id uuid.UUID) error {
	return s.transition(ctx, id, tenant.StatusActive)
}

// Delete marks a tenant deleted. This is a soft delete: the record and its
// id remain resolvable by Store.GetByID for audit purposes, but
// tenant.Provider implementations backed by the same store should stop
// returning it from GetByIdentifier.
func (s *AdminService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.transition(ctx, id, tenant.StatusDeleted)
}

func (s *AdminService) transition(ctx context.Context, id uuid.UUID, status tenant.Status) error {
	t, err := s.store.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("tenant: load tenant %s: %w", id, err)
	}

	if err := s.store.UpdateStatus(ctx, id, status); err != nil {
		return fmt.Errorf("tenant: update status for %s: %w", id, err)
	}

	s.InvalidateTenant(ctx, t)
	return nil
}

// AssignCustomDomain binds an additional hostname to a tenant so the
// subdomain resolver's composite chain also matches it. The caller is
// responsible for verifying domain ownership before calling this.
func (s *AdminService) AssignCustomDomain(ctx context.Context, id uuid.UUID, domain string) error {
	if err := s.store.AddCustomDomain(ctx, id, domain); err != nil {
		return fmt.Errorf("tenant: assign domain %q to %s: %w", domain, id, err)
	}

	if s.cache != nil {
		s.cache.Delete(ctx, domain)
	}
	return nil
}

// InvalidateTenant evicts every cache key known to resolve to t. This is the
// entry point referenced by resolver cache documentation: callers that
// change a tenant's identity (status, subdomain, or custom domains) outside
// of this service's own write paths should still call it directly.
func (s *AdminService) InvalidateTenant(ctx context.Context, t *tenant.Tenant) {
	if s.cache == nil || t == nil {
		return
	}

	s.cache.Delete(ctx, t.ID.String())
	s.cache.Delete(ctx, t.Subdomain)
	for _, d := range t.CustomDomains {
		s.cache.Delete(ctx, d)
	}
}

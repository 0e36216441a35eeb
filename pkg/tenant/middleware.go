package tenant

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Middleware creates HTTP middleware that extracts tenant information
// from incoming requests and adds it to the request context.
//
// Resolution order: an impersonation extractor (if configured) always wins
// over the ordinary resolver, since an acting-as tenant id in a verified
// platform-admin token takes precedence over the host the request arrived
// on. A resolved but suspended tenant short-circuits to the branded
// suspension response rather than the generic "inactive" error.
func Middleware(resolver Resolver, provider Provider, opts ...Option) func(http.Handler) http.Handler {
	// Apply default configuration
	cfg := &config{
		cache:         NewInMemoryCache(),
		cacheTTL:      5 * time.Minute,
		errorHandler:  defaultErrorHandler,
		requireActive: true,
	}

	// Apply options
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Check if we should skip this path
			for _, skip := range cfg.skipPaths {
				if strings.HasPrefix(r.URL.Path, skip) {
					next.ServeHTTP(w, r)
					return
				}
			}

			var imp *Impersonation
			var identifier string
			var err error

			if cfg.impersonationExtractor != nil {
				if actingAs, found, ok := cfg.impersonationExtractor(r); ok {
					identifier = actingAs
					imp = &found
				}
			}

			if identifier == "" {
				identifier, err = resolver.Resolve(r)
				if err != nil {
					cfg.errorHandler(w, r, err)
					return
				}
			}

			// If no identifier found, continue without tenant
			if identifier == "" {
				next.ServeHTTP(w, r)
				return
			}

			resolveCtx := r.Context()

			// Step 2: Check cache first
			if cached, ok := cfg.cache.Get(resolveCtx, identifier); ok {
				if resp, blocked := validateTenant(cfg, w, r, cached); blocked {
					_ = resp
					return
				}

				next.ServeHTTP(w, r.WithContext(bindTenant(resolveCtx, cached, imp)))
				return
			}

			// Step 3: Load from provider
			t, err := provider.GetByIdentifier(resolveCtx, identifier)
			if err != nil {
				if errors.Is(err, ErrTenantNotFound) {
					cfg.errorHandler(w, r, err)
					return
				}
				cfg.errorHandler(w, r, fmt.Errorf("%w: %w", ErrResolverUnavailable, err))
				return
			}

			if _, blocked := validateTenant(cfg, w, r, t); blocked {
				return
			}

			// Step 5: Cache the tenant
			cfg.cache.Set(resolveCtx, identifier, t, cfg.cacheTTL)

			// Step 6: Add to context and continue
			next.ServeHTTP(w, r.WithContext(bindTenant(resolveCtx, t, imp)))
		})
	}
}

// validateTenant enforces the active/suspended gate. It returns blocked=true
// when the request has already been answered (branded 403 or inactive
// error) and the caller must not continue the chain.
func validateTenant(cfg *config, w http.ResponseWriter, r *http.Request, t *Tenant) (handled bool, blocked bool) {
	if t.IsSuspended() {
		cfg.errorHandler(w, r, ErrTenantSuspended)
		return true, true
	}
	if cfg.requireActive && !t.IsActive() {
		cfg.errorHandler(w, r, ErrInactiveTenant)
		return true, true
	}
	return false, false
}

// bindTenant attaches the tenant (and impersonation marker, if any) to ctx.
func bindTenant(ctx context.Context, t *Tenant, imp *Impersonation) context.Context {
	ctx = WithTenant(ctx, t)
	if imp != nil {
		ctx = WithImpersonation(ctx, *imp)
	}
	return ctx
}

// RequireTenant creates middleware that ensures a tenant is present in the context.
// This is useful for protecting routes that require tenant context.
func RequireTenant(errorHandler ErrorHandler) func(http.Handler) http.Handler {
	if errorHandler == nil {
		errorHandler = defaultErrorHandler
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tenant, ok := FromContext(r.Context())
			if !ok || tenant == nil {
				errorHandler(w, r, ErrNoTenantInContext)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

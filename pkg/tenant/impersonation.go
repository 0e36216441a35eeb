package tenant

import (
	"context"
	"log/slog"
)

// Impersonation carries the platform-admin identity acting on behalf of a
// tenant, as decoded from a JWT's impersonation claims. Every downstream
// audit event recorded while this is set must include the marker.
type Impersonation struct {
	ActorPlatformUserID string
	ImpersonationID     string
}

type impersonationKey struct{}

// WithImpersonation marks ctx as an impersonated request.
func WithImpersonation(ctx context.Context, imp Impersonation) context.Context {
	return context.WithValue(ctx, impersonationKey{}, imp)
}

// ImpersonationFromContext retrieves the impersonation marker, if any.
func ImpersonationFromContext(ctx context.Context) (Impersonation, bool) {
	imp, ok := ctx.Value(impersonationKey{}).(Impersonation)
	return imp, ok
}

// IsImpersonated reports whether ctx represents an impersonated request.
func IsImpersonated(ctx context.Context) bool {
	_, ok := ImpersonationFromContext(ctx)
	return ok
}

// ImpersonationLoggerExtractor returns a logger attribute extractor that
// tags log lines with the impersonation id when the request is impersonated.
func ImpersonationLoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if imp, ok := ImpersonationFromContext(ctx); ok {
			return slog.String("impersonation_id", imp.ImpersonationID), true
		}
		return slog.Attr{}, false
	}
}

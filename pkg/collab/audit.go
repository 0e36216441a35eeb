package collab

import (
	"context"

	"github.com/dmitrymomot/commercecore/pkg/audit"
)

// AuditSink is the append-only audit write the core treats as fatal on
// failure: a step that can't be audited can't be allowed to have happened.
type AuditSink interface {
	Write(ctx context.Context, action string, metadata map[string]any) error
}

// AuditLogger adapts an audit.Logger into an AuditSink.
type AuditLogger struct {
	logger audit.Logger
}

// NewAuditLogger wraps logger for use as an AuditSink.
func NewAuditLogger(logger audit.Logger) *AuditLogger {
	return &AuditLogger{logger: logger}
}

// Write logs action with metadata, satisfying AuditSink.
func (a *AuditLogger) Write(ctx context.Context, action string, metadata map[string]any) error {
	opts := make([]audit.EventOption, 0, len(metadata))
	for k, v := range metadata {
		opts = append(opts, audit.WithMetadata(k, v))
	}
	return a.logger.Log(ctx, action, opts...)
}

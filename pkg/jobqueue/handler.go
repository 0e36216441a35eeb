package jobqueue

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Handler processes the payload of every job registered under its Name.
type Handler interface {
	Name() string
	Handle(ctx context.Context, payload json.RawMessage) error
}

// TaskHandlerFunc is the typed function a caller writes; NewTaskHandler
// adapts it into a Handler that unmarshals the job payload into T first.
type TaskHandlerFunc[T any] func(ctx context.Context, payload T) error

// NewTaskHandler wraps handler into a Handler named after T's qualified
// type name (e.g. "media.ResizeJob"), so registering a handler and
// enqueueing a job for its payload type never requires the caller to keep
// a string constant in sync by hand.
func NewTaskHandler[T any](handler TaskHandlerFunc[T]) Handler {
	var payload T
	return &typedHandler[T]{
		name:    qualifiedTypeName(payload),
		handler: handler,
	}
}

// NewNamedTaskHandler is NewTaskHandler with an explicit name, for callers
// that enqueue jobs under a task name not derived from the payload type
// (e.g. a name stored in a database column).
func NewNamedTaskHandler[T any](name string, handler TaskHandlerFunc[T]) Handler {
	return &typedHandler[T]{name: name, handler: handler}
}

type typedHandler[T any] struct {
	name    string
	handler TaskHandlerFunc[T]
}

func (h *typedHandler[T]) Name() string { return h.name }

func (h *typedHandler[T]) Handle(ctx context.Context, payload json.RawMessage) error {
	var t T
	if err := json.Unmarshal(payload, &t); err != nil {
		return fmt.Errorf("jobqueue: unmarshal payload for %s: %w", h.name, err)
	}
	return h.handler(ctx, t)
}

func qualifiedTypeName(v any) string {
	return strings.TrimLeft(fmt.Sprintf("%T", v), "*")
}

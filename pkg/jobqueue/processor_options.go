package jobqueue

import (
	"log/slog"
	"time"
)

// ProcessorOption is a functional option for configuring a JobProcessor.
type ProcessorOption func(*processorOptions)

type processorOptions struct {
	logger       *slog.Logger
	retryPolicy  map[Priority]RetryPolicy
	defaultRetry RetryPolicy
	maxExecution time.Duration
}

// WithProcessorLogger sets the logger used for job lifecycle events.
func WithProcessorLogger(logger *slog.Logger) ProcessorOption {
	return func(o *processorOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithRetryPolicy sets the retry policy used for jobs of the given
// priority, overriding the processor's default for that priority only.
func WithRetryPolicy(priority Priority, policy RetryPolicy) ProcessorOption {
	return func(o *processorOptions) {
		o.retryPolicy[priority] = policy
	}
}

// WithDefaultRetryPolicy sets the policy used for any priority without an
// entry set via WithRetryPolicy.
func WithDefaultRetryPolicy(policy RetryPolicy) ProcessorOption {
	return func(o *processorOptions) {
		o.defaultRetry = policy
	}
}

// WithMaxExecution bounds how long a single handler invocation may run
// before it is treated as a failure. A job that cooperatively yields but
// never returns past this budget is cancelled, not left running.
func WithMaxExecution(d time.Duration) ProcessorOption {
	return func(o *processorOptions) {
		if d > 0 {
			o.maxExecution = d
		}
	}
}

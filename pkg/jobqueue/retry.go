package jobqueue

import (
	"math"
	"time"
)

// BackoffKind selects how RetryPolicy.Delay grows with attempt count.
type BackoffKind string

const (
	BackoffExponential BackoffKind = "exponential"
	BackoffLinear      BackoffKind = "linear"
)

// RetryPolicy computes the logical delay before a failed job's next
// attempt. It never sleeps anything itself — JobProcessor stamps the
// computed delay onto the job's RunNotBefore and re-enqueues it.
type RetryPolicy struct {
	// MaxAttempts is the number of attempts (including the first) a job
	// gets before it is moved to the dead letter queue.
	MaxAttempts int

	Kind       BackoffKind
	Initial    time.Duration
	Multiplier float64 // exponential only; ignored for linear
	MaxDelay   time.Duration
}

// DefaultRetryPolicy is a reasonable fallback for priorities without an
// explicit entry in a processor's policy map.
var DefaultRetryPolicy = RetryPolicy{
	MaxAttempts: 5,
	Kind:        BackoffExponential,
	Initial:     time.Second,
	Multiplier:  2,
	MaxDelay:    5 * time.Minute,
}

// Delay returns the wait before attempt n (1-indexed: n=1 is the delay
// applied after the first failure). exponential computes
// min(MaxDelay, Initial*Multiplier^(n-1)); linear computes Initial*n.
func (p RetryPolicy) Delay(n int) time.Duration {
	if n < 1 {
		n = 1
	}

	var d time.Duration
	switch p.Kind {
	case BackoffLinear:
		d = p.Initial * time.Duration(n)
	default:
		multiplier := p.Multiplier
		if multiplier <= 0 {
			multiplier = 2
		}
		d = time.Duration(float64(p.Initial) * math.Pow(multiplier, float64(n-1)))
	}

	if p.MaxDelay > 0 && d > p.MaxDelay {
		return p.MaxDelay
	}
	return d
}

// Exhausted reports whether attempt has used up the policy's retry budget.
func (p RetryPolicy) Exhausted(attempt int) bool {
	return attempt >= p.MaxAttempts
}

package jobqueue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/commercecore/pkg/tenant"
)

// TenantExtractor recovers the tenant a job should run as. The default,
// DefaultTenantExtractor, simply trusts Job.TenantID as stamped at enqueue
// time; a caller whose payload itself carries the authoritative tenant id
// can supply its own.
type TenantExtractor func(job *Job) (uuid.UUID, error)

// DefaultTenantExtractor returns job.TenantID.
func DefaultTenantExtractor(job *Job) (uuid.UUID, error) {
	return job.TenantID, nil
}

// Stats is a point-in-time snapshot of a JobProcessor's lifecycle counters.
type Stats struct {
	Enqueued  int64
	Started   int64
	Succeeded int64
	Failed    int64
	DLQ       int64
}

// JobProcessor closes the loop around a PriorityJobQueue, a
// DeadLetterQueue, a handler registry, and a per-priority RetryPolicy.
type JobProcessor struct {
	queue           *PriorityJobQueue
	dlq             *DeadLetterQueue
	tenantExtractor TenantExtractor

	mu       sync.RWMutex
	handlers map[string]Handler

	logger       *slog.Logger
	retryPolicy  map[Priority]RetryPolicy
	defaultRetry RetryPolicy
	maxExecution time.Duration

	stats struct {
		mu sync.Mutex
		s  Stats
	}

	// dispatching guards DispatchLoop's SKIP-if-busy semantics: a tick
	// that finds dispatching already true skips its turn rather than
	// queuing up behind the running one.
	dispatching atomic.Bool
}

// NewJobProcessor builds a JobProcessor over queue and dlq.
func NewJobProcessor(queue *PriorityJobQueue, dlq *DeadLetterQueue, tenantExtractor TenantExtractor, opts ...ProcessorOption) *JobProcessor {
	if tenantExtractor == nil {
		tenantExtractor = DefaultTenantExtractor
	}

	options := &processorOptions{
		logger:       slog.Default(),
		retryPolicy:  make(map[Priority]RetryPolicy),
		defaultRetry: DefaultRetryPolicy,
		maxExecution: 5 * time.Minute,
	}
	for _, opt := range opts {
		opt(options)
	}

	return &JobProcessor{
		queue:           queue,
		dlq:             dlq,
		tenantExtractor: tenantExtractor,
		handlers:        make(map[string]Handler),
		logger:          options.logger,
		retryPolicy:     options.retryPolicy,
		defaultRetry:    options.defaultRetry,
		maxExecution:    options.maxExecution,
	}
}

// RegisterHandler registers a single handler, keyed by its Name.
func (p *JobProcessor) RegisterHandler(h Handler) {
	if h == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.handlers[h.Name()] = h
}

// RegisterHandlers registers multiple handlers.
func (p *JobProcessor) RegisterHandlers(handlers ...Handler) {
	for _, h := range handlers {
		p.RegisterHandler(h)
	}
}

// Submit enqueues job onto the processor's queue and counts it, mirroring
// the job_enqueued counter alongside job_started/succeeded/failed/dlq.
// Callers that enqueue directly against the PriorityJobQueue bypass this
// counter; Submit exists for callers that want it tracked.
func (p *JobProcessor) Submit(job *Job) bool {
	accepted := p.queue.Enqueue(job)
	if accepted {
		p.stats.mu.Lock()
		p.stats.s.Enqueued++
		p.stats.mu.Unlock()
	}
	return accepted
}

// Stats returns a snapshot of the processor's lifecycle counters.
func (p *JobProcessor) Stats() Stats {
	p.stats.mu.Lock()
	defer p.stats.mu.Unlock()
	return p.stats.s
}

func (p *JobProcessor) retryPolicyFor(priority Priority) RetryPolicy {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if policy, ok := p.retryPolicy[priority]; ok {
		return policy
	}
	return p.defaultRetry
}

// ProcessNext dequeues and runs one job. It returns false if the queue has
// nothing ready to run right now.
func (p *JobProcessor) ProcessNext(ctx context.Context) bool {
	job, ok := p.queue.TryDequeue()
	if !ok {
		return false
	}

	p.stats.mu.Lock()
	p.stats.s.Started++
	p.stats.mu.Unlock()

	start := time.Now()
	err := p.run(ctx, job)
	duration := time.Since(start)

	if err != nil {
		p.handleFailure(job, err, duration)
		return true
	}

	p.stats.mu.Lock()
	p.stats.s.Succeeded++
	p.stats.mu.Unlock()

	p.logger.Info("job succeeded",
		slog.String("job_id", job.ID.String()),
		slog.String("task_name", job.TaskName),
		slog.String("priority", job.Priority.String()),
		slog.Duration("duration", duration))

	return true
}

func (p *JobProcessor) run(ctx context.Context, job *Job) (retErr error) {
	p.mu.RLock()
	handler, ok := p.handlers[job.TaskName]
	p.mu.RUnlock()
	if !ok {
		return ErrHandlerNotFound
	}

	tenantID, err := p.tenantExtractor(job)
	if err != nil {
		return fmt.Errorf("jobqueue: extract tenant for job %s: %w", job.ID, err)
	}

	runCtx, cancel := context.WithTimeout(ctx, p.maxExecution)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			retErr = fmt.Errorf("jobqueue: panic in handler %s: %v", job.TaskName, r)
		}
	}()

	return tenant.RunAs(runCtx, tenantID, func(taskCtx context.Context) error {
		return handler.Handle(taskCtx, job.Payload)
	})
}

func (p *JobProcessor) handleFailure(job *Job, execErr error, duration time.Duration) {
	job.Attempt++
	job.LastError = execErr.Error()

	p.stats.mu.Lock()
	p.stats.s.Failed++
	p.stats.mu.Unlock()

	p.logger.Error("job failed",
		slog.String("job_id", job.ID.String()),
		slog.String("task_name", job.TaskName),
		slog.String("priority", job.Priority.String()),
		slog.Int("attempt", job.Attempt),
		slog.Duration("duration", duration),
		slog.String("error", execErr.Error()))

	policy := p.retryPolicyFor(job.Priority)
	if errors.Is(execErr, ErrHandlerNotFound) || policy.Exhausted(job.Attempt) {
		p.dlq.Push(job, execErr)
		p.stats.mu.Lock()
		p.stats.s.DLQ++
		p.stats.mu.Unlock()

		p.logger.Warn("job moved to dead letter queue",
			slog.String("job_id", job.ID.String()),
			slog.String("task_name", job.TaskName),
			slog.Int("attempt", job.Attempt))
		return
	}

	job.RunNotBefore = time.Now().Add(policy.Delay(job.Attempt))
	if !p.queue.Enqueue(job) {
		// The lane is full even for a retry; there is nowhere left to put
		// this job but the dead letter queue.
		p.dlq.Push(job, fmt.Errorf("%w during retry re-enqueue", ErrQueueFull))
		p.stats.mu.Lock()
		p.stats.s.DLQ++
		p.stats.mu.Unlock()
	}
}

// DispatchLoop drains the queue every interval until ctx is done. If a
// prior tick is still draining when the next tick fires, the new tick is
// skipped entirely rather than queued up behind it.
func (p *JobProcessor) DispatchLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !p.dispatching.CompareAndSwap(false, true) {
				p.logger.Debug("dispatch tick skipped, previous tick still running")
				continue
			}
			go func() {
				defer p.dispatching.Store(false)
				for p.ProcessNext(ctx) {
					if ctx.Err() != nil {
						return
					}
				}
			}()
		}
	}
}

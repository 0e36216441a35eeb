package jobqueue

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DLQEntry is a job that exhausted its RetryPolicy's attempt budget,
// retained with enough context for an operator to inspect or requeue it.
type DLQEntry struct {
	ID        uuid.UUID
	Job       *Job
	LastError string
	FailedAt  time.Time
}

// DLQFilter narrows List/Purge to a subset of entries. A zero-value field
// matches everything for that dimension.
type DLQFilter struct {
	TenantID uuid.UUID
	TaskName string
}

func (f DLQFilter) matches(e DLQEntry) bool {
	if f.TenantID != uuid.Nil && e.Job.TenantID != f.TenantID {
		return false
	}
	if f.TaskName != "" && e.Job.TaskName != f.TaskName {
		return false
	}
	return true
}

// DeadLetterQueue holds jobs that a JobProcessor gave up retrying.
// Requeue is the only way entries leave other than Purge, and it is meant
// to be invoked by an operator, not automatically by the processor.
type DeadLetterQueue struct {
	mu      sync.Mutex
	entries []DLQEntry
}

// NewDeadLetterQueue builds an empty DeadLetterQueue.
func NewDeadLetterQueue() *DeadLetterQueue {
	return &DeadLetterQueue{}
}

// Push records job as dead, retaining its priority, attempt count, tenant
// id, and lastErr.
func (d *DeadLetterQueue) Push(job *Job, lastErr error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	msg := ""
	if lastErr != nil {
		msg = lastErr.Error()
	}

	d.entries = append(d.entries, DLQEntry{
		ID:        uuid.New(),
		Job:       job,
		LastError: msg,
		FailedAt:  time.Now(),
	})
}

// List returns a copy of every entry matching filter.
func (d *DeadLetterQueue) List(filter DLQFilter) []DLQEntry {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]DLQEntry, 0, len(d.entries))
	for _, e := range d.entries {
		if filter.matches(e) {
			out = append(out, e)
		}
	}
	return out
}

// Requeue removes entryID from the dead letter queue and enqueues its job
// into dest with a reset attempt count and scheduling bound, treating it as
// fresh work. It is an operator-only action: nothing in this package calls
// it automatically.
func (d *DeadLetterQueue) Requeue(entryID uuid.UUID, dest *PriorityJobQueue) error {
	d.mu.Lock()
	idx := -1
	for i, e := range d.entries {
		if e.ID == entryID {
			idx = i
			break
		}
	}
	if idx < 0 {
		d.mu.Unlock()
		return ErrEntryNotFound
	}

	entry := d.entries[idx]
	d.entries = append(d.entries[:idx:idx], d.entries[idx+1:]...)
	d.mu.Unlock()

	entry.Job.Attempt = 0
	entry.Job.RunNotBefore = time.Time{}
	entry.Job.LastError = ""

	if !dest.Enqueue(entry.Job) {
		return ErrQueueFull
	}
	return nil
}

// Purge removes every entry matching filter and returns the count removed.
func (d *DeadLetterQueue) Purge(filter DLQFilter) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	kept := d.entries[:0]
	removed := 0
	for _, e := range d.entries {
		if filter.matches(e) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	d.entries = kept
	return removed
}

// Depth returns the current number of dead letter entries.
func (d *DeadLetterQueue) Depth() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.entries)
}

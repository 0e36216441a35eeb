package jobqueue

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Job is a unit of work moving through a PriorityJobQueue, a JobProcessor,
// and possibly a DeadLetterQueue.
type Job struct {
	ID       uuid.UUID       `json:"id"`
	TenantID uuid.UUID       `json:"tenant_id"`
	TaskName string          `json:"task_name"`
	Payload  json.RawMessage `json:"payload"`
	Priority Priority        `json:"priority"`

	// Attempt counts how many times this job has been handed to a
	// handler and failed. It starts at 0 for a fresh job.
	Attempt int `json:"attempt"`

	// RunNotBefore is a logical scheduling bound: TryDequeue skips a job
	// whose RunNotBefore is still in the future, without removing it from
	// its lane. The zero value means "ready immediately".
	RunNotBefore time.Time `json:"run_not_before,omitempty"`

	LastError string    `json:"last_error,omitempty"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}

// NewJob builds a Job ready for Enqueue. The caller supplies the task name
// a Handler was registered under and a JSON payload.
func NewJob(tenantID uuid.UUID, taskName string, priority Priority, payload json.RawMessage) *Job {
	return &Job{
		ID:         uuid.New(),
		TenantID:   tenantID,
		TaskName:   taskName,
		Payload:    payload,
		Priority:   priority,
		EnqueuedAt: time.Now(),
	}
}

// ready reports whether the job's scheduling bound has passed.
func (j *Job) ready(now time.Time) bool {
	return j.RunNotBefore.IsZero() || !j.RunNotBefore.After(now)
}

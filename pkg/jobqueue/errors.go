package jobqueue

import "errors"

var (
	// ErrQueueFull is returned by Enqueue when the target priority lane is
	// already at capacity.
	ErrQueueFull = errors.New("jobqueue: priority lane is full")

	// ErrPayloadNil is returned when attempting to enqueue a job with a
	// nil payload.
	ErrPayloadNil = errors.New("jobqueue: payload cannot be nil")

	// ErrInvalidPriority is returned when a job names a priority outside
	// the five recognized lanes.
	ErrInvalidPriority = errors.New("jobqueue: invalid priority")

	// ErrHandlerNotFound is returned when no handler is registered for a
	// job's task name. The processor treats this the same as an exhausted
	// retry budget: straight to the dead letter queue, since no amount of
	// retrying will produce a handler that doesn't exist.
	ErrHandlerNotFound = errors.New("jobqueue: no handler registered for task")

	// ErrEntryNotFound is returned by DeadLetterQueue.Requeue when the
	// given entry id isn't present.
	ErrEntryNotFound = errors.New("jobqueue: dead letter entry not found")

	// ErrNoHandlers is returned by NewJobProcessor's DispatchLoop/ProcessNext
	// machinery when asked to process work with nothing registered to
	// handle it.
	ErrNoHandlers = errors.New("jobqueue: no task handlers registered")
)

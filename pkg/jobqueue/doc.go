// Package jobqueue provides an in-process, priority-ordered job pipeline:
// a bounded PriorityJobQueue feeding a JobProcessor that runs registered
// Handlers, retries failures per a configurable RetryPolicy, and hands
// exhausted jobs to a DeadLetterQueue.
//
// # Architecture
//
//   - PriorityJobQueue holds five bounded FIFO lanes, one per Priority.
//     Enqueue never blocks: a full lane rejects the job and the caller
//     decides what to do (log, shed, surface to the submitter). TryDequeue
//     always prefers the highest non-empty lane — a CRITICAL backlog
//     starves LOW and BULK for as long as it takes to drain, by design.
//   - RetryPolicy computes a logical run_not_before delay from a job's
//     attempt count; it never sleeps anything itself.
//   - JobProcessor closes the loop: dequeue, bind the job's tenant id via
//     tenant.RunAs, invoke the matching Handler, and on failure either
//     re-enqueue with a computed delay or push to the DeadLetterQueue once
//     the policy's attempt budget is spent.
//   - DeadLetterQueue retains enough of a failed job (priority, attempts,
//     tenant id, last error) for an operator to inspect and requeue it.
//
// None of this package touches persistent storage — jobs that must survive
// a process restart belong in a durable queue; this one is for coordinating
// in-memory priority and retry semantics above whatever persistence layer
// feeds it.
package jobqueue

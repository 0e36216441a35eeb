package jobqueue

import (
	"sync"
	"time"
)

// DefaultCapacity is the lane bound used by NewPriorityJobQueue for any
// priority not given an explicit entry in the capacity map.
const DefaultCapacity = 10_000

// PriorityJobQueue is a bounded, multi-producer/multi-consumer structure
// ordering work across the five named priorities. Every exported method is
// safe for concurrent use.
type PriorityJobQueue struct {
	mu       sync.Mutex
	lanes    map[Priority][]*Job
	capacity map[Priority]int

	// enqueueRejected counts overflow per priority; never reset, always
	// readable via Stats.
	enqueueRejected map[Priority]int64
}

// NewPriorityJobQueue builds a queue. capacity maps a priority to its lane
// bound; priorities absent from the map get DefaultCapacity.
func NewPriorityJobQueue(capacity map[Priority]int) *PriorityJobQueue {
	q := &PriorityJobQueue{
		lanes:           make(map[Priority][]*Job, len(priorityOrder)),
		capacity:        make(map[Priority]int, len(priorityOrder)),
		enqueueRejected: make(map[Priority]int64, len(priorityOrder)),
	}

	for _, p := range priorityOrder {
		q.lanes[p] = nil
		if c, ok := capacity[p]; ok {
			q.capacity[p] = c
		} else {
			q.capacity[p] = DefaultCapacity
		}
	}

	return q
}

// Enqueue appends job to its priority's lane if capacity permits. It
// returns false — and increments the lane's enqueue_rejected counter —
// rather than blocking or silently dropping the job.
func (q *PriorityJobQueue) Enqueue(job *Job) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	lane := q.lanes[job.Priority]
	if len(lane) >= q.capacity[job.Priority] {
		q.enqueueRejected[job.Priority]++
		return false
	}

	q.lanes[job.Priority] = append(lane, job)
	return true
}

// TryDequeue returns the oldest ready job of the highest non-empty
// priority. Within a lane, a job whose RunNotBefore is still in the future
// is skipped without removing it — a later, already-ready job in the same
// lane may be returned ahead of it, since a pending retry delay must never
// block the jobs behind it.
func (q *PriorityJobQueue) TryDequeue() (*Job, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	now := time.Now()
	for _, p := range priorityOrder {
		lane := q.lanes[p]
		for i, job := range lane {
			if !job.ready(now) {
				continue
			}
			q.lanes[p] = append(lane[:i:i], lane[i+1:]...)
			return job, true
		}
	}

	return nil, false
}

// Depth returns the number of jobs currently held in priority's lane,
// including any not yet ready to run.
func (q *PriorityJobQueue) Depth(priority Priority) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.lanes[priority])
}

// TotalDepth returns the number of jobs across all lanes.
func (q *PriorityJobQueue) TotalDepth() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	total := 0
	for _, lane := range q.lanes {
		total += len(lane)
	}
	return total
}

// EnqueueRejected returns the running count of jobs rejected from
// priority's lane due to capacity.
func (q *PriorityJobQueue) EnqueueRejected(priority Priority) int64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.enqueueRejected[priority]
}

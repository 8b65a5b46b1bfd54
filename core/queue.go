package core

import "sync"

const (
	defaultQueueCap     = 16
	compactMinCap       = 64 // Don't compact if capacity is less than this
	compactShrinkFactor = 4  // Trigger compaction when len < cap/4
)

// TaskQueue defines the interface for queue implementations
type TaskQueue interface {
	// Push appends a task at the tail. Returns false when a bounded queue
	// is at its limit; the task is not enqueued in that case.
	Push(t Task) bool
	Pop() (Task, bool)
	Len() int
	IsEmpty() bool
	MaybeCompact()
	Clear() // Clear all tasks from the queue
}

// =============================================================================
// FIFOTaskQueue: mutex-guarded FIFO queue shared by submitters and workers
// =============================================================================

// FIFOTaskQueue dequeues tasks in exactly the order they were enqueued.
// A limit of 0 means unbounded.
type FIFOTaskQueue struct {
	mu    sync.Mutex
	tasks []Task
	limit int
}

func NewFIFOTaskQueue() *FIFOTaskQueue {
	return &FIFOTaskQueue{
		tasks: make([]Task, 0, defaultQueueCap),
	}
}

// NewBoundedFIFOTaskQueue creates a queue that rejects pushes beyond limit.
// A non-positive limit falls back to unbounded.
func NewBoundedFIFOTaskQueue(limit int) *FIFOTaskQueue {
	if limit < 0 {
		limit = 0
	}
	return &FIFOTaskQueue{
		tasks: make([]Task, 0, defaultQueueCap),
		limit: limit,
	}
}

func (q *FIFOTaskQueue) Push(t Task) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.limit > 0 && len(q.tasks) >= q.limit {
		return false
	}
	q.tasks = append(q.tasks, t)
	return true
}

func (q *FIFOTaskQueue) Pop() (Task, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.tasks) == 0 {
		return nil, false
	}

	t := q.tasks[0]
	// Zero out the element in the underlying array to prevent memory leak
	q.tasks[0] = nil
	// Optimization: slice slicing
	q.tasks = q.tasks[1:]
	q.maybeCompactLocked()

	return t, true
}

func (q *FIFOTaskQueue) MaybeCompact() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.maybeCompactLocked()
}

func (q *FIFOTaskQueue) maybeCompactLocked() {
	n := len(q.tasks)
	c := cap(q.tasks)

	if c < compactMinCap {
		return
	}
	if n == 0 {
		q.tasks = make([]Task, 0, defaultQueueCap)
		return
	}
	if n*compactShrinkFactor >= c {
		return
	}

	newCap := max(max(c/2, defaultQueueCap), n)

	newSlice := make([]Task, n, newCap)
	copy(newSlice, q.tasks)
	q.tasks = newSlice
}

func (q *FIFOTaskQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

func (q *FIFOTaskQueue) IsEmpty() bool {
	return q.Len() == 0
}

// Limit returns the configured bound (0 = unbounded).
func (q *FIFOTaskQueue) Limit() int {
	return q.limit
}

// Clear removes all tasks from the queue and releases references
func (q *FIFOTaskQueue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	// Create a new slice to release all task references
	q.tasks = make([]Task, 0, defaultQueueCap)
}

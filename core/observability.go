package core

// PoolStats represents runtime observability state for a worker pool.
//
// Submitted/Completed/Panicked/Rejected are monotonic totals; Queued and
// Active are point-in-time snapshots. A task that panicked still counts as
// completed (its execution finished, through the fault boundary).
type PoolStats struct {
	ID        string
	Workers   int
	Queued    int
	Active    int
	Submitted int64
	Completed int64
	Panicked  int64
	Rejected  int64
	Running   bool
}

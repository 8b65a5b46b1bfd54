package workerpool

import "github.com/tessen-dev/go-worker-pool/core"

// Re-export commonly used types from core package for convenience.
// This allows users to import only the workerpool package for most use cases.

// Task is the unit of work (Closure)
type Task = core.Task

// PanicHandler handles task panics
type PanicHandler = core.PanicHandler

// Metrics collects task execution metrics
type Metrics = core.Metrics

// RejectedTaskHandler handles rejected submissions
type RejectedTaskHandler = core.RejectedTaskHandler

// Logger is the structured logging interface used by default handlers
type Logger = core.Logger

// PoolStats is a snapshot of pool counters
type PoolStats = core.PoolStats

// Sentinel errors
var (
	// ErrPoolClosed is returned by Submit once Close has begun.
	ErrPoolClosed = core.ErrShutdown

	// ErrQueueFull is returned by Submit when a bounded queue is at its limit.
	ErrQueueFull = core.ErrQueueFull
)

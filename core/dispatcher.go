package core

import (
	"sync"
	"sync/atomic"
	"time"
)

// Dispatcher is the coordination point between submitters and workers: a
// shared FIFO queue, a wake signal, and the shutdown flag.
//
// The queue lock is held only for push/pop, never while a task runs, so
// long-running tasks do not starve submitters or other workers.
type Dispatcher struct {
	queue       *FIFOTaskQueue
	signal      chan struct{}
	workerCount int

	// postMu orders Post against Shutdown: a Post that acquires the lock
	// before the stop flag is set is guaranteed to land in the queue before
	// any worker can observe "stopped and empty", so accepted tasks are
	// never lost to a concurrent shutdown.
	postMu       sync.Mutex
	shuttingDown atomic.Bool

	metricQueued int32 // Waiting in queue
	metricActive int32 // Executing in Worker

	submitted int64
	completed int64
	panicked  int64
	rejected  int64

	// Handlers and Metrics
	panicHandler        PanicHandler
	metrics             Metrics
	rejectedTaskHandler RejectedTaskHandler
}

func NewDispatcher(workerCount int) *Dispatcher {
	return NewDispatcherWithConfig(workerCount, DefaultDispatcherConfig())
}

func NewDispatcherWithConfig(workerCount int, config *DispatcherConfig) *Dispatcher {
	d := &Dispatcher{
		signal:      make(chan struct{}, workerCount*2),
		workerCount: workerCount,
	}

	queueLimit := 0
	if config != nil {
		d.panicHandler = config.PanicHandler
		d.metrics = config.Metrics
		d.rejectedTaskHandler = config.RejectedTaskHandler
		queueLimit = config.QueueLimit
	}

	if queueLimit > 0 {
		d.queue = NewBoundedFIFOTaskQueue(queueLimit)
	} else {
		d.queue = NewFIFOTaskQueue()
	}

	// Use defaults if not provided
	if d.panicHandler == nil {
		d.panicHandler = &DefaultPanicHandler{}
	}
	if d.metrics == nil {
		d.metrics = &NilMetrics{}
	}
	if d.rejectedTaskHandler == nil {
		d.rejectedTaskHandler = &DefaultRejectedTaskHandler{}
	}

	return d
}

// Post enqueues a task at the tail of the queue and wakes at least one idle
// worker. Returns ErrShutdown after shutdown has begun and ErrQueueFull when
// a bounded queue is at its limit; in both cases the task is rejected, never
// silently dropped.
func (d *Dispatcher) Post(poolName string, task Task) error {
	d.postMu.Lock()
	if d.shuttingDown.Load() {
		d.postMu.Unlock()
		d.reject(poolName, "shutdown")
		return ErrShutdown
	}
	ok := d.queue.Push(task)
	d.postMu.Unlock()

	if !ok {
		d.reject(poolName, "queue full")
		return ErrQueueFull
	}

	atomic.AddInt32(&d.metricQueued, 1)
	atomic.AddInt64(&d.submitted, 1)
	d.metrics.RecordQueueDepth(poolName, d.queue.Len())

	select {
	case d.signal <- struct{}{}:
	default:
		// Signal channel full; an awake worker will find the task anyway.
	}
	return nil
}

func (d *Dispatcher) reject(poolName string, reason string) {
	atomic.AddInt64(&d.rejected, 1)
	d.rejectedTaskHandler.HandleRejectedTask(poolName, reason)
	d.metrics.RecordTaskRejected(poolName, reason)
}

// GetWork blocks until a task is available or the pool is stopping. Called by
// workers.
//
// Shutdown semantics are "finish the queue, then stop": a worker woken by
// stopCh keeps draining the queue and only reports no-more-work once the stop
// flag is set and the queue is empty. A worker therefore never exits while
// queued tasks remain.
func (d *Dispatcher) GetWork(stopCh <-chan struct{}) (Task, bool) {
	for {
		// Try to pop one task
		if task, ok := d.queue.Pop(); ok {
			atomic.AddInt32(&d.metricQueued, -1)
			return task, true
		}

		if d.shuttingDown.Load() {
			return nil, false
		}

		select {
		case <-d.signal:
			continue
		case <-stopCh:
			// Re-check the queue before exiting; stop may race with pushes.
			continue
		}
	}
}

// Shutdown marks the dispatcher as stopping. No new tasks are accepted;
// already-queued tasks stay in the queue for the workers to drain.
func (d *Dispatcher) Shutdown() {
	d.postMu.Lock()
	d.shuttingDown.Store(true)
	d.postMu.Unlock()
}

// IsShuttingDown reports whether shutdown has been requested.
func (d *Dispatcher) IsShuttingDown() bool {
	return d.shuttingDown.Load()
}

// Worker-side accounting hooks.

func (d *Dispatcher) OnTaskStart() {
	atomic.AddInt32(&d.metricActive, 1)
}

func (d *Dispatcher) OnTaskEnd(poolName string, duration time.Duration) {
	atomic.AddInt32(&d.metricActive, -1)
	atomic.AddInt64(&d.completed, 1)
	d.metrics.RecordTaskDuration(poolName, duration)
}

func (d *Dispatcher) OnTaskPanic(poolName string, panicInfo any) {
	atomic.AddInt64(&d.panicked, 1)
	d.metrics.RecordTaskPanic(poolName, panicInfo)
}

// Counters

func (d *Dispatcher) WorkerCount() int     { return d.workerCount }
func (d *Dispatcher) QueuedTaskCount() int { return int(atomic.LoadInt32(&d.metricQueued)) }
func (d *Dispatcher) ActiveTaskCount() int { return int(atomic.LoadInt32(&d.metricActive)) }

func (d *Dispatcher) SubmittedTotal() int64 { return atomic.LoadInt64(&d.submitted) }
func (d *Dispatcher) CompletedTotal() int64 { return atomic.LoadInt64(&d.completed) }
func (d *Dispatcher) PanickedTotal() int64  { return atomic.LoadInt64(&d.panicked) }
func (d *Dispatcher) RejectedTotal() int64  { return atomic.LoadInt64(&d.rejected) }

// GetPanicHandler returns the panic handler for this dispatcher
func (d *Dispatcher) GetPanicHandler() PanicHandler {
	return d.panicHandler
}

// GetMetrics returns the metrics collector for this dispatcher
func (d *Dispatcher) GetMetrics() Metrics {
	return d.metrics
}

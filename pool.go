package workerpool

import (
	"context"
	"errors"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tessen-dev/go-worker-pool/core"
)

// ErrInvalidWorkerCount is returned by New when workers <= 0.
// Construction fails as a whole; there is no partial pool.
var ErrInvalidWorkerCount = errors.New("worker count must be positive")

// WorkerPool executes submitted tasks on a fixed-size set of worker
// goroutines sharing one FIFO queue.
//
// Workers are spawned at construction and live until Close. Submission order
// equals dequeue order across the whole pool; completion order is not
// guaranteed since any idle worker may claim the next task and task durations
// vary. Once submitted, a task cannot be withdrawn; Close drains the queue
// rather than discarding it.
//
// A task that panics is caught by a per-execution fault boundary: it is
// counted, reported through Metrics and the PanicHandler, and the worker
// keeps running. The pool never loses a worker to a panicking task.
type WorkerPool struct {
	id         string
	workers    int
	dispatcher *core.Dispatcher
	wg         sync.WaitGroup
	ctx        context.Context
	cancel     context.CancelFunc
	closeOnce  sync.Once
	closed     atomic.Bool
}

// New creates a pool and spawns workers immediately; each begins waiting on
// the shared queue. The queue is unbounded, matching the reference behavior.
func New(workers int) (*WorkerPool, error) {
	return NewWithConfig(workers, nil)
}

// NewWithConfig creates a pool with the given configuration. A nil config
// uses defaults.
func NewWithConfig(workers int, config *Config) (*WorkerPool, error) {
	if workers <= 0 {
		return nil, ErrInvalidWorkerCount
	}
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	id := config.ID
	if id == "" {
		id = "pool"
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &WorkerPool{
		id:         id,
		workers:    workers,
		dispatcher: core.NewDispatcherWithConfig(workers, config.dispatcherConfig()),
		ctx:        ctx,
		cancel:     cancel,
	}

	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.workerLoop(i)
	}

	return p, nil
}

// Submit enqueues a task at the tail of the queue and wakes an idle worker.
// It never blocks on task execution; the caller cannot observe completion of
// an individual task through the pool. A caller needing completion
// notification must embed it in the task (e.g. a WaitGroup or atomic counter).
//
// Returns ErrPoolClosed once Close has begun and ErrQueueFull when a
// configured queue limit is hit.
func (p *WorkerPool) Submit(task core.Task) error {
	if task == nil {
		return nil
	}
	// The dispatcher rejects and counts submissions once shutdown has begun.
	return p.dispatcher.Post(p.id, task)
}

// Close gracefully shuts down the pool: no new submissions are accepted, all
// tasks enqueued before Close are still executed, and Close blocks until
// every worker has drained the queue and exited. Close is idempotent and
// serves as the join barrier for callers aggregating results in shared state.
func (p *WorkerPool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		p.dispatcher.Shutdown()
		p.cancel()
		p.wg.Wait()
	})
}

// IsClosed reports whether Close has begun.
func (p *WorkerPool) IsClosed() bool {
	return p.closed.Load()
}

// ID returns the pool's name, used as the label on metrics and log lines.
func (p *WorkerPool) ID() string {
	return p.id
}

// WorkerCount returns the fixed number of workers.
func (p *WorkerPool) WorkerCount() int {
	return p.workers
}

// QueuedTaskCount returns the number of tasks waiting in the queue.
func (p *WorkerPool) QueuedTaskCount() int {
	return p.dispatcher.QueuedTaskCount()
}

// ActiveTaskCount returns the number of tasks currently executing.
func (p *WorkerPool) ActiveTaskCount() int {
	return p.dispatcher.ActiveTaskCount()
}

// Stats returns a snapshot of the pool's counters.
func (p *WorkerPool) Stats() core.PoolStats {
	return core.PoolStats{
		ID:        p.id,
		Workers:   p.workers,
		Queued:    p.dispatcher.QueuedTaskCount(),
		Active:    p.dispatcher.ActiveTaskCount(),
		Submitted: p.dispatcher.SubmittedTotal(),
		Completed: p.dispatcher.CompletedTotal(),
		Panicked:  p.dispatcher.PanickedTotal(),
		Rejected:  p.dispatcher.RejectedTotal(),
		Running:   !p.closed.Load(),
	}
}

// workerLoop is the main loop for each worker: wait for a task or the stop
// signal, execute the task to completion, repeat. A worker woken during
// shutdown keeps draining the queue and exits only once it is empty.
func (p *WorkerPool) workerLoop(id int) {
	defer p.wg.Done()
	stopCh := p.ctx.Done()

	for {
		task, ok := p.dispatcher.GetWork(stopCh)
		if !ok {
			// Stop requested and queue drained
			return
		}
		p.runTask(id, task)
	}
}

// runTask executes one task inside the fault boundary.
func (p *WorkerPool) runTask(workerID int, task core.Task) {
	p.dispatcher.OnTaskStart()
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			p.dispatcher.OnTaskPanic(p.id, r)
			p.dispatcher.GetPanicHandler().HandlePanic(p.ctx, p.id, workerID, r, debug.Stack())
		}
		p.dispatcher.OnTaskEnd(p.id, time.Since(start))
	}()

	task(p.ctx)
}

// =============================================================================
// Global Pool Helper (Singleton)
// =============================================================================

var (
	globalPool *WorkerPool
	globalMu   sync.Mutex
)

// InitGlobalPool initializes the global worker pool with the specified number
// of workers. Workers start immediately.
func InitGlobalPool(workers int) error {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalPool != nil {
		return nil // Already initialized
	}

	pool, err := NewWithConfig(workers, &Config{ID: "global-pool"})
	if err != nil {
		return err
	}
	globalPool = pool
	return nil
}

// GetGlobalPool returns the global pool instance.
// It panics if InitGlobalPool has not been called.
func GetGlobalPool() *WorkerPool {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalPool == nil {
		panic("global pool not initialized. Call InitGlobalPool() first.")
	}
	return globalPool
}

// CloseGlobalPool shuts down the global pool.
func CloseGlobalPool() {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalPool != nil {
		globalPool.Close()
		globalPool = nil
	}
}

// Package workerpool provides a bounded worker pool: a fixed set of worker
// goroutines executing opaque tasks from one shared FIFO queue.
//
// # Quick Start
//
// Create a pool; workers start immediately:
//
//	pool, err := workerpool.New(4) // 4 workers
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer pool.Close()
//
//	pool.Submit(func(ctx context.Context) {
//		// Your code here
//	})
//
// # Semantics
//
// Submission order equals dequeue order across the whole pool (single shared
// FIFO queue). Completion order is not guaranteed: any idle worker may claim
// the next task, and task durations vary.
//
// Submit never blocks on execution and gives no per-task completion signal.
// A caller that needs one embeds it in the task itself:
//
//	var wg sync.WaitGroup
//	wg.Add(1)
//	pool.Submit(func(ctx context.Context) {
//		defer wg.Done()
//		// ...
//	})
//	wg.Wait()
//
// Close is the graceful shutdown: it stops accepting submissions, lets the
// workers drain everything already queued, and returns only after every
// worker has exited. Close therefore doubles as the join barrier before
// reading results aggregated in shared state. Submitting after Close has
// begun fails fast with ErrPoolClosed.
//
// # Failure policy
//
// A task that panics is caught by a per-execution fault boundary. The panic
// is counted (Stats().Panicked), reported to Metrics and the configured
// PanicHandler, and the worker keeps running. No work is silently lost to a
// crashed worker.
//
// # Bounded queue
//
// The queue is unbounded by default. Config.QueueLimit > 0 bounds it; Submit
// then fails with ErrQueueFull instead of blocking:
//
//	pool, _ := workerpool.NewWithConfig(4, &workerpool.Config{QueueLimit: 100})
//	if err := pool.Submit(task); errors.Is(err, workerpool.ErrQueueFull) {
//		// Handle backpressure
//	}
//
// # Observability
//
// Stats() returns counter snapshots, and the observability/prometheus
// subpackage exports them as Prometheus collectors.
package workerpool

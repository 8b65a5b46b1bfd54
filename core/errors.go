package core

import "errors"

// Sentinel errors returned by Dispatcher.Post.
var (
	// ErrShutdown is returned once shutdown has been requested. Submitting
	// after shutdown is a usage error; it fails fast instead of silently
	// dropping the task.
	ErrShutdown = errors.New("worker pool is shut down")

	// ErrQueueFull is returned when a bounded queue is at its limit.
	ErrQueueFull = errors.New("task queue is full")
)

package core

import "context"

// Task is the unit of work (Closure).
//
// The pool owns a task from the moment it is accepted until it finishes
// executing. The context passed to the task is the pool's lifecycle context;
// cooperative tasks may observe it to bail out early during shutdown, but the
// pool never uses it to abort a task mid-flight.
type Task func(ctx context.Context)

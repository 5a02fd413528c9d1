// Package schedule provides owned, cancellable timed tasks.
//
// Callbacks never run on timer goroutines. The wall-clock [Loop] hands each
// due callback to a dispatcher that executes it on the host's event loop, and
// the [Manual] scheduler runs callbacks synchronously while a test advances
// its virtual clock. Either way a callback runs on the same goroutine as the
// code that scheduled it, so the state it touches needs no locking.
//
// A cancelled task never runs its callback, even if its timer had already
// fired and the dispatch was in flight when Cancel was called.
package schedule

import "time"

// Task is a handle to a scheduled callback.
type Task interface {
	// Cancel prevents any further run of the callback. It is idempotent.
	Cancel()
}

// Scheduler creates timed tasks.
type Scheduler interface {
	// After runs fn once, d from now.
	After(d time.Duration, fn func()) Task
	// Every runs fn every d until cancelled. d must be positive.
	Every(d time.Duration, fn func()) Task
}

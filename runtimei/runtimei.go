// Package runtimei declares the capability contracts a Fence consumes
// from its host runtime: task identity and cancellation, and a
// dispatcher to schedule callbacks on.
//
// These are pure interfaces, split from their implementation so a
// Fence can be built against any cooperative scheduler that satisfies
// them. fence.Fence imports only this package; floop provides the
// reference implementation.
package runtimei

import "time"

// Task is the host's per-task handle: a single cooperative task
// running on the event loop, carrying a cancellation counter that
// Cancel increments and Uncancel decrements.
type Task interface {
	// ID identifies the task for logging/debugging.
	ID() string

	// Cancelling returns the current value of the cancellation
	// counter: the number of outstanding, not-yet-uncancelled Cancel
	// calls against this task.
	Cancelling() int

	// Cancel requests cancellation of this task, delivered at the
	// task's next suspension point. Idempotent with respect to
	// "already cancelled" but always increments the counter.
	Cancel(msg string)

	// Uncancel balances exactly one outstanding Cancel call and
	// returns the counter after the decrement.
	Uncancel() (remaining int)
}

// CallHandle is returned by Loop.CallSoon/CallAt; Cancel rescinds the
// scheduled callback if it has not yet run. Cancel is idempotent and
// safe to call after the callback already ran.
type CallHandle interface {
	Cancel()
}

// Loop is the single-threaded dispatcher driving the cooperative
// scheduler: timers, one-shot callbacks, and task identification.
type Loop interface {
	// CallSoon schedules fn to run on the loop's own goroutine at the
	// next opportunity, never inline on the caller's goroutine.
	CallSoon(fn func()) CallHandle

	// CallAt schedules fn to run on the loop's own goroutine at or
	// after deadline.
	CallAt(deadline time.Time, fn func()) CallHandle

	// CurrentTask returns the task executing the calling goroutine's
	// frame, if any.
	CurrentTask() (task Task, ok bool)
}

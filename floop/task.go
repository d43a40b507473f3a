package floop

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/ardenflow/fence/ferrors"
)

// Task is the reference implementation of runtimei.Task: a single
// cooperative task running on one goroutine, carrying an atomic
// cancellation counter so nested cancel/uncancel pairs never clobber
// each other, and a wake channel so a blocked suspension point reacts
// to Cancel immediately instead of only at its own deadline.
type Task struct {
	id         string
	loop       *Loop
	cancelling atomic.Int32
	lastMsg    atomic.Pointer[string]
	// wake is signaled by Cancel so a blocked Suspend wakes
	// immediately instead of waiting out its full duration.
	wake chan struct{}
}

func newTask(loop *Loop) *Task {
	return &Task{
		id:   uuid.NewString(),
		loop: loop,
		wake: make(chan struct{}, 1),
	}
}

// ID implements runtimei.Task.
func (t *Task) ID() string { return t.id }

// Cancelling implements runtimei.Task.
func (t *Task) Cancelling() int {
	return int(t.cancelling.Load())
}

// Cancel implements runtimei.Task: requests cancellation, delivered at
// the task's next suspension point (its next Suspend call).
func (t *Task) Cancel(msg string) {
	t.cancelling.Add(1)
	t.lastMsg.Store(&msg)
	select {
	case t.wake <- struct{}{}:
	default:
	}
}

// Uncancel implements runtimei.Task: balances exactly one outstanding
// Cancel call.
func (t *Task) Uncancel() (remaining int) {
	return int(t.cancelling.Add(-1))
}

// LastCancelMessage returns the message passed to the most recent
// Cancel call, or "" if none.
func (t *Task) LastCancelMessage() string {
	if p := t.lastMsg.Load(); p != nil {
		return *p
	}
	return ""
}

// Suspend is the task's suspension point: it blocks until either d
// elapses or a Cancel delivers, and returns ferrors.ErrCancelled iff
// the cancelling counter is above zero when it wakes. A body that
// never calls Suspend never observes a cancel, and a cancel whose
// token is rescinded before the body's next Suspend is invisible to
// it entirely.
func (t *Task) Suspend(d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-t.wake:
	}
	if t.cancelling.Load() > 0 {
		return ferrors.ErrCancelled
	}
	return nil
}

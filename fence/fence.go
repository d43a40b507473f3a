// Package fence implements a scoped cancellation primitive: a Fence
// arms a set of Triggers for the duration of a lexical block, contains
// whatever cancellation they produce, and composes with nested fences,
// outer timeout scopes, and external cancellation without corrupting
// the host task's cancellation counter.
//
// Go has no exception type to suppress, so the usual
// suppress-or-propagate design of a cancellation scope is expressed as
// an error transform: Leave takes the error the fenced body produced
// and returns either nil (suppressed) or that same error (propagated).
package fence

import (
	"sync"

	"github.com/google/uuid"

	"github.com/ardenflow/fence/ferrors"
	"github.com/ardenflow/fence/flog"
	"github.com/ardenflow/fence/runtimei"
)

// state is the Fence lifecycle.
type state int

const (
	fresh state = iota
	armed
	cancelScheduled
	exited
)

// Fence is the lexical cancellation guard. The zero value is not
// usable; construct with New.
type Fence struct {
	id       string
	loop     runtimei.Loop
	triggers []Trigger

	mu      sync.Mutex
	st      state
	task    runtimei.Task
	handles []Handle
	reasons []Reason
	tok     *token
}

// New returns a Fence that will arm triggers, in order, on Enter.
func New(loop runtimei.Loop, triggers ...Trigger) *Fence {
	return &Fence{
		id:       uuid.NewString(),
		loop:     loop,
		triggers: triggers,
	}
}

// Enter arms the fence. It must be called at
// most once per Fence, from within the task that is to be guarded.
func (f *Fence) Enter() error {
	f.mu.Lock()

	if f.st != fresh {
		f.mu.Unlock()
		return ferrors.NewPF("%w", ferrors.ErrFenceReused)
	}

	task, err := requireCurrentTask(f.loop)
	if err != nil {
		f.mu.Unlock()
		return err
	}
	f.task = task
	baseline := task.Cancelling()

	for _, trig := range f.triggers {
		if reason, fired := trig.Check(); fired {
			f.reasons = append(f.reasons, reason)
		}
	}

	if len(f.reasons) > 0 {
		f.tok = scheduleToken(f.loop, task, baseline, f.reasons[0].Message)
		f.st = cancelScheduled
		flog.D("fence[%s]: pre-triggered, cancel scheduled reasons=%d", f.id, len(f.reasons))
		f.mu.Unlock()
		return nil
	}

	f.st = armed
	onCancel := f.onTriggerCancel(task, baseline)
	triggers := f.triggers
	f.mu.Unlock()

	// Arm runs outside the lock: the contract guarantees onCancel is
	// never invoked synchronously from within Arm, and holding the
	// lock here would turn a contract violation into a deadlock
	// instead of the loud ErrInlineTrigger panic onCancel raises. No
	// defer is armed across this unlock/lock boundary, so that panic
	// unwinds without double-unlocking f.mu.
	handles := make([]Handle, 0, len(triggers))
	for _, trig := range triggers {
		handles = append(handles, trig.Arm(onCancel))
	}

	f.mu.Lock()
	f.handles = handles
	flog.D("fence[%s]: armed %d triggers", f.id, len(f.handles))
	f.mu.Unlock()
	return nil
}

// onTriggerCancel builds the callback passed to every Trigger.Arm.
func (f *Fence) onTriggerCancel(task runtimei.Task, baseline int) func(Reason) {
	return func(reason Reason) {
		f.mu.Lock()
		defer f.mu.Unlock()

		f.reasons = append(f.reasons, reason)

		if f.tok != nil {
			flog.D("fence[%s]: additional reason recorded %v", f.id, reason)
			return
		}

		if current, ok := f.loop.CurrentTask(); ok && current.ID() == task.ID() {
			panic(ferrors.NewPF("%w", ferrors.ErrInlineTrigger))
		}

		f.tok = immediateToken(task, baseline, reason.Message)
		f.st = cancelScheduled
		flog.D("fence[%s]: trigger fired, cancel delivered reason=%v", f.id, reason)
	}
}

// Leave exits the fence. bodyErr is whatever
// error the fenced block produced (nil on normal completion). Leave
// disarms every handle, resolves any pending token, and returns either
// nil (the cancellation was the fence's own and is now contained) or
// bodyErr unchanged (propagate: it belongs to an outer scope, or it is
// not a cancellation at all).
func (f *Fence) Leave(bodyErr error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.st = exited
	for _, h := range f.handles {
		h.Disarm()
	}
	f.handles = nil

	if f.tok == nil {
		return bodyErr
	}

	isCancellation := ferrors.IsCancelled(bodyErr)
	if f.tok.resolve(isCancellation) {
		return nil
	}
	return bodyErr
}

// Cancelled reports whether any trigger has recorded a reason.
func (f *Fence) Cancelled() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.reasons) > 0
}

// Reasons returns an ordered snapshot of every reason recorded so far:
// pre-check order, then callback arrival order.
func (f *Fence) Reasons() []Reason {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Reason, len(f.reasons))
	copy(out, f.reasons)
	return out
}

// CancelledBy reports whether any recorded reason carries the given
// code.
func (f *Fence) CancelledBy(code string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.reasons {
		if r.Code == code {
			return true
		}
	}
	return false
}

// Err returns the first recorded reason as an error, or nil if the
// fence was never cancelled.
func (f *Fence) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.reasons) == 0 {
		return nil
	}
	return f.reasons[0]
}

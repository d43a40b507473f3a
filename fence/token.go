package fence

import (
	"github.com/ardenflow/fence/ferrors"
	"github.com/ardenflow/fence/flog"
	"github.com/ardenflow/fence/runtimei"
)

// token encapsulates exactly one cancel/uncancel cycle against a
// specific task. It schedules or delivers the cancel, tracks whether
// delivery actually happened, and on resolve restores the task's
// counter and decides whether the Fence may suppress the exit error.
type token struct {
	task     runtimei.Task
	baseline int
	message  string

	delivered bool
	handle    runtimei.CallHandle // non-nil only for the schedule path
}

// scheduleToken posts a one-shot loop callback that calls task.Cancel
// when it runs, deferring delivery by one tick. Used on the entry-time
// pre-trigger path, where calling task.Cancel synchronously could set
// a latch that survives the later Uncancel on some runtimes — deferring
// ensures the cancel lands only after the task has returned control to
// the scheduler.
func scheduleToken(loop runtimei.Loop, task runtimei.Task, baseline int, message string) *token {
	t := &token{task: task, baseline: baseline, message: message}
	t.handle = loop.CallSoon(func() {
		task.Cancel(message)
		t.delivered = true
		flog.D("fence: scheduled cancel delivered task=%s msg=%q", task.ID(), message)
	})
	return t
}

// immediateToken calls task.Cancel right away and marks the token
// delivered. Used for cancel requests originating from loop callbacks
// (the runtime-trigger path), where the task is already suspended and
// an immediate cancel is safe.
func immediateToken(task runtimei.Task, baseline int, message string) *token {
	task.Cancel(message)
	return &token{task: task, baseline: baseline, message: message, delivered: true}
}

// resolve executes at Fence exit:
//   - if the cancel was never delivered, rescind it and return false:
//     there was nothing to suppress.
//   - otherwise uncancel and suppress iff the resulting counter is at
//     or below baseline AND the exit saw a cancellation-shaped error.
func (t *token) resolve(exitIsCancellation bool) bool {
	if !t.delivered {
		if t.handle != nil {
			t.handle.Cancel()
		}
		flog.D("fence: rescinded undelivered cancel task=%s msg=%q", t.task.ID(), t.message)
		return false
	}

	remaining := t.task.Uncancel()
	flog.D("fence: uncancel task=%s remaining=%d baseline=%d", t.task.ID(), remaining, t.baseline)
	if !exitIsCancellation {
		return false
	}
	return remaining <= t.baseline
}

// requireCurrentTask fetches the task executing the calling goroutine
// or returns ferrors.ErrNoTask.
func requireCurrentTask(loop runtimei.Loop) (runtimei.Task, error) {
	task, ok := loop.CurrentTask()
	if !ok {
		return nil, ferrors.NewPF("%w", ferrors.ErrNoTask)
	}
	return task, nil
}

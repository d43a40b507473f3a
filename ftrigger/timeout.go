// Package ftrigger provides two reference Triggers: Timeout and Event.
// Both are ordinary fence.Trigger implementations built against
// runtimei.Loop and fevent.Event; a Fence never imports this package
// directly, only through the Trigger interface, keeping the timer and
// waiter primitives separate from the state machine that consumes
// them.
package ftrigger

import (
	"fmt"
	"time"

	"github.com/ardenflow/fence/fence"
	"github.com/ardenflow/fence/runtimei"
)

// Timeout fires once delay has elapsed since Arm, or immediately on
// Check if delay is already non-positive.
type Timeout struct {
	loop  runtimei.Loop
	delay time.Duration
	code  string
}

// NewTimeout returns a Timeout trigger. code is optional; pass "" for
// none.
func NewTimeout(loop runtimei.Loop, delay time.Duration, code string) *Timeout {
	return &Timeout{loop: loop, delay: delay, code: code}
}

func (t *Timeout) reason() fence.Reason {
	return fence.Reason{
		Message:    fmt.Sprintf("timed out after %s", t.delay),
		CancelType: fence.Timeout,
		Code:       t.code,
	}
}

// Check implements fence.Trigger.
func (t *Timeout) Check() (reason fence.Reason, fired bool) {
	if t.delay <= 0 {
		return t.reason(), true
	}
	return fence.Reason{}, false
}

// Arm implements fence.Trigger: schedules a one-shot loop callback at
// now+delay that invokes onCancel from the loop dispatcher, never
// inline on the arming goroutine.
func (t *Timeout) Arm(onCancel func(fence.Reason)) fence.Handle {
	handle := t.loop.CallAt(time.Now().Add(t.delay), func() {
		onCancel(t.reason())
	})
	return &timeoutHandle{handle: handle}
}

type timeoutHandle struct {
	handle runtimei.CallHandle
}

// Disarm implements fence.Handle: cancels the scheduled callback.
// Idempotent and safe after the callback already fired.
func (h *timeoutHandle) Disarm() {
	h.handle.Cancel()
}

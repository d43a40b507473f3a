package ftrigger

import (
	"github.com/ardenflow/fence/fence"
	"github.com/ardenflow/fence/fevent"
	"github.com/ardenflow/fence/runtimei"
)

// Event fires once the underlying fevent.Event is set.
type Event struct {
	loop  runtimei.Loop
	event *fevent.Event
	code  string
}

// NewEvent returns an Event trigger bound to ev. code is optional;
// pass "" for none.
func NewEvent(loop runtimei.Loop, ev *fevent.Event, code string) *Event {
	return &Event{loop: loop, event: ev, code: code}
}

func (e *Event) reason() fence.Reason {
	return fence.Reason{
		Message:    "event was set",
		CancelType: fence.Event,
		Code:       e.code,
	}
}

// Check implements fence.Trigger.
func (e *Event) Check() (reason fence.Reason, fired bool) {
	if e.event.IsSet() {
		return e.reason(), true
	}
	return fence.Reason{}, false
}

// Arm implements fence.Trigger: subscribes a waiter that, once the
// event resolves, routes onCancel through the loop dispatcher — never
// inline on whatever goroutine called Event.Set.
func (e *Event) Arm(onCancel func(fence.Reason)) fence.Handle {
	waiter := e.event.Subscribe(func() {
		e.loop.CallSoon(func() {
			onCancel(e.reason())
		})
	})
	return &eventHandle{event: e.event, waiter: waiter}
}

type eventHandle struct {
	event  *fevent.Event
	waiter *fevent.Waiter
}

// Disarm implements fence.Handle: removes the waiter from the event's
// waiter list whether or not it has already resolved.
func (h *eventHandle) Disarm() {
	h.event.Unsubscribe(h.waiter)
}

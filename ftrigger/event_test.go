package ftrigger_test

import (
	"testing"
	"time"

	"github.com/ardenflow/fence/fence"
	"github.com/ardenflow/fence/fevent"
	"github.com/ardenflow/fence/floop"
	"github.com/ardenflow/fence/ftrigger"
)

func TestEventCheckFiresWhenAlreadySet(t *testing.T) {
	loop := floop.New()
	defer loop.Close()

	ev := fevent.New()
	ev.Set()

	trig := ftrigger.NewEvent(loop, ev, "")
	reason, fired := trig.Check()
	if !fired {
		t.Fatalf("want fired")
	}
	if reason.CancelType != fence.Event {
		t.Errorf("want CancelType Event, got %v", reason.CancelType)
	}
}

func TestEventCheckDoesNotFireWhenUnset(t *testing.T) {
	loop := floop.New()
	defer loop.Close()

	ev := fevent.New()
	trig := ftrigger.NewEvent(loop, ev, "")
	if _, fired := trig.Check(); fired {
		t.Errorf("want not fired")
	}
}

func TestEventArmFiresOnSet(t *testing.T) {
	loop := floop.New()
	defer loop.Close()

	ev := fevent.New()
	trig := ftrigger.NewEvent(loop, ev, "armed-code")
	fired := make(chan fence.Reason, 1)
	handle := trig.Arm(func(r fence.Reason) { fired <- r })
	defer handle.Disarm()

	ev.Set()

	select {
	case r := <-fired:
		if r.Code != "armed-code" {
			t.Errorf("want code armed-code, got %q", r.Code)
		}
	case <-time.After(time.Second):
		t.Fatal("onCancel never fired")
	}
}

func TestEventDisarmBeforeSetPreventsFire(t *testing.T) {
	loop := floop.New()
	defer loop.Close()

	ev := fevent.New()
	trig := ftrigger.NewEvent(loop, ev, "")
	fired := make(chan struct{}, 1)
	handle := trig.Arm(func(fence.Reason) { fired <- struct{}{} })

	handle.Disarm()
	ev.Set()

	select {
	case <-fired:
		t.Fatal("onCancel fired after Disarm")
	case <-time.After(20 * time.Millisecond):
	}
}

func TestEventDisarmIsIdempotentAfterFiring(t *testing.T) {
	loop := floop.New()
	defer loop.Close()

	ev := fevent.New()
	trig := ftrigger.NewEvent(loop, ev, "")
	fired := make(chan struct{})
	handle := trig.Arm(func(fence.Reason) { close(fired) })

	ev.Set()
	<-fired
	handle.Disarm()
	handle.Disarm() // idempotent
}

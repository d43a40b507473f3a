package fevent_test

import (
	"testing"
	"time"

	"github.com/ardenflow/fence/fevent"
)

func TestSubscribeResolvesOnSet(t *testing.T) {
	e := fevent.New()
	done := make(chan struct{})
	e.Subscribe(func() { close(done) })

	e.Set()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("waiter was not resolved")
	}
}

func TestSubscribeAfterSetResolvesImmediately(t *testing.T) {
	e := fevent.New()
	e.Set()

	done := make(chan struct{})
	e.Subscribe(func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("waiter subscribed after Set was not resolved")
	}
}

func TestUnsubscribeBeforeSetPreventsResolve(t *testing.T) {
	e := fevent.New()
	called := make(chan struct{}, 1)
	w := e.Subscribe(func() { called <- struct{}{} })
	e.Unsubscribe(w)

	e.Set()

	select {
	case <-called:
		t.Errorf("unsubscribed waiter must not resolve")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestUnsubscribeAfterResolveIsSafe(t *testing.T) {
	e := fevent.New()
	done := make(chan struct{})
	w := e.Subscribe(func() { close(done) })

	e.Set()
	<-done

	e.Unsubscribe(w) // must not panic
	e.Unsubscribe(w) // idempotent
}

func TestSetIsIdempotent(t *testing.T) {
	e := fevent.New()
	var n int
	done := make(chan struct{})
	e.Subscribe(func() {
		n++
		close(done)
	})
	e.Set()
	<-done
	e.Set()
	e.Set()

	time.Sleep(20 * time.Millisecond)
	if n != 1 {
		t.Errorf("want waiter resolved exactly once, got %d", n)
	}
}

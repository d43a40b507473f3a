// Package fevent provides a settable flag with a waiter list: setting
// the event resolves every current waiter, but never removes a waiter
// on its own. Instead of a private waiter list an observer has to reach
// into, Event exposes an explicit Subscribe/Unsubscribe contract keyed
// by waiter identity, so removal is always safe regardless of whether
// the waiter already resolved or the event already fired.
package fevent

import (
	"sync"

	"github.com/google/uuid"
)

// Waiter is a single subscription on an Event: its resolve func is invoked
// asynchronously (never inline on the subscribing goroutine) the
// first time the event is set after Subscribe.
type Waiter struct {
	id      string
	resolve func()
}

// Event is a one-shot-settable flag with an explicit waiter-list
// contract.
type Event struct {
	mu      sync.Mutex
	isSet   bool
	waiters map[string]*Waiter
}

// New returns an unset Event.
func New() *Event {
	return &Event{waiters: make(map[string]*Waiter)}
}

// IsSet reports whether Set has been called.
func (e *Event) IsSet() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.isSet
}

// Set marks the event as set and asynchronously resolves every
// currently-subscribed waiter exactly once, each on its own goroutine
// so no waiter's resolve runs inline on the caller of Set.
func (e *Event) Set() {
	e.mu.Lock()
	if e.isSet {
		e.mu.Unlock()
		return
	}
	e.isSet = true
	waiters := make([]*Waiter, 0, len(e.waiters))
	for _, w := range e.waiters {
		waiters = append(waiters, w)
	}
	e.mu.Unlock()

	for _, w := range waiters {
		go w.resolve()
	}
}

// Subscribe registers resolve to be invoked once, asynchronously, the
// next time the event becomes set. If the event is already set,
// resolve is dispatched immediately (still asynchronously). Subscribe
// returns the Waiter so the caller can Unsubscribe it later.
func (e *Event) Subscribe(resolve func()) *Waiter {
	w := &Waiter{id: uuid.NewString(), resolve: resolve}

	e.mu.Lock()
	alreadySet := e.isSet
	if !alreadySet {
		e.waiters[w.id] = w
	}
	e.mu.Unlock()

	if alreadySet {
		go w.resolve()
	}
	return w
}

// Unsubscribe removes w from the waiter list whether or not it has
// already resolved or the event has already been set; it is always
// safe to call.
func (e *Event) Unsubscribe(w *Waiter) {
	if w == nil {
		return
	}
	e.mu.Lock()
	delete(e.waiters, w.id)
	e.mu.Unlock()
}

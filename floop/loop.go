// Package floop is a reference implementation of runtimei.Loop/Task: a
// single-goroutine cooperative dispatcher standing in for a host event
// loop. It exists so the fence package is buildable and testable end
// to end; fence itself depends only on runtimei.
//
// A single dispatch goroutine runs every CallSoon/CallAt callback, one
// at a time. Task bodies do not run on it: Go starts each body on its
// own goroutine, so a body, including its Suspend calls, runs
// concurrently with the dispatcher. A task observes a cancel only at
// its next Suspend.
package floop

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/ardenflow/fence/runtimei"
)

// Loop is the reference single-goroutine cooperative scheduler.
type Loop struct {
	commands chan func()

	mu    sync.Mutex
	tasks map[uint64]*Task

	closeOnce sync.Once
	done      chan struct{}
}

var _ runtimei.Loop = (*Loop)(nil)

// New starts a Loop's dispatcher goroutine and returns the running
// Loop.
func New() *Loop {
	l := &Loop{
		commands: make(chan func(), 64),
		tasks:    make(map[uint64]*Task),
		done:     make(chan struct{}),
	}
	go l.dispatch()
	return l
}

func (l *Loop) dispatch() {
	for {
		select {
		case fn := <-l.commands:
			select {
			case <-l.done:
				return
			default:
			}
			fn()
		case <-l.done:
			return
		}
	}
}

// Close stops the dispatcher goroutine. Pending CallAt/CallSoon
// callbacks that have not yet run are not invoked.
func (l *Loop) Close() {
	l.closeOnce.Do(func() { close(l.done) })
}

// callHandle states: exactly one of Cancel or the dispatched run wins
// the CompareAndSwap out of pending, so a Cancel racing the dispatcher
// can never observe "not yet cancelled" and let fn run anyway.
const (
	callPending int32 = iota
	callCancelled
	callRan
)

// callHandle implements runtimei.CallHandle for both CallSoon and
// CallAt. state is advanced with a single CompareAndSwap shared by
// Cancel and the dispatched callback, so fn runs iff Cancel never won
// the race; cancelling a timer that has not fired yet additionally
// stops it from ever reaching the command channel.
type callHandle struct {
	state atomic.Int32
	timer *time.Timer // nil for CallSoon handles
}

func (h *callHandle) Cancel() {
	h.state.CompareAndSwap(callPending, callCancelled)
	if h.timer != nil {
		h.timer.Stop()
	}
}

// CallSoon implements runtimei.Loop: schedules fn on the dispatcher
// goroutine at the next opportunity, never inline on the caller.
func (l *Loop) CallSoon(fn func()) runtimei.CallHandle {
	h := &callHandle{}
	run := func() {
		if h.state.CompareAndSwap(callPending, callRan) {
			fn()
		}
	}
	select {
	case l.commands <- run:
	case <-l.done:
	}
	return h
}

// CallAt implements runtimei.Loop: schedules fn on the dispatcher
// goroutine at or after deadline.
func (l *Loop) CallAt(deadline time.Time, fn func()) runtimei.CallHandle {
	h := &callHandle{}
	d := time.Until(deadline)
	if d < 0 {
		d = 0
	}
	run := func() {
		if h.state.CompareAndSwap(callPending, callRan) {
			fn()
		}
	}
	h.timer = time.AfterFunc(d, func() {
		select {
		case l.commands <- run:
		case <-l.done:
		}
	})
	return h
}

// CurrentTask implements runtimei.Loop by looking up the calling
// goroutine's id in the task registry.
func (l *Loop) CurrentTask() (task runtimei.Task, ok bool) {
	id := goroutineID()
	l.mu.Lock()
	defer l.mu.Unlock()
	t, found := l.tasks[id]
	if !found {
		return nil, false
	}
	return t, true
}

// Go launches body as a new Task running on its own goroutine,
// registered so CurrentTask can find it, and blocks until body
// returns.
func (l *Loop) Go(body func(t *Task) error) error {
	t := newTask(l)
	id := make(chan uint64, 1)
	ready := make(chan struct{})
	errCh := make(chan error, 1)
	go func() {
		id <- goroutineID()
		<-ready // wait for registration before the body can suspend
		errCh <- body(t)
	}()
	gid := <-id
	l.mu.Lock()
	l.tasks[gid] = t
	l.mu.Unlock()
	close(ready)
	defer func() {
		l.mu.Lock()
		delete(l.tasks, gid)
		l.mu.Unlock()
	}()
	return <-errCh
}

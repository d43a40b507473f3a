// Command fencedemo wires floop, fence, and both reference triggers
// together end to end for manual inspection.
package main

import (
	"fmt"
	"time"

	"github.com/ardenflow/fence/fence"
	"github.com/ardenflow/fence/fevent"
	"github.com/ardenflow/fence/ferrors"
	"github.com/ardenflow/fence/floop"
	"github.com/ardenflow/fence/ftrigger"
)

func main() {
	loop := floop.New()
	defer loop.Close()

	runTimeoutDemo(loop)
	runEventDemo(loop)
}

func runTimeoutDemo(loop *floop.Loop) {
	err := loop.Go(func(t *floop.Task) error {
		f := fence.New(loop, ftrigger.NewTimeout(loop, 20*time.Millisecond, "demo-timeout"))
		if err := f.Enter(); err != nil {
			return err
		}

		bodyErr := t.Suspend(time.Second)
		err := f.Leave(bodyErr)
		fmt.Printf("timeout demo: cancelled=%v reasons=%v err=%v\n", f.Cancelled(), f.Reasons(), err)
		return err
	})
	if err != nil && !ferrors.IsCancelled(err) {
		fmt.Println("timeout demo: unexpected error:", err)
	}
}

func runEventDemo(loop *floop.Loop) {
	ev := fevent.New()
	go func() {
		time.Sleep(10 * time.Millisecond)
		ev.Set()
	}()

	err := loop.Go(func(t *floop.Task) error {
		f := fence.New(loop, ftrigger.NewEvent(loop, ev, "demo-event"))
		if err := f.Enter(); err != nil {
			return err
		}

		bodyErr := t.Suspend(time.Second)
		err := f.Leave(bodyErr)
		fmt.Printf("event demo: cancelled=%v reasons=%v err=%v\n", f.Cancelled(), f.Reasons(), err)
		return err
	})
	if err != nil {
		fmt.Println("event demo: unexpected error:", err)
	}
}

package ferrors

import "errors"

// ErrFenceReused indicates Enter was invoked on a Fence that was
// already entered or already exited.
//
//	if errors.Is(err, ferrors.ErrFenceReused) …
var ErrFenceReused = errors.New("fence: already entered or exited")

// ErrNoTask indicates a Fence was entered outside of any task.
var ErrNoTask = errors.New("fence: no current task")

// ErrInlineTrigger indicates a trigger invoked its on-cancel callback
// synchronously, from within the fenced task's own frame, instead of
// routing it through the loop dispatcher.
var ErrInlineTrigger = errors.New("fence: trigger callback fired inline")

// ErrCancelled is the sentinel a Task.Suspend returns when the task's
// cancelling counter is above zero as Suspend wakes.
var ErrCancelled = errors.New("fence: task cancelled")

// IsCancelled reports whether err is, or wraps, ErrCancelled.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}

// IsFenceReused reports whether err is, or wraps, ErrFenceReused.
func IsFenceReused(err error) bool {
	return errors.Is(err, ErrFenceReused)
}

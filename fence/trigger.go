package fence

// Trigger is the capability a Fence arms for the duration of its
// lexical block. A Trigger is reusable across fences but a Fence never
// calls Arm twice on the same Trigger within one lifetime.
type Trigger interface {
	// Check is a synchronous pre-check, called at Fence entry before
	// any arming. It returns a Reason if the trigger condition already
	// holds.
	Check() (reason Reason, fired bool)

	// Arm registers onCancel to be invoked once the trigger condition
	// becomes true. onCancel MUST be dispatched from the event loop
	// dispatcher, never called synchronously from within Arm or from
	// the fenced task's own frame. Arm returns a Handle whose Disarm
	// releases every resource it allocated.
	Arm(onCancel func(reason Reason)) Handle
}

// Handle is returned by Trigger.Arm; Disarm is idempotent and safe to
// call after the trigger already fired.
type Handle interface {
	Disarm()
}

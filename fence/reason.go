package fence

// CancelType categorizes why a Fence's trigger fired.
type CancelType int

const (
	// Timeout marks a reason produced by a time-based trigger.
	Timeout CancelType = iota
	// Event marks a reason produced by an externally-signaled trigger.
	Event
)

func (c CancelType) String() string {
	switch c {
	case Timeout:
		return "TIMEOUT"
	case Event:
		return "EVENT"
	default:
		return "UNKNOWN"
	}
}

// Reason is an immutable record of one cancellation event observed by
// a Fence. Two Reasons with identical fields are interchangeable;
// Reason identity is never meaningful, only its fields are —
// construct a fresh Reason on every Check/Arm call rather than caching
// one.
type Reason struct {
	// Message is a human-readable description, e.g. "timed out after
	// 500ms".
	Message string
	// CancelType is TIMEOUT or EVENT.
	CancelType CancelType
	// Code is an optional opaque identifier for programmatic matching;
	// "" when unspecified.
	Code string
}

// Error implements error so a Reason can be logged, wrapped, or
// returned directly wherever an error is expected.
func (r Reason) Error() string {
	return r.Message
}

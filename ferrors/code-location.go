// Package ferrors provides small, stack-annotated error helpers for the
// fence module.
//
// It mirrors the shape of a conventional annotated-error package: a
// sentinel error is declared once and matched with errors.Is, while
// misuse errors are built with NewPF so the message carries the
// package/function that detected the problem.
package ferrors

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
)

const newPFSkipFrames = 2

// codeLocation returns "pkg.Func" for the stack frame skipFrames levels
// up, counted as runtime.Caller does: 0 is codeLocation itself, 1 its
// caller.
func codeLocation(skipFrames int) (location string) {
	pc, _, _, ok := runtime.Caller(skipFrames)
	if !ok {
		return "unknown"
	}
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "unknown"
	}
	name := fn.Name()
	// name looks like "github.com/org/fence/fence.(*Fence).Enter"
	if slash := strings.LastIndex(name, "/"); slash >= 0 {
		name = name[slash+1:]
	}
	return filepath.ToSlash(name)
}

// NewPF returns an error prefixed with the calling function's
// package-qualified name, so a misuse error is self-locating without a
// full stack trace.
func NewPF(format string, a ...any) error {
	loc := codeLocation(newPFSkipFrames)
	return fmt.Errorf(loc+": "+format, a...)
}

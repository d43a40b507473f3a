// Package flog provides a tiny, off-by-default debug trace facility for
// the fence state machine: a single gate, a single writer, never
// required for correctness.
package flog

import (
	"fmt"
	"log"
	"os"
	"sync"
)

const enableEnvVar = "FENCE_DEBUG"

var (
	once    sync.Once
	enabled bool
	logger  = log.New(os.Stderr, "", log.Lmicroseconds)
)

func isEnabled() bool {
	once.Do(func() {
		enabled = os.Getenv(enableEnvVar) != ""
	})
	return enabled
}

// D prints a trace line when FENCE_DEBUG is set in the environment.
// It is meant for diagnosing the cancellation state machine, never for
// control flow.
func D(format string, a ...any) {
	if !isEnabled() {
		return
	}
	logger.Output(2, fmt.Sprintf(format, a...))
}

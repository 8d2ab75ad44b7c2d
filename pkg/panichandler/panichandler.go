// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package panichandler

import (
	"fmt"
	"log"
	"runtime/debug"
)

// PrintStacks controls whether a stack trace is dumped along with the log line.
var PrintStacks = true

func logPanic(debugStr string, recoverVal any) {
	log.Printf("[panic] in %s: %v\n", debugStr, recoverVal)
	if PrintStacks {
		debug.PrintStack()
	}
}

// LogPanic logs a recovered panic and swallows it. Use it at the top of goroutines.
func LogPanic(debugStr string, recoverVal any) {
	if recoverVal == nil {
		return
	}
	logPanic(debugStr, recoverVal)
}

// PanicHandler logs a recovered panic and returns it as an error. Panics carrying
// an error are wrapped, so errors.Is and errors.As still reach the original.
func PanicHandler(debugStr string, recoverVal any) error {
	if recoverVal == nil {
		return nil
	}
	logPanic(debugStr, recoverVal)
	if err, ok := recoverVal.(error); ok {
		return fmt.Errorf("panic in %s: %w", debugStr, err)
	}
	return fmt.Errorf("panic in %s: %v", debugStr, recoverVal)
}

// Package logger provides verbose logging for the atsfit CLI.
// When verbose mode is enabled via the --verbose flag, messages are
// printed to stderr so users can follow extraction, scoring, assistant
// calls and rendering as they happen.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for verbose logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

func logf(prefix, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, prefix+format+"\n", args...)
	}
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	logf("[DEBUG] ", format, args...)
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	logf("[INFO] ", format, args...)
}

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) {
	logf("[WARN] ", format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	logf("\n=== ", "%s ===", name)
}

// Stage logs the start of a pipeline stage and returns a func that logs
// its duration. Typical use: defer logger.Stage("extract")().
func Stage(name string) func() {
	if !IsVerbose() {
		return func() {}
	}
	start := time.Now()
	Debug("%s: start", name)
	return func() {
		Debug("%s: done in %s", name, time.Since(start).Round(time.Millisecond))
	}
}

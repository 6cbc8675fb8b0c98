// Package logging provides colored, leveled log output for slidemaker.
//
// All output functions write a prefixed, color-coded line to stderr so
// command results on stdout stay machine-readable. Slide tasks run
// concurrently, so every line is written under a mutex. Debug output is
// suppressed unless verbose mode is enabled via SetVerbose(true).
package logging

import (
	"fmt"
	"os"
	"sync"

	"github.com/fatih/color"
)

var (
	mu      sync.Mutex
	verbose bool
)

// Color printers for each log level.
var (
	infoPrefix    = color.New(color.FgBlue).SprintFunc()
	successPrefix = color.New(color.FgGreen).SprintFunc()
	warnPrefix    = color.New(color.FgYellow).SprintFunc()
	errorPrefix   = color.New(color.FgRed).SprintFunc()
	phasePrefix   = color.New(color.FgCyan).SprintFunc()
	debugPrefix   = color.New(color.FgBlue).SprintFunc()
	slidePrefix   = color.New(color.FgMagenta).SprintFunc()
)

// SetVerbose enables or disables Debug output.
func SetVerbose(v bool) {
	mu.Lock()
	verbose = v
	mu.Unlock()
}

func emit(lines ...string) {
	mu.Lock()
	defer mu.Unlock()
	for _, line := range lines {
		fmt.Fprintln(os.Stderr, line)
	}
}

// Info prints an informational message in blue.
func Info(msg string) {
	emit(infoPrefix("[INFO]") + " " + msg)
}

// Success prints a success message in green.
func Success(msg string) {
	emit(successPrefix("[SUCCESS]") + " " + msg)
}

// Warn prints a warning message in yellow.
func Warn(msg string) {
	emit(warnPrefix("[WARN]") + " " + msg)
}

// Error prints an error message in red.
func Error(msg string) {
	emit(errorPrefix("[ERROR]") + " " + msg)
}

// Phase prints a phase header in cyan, surrounded by separator lines.
func Phase(msg string) {
	sep := phasePrefix("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	emit(sep, phasePrefix("[PHASE]")+" "+msg, sep)
}

// Slide prints a progress line tagged with a slide id.
func Slide(id string, format string, args ...any) {
	emit(slidePrefix("["+id+"]") + " " + fmt.Sprintf(format, args...))
}

// Debug prints a debug message in blue, only when verbose mode is enabled.
func Debug(msg string) {
	mu.Lock()
	v := verbose
	mu.Unlock()
	if !v {
		return
	}
	emit(debugPrefix("[DEBUG]") + " " + msg)
}

// FormatDuration converts a duration in seconds to a human-readable string.
//
// Examples:
//
//	FormatDuration(0)    => "0s"
//	FormatDuration(90)   => "1m 30s"
//	FormatDuration(3661) => "1h 1m 1s"
func FormatDuration(seconds int) string {
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	if seconds < 3600 {
		return fmt.Sprintf("%dm %ds", seconds/60, seconds%60)
	}
	return fmt.Sprintf("%dh %dm %ds", seconds/3600, (seconds%3600)/60, seconds%60)
}

// Package exitcode defines named exit codes for the slidemaker CLI.
//
// Each code maps a specific termination condition to a numeric value
// recognized by shell scripts and CI pipelines.
package exitcode

import (
	"context"
	"errors"

	"github.com/jeffsharris/slidemaker/internal/ai"
	"github.com/jeffsharris/slidemaker/internal/pipeline"
)

const (
	Success           = 0   // Every slide approved
	Error             = 1   // Invalid args, file not found, misconfiguration
	AttemptsExhausted = 2   // A slide used its whole attempt budget
	RemoteFailure     = 3   // A remote call failed fatally or ran out of retries
	Precondition      = 4   // Run data is not ready for the command
	Interrupted       = 130 // SIGINT/SIGTERM received
)

// Name returns the human-readable name for the given exit code.
// Unknown codes return "unknown".
func Name(code int) string {
	switch code {
	case Success:
		return "Success"
	case Error:
		return "Error"
	case AttemptsExhausted:
		return "AttemptsExhausted"
	case RemoteFailure:
		return "RemoteFailure"
	case Precondition:
		return "Precondition"
	case Interrupted:
		return "Interrupted"
	default:
		return "unknown"
	}
}

// FromError maps a command error to its exit code. When err joins
// several slide failures the most severe wins, in the order
// interrupted, remote failure, attempts exhausted, precondition.
func FromError(err error) int {
	if err == nil {
		return Success
	}
	if errors.Is(err, context.Canceled) {
		return Interrupted
	}
	var remote *ai.RemoteError
	if errors.As(err, &remote) {
		if remote.Kind == ai.KindCanceled {
			return Interrupted
		}
		return RemoteFailure
	}
	var exhausted *pipeline.AttemptsExhaustedError
	if errors.As(err, &exhausted) {
		return AttemptsExhausted
	}
	var pre *pipeline.PreconditionError
	if errors.As(err, &pre) {
		return Precondition
	}
	return Error
}

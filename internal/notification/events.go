package notification

import (
	"fmt"
	"time"

	"github.com/jeffsharris/slidemaker/internal/exitcode"
)

// Event types sent when generate finishes.
const (
	EventCompleted         = "completed"
	EventAttemptsExhausted = "attempts_exhausted"
	EventRemoteFailure     = "remote_failure"
	EventPrecondition      = "precondition_failed"
	EventInterrupted       = "interrupted"
	EventFailed            = "failed"
)

// Event is the JSON body posted to the webhook.
type Event struct {
	Event     string `json:"event"`
	RunID     string `json:"run_id"`
	Session   string `json:"session"`
	Approved  int    `json:"approved"`
	Total     int    `json:"total"`
	ExitCode  int    `json:"exit_code"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// EventForExitCode names the event for a generate exit code.
func EventForExitCode(code int) string {
	switch code {
	case exitcode.Success:
		return EventCompleted
	case exitcode.AttemptsExhausted:
		return EventAttemptsExhausted
	case exitcode.RemoteFailure:
		return EventRemoteFailure
	case exitcode.Precondition:
		return EventPrecondition
	case exitcode.Interrupted:
		return EventInterrupted
	default:
		return EventFailed
	}
}

// NewEvent builds the event for a finished generate run.
func NewEvent(runID, session string, approved, total, code int, now time.Time) Event {
	name := EventForExitCode(code)
	return Event{
		Event:     name,
		RunID:     runID,
		Session:   session,
		Approved:  approved,
		Total:     total,
		ExitCode:  code,
		Message:   FormatEvent(name, runID, approved, total, code),
		Timestamp: now.UTC().Format(time.RFC3339),
	}
}

// FormatEvent creates a notification message for the given event.
func FormatEvent(event string, runID string, approved, total int, exitCode int) string {
	switch event {
	case EventCompleted:
		return fmt.Sprintf("✅ slidemaker [%s] all %d slides approved (exit %d)", runID, total, exitCode)
	case EventAttemptsExhausted:
		return fmt.Sprintf("⚠️ slidemaker [%s] %d/%d slides approved; attempt budget exhausted (exit %d)", runID, approved, total, exitCode)
	case EventRemoteFailure:
		return fmt.Sprintf("🚨 slidemaker [%s] %d/%d slides approved; image or grading service failed (exit %d)", runID, approved, total, exitCode)
	case EventPrecondition:
		return fmt.Sprintf("❌ slidemaker [%s] run not ready for generation (exit %d)", runID, exitCode)
	case EventInterrupted:
		return fmt.Sprintf("⏸️ slidemaker [%s] interrupted at %d/%d approved. Re-run generate to resume (exit %d)", runID, approved, total, exitCode)
	default:
		return fmt.Sprintf("ℹ️ slidemaker [%s] event: %s, %d/%d approved (exit %d)", runID, event, approved, total, exitCode)
	}
}

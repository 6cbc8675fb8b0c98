package notification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jeffsharris/slidemaker/internal/exitcode"
)

func TestEventForExitCode(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{exitcode.Success, EventCompleted},
		{exitcode.AttemptsExhausted, EventAttemptsExhausted},
		{exitcode.RemoteFailure, EventRemoteFailure},
		{exitcode.Precondition, EventPrecondition},
		{exitcode.Interrupted, EventInterrupted},
		{exitcode.Error, EventFailed},
		{42, EventFailed},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, EventForExitCode(tt.code))
		})
	}
}

func TestFormatEvent(t *testing.T) {
	tests := []struct {
		event    string
		contains []string
	}{
		{EventCompleted, []string{"run42", "all 4 slides approved", "exit 0"}},
		{EventAttemptsExhausted, []string{"3/4", "attempt budget"}},
		{EventRemoteFailure, []string{"3/4", "service failed"}},
		{EventPrecondition, []string{"not ready"}},
		{EventInterrupted, []string{"interrupted", "resume"}},
		{"custom", []string{"event: custom"}},
	}
	for _, tt := range tests {
		t.Run(tt.event, func(t *testing.T) {
			code := 0
			if tt.event != EventCompleted {
				code = 2
			}
			msg := FormatEvent(tt.event, "run42", 3, 4, code)
			for _, want := range tt.contains {
				assert.Contains(t, msg, want)
			}
		})
	}
}

func TestNewEvent(t *testing.T) {
	ev := NewEvent("run42", "sess", 4, 4, exitcode.Success, time.Date(2026, 5, 6, 7, 8, 9, 0, time.FixedZone("x", 3600)))

	assert.Equal(t, EventCompleted, ev.Event)
	assert.Equal(t, "run42", ev.RunID)
	assert.Equal(t, "sess", ev.Session)
	assert.Equal(t, 4, ev.Approved)
	assert.Equal(t, 4, ev.Total)
	assert.Equal(t, "2026-05-06T06:08:09Z", ev.Timestamp)
	assert.Contains(t, ev.Message, "all 4 slides approved")
}

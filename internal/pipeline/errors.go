package pipeline

import "fmt"

// PreconditionError reports run or slide data that generation cannot
// start from.
type PreconditionError struct {
	SlideID string
	Reason  string
}

func (e *PreconditionError) Error() string {
	if e.SlideID == "" {
		return e.Reason
	}
	return fmt.Sprintf("slide %s: %s", e.SlideID, e.Reason)
}

// ErrNoSlides is returned when a run has nothing to generate.
var ErrNoSlides = &PreconditionError{Reason: "no slides found; run 'outline' and 'draft' first"}

// AttemptsExhaustedError reports a slide that used its whole attempt
// budget without an approved image.
type AttemptsExhaustedError struct {
	SlideID string
	Max     int
}

func (e *AttemptsExhaustedError) Error() string {
	return fmt.Sprintf("slide %s exceeded max attempts (%d)", e.SlideID, e.Max)
}

// SlideError wraps a remote failure with the slide, stage and attempt it
// happened in.
type SlideError struct {
	SlideID string
	Stage   string
	Attempt int
	Err     error
}

func (e *SlideError) Error() string {
	return fmt.Sprintf("slide %s attempt %d: %s: %v", e.SlideID, e.Attempt, e.Stage, e.Err)
}

func (e *SlideError) Unwrap() error {
	return e.Err
}

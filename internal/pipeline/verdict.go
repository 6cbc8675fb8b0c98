package pipeline

import (
	"github.com/jeffsharris/slidemaker/internal/prompt"
	"github.com/jeffsharris/slidemaker/internal/state"
)

// Action is what the state machine does after a grade.
type Action string

const (
	ActionApprove Action = "approve"
	ActionRefine  Action = "refine"
)

// GradeDecision is the outcome of processing one grade.
type GradeDecision struct {
	Action     Action
	NextPrompt string
	Feedback   []string
}

// ProcessGrade turns a grade into the next step. Passing grades approve
// the attempt. Failing grades refine the base prompt with the grader's
// improvements, or its failures when it gave no improvements.
func ProcessGrade(basePrompt string, grade state.Grade) GradeDecision {
	if grade.Pass {
		return GradeDecision{Action: ActionApprove}
	}

	feedback := grade.Improvements
	if len(feedback) == 0 {
		feedback = grade.Failures
	}
	return GradeDecision{
		Action:     ActionRefine,
		NextPrompt: prompt.RefinePrompt(basePrompt, feedback),
		Feedback:   feedback,
	}
}

// AttemptAllowed reports whether attempt n fits the budget. A budget of
// zero or less is unlimited.
func AttemptAllowed(n, maxAttempts int) bool {
	return maxAttempts <= 0 || n <= maxAttempts
}

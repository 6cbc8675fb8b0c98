package prompt

import _ "embed"

// Template files embedded at compile time
var (
	//go:embed templates/grader-instructions.txt
	GraderInstructions string

	//go:embed templates/grader-input.txt
	GraderInputTemplate string

	//go:embed templates/intake.md
	IntakeTemplate string
)

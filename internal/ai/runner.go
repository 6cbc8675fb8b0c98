package ai

import (
	"context"

	"github.com/jeffsharris/slidemaker/internal/state"
)

// ImageRequest describes one image generation call.
type ImageRequest struct {
	Prompt     string
	Model      string
	Size       string
	Quality    string
	Background string
}

// GradeRequest describes one grading call.
type GradeRequest struct {
	Image  []byte
	Title  string
	Prompt string
	Rubric []string
	Model  string
}

// ImageGenerator produces PNG bytes for a prompt.
type ImageGenerator interface {
	Generate(ctx context.Context, req ImageRequest) ([]byte, error)
}

// Grader judges an image against a rubric.
type Grader interface {
	Grade(ctx context.Context, req GradeRequest) (state.Grade, error)
}

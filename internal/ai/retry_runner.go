package ai

import (
	"context"

	"github.com/jeffsharris/slidemaker/internal/state"
)

// RetryImageGenerator wraps any ImageGenerator with RetryWithBackoff retry logic.
type RetryImageGenerator struct {
	Inner    ImageGenerator
	RetryCfg RetryConfig
}

// Generate delegates to the inner generator, retrying retryable failures.
func (r *RetryImageGenerator) Generate(ctx context.Context, req ImageRequest) ([]byte, error) {
	return RetryWithBackoff(ctx, r.RetryCfg, IsRetryable, func(ctx context.Context) ([]byte, error) {
		return r.Inner.Generate(ctx, req)
	})
}

// RetryGrader wraps any Grader with RetryWithBackoff retry logic.
type RetryGrader struct {
	Inner    Grader
	RetryCfg RetryConfig
}

// Grade delegates to the inner grader, retrying retryable failures.
func (r *RetryGrader) Grade(ctx context.Context, req GradeRequest) (state.Grade, error) {
	return RetryWithBackoff(ctx, r.RetryCfg, IsRetryable, func(ctx context.Context) (state.Grade, error) {
		return r.Inner.Grade(ctx, req)
	})
}

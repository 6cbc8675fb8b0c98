// Package pipeline runs the per-slide generate-grade-refine loop for every
// slide of a run, sharing one cap on concurrent remote calls.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/jeffsharris/slidemaker/internal/ai"
	"github.com/jeffsharris/slidemaker/internal/logging"
	"github.com/jeffsharris/slidemaker/internal/state"
)

// Options holds the per-invocation generation settings.
type Options struct {
	ImageModel  string
	GraderModel string
	Quality     string
	Background  string
	MaxAttempts int
	Concurrency int
	Session     string
}

// Outcome is how a slide task finished.
type Outcome int

const (
	OutcomeFailed Outcome = iota
	OutcomeApproved
	OutcomeSkipped
)

// Summary aggregates the slide outcomes of one RunAll call.
type Summary struct {
	Total           int
	Approved        int
	AlreadyApproved int
	Failed          []string
	Attempts        int
	Duration        time.Duration
}

// Runner drives generation for one run.
type Runner struct {
	Run       *state.RunState
	Generator ai.ImageGenerator
	Grader    ai.Grader
	Opts      Options

	now      func() time.Time
	attempts atomic.Int64
}

// NewRunner creates a Runner.
func NewRunner(run *state.RunState, gen ai.ImageGenerator, grader ai.Grader, opts Options) *Runner {
	return &Runner{Run: run, Generator: gen, Grader: grader, Opts: opts, now: time.Now}
}

// RunAll processes every slide concurrently and waits for all of them.
// A failing slide never cancels its siblings; every failure is joined
// into the returned error in slide order.
func (r *Runner) RunAll(ctx context.Context) (Summary, error) {
	start := r.clock()
	slides := state.OrderSlides(r.Run.Slides())
	if len(slides) == 0 {
		return Summary{}, ErrNoSlides
	}

	concurrency := r.Opts.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	limiter := semaphore.NewWeighted(int64(concurrency))

	logging.Info(fmt.Sprintf("Processing %d slides with %d concurrent remote calls", len(slides), concurrency))

	outcomes := make([]Outcome, len(slides))
	errs := make([]error, len(slides))

	var g errgroup.Group
	for i, slide := range slides {
		g.Go(func() error {
			outcome, err := r.processSlide(ctx, slide.ID, limiter)
			outcomes[i] = outcome
			if err != nil {
				errs[i] = err
				logging.Error(err.Error())
			}
			return nil
		})
	}
	_ = g.Wait()

	summary := Summary{Total: len(slides), Attempts: int(r.attempts.Load())}
	for i, outcome := range outcomes {
		switch outcome {
		case OutcomeApproved:
			summary.Approved++
		case OutcomeSkipped:
			summary.AlreadyApproved++
		default:
			summary.Failed = append(summary.Failed, slides[i].ID)
		}
	}
	summary.Duration = r.clock().Sub(start)

	return summary, errors.Join(errs...)
}

func (r *Runner) clock() time.Time {
	if r.now == nil {
		return time.Now()
	}
	return r.now()
}

// withSlot runs fn while holding one unit of the shared limiter.
func withSlot[T any](ctx context.Context, limiter *semaphore.Weighted, fn func() (T, error)) (T, error) {
	var zero T
	if err := limiter.Acquire(ctx, 1); err != nil {
		return zero, err
	}
	defer limiter.Release(1)
	return fn()
}

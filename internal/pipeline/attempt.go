package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/jeffsharris/slidemaker/internal/ai"
	"github.com/jeffsharris/slidemaker/internal/logging"
	"github.com/jeffsharris/slidemaker/internal/model"
	"github.com/jeffsharris/slidemaker/internal/prompt"
	"github.com/jeffsharris/slidemaker/internal/state"
)

// processSlide runs the attempt loop for one slide until it is approved,
// its budget runs out, or a remote call fails fatally.
//
// Each attempt: generate (one limiter slot), write the image, grade (a
// separate slot), write metadata, append the index summary, then either
// copy the image to final/ and mark the slide approved, or mark it
// retrying and refine the base prompt. The run is saved after every
// attempt.
func (r *Runner) processSlide(ctx context.Context, id string, limiter *semaphore.Weighted) (Outcome, error) {
	layout := r.Run.Layout
	spec := r.Run.Spec

	slide, ok := r.Run.Slide(id)
	if !ok {
		return OutcomeFailed, &PreconditionError{SlideID: id, Reason: "not found in slides.json"}
	}

	finalRel := state.FinalImageRel(id)
	if slide.Status == state.StatusApproved && state.FileExists(layout.Abs(finalRel)) {
		if _, err := r.Run.EnsureEntry(id); err != nil {
			return OutcomeFailed, err
		}
		if err := r.Run.SetFinalImage(id, finalRel); err != nil {
			return OutcomeFailed, err
		}
		logging.Slide(id, "already approved, skipping")
		return OutcomeSkipped, nil
	}

	if len(slide.Rubric) == 0 {
		return OutcomeFailed, &PreconditionError{SlideID: id, Reason: "missing a rubric; run 'draft' first"}
	}
	entry, err := r.Run.EnsureEntry(id)
	if err != nil {
		return OutcomeFailed, err
	}
	basePrompt := slide.Prompt
	if basePrompt == "" {
		basePrompt = prompt.BuildPrompt(spec, slide)
		if err := r.Run.SetPrompt(id, basePrompt); err != nil {
			return OutcomeFailed, err
		}
	}

	attemptsDir := layout.AttemptsDir(id)
	if err := os.MkdirAll(attemptsDir, 0755); err != nil {
		return OutcomeFailed, fmt.Errorf("slide %s: create attempts dir: %w", id, err)
	}

	last, err := state.LastAttemptNumber(entry, attemptsDir)
	if err != nil {
		return OutcomeFailed, fmt.Errorf("slide %s: %w", id, err)
	}
	currentPrompt := r.resumePrompt(basePrompt, entry)

	title := slide.Title
	if title == "" {
		title = id
	}
	size := model.ResolveImageSize(slide.ImageSize, spec.ImageSize, spec.AspectRatio)

	for n := last + 1; ; n++ {
		if !AttemptAllowed(n, r.Opts.MaxAttempts) {
			return OutcomeFailed, &AttemptsExhaustedError{SlideID: id, Max: r.Opts.MaxAttempts}
		}
		r.attempts.Add(1)

		logging.Slide(id, "attempt %d: generating %s image", n, size)
		image, err := withSlot(ctx, limiter, func() ([]byte, error) {
			return r.Generator.Generate(ctx, ai.ImageRequest{
				Prompt:     currentPrompt,
				Model:      r.Opts.ImageModel,
				Size:       size,
				Quality:    r.Opts.Quality,
				Background: r.Opts.Background,
			})
		})
		if err != nil {
			return OutcomeFailed, &SlideError{SlideID: id, Stage: "generate", Attempt: n, Err: err}
		}

		imageRel := state.AttemptImageRel(id, n)
		if err := state.WriteImage(layout.Abs(imageRel), image); err != nil {
			return OutcomeFailed, fmt.Errorf("slide %s attempt %d: %w", id, n, err)
		}

		logging.Slide(id, "attempt %d: grading", n)
		grade, err := withSlot(ctx, limiter, func() (state.Grade, error) {
			return r.Grader.Grade(ctx, ai.GradeRequest{
				Image:  image,
				Title:  title,
				Prompt: currentPrompt,
				Rubric: slide.Rubric,
				Model:  r.Opts.GraderModel,
			})
		})
		if err != nil {
			return OutcomeFailed, &SlideError{SlideID: id, Stage: "grade", Attempt: n, Err: err}
		}

		metaRel := state.AttemptMetadataRel(id, n)
		rec := state.AttemptRecord{
			Attempt:     n,
			Session:     r.Opts.Session,
			SlideID:     id,
			CreatedAt:   r.clock().UTC().Format(time.RFC3339),
			ImageModel:  r.Opts.ImageModel,
			GraderModel: r.Opts.GraderModel,
			Size:        size,
			Quality:     r.Opts.Quality,
			Background:  r.Opts.Background,
			Prompt:      currentPrompt,
			Rubric:      slide.Rubric,
			Grade:       grade,
		}
		if err := state.WriteAttemptRecord(layout.Abs(metaRel), rec); err != nil {
			return OutcomeFailed, fmt.Errorf("slide %s attempt %d: %w", id, n, err)
		}

		failures := grade.Failures
		if failures == nil {
			failures = []string{}
		}
		if err := r.Run.RecordAttempt(id, state.AttemptSummary{
			Attempt:  n,
			Session:  r.Opts.Session,
			File:     imageRel,
			Metadata: metaRel,
			Pass:     grade.Pass,
			Score:    grade.Score,
			Failures: failures,
			Summary:  grade.Summary,
		}); err != nil {
			return OutcomeFailed, err
		}

		decision := ProcessGrade(basePrompt, grade)
		if decision.Action == ActionApprove {
			if err := state.CopyFile(layout.Abs(imageRel), layout.Abs(finalRel)); err != nil {
				return OutcomeFailed, fmt.Errorf("slide %s: promote attempt %d: %w", id, n, err)
			}
			if err := r.Run.SetFinalImage(id, finalRel); err != nil {
				return OutcomeFailed, err
			}
			if err := r.Run.SetStatus(id, state.StatusApproved); err != nil {
				return OutcomeFailed, err
			}
			if err := r.Run.Save(); err != nil {
				return OutcomeFailed, fmt.Errorf("slide %s: save run: %w", id, err)
			}
			logging.Slide(id, "attempt %d: approved (score %.2f)", n, grade.Score)
			return OutcomeApproved, nil
		}

		if err := r.Run.SetStatus(id, state.StatusRetrying); err != nil {
			return OutcomeFailed, err
		}
		if err := r.Run.Save(); err != nil {
			return OutcomeFailed, fmt.Errorf("slide %s: save run: %w", id, err)
		}
		logging.Slide(id, "attempt %d: rejected (score %.2f): %s", n, grade.Score, grade.Summary)
		currentPrompt = decision.NextPrompt
	}
}

// resumePrompt picks the prompt for the first attempt of this
// invocation. A slide whose last recorded attempt failed continues from
// that attempt's feedback instead of starting over from the base prompt.
func (r *Runner) resumePrompt(basePrompt string, entry state.IndexEntry) string {
	if len(entry.Attempts) == 0 {
		return basePrompt
	}
	lastAttempt := entry.Attempts[len(entry.Attempts)-1]
	if lastAttempt.Pass || lastAttempt.Metadata == "" {
		return basePrompt
	}
	rec, err := state.LoadAttemptRecord(r.Run.Layout.Abs(lastAttempt.Metadata))
	if err != nil {
		logging.Debug(fmt.Sprintf("resume: %v", err))
		return basePrompt
	}
	decision := ProcessGrade(basePrompt, rec.Grade)
	if decision.Action != ActionRefine {
		return basePrompt
	}
	return decision.NextPrompt
}

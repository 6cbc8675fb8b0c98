package prompt

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/jeffsharris/slidemaker/internal/state"
)

const noTextConstraint = "No text or lettering in the image"

// BuildPrompt constructs the base image prompt for a slide from the deck
// spec. It is a single paragraph so refinements can be appended to it.
func BuildPrompt(spec state.Spec, slide state.Slide) string {
	var parts []string

	if spec.Topic != "" {
		parts = append(parts, fmt.Sprintf("Presentation topic: %s.", spec.Topic))
	}
	if slide.Title != "" {
		parts = append(parts, fmt.Sprintf("Slide title concept: %s.", slide.Title))
	}
	if intent := slideIntent(slide); intent != "" {
		parts = append(parts, fmt.Sprintf("Core idea: %s.", intent))
	}

	var style []string
	for _, item := range []struct{ label, value string }{
		{"Visual style", spec.VisualStyle},
		{"Color palette", spec.ColorPalette},
		{"Tone", spec.Tone},
		{"Audience", spec.Audience},
	} {
		if item.value != "" {
			style = append(style, item.label+": "+item.value)
		}
	}
	if len(style) > 0 {
		parts = append(parts, "Style notes: "+strings.Join(style, " | ")+".")
	}

	constraints := nonEmpty(spec.Constraints)
	if !spec.AllowText {
		constraints = append(constraints, noTextConstraint)
	}
	if len(constraints) > 0 {
		parts = append(parts, "Constraints: "+strings.Join(constraints, "; ")+".")
	}

	if spec.AspectRatio != "" {
		parts = append(parts, fmt.Sprintf("Composition: designed for a %s slide layout.", spec.AspectRatio))
	}

	parts = append(parts, "Render as a single, cohesive visual with a clean focal point.")
	return strings.Join(parts, " ")
}

// BuildRubric drafts the grading criteria for a slide.
func BuildRubric(spec state.Spec, slide state.Slide) []string {
	var rubric []string

	intent := slideIntent(slide)
	if intent == "" {
		intent = slide.Title
	}
	if intent != "" {
		rubric = append(rubric, fmt.Sprintf("The image clearly communicates: %s.", intent))
	}
	if spec.Topic != "" {
		rubric = append(rubric, fmt.Sprintf("The visual feels consistent with the presentation topic: %s.", spec.Topic))
	}
	if spec.VisualStyle != "" {
		rubric = append(rubric, fmt.Sprintf("The style matches: %s.", spec.VisualStyle))
	}
	if !spec.AllowText {
		rubric = append(rubric, "No visible text, labels, or lettering.")
	}
	if spec.AspectRatio != "" {
		rubric = append(rubric, fmt.Sprintf("Composition fits a %s slide without awkward cropping.", spec.AspectRatio))
	}

	rubric = append(rubric, "The composition is focused and avoids unrelated or distracting elements.")
	return rubric
}

// RefinePrompt appends grader feedback to the base prompt. It always
// starts from base, so refinements never accumulate across attempts.
func RefinePrompt(base string, improvements []string) string {
	items := nonEmpty(improvements)
	if len(items) == 0 {
		return base
	}
	return fmt.Sprintf("%s Refinements: %s.", base, strings.Join(items, "; "))
}

// BuildGraderInput renders the text part of a grading request.
func BuildGraderInput(title, usedPrompt string, rubric []string) string {
	lines := make([]string, len(rubric))
	for i, item := range rubric {
		lines[i] = "- " + item
	}

	input := GraderInputTemplate
	input = strings.ReplaceAll(input, "{{TITLE}}", title)
	input = strings.ReplaceAll(input, "{{PROMPT}}", usedPrompt)
	input = strings.ReplaceAll(input, "{{RUBRIC}}", strings.Join(lines, "\n"))
	return input
}

// BuildIntake renders the intake.md template for a new run.
func BuildIntake(spec state.Spec) string {
	intake := IntakeTemplate
	intake = strings.ReplaceAll(intake, "{{TOPIC}}", spec.Topic)
	intake = strings.ReplaceAll(intake, "{{ASPECT_RATIO}}", spec.AspectRatio)
	return intake
}

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases text, collapses runs of other characters to "_"
// and truncates to maxLen. An empty result becomes "slide".
func Slugify(text string, maxLen int) string {
	value := strings.ToLower(strings.TrimSpace(text))
	value = strings.Trim(slugRe.ReplaceAllString(value, "_"), "_")
	if value == "" {
		value = "slide"
	}
	if maxLen > 0 && len(value) > maxLen {
		value = value[:maxLen]
	}
	return value
}

// SlideID builds the stable id "NN_slug" for the slide at 1-based index.
func SlideID(index int, title string) string {
	return fmt.Sprintf("%02d_%s", index, Slugify(title, 40))
}

// DefaultRunID builds "YYYYMMDD_HHMMSS_<topic words>" in UTC.
func DefaultRunID(topic string, now time.Time) string {
	var words []string
	for _, word := range strings.Fields(topic) {
		var b strings.Builder
		for _, r := range word {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				b.WriteRune(unicode.ToLower(r))
			}
		}
		words = append(words, b.String())
	}
	return now.UTC().Format("20060102_150405") + "_" + strings.Join(words, "_")
}

func slideIntent(slide state.Slide) string {
	if s := strings.TrimSpace(slide.Intent); s != "" {
		return s
	}
	return strings.TrimSpace(slide.Notes)
}

func nonEmpty(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := strings.TrimSpace(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

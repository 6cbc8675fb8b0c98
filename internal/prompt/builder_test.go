package prompt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jeffsharris/slidemaker/internal/state"
)

func fullSpec() state.Spec {
	return state.Spec{
		Topic:        "Ocean currents",
		AspectRatio:  "16:9",
		VisualStyle:  "flat illustration",
		ColorPalette: "navy and teal",
		Tone:         "calm",
		Audience:     "students",
		Constraints:  []string{"no people", " "},
	}
}

func TestBuildPrompt_FullSpec(t *testing.T) {
	slide := state.Slide{ID: "01_gyres", Title: "Gyres", Intent: "Currents loop around basins"}

	got := BuildPrompt(fullSpec(), slide)

	want := "Presentation topic: Ocean currents. " +
		"Slide title concept: Gyres. " +
		"Core idea: Currents loop around basins. " +
		"Style notes: Visual style: flat illustration | Color palette: navy and teal | Tone: calm | Audience: students. " +
		"Constraints: no people; No text or lettering in the image. " +
		"Composition: designed for a 16:9 slide layout. " +
		"Render as a single, cohesive visual with a clean focal point."
	assert.Equal(t, want, got)
}

func TestBuildPrompt_Minimal(t *testing.T) {
	got := BuildPrompt(state.Spec{AllowText: true}, state.Slide{})
	assert.Equal(t, "Render as a single, cohesive visual with a clean focal point.", got)
}

func TestBuildPrompt_NotesFallBackForIntent(t *testing.T) {
	got := BuildPrompt(state.Spec{AllowText: true}, state.Slide{Title: "T", Notes: "from notes"})
	assert.Contains(t, got, "Core idea: from notes.")
}

func TestBuildRubric(t *testing.T) {
	t.Run("full spec", func(t *testing.T) {
		got := BuildRubric(fullSpec(), state.Slide{Title: "Gyres", Intent: "Currents loop"})
		assert.Equal(t, []string{
			"The image clearly communicates: Currents loop.",
			"The visual feels consistent with the presentation topic: Ocean currents.",
			"The style matches: flat illustration.",
			"No visible text, labels, or lettering.",
			"Composition fits a 16:9 slide without awkward cropping.",
			"The composition is focused and avoids unrelated or distracting elements.",
		}, got)
	})

	t.Run("title used when intent missing and text allowed", func(t *testing.T) {
		got := BuildRubric(state.Spec{AllowText: true}, state.Slide{Title: "Gyres"})
		assert.Equal(t, []string{
			"The image clearly communicates: Gyres.",
			"The composition is focused and avoids unrelated or distracting elements.",
		}, got)
	})

	t.Run("never empty", func(t *testing.T) {
		assert.NotEmpty(t, BuildRubric(state.Spec{}, state.Slide{}))
	})
}

func TestRefinePrompt(t *testing.T) {
	assert.Equal(t, "base. Refinements: a; b.", RefinePrompt("base.", []string{"a", "b"}))
	assert.Equal(t, "base.", RefinePrompt("base.", nil))
	assert.Equal(t, "base.", RefinePrompt("base.", []string{"", "  "}))
}

func TestRefinePrompt_DoesNotAccumulate(t *testing.T) {
	base := "base."
	first := RefinePrompt(base, []string{"brighter"})
	second := RefinePrompt(base, []string{"less clutter"})
	assert.Equal(t, "base. Refinements: less clutter.", second)
	assert.NotContains(t, second, "brighter")
	assert.NotEqual(t, first, second)
}

func TestBuildGraderInput(t *testing.T) {
	got := BuildGraderInput("Gyres", "draw gyres", []string{"shows a gyre", "no text"})
	want := "Slide title: Gyres\n\nPrompt used: draw gyres\n\nRubric:\n- shows a gyre\n- no text\n\n" +
		"Output a pass/fail plus specific failures and improvements."
	assert.Equal(t, want, got)
}

func TestBuildIntake(t *testing.T) {
	got := BuildIntake(state.Spec{Topic: "Ocean currents", AspectRatio: "16:9"})
	assert.Contains(t, got, "Topic: Ocean currents\n")
	assert.Contains(t, got, "Aspect ratio: 16:9\n")
	assert.Contains(t, got, "- Slide idea 1")
	assert.NotContains(t, got, "{{")
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello, World!", "hello_world"},
		{"  Ocean -- Currents  ", "ocean_currents"},
		{"!!!", "slide"},
		{"", "slide"},
		{"Ünïcode title", "n_code_title"},
		{"a very long title that keeps going well past the limit", "a_very_long_title_that_keeps_going_well_"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in, 40))
		})
	}
}

func TestSlideID(t *testing.T) {
	assert.Equal(t, "01_intro", SlideID(1, "Intro"))
	assert.Equal(t, "12_why_it_matters", SlideID(12, "Why it matters?"))
	assert.Equal(t, "03_slide", SlideID(3, ""))
}

func TestDefaultRunID(t *testing.T) {
	now := time.Date(2026, 1, 30, 14, 30, 5, 0, time.FixedZone("X", 3600))
	assert.Equal(t, "20260130_133005_ocean_currents_101", DefaultRunID("Ocean Currents: 101!", now))
}

package state

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRun(t *testing.T) *RunState {
	t.Helper()
	l := NewLayout(t.TempDir(), "run1")
	require.NoError(t, l.Ensure())
	return NewRunState(l, sampleSpec(), sampleSlides(), nil)
}

func TestOpenRun(t *testing.T) {
	l := NewLayout(t.TempDir(), "run1")
	require.NoError(t, l.Ensure())
	require.NoError(t, SaveSpec(l, sampleSpec()))
	require.NoError(t, SaveSlides(l, &SlidesDoc{Spec: sampleSpec(), Slides: sampleSlides()}))

	run, err := OpenRun(l)
	require.NoError(t, err)
	assert.Equal(t, "Ocean currents", run.Spec.Topic)
	assert.Len(t, run.Slides(), 2)

	_, idx := run.Snapshot()
	assert.Empty(t, idx.Slides, "missing index.json starts empty")
}

func TestOpenRun_MissingSpec(t *testing.T) {
	_, err := OpenRun(NewLayout(t.TempDir(), "missing"))
	require.Error(t, err)
}

func TestEnsureEntry(t *testing.T) {
	run := newTestRun(t)

	entry, err := run.EnsureEntry("01_intro")
	require.NoError(t, err)
	assert.Equal(t, "Intro", entry.Title)
	assert.Empty(t, entry.Attempts)

	require.NoError(t, run.RecordAttempt("01_intro", AttemptSummary{Attempt: 1}))

	again, err := run.EnsureEntry("01_intro")
	require.NoError(t, err)
	assert.Len(t, again.Attempts, 1, "existing entry is kept")

	_, err = run.EnsureEntry("99_missing")
	assert.Error(t, err)
}

func TestEnsureEntry_FallsBackToIDForTitle(t *testing.T) {
	l := NewLayout(t.TempDir(), "run1")
	run := NewRunState(l, sampleSpec(), []Slide{{ID: "03_untitled"}}, nil)

	entry, err := run.EnsureEntry("03_untitled")
	require.NoError(t, err)
	assert.Equal(t, "03_untitled", entry.Title)
}

func TestMutatorsAndSave(t *testing.T) {
	run := newTestRun(t)
	_, err := run.EnsureEntry("02_gyres")
	require.NoError(t, err)

	require.NoError(t, run.SetPrompt("02_gyres", "spiral currents"))
	require.NoError(t, run.RecordAttempt("02_gyres", AttemptSummary{Attempt: 1, Pass: true, Score: 0.9}))
	require.NoError(t, run.SetFinalImage("02_gyres", FinalImageRel("02_gyres")))
	require.NoError(t, run.SetStatus("02_gyres", StatusApproved))
	require.NoError(t, run.Save())

	require.NoError(t, SaveSpec(run.Layout, run.Spec))
	reopened, err := OpenRun(run.Layout)
	require.NoError(t, err)

	slide, ok := reopened.Slide("02_gyres")
	require.True(t, ok)
	assert.Equal(t, StatusApproved, slide.Status)
	assert.Equal(t, "spiral currents", slide.Prompt)

	_, idx := reopened.Snapshot()
	require.Contains(t, idx.Slides, "02_gyres")
	assert.Equal(t, "final/02_gyres.png", idx.Slides["02_gyres"].FinalImage)
	assert.Len(t, idx.Slides["02_gyres"].Attempts, 1)
}

func TestMutators_UnknownSlide(t *testing.T) {
	run := newTestRun(t)
	assert.Error(t, run.SetStatus("nope", StatusApproved))
	assert.Error(t, run.SetPrompt("nope", "x"))
	assert.Error(t, run.RecordAttempt("01_intro", AttemptSummary{}), "entry must exist before recording")
	assert.Error(t, run.SetFinalImage("nope", "x"))
}

func TestSnapshotIsACopy(t *testing.T) {
	run := newTestRun(t)
	_, err := run.EnsureEntry("01_intro")
	require.NoError(t, err)

	slides, idx := run.Snapshot()
	slides[0].Rubric[0] = "mutated"
	idx.Slides["01_intro"].Title = "mutated"

	s, _ := run.Slide("01_intro")
	assert.Equal(t, "shows waves", s.Rubric[0])
	entry, _ := run.EnsureEntry("01_intro")
	assert.Equal(t, "Intro", entry.Title)
}

func TestSnapshot_KeepsEmptyListsAfterReload(t *testing.T) {
	l := NewLayout(t.TempDir(), "run1")
	require.NoError(t, l.Ensure())
	slides := []Slide{{ID: "01_intro", Title: "Intro", Rubric: []string{}, Status: StatusPending}}
	run := NewRunState(l, sampleSpec(), slides, nil)
	require.NoError(t, SaveSpec(l, sampleSpec()))
	_, err := run.EnsureEntry("01_intro")
	require.NoError(t, err)
	require.NoError(t, run.RecordAttempt("01_intro", AttemptSummary{Attempt: 1, Pass: true, Failures: []string{}}))
	require.NoError(t, run.Save())

	reopened, err := OpenRun(l)
	require.NoError(t, err)
	gotSlides, idx := reopened.Snapshot()

	require.Len(t, gotSlides, 1)
	assert.NotNil(t, gotSlides[0].Rubric)
	assert.Empty(t, gotSlides[0].Rubric)
	attempts := idx.Slides["01_intro"].Attempts
	require.Len(t, attempts, 1)
	assert.NotNil(t, attempts[0].Failures)
	assert.Empty(t, attempts[0].Failures)
}

func TestCopyStrings(t *testing.T) {
	assert.Nil(t, copyStrings(nil))
	assert.Equal(t, []string{}, copyStrings([]string{}))

	src := []string{"a"}
	dst := copyStrings(src)
	dst[0] = "b"
	assert.Equal(t, "a", src[0])
}

func TestConcurrentMutationsAndSaves(t *testing.T) {
	l := NewLayout(t.TempDir(), "run1")
	require.NoError(t, l.Ensure())

	var slides []Slide
	for i := 1; i <= 8; i++ {
		slides = append(slides, Slide{ID: fmt.Sprintf("%02d_s", i), Title: "s"})
	}
	run := NewRunState(l, sampleSpec(), slides, nil)

	var wg sync.WaitGroup
	for _, s := range slides {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := run.EnsureEntry(id)
			assert.NoError(t, err)
			for n := 1; n <= 5; n++ {
				assert.NoError(t, run.RecordAttempt(id, AttemptSummary{Attempt: n}))
				assert.NoError(t, run.SetStatus(id, StatusRetrying))
				assert.NoError(t, run.Save())
			}
		}(s.ID)
	}
	wg.Wait()

	idx, err := LoadIndex(l)
	require.NoError(t, err)
	require.Len(t, idx.Slides, 8)
	for _, entry := range idx.Slides {
		require.Len(t, entry.Attempts, 5)
		for i, a := range entry.Attempts {
			assert.Equal(t, i+1, a.Attempt)
		}
	}
}

package intake

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeffsharris/slidemaker/internal/state"
)

func TestExtractConcepts_ListItems(t *testing.T) {
	notes := `# Intake

Topic: Ocean currents
Aspect ratio: 16:9

## Stream of consciousness
- Waves rolling into a quiet bay
- Gyres
  - spiral seen from above
  - plastic gathering
* Thermohaline **conveyor**
  spanning the globe
`
	got := ExtractConcepts([]byte(notes))

	assert.Equal(t, []Concept{
		{Title: "Waves rolling into a quiet bay"},
		{Title: "Gyres", Notes: "spiral seen from above; plastic gathering"},
		{Title: "Thermohaline **conveyor** spanning the globe"},
	}, got)
}

func TestExtractConcepts_NumberedAndLooseLists(t *testing.T) {
	notes := "1. First idea\n\n2. Second idea\n\n   More detail on the second.\n"
	got := ExtractConcepts([]byte(notes))

	require.Len(t, got, 2)
	assert.Equal(t, "First idea", got[0].Title)
	assert.Equal(t, "Second idea", got[1].Title)
	assert.Equal(t, "More detail on the second.", got[1].Notes)
}

func TestExtractConcepts_ParagraphFallback(t *testing.T) {
	notes := "# Deck\n\nOpen on a storm\nat sea.\n\nClose with calm water.\n"
	got := ExtractConcepts([]byte(notes))

	assert.Equal(t, []Concept{
		{Title: "Open on a storm at sea."},
		{Title: "Close with calm water."},
	}, got)
}

func TestExtractConcepts_Empty(t *testing.T) {
	assert.Empty(t, ExtractConcepts(nil))
	assert.Empty(t, ExtractConcepts([]byte("# Only a heading\n\n## And another\n")))
}

func TestBuildOutline(t *testing.T) {
	data := []byte("- Intro!\n- Deep Water Formation\n")
	now := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)

	outline, err := BuildOutline("/tmp/intake.md", data, now)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/intake.md", outline.Source)
	assert.Equal(t, Hash(data), outline.SourceHash)
	assert.Equal(t, "2026-03-04T05:06:07Z", outline.GeneratedAt)
	require.Len(t, outline.Slides, 2)

	first := outline.Slides[0]
	assert.Equal(t, "01_intro", first.ID)
	assert.Equal(t, "Intro!", first.Title)
	assert.Equal(t, "Intro!", first.Intent)
	assert.Equal(t, state.StatusPending, first.Status)
	assert.NotNil(t, first.Rubric)
	assert.Empty(t, first.Prompt)

	assert.Equal(t, "02_deep_water_formation", outline.Slides[1].ID)
}

func TestBuildOutline_NoConcepts(t *testing.T) {
	_, err := BuildOutline("x", []byte("   \n"), time.Now())
	assert.ErrorIs(t, err, ErrNoConcepts)
}

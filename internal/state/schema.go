package state

// Slide statuses recorded in slides.json.
const (
	StatusPending  = "pending"
	StatusRetrying = "retrying"
	StatusApproved = "approved"
)

// Spec is the deck-level description written to spec.json.
type Spec struct {
	Topic        string   `json:"topic" yaml:"topic" validate:"required"`
	AspectRatio  string   `json:"aspect_ratio" yaml:"aspect_ratio" validate:"required"`
	ImageSize    string   `json:"image_size" yaml:"image_size" validate:"omitempty,image_size"`
	Audience     string   `json:"audience" yaml:"audience"`
	Tone         string   `json:"tone" yaml:"tone"`
	VisualStyle  string   `json:"visual_style" yaml:"visual_style"`
	ColorPalette string   `json:"color_palette" yaml:"color_palette"`
	Constraints  []string `json:"constraints" yaml:"constraints"`
	AllowText    bool     `json:"allow_text" yaml:"allow_text"`
	CreatedAt    string   `json:"created_at,omitempty" yaml:"-"`
}

// Slide is one entry of slides.json.
type Slide struct {
	ID        string   `json:"id" yaml:"id"`
	Title     string   `json:"title" yaml:"title"`
	Intent    string   `json:"intent" yaml:"intent"`
	Notes     string   `json:"notes" yaml:"notes"`
	Prompt    string   `json:"prompt" yaml:"prompt"`
	Rubric    []string `json:"rubric" yaml:"rubric"`
	ImageSize string   `json:"image_size" yaml:"image_size"`
	Status    string   `json:"status" yaml:"-"`
}

// SlidesDoc is the on-disk shape of slides.json.
type SlidesDoc struct {
	Spec   Spec    `json:"spec"`
	Slides []Slide `json:"slides"`
}

// Grade is the grader's verdict for one image.
type Grade struct {
	Pass         bool     `json:"pass"`
	Score        float64  `json:"score"`
	Failures     []string `json:"failures"`
	Improvements []string `json:"improvements"`
	Summary      string   `json:"summary"`
}

// AttemptSummary is the per-attempt entry kept in index.json.
type AttemptSummary struct {
	Attempt  int      `json:"attempt"`
	Session  string   `json:"session,omitempty"`
	File     string   `json:"file"`
	Metadata string   `json:"metadata"`
	Pass     bool     `json:"pass"`
	Score    float64  `json:"score"`
	Failures []string `json:"failures"`
	Summary  string   `json:"summary"`
}

// IndexEntry tracks every attempt of a slide and its approved image.
type IndexEntry struct {
	Title      string           `json:"title"`
	FinalImage string           `json:"final_image,omitempty"`
	Attempts   []AttemptSummary `json:"attempts"`
}

// Index is the on-disk shape of index.json.
type Index struct {
	Slides map[string]*IndexEntry `json:"slides"`
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{Slides: map[string]*IndexEntry{}}
}

// AttemptRecord is the full metadata written next to each attempt image.
type AttemptRecord struct {
	Attempt     int      `json:"attempt"`
	Session     string   `json:"session"`
	SlideID     string   `json:"slide_id"`
	CreatedAt   string   `json:"created_at"`
	ImageModel  string   `json:"image_model"`
	GraderModel string   `json:"grader_model"`
	Size        string   `json:"size"`
	Quality     string   `json:"quality"`
	Background  string   `json:"background"`
	Prompt      string   `json:"prompt"`
	Rubric      []string `json:"rubric"`
	Grade       Grade    `json:"grade"`
}

// Outline is the on-disk shape of outline.json.
type Outline struct {
	Source      string  `json:"source"`
	SourceHash  string  `json:"source_hash"`
	GeneratedAt string  `json:"generated_at"`
	Slides      []Slide `json:"slides"`
}

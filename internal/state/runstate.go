package state

import (
	"fmt"
	"sync"
)

// RunState is the in-memory view of one run shared by every slide task.
// All reads and writes go through its mutex, and Save holds the same
// mutex while serializing, so concurrent saves never interleave.
type RunState struct {
	Layout Layout
	Spec   Spec

	mu     sync.Mutex
	slides []Slide
	byID   map[string]int
	index  *Index
}

// NewRunState builds a RunState from already-loaded documents.
func NewRunState(l Layout, spec Spec, slides []Slide, idx *Index) *RunState {
	if idx == nil {
		idx = NewIndex()
	}
	if idx.Slides == nil {
		idx.Slides = map[string]*IndexEntry{}
	}
	r := &RunState{
		Layout: l,
		Spec:   spec,
		slides: append([]Slide(nil), slides...),
		byID:   make(map[string]int, len(slides)),
		index:  idx,
	}
	for i, s := range r.slides {
		r.byID[s.ID] = i
	}
	return r
}

// OpenRun loads spec.json, slides.json and index.json for a run.
func OpenRun(l Layout) (*RunState, error) {
	spec, err := LoadSpec(l)
	if err != nil {
		return nil, err
	}
	doc, err := LoadSlides(l)
	if err != nil {
		return nil, err
	}
	idx, err := LoadIndex(l)
	if err != nil {
		return nil, err
	}
	return NewRunState(l, spec, doc.Slides, idx), nil
}

// Slides returns a copy of the slide list in file order.
func (r *RunState) Slides() []Slide {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Slide, len(r.slides))
	for i, s := range r.slides {
		out[i] = copySlide(s)
	}
	return out
}

// Slide returns a copy of one slide.
func (r *RunState) Slide(id string) (Slide, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.byID[id]
	if !ok {
		return Slide{}, false
	}
	return copySlide(r.slides[i]), true
}

// EnsureEntry creates the slide's index entry if it is missing and
// returns a copy of it.
func (r *RunState) EnsureEntry(id string) (IndexEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.byID[id]
	if !ok {
		return IndexEntry{}, fmt.Errorf("unknown slide %q", id)
	}
	entry, ok := r.index.Slides[id]
	if !ok {
		title := r.slides[i].Title
		if title == "" {
			title = id
		}
		entry = &IndexEntry{Title: title, Attempts: []AttemptSummary{}}
		r.index.Slides[id] = entry
	}
	return copyEntry(entry), nil
}

// SetStatus updates a slide's status.
func (r *RunState) SetStatus(id, status string) error {
	return r.updateSlide(id, func(s *Slide) { s.Status = status })
}

// SetPrompt updates a slide's stored base prompt.
func (r *RunState) SetPrompt(id, prompt string) error {
	return r.updateSlide(id, func(s *Slide) { s.Prompt = prompt })
}

// RecordAttempt appends an attempt summary to the slide's index entry.
func (r *RunState) RecordAttempt(id string, summary AttemptSummary) error {
	return r.updateEntry(id, func(e *IndexEntry) { e.Attempts = append(e.Attempts, summary) })
}

// SetFinalImage records the run-relative path of the approved image.
func (r *RunState) SetFinalImage(id, rel string) error {
	return r.updateEntry(id, func(e *IndexEntry) { e.FinalImage = rel })
}

// Save writes slides.json and index.json.
func (r *RunState) Save() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := SaveSlides(r.Layout, &SlidesDoc{Spec: r.Spec, Slides: r.slides}); err != nil {
		return err
	}
	return SaveIndex(r.Layout, r.index)
}

// Snapshot returns deep copies of the slide list and index.
func (r *RunState) Snapshot() ([]Slide, *Index) {
	r.mu.Lock()
	defer r.mu.Unlock()
	slides := make([]Slide, len(r.slides))
	for i, s := range r.slides {
		slides[i] = copySlide(s)
	}
	idx := NewIndex()
	for id, e := range r.index.Slides {
		c := copyEntry(e)
		idx.Slides[id] = &c
	}
	return slides, idx
}

func (r *RunState) updateSlide(id string, fn func(*Slide)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.byID[id]
	if !ok {
		return fmt.Errorf("unknown slide %q", id)
	}
	fn(&r.slides[i])
	return nil
}

func (r *RunState) updateEntry(id string, fn func(*IndexEntry)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.index.Slides[id]
	if !ok {
		return fmt.Errorf("no index entry for slide %q", id)
	}
	fn(entry)
	return nil
}

func copySlide(s Slide) Slide {
	s.Rubric = copyStrings(s.Rubric)
	return s
}

func copyEntry(e *IndexEntry) IndexEntry {
	c := *e
	c.Attempts = make([]AttemptSummary, len(e.Attempts))
	for i, a := range e.Attempts {
		a.Failures = copyStrings(a.Failures)
		c.Attempts[i] = a
	}
	return c
}

// copyStrings copies src, keeping nil and empty distinct so a reloaded
// "[]" stays an empty list.
func copyStrings(src []string) []string {
	if src == nil {
		return nil
	}
	dst := make([]string, len(src))
	copy(dst, src)
	return dst
}

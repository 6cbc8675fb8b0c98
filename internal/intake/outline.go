// Package intake turns free-form intake notes into an outline of slides.
package intake

import (
	"errors"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/jeffsharris/slidemaker/internal/prompt"
	"github.com/jeffsharris/slidemaker/internal/state"
)

// ErrNoConcepts is returned when the notes hold neither list items nor
// paragraphs.
var ErrNoConcepts = errors.New("no slide concepts found in intake notes")

// Concept is one slide idea taken from the notes.
type Concept struct {
	Title string
	Notes string
}

var mdParser = goldmark.New().Parser()

// ExtractConcepts reads slide ideas from markdown notes. Every item of a
// top-level list (bulleted or numbered) is one concept, and the text of
// its nested items becomes that concept's notes. Notes without any list
// fall back to one concept per paragraph.
func ExtractConcepts(src []byte) []Concept {
	doc := mdParser.Parse(text.NewReader(src))

	var items, paragraphs []Concept
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.List:
			for li := node.FirstChild(); li != nil; li = li.NextSibling() {
				if c, ok := listItemConcept(li, src); ok {
					items = append(items, c)
				}
			}
		case *ast.Paragraph:
			if title := blockText(node, src); title != "" {
				paragraphs = append(paragraphs, Concept{Title: title})
			}
		}
	}

	if len(items) > 0 {
		return items
	}
	return paragraphs
}

func listItemConcept(li ast.Node, src []byte) (Concept, bool) {
	var c Concept
	var notes []string
	for child := li.FirstChild(); child != nil; child = child.NextSibling() {
		switch child.Kind() {
		case ast.KindTextBlock, ast.KindParagraph:
			if c.Title == "" {
				c.Title = blockText(child, src)
			} else if s := blockText(child, src); s != "" {
				notes = append(notes, s)
			}
		case ast.KindList:
			for sub := child.FirstChild(); sub != nil; sub = sub.NextSibling() {
				if sc, ok := listItemConcept(sub, src); ok {
					notes = append(notes, sc.Title)
				}
			}
		}
	}
	c.Notes = strings.Join(notes, "; ")
	return c, c.Title != ""
}

// blockText joins the source lines of a text block into one line.
func blockText(n ast.Node, src []byte) string {
	lines := n.Lines()
	parts := make([]string, 0, lines.Len())
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		if s := strings.TrimSpace(string(seg.Value(src))); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// BuildOutline extracts concepts from the notes at source and turns them
// into pending slides with ids "NN_slug".
func BuildOutline(source string, data []byte, now time.Time) (*state.Outline, error) {
	concepts := ExtractConcepts(data)
	if len(concepts) == 0 {
		return nil, ErrNoConcepts
	}

	slides := make([]state.Slide, len(concepts))
	for i, c := range concepts {
		slides[i] = state.Slide{
			ID:     prompt.SlideID(i+1, c.Title),
			Title:  c.Title,
			Intent: c.Title,
			Notes:  c.Notes,
			Rubric: []string{},
			Status: state.StatusPending,
		}
	}

	return &state.Outline{
		Source:      source,
		SourceHash:  Hash(data),
		GeneratedAt: now.UTC().Format(time.RFC3339),
		Slides:      slides,
	}, nil
}

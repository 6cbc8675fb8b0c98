// Package report renders report.html, a grid of a run's approved slide
// images for review in a browser.
package report

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"os"

	"github.com/jeffsharris/slidemaker/internal/state"
)

//go:embed templates/report.html.tmpl
var reportTemplate string

var tmpl = template.Must(template.New("report").Parse(reportTemplate))

// Figure is one approved slide in the report.
type Figure struct {
	ID       string
	Title    string
	Src      string
	Score    float64
	Attempts int
}

// Data is what the report template renders.
type Data struct {
	Topic   string
	Total   int
	Figures []Figure
}

// BuildData collects the slides whose final image exists, in slide order.
// The score shown is the one of the attempt that was approved.
func BuildData(layout state.Layout, spec state.Spec, slides []state.Slide, idx *state.Index) Data {
	data := Data{Topic: spec.Topic, Total: len(slides)}
	for _, slide := range state.OrderSlides(slides) {
		rel := state.FinalImageRel(slide.ID)
		if !state.FileExists(layout.Abs(rel)) {
			continue
		}
		title := slide.Title
		if title == "" {
			title = slide.ID
		}
		fig := Figure{ID: slide.ID, Title: title, Src: rel}
		if idx != nil {
			if entry, ok := idx.Slides[slide.ID]; ok && entry != nil {
				fig.Attempts = len(entry.Attempts)
				for _, a := range entry.Attempts {
					if a.Pass {
						fig.Score = a.Score
						break
					}
				}
			}
		}
		data.Figures = append(data.Figures, fig)
	}
	return data
}

// Render writes the report HTML for data.
func Render(data Data) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return buf.Bytes(), nil
}

// Write renders the report for a run into report.html and returns its path.
func Write(layout state.Layout, spec state.Spec, slides []state.Slide, idx *state.Index) (string, error) {
	html, err := Render(BuildData(layout, spec, slides, idx))
	if err != nil {
		return "", err
	}
	path := layout.ReportPath()
	if err := os.WriteFile(path, html, 0644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}

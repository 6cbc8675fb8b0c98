package state

import (
	"fmt"
	"os"
	"path/filepath"
)

// File names inside a run directory.
const (
	SpecFile    = "spec.json"
	SlidesFile  = "slides.json"
	IndexFile   = "index.json"
	OutlineFile = "outline.json"
	IntakeFile  = "intake.md"
	ReportFile  = "report.html"

	attemptsDir = "attempts"
	finalDir    = "final"
	exportsDir  = "exports"
)

// Layout resolves paths inside runs/<run-id>/.
type Layout struct {
	RunID string
	Root  string
}

// NewLayout returns the layout for runID under runsDir.
func NewLayout(runsDir, runID string) Layout {
	return Layout{RunID: runID, Root: filepath.Join(runsDir, runID)}
}

func (l Layout) SpecPath() string    { return filepath.Join(l.Root, SpecFile) }
func (l Layout) SlidesPath() string  { return filepath.Join(l.Root, SlidesFile) }
func (l Layout) IndexPath() string   { return filepath.Join(l.Root, IndexFile) }
func (l Layout) OutlinePath() string { return filepath.Join(l.Root, OutlineFile) }
func (l Layout) IntakePath() string  { return filepath.Join(l.Root, IntakeFile) }
func (l Layout) ReportPath() string  { return filepath.Join(l.Root, ReportFile) }
func (l Layout) ExportsDir() string  { return filepath.Join(l.Root, exportsDir) }

// AttemptsDir is the directory holding every attempt of one slide.
func (l Layout) AttemptsDir(slideID string) string {
	return filepath.Join(l.Root, attemptsDir, slideID)
}

// AttemptImageRel is the run-relative path of an attempt image.
func AttemptImageRel(slideID string, n int) string {
	return filepath.ToSlash(filepath.Join(attemptsDir, slideID, fmt.Sprintf("attempt_%03d.png", n)))
}

// AttemptMetadataRel is the run-relative path of an attempt's metadata.
func AttemptMetadataRel(slideID string, n int) string {
	return filepath.ToSlash(filepath.Join(attemptsDir, slideID, fmt.Sprintf("attempt_%03d.json", n)))
}

// FinalImageRel is the run-relative path of an approved image.
func FinalImageRel(slideID string) string {
	return filepath.ToSlash(filepath.Join(finalDir, slideID+".png"))
}

// Abs resolves a run-relative path.
func (l Layout) Abs(rel string) string {
	return filepath.Join(l.Root, filepath.FromSlash(rel))
}

// Exists reports whether the run has been initialised.
func (l Layout) Exists() bool {
	_, err := os.Stat(l.SpecPath())
	return err == nil
}

// Ensure creates the run directory tree.
func (l Layout) Ensure() error {
	for _, dir := range []string{l.Root, filepath.Join(l.Root, attemptsDir), filepath.Join(l.Root, finalDir)} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create run dir: %w", err)
		}
	}
	return nil
}

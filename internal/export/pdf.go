// Package export writes a run's approved slide images into a PDF deck,
// one full-bleed page per slide sized to its image.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/jeffsharris/slidemaker/internal/state"
)

// ErrNoImages is returned when the run has no final images at all.
var ErrNoImages = errors.New("no final images found to export")

// MissingImagesError lists slides that have no final image yet.
type MissingImagesError struct {
	SlideIDs []string
}

func (e *MissingImagesError) Error() string {
	return "missing final images for: " + strings.Join(e.SlideIDs, ", ")
}

// DefaultOutput is exports/slides_<UTC timestamp>.pdf inside the run.
func DefaultOutput(layout state.Layout, now time.Time) string {
	return filepath.Join(layout.ExportsDir(), "slides_"+now.UTC().Format("20060102_150405")+".pdf")
}

// FinalImages returns the final image paths in slide order. Every slide
// must have one.
func FinalImages(layout state.Layout, slides []state.Slide) ([]string, error) {
	var paths, missing []string
	for _, slide := range state.OrderSlides(slides) {
		if slide.ID == "" {
			continue
		}
		path := layout.Abs(state.FinalImageRel(slide.ID))
		if state.FileExists(path) {
			paths = append(paths, path)
		} else {
			missing = append(missing, slide.ID)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingImagesError{SlideIDs: missing}
	}
	if len(paths) == 0 {
		return nil, ErrNoImages
	}
	return paths, nil
}

// WritePDF writes images to output, one page per image at the image's
// own size in points.
func WritePDF(images []string, output string) error {
	if len(images) == 0 {
		return ErrNoImages
	}
	if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{UnitStr: "pt", Size: fpdf.SizeType{Wd: 612, Ht: 792}})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)

	for _, path := range images {
		opts := fpdf.ImageOptions{ImageType: imageType(path)}
		info := pdf.RegisterImageOptions(path, opts)
		if err := pdf.Error(); err != nil {
			return fmt.Errorf("load image %s: %w", path, err)
		}
		w, h := info.Width(), info.Height()
		pdf.AddPageFormat("P", fpdf.SizeType{Wd: w, Ht: h})
		pdf.ImageOptions(path, 0, 0, w, h, false, opts, 0, "")
	}

	if err := pdf.OutputFileAndClose(output); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// Export writes the run's final images to output, or to DefaultOutput
// when output is empty, and returns the path written.
func Export(layout state.Layout, slides []state.Slide, output string, now time.Time) (string, error) {
	images, err := FinalImages(layout, slides)
	if err != nil {
		return "", err
	}
	if output == "" {
		output = DefaultOutput(layout, now)
	}
	if err := WritePDF(images, output); err != nil {
		return "", err
	}
	return output, nil
}

func imageType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "JPG"
	case ".gif":
		return "GIF"
	default:
		return "PNG"
	}
}

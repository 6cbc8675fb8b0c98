package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// writeJSON writes v as indented JSON through a temp file and rename, so a
// crash mid-write never leaves a truncated document behind.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create dir for %s: %w", filepath.Base(path), err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", filepath.Base(path), err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", filepath.Base(path), err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", filepath.Base(path), err)
	}
	return nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return nil
}

// SaveSpec writes spec.json.
func SaveSpec(l Layout, spec Spec) error {
	return writeJSON(l.SpecPath(), spec)
}

// LoadSpec reads spec.json.
func LoadSpec(l Layout) (Spec, error) {
	var spec Spec
	err := readJSON(l.SpecPath(), &spec)
	return spec, err
}

// SaveSlides writes slides.json.
func SaveSlides(l Layout, doc *SlidesDoc) error {
	if doc.Slides == nil {
		doc.Slides = []Slide{}
	}
	return writeJSON(l.SlidesPath(), doc)
}

// LoadSlides reads slides.json.
func LoadSlides(l Layout) (*SlidesDoc, error) {
	var doc SlidesDoc
	if err := readJSON(l.SlidesPath(), &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// SaveIndex writes index.json.
func SaveIndex(l Layout, idx *Index) error {
	return writeJSON(l.IndexPath(), idx)
}

// LoadIndex reads index.json. A missing file yields an empty index.
func LoadIndex(l Layout) (*Index, error) {
	idx := NewIndex()
	if err := readJSON(l.IndexPath(), idx); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewIndex(), nil
		}
		return nil, err
	}
	if idx.Slides == nil {
		idx.Slides = map[string]*IndexEntry{}
	}
	return idx, nil
}

// SaveOutline writes outline.json.
func SaveOutline(l Layout, o Outline) error {
	return writeJSON(l.OutlinePath(), o)
}

// LoadOutline reads outline.json.
func LoadOutline(l Layout) (Outline, error) {
	var o Outline
	err := readJSON(l.OutlinePath(), &o)
	return o, err
}

// WriteAttemptRecord writes an attempt's metadata document.
func WriteAttemptRecord(path string, rec AttemptRecord) error {
	return writeJSON(path, rec)
}

// LoadAttemptRecord reads an attempt's metadata document.
func LoadAttemptRecord(path string) (AttemptRecord, error) {
	var rec AttemptRecord
	err := readJSON(path, &rec)
	return rec, err
}

// WriteImage stores PNG bytes at path, creating parent directories.
func WriteImage(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create image dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write image: %w", err)
	}
	return nil
}

// CopyFile copies src to dst, replacing dst.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", filepath.Base(src), err)
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("create dir for %s: %w", filepath.Base(dst), err)
	}
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(dst), err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy to %s: %w", filepath.Base(dst), err)
	}
	return out.Close()
}

// FileExists reports whether path names an existing regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

package dataset

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/carvision/yolokit/internal/fsutil"
)

// SplitStats summarises one splitter run.
type SplitStats struct {
	ImagesMoved   int
	ImagesInVal   int // already on the val side; counted as success
	ImagesMissing int
	ImagesFailed  int // present in train but the move itself failed
	LabelsMoved   int
	LabelsInVal   int
	LabelsMissing int
	LabelsFailed  int
}

// Splitter moves validation files out of the train split. Missing
// files are warned about and skipped; a rerun over an already-split
// dataset makes no further changes.
type Splitter struct {
	FS     fsutil.FileSystem
	DryRun bool
	Logf   func(format string, args ...any)
}

// NewSplitter creates a splitter over the real filesystem, logging
// through the standard logger.
func NewSplitter() *Splitter {
	return &Splitter{FS: fsutil.OSFileSystem{}, Logf: log.Printf}
}

// Split moves every image named in the val list from images/train to
// images/val, and its label from labels/train to labels/val. Each
// listed file that is absent from train and val is a warning, not an
// error; processing always continues to the next entry.
func (s *Splitter) Split(layout Layout, valNames []string) (SplitStats, error) {
	var stats SplitStats

	if err := layout.Validate(s.FS); err != nil {
		return stats, err
	}

	if !s.DryRun {
		if err := s.FS.MkdirAll(layout.ImagesVal(), 0755); err != nil {
			return stats, fmt.Errorf("create %s: %w", layout.ImagesVal(), err)
		}
		if err := s.FS.MkdirAll(layout.LabelsVal(), 0755); err != nil {
			return stats, fmt.Errorf("create %s: %w", layout.LabelsVal(), err)
		}
	}

	for _, name := range valNames {
		imageMoved := s.moveOne(
			filepath.Join(layout.ImagesTrain(), name),
			filepath.Join(layout.ImagesVal(), name),
			name, "image",
			&stats.ImagesMoved, &stats.ImagesInVal, &stats.ImagesMissing, &stats.ImagesFailed,
			true,
		)

		labelName := Stem(name) + ".txt"
		s.moveOne(
			filepath.Join(layout.LabelsTrain(), labelName),
			filepath.Join(layout.LabelsVal(), labelName),
			labelName, "label",
			&stats.LabelsMoved, &stats.LabelsInVal, &stats.LabelsMissing, &stats.LabelsFailed,
			// A missing label only deserves a warning when its image
			// was actually part of the dataset.
			imageMoved,
		)
	}

	return stats, nil
}

// moveOne moves a single file from train to val, updating the counters
// for the outcome. It reports whether the file was found on either side.
func (s *Splitter) moveOne(src, dst, name, kind string, moved, inVal, missing, failed *int, warn bool) bool {
	switch {
	case s.FS.Exists(src):
		if s.DryRun {
			s.Logf("would move %s: %s", kind, name)
		} else if err := fsutil.Move(s.FS, src, dst); err != nil {
			s.Logf("warning: failed to move %s %s: %v", kind, name, err)
			*failed++
			return false
		}
		*moved++
		return true
	case s.FS.Exists(dst):
		// Already split; a rerun treats this as success.
		*inVal++
		return true
	default:
		if warn {
			s.Logf("warning: %s not found: %s", kind, name)
		}
		*missing++
		return false
	}
}

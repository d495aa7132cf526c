// Package dataset models the on-disk layout of a YOLO dataset and
// implements the train/val split.
package dataset

import (
	"fmt"
	"path/filepath"

	"github.com/carvision/yolokit/internal/fsutil"
)

// Layout describes the standard YOLO dataset directory structure:
// images/{train,val} and labels/{train,val} under a single root.
type Layout struct {
	Root string
}

func (l Layout) ImagesTrain() string { return filepath.Join(l.Root, "images", "train") }
func (l Layout) ImagesVal() string   { return filepath.Join(l.Root, "images", "val") }
func (l Layout) LabelsTrain() string { return filepath.Join(l.Root, "labels", "train") }
func (l Layout) LabelsVal() string   { return filepath.Join(l.Root, "labels", "val") }

// Validate checks that the dataset root and its train directories exist.
// The val directories are created on demand by the splitter, so their
// absence is not an error.
func (l Layout) Validate(fsys fsutil.FileSystem) error {
	if !fsys.Exists(l.Root) {
		return fmt.Errorf("dataset root %s does not exist", l.Root)
	}
	if !fsys.Exists(l.ImagesTrain()) {
		return fmt.Errorf("missing %s", l.ImagesTrain())
	}
	if !fsys.Exists(l.LabelsTrain()) {
		return fmt.Errorf("missing %s", l.LabelsTrain())
	}
	return nil
}

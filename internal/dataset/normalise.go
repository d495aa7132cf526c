package dataset

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/carvision/yolokit/internal/fsutil"
	"github.com/carvision/yolokit/internal/label"
)

// NormaliseStats summarises one dataset's class-ID normalisation.
type NormaliseStats struct {
	FilesRewritten int
	Remapped       int
	Dropped        int
	Unmapped       []string
}

// Add accumulates another dataset's stats into the receiver.
func (s *NormaliseStats) Add(o NormaliseStats) {
	s.FilesRewritten += o.FilesRewritten
	s.Remapped += o.Remapped
	s.Dropped += o.Dropped
	s.Unmapped = append(s.Unmapped, o.Unmapped...)
}

// Normaliser rewrites a dataset's class IDs to match a reference
// data.yaml, dropping annotations whose class name is in the drop set.
type Normaliser struct {
	FS     fsutil.FileSystem
	DryRun bool
	Logf   func(format string, args ...any)
}

// NewNormaliser creates a normaliser over the real filesystem.
func NewNormaliser() *Normaliser {
	return &Normaliser{FS: fsutil.OSFileSystem{}, Logf: log.Printf}
}

// NormaliseDataset remaps every label file of the dataset whose
// data.yaml lives at yamlPath, then rewrites that data.yaml with the
// reference names. Class names not present in the reference and not in
// the drop set are reported as unmapped and their records kept as-is.
func (n *Normaliser) NormaliseDataset(yamlPath string, reference ClassNames, drop map[string]bool) (NormaliseStats, error) {
	var stats NormaliseStats

	names, err := LoadClassNames(n.FS, yamlPath)
	if err != nil {
		return stats, err
	}

	refByName := ReferenceMapping(reference)
	mapping := make(map[int]int)
	dropIDs := make(map[int]bool)

	for oldID, name := range names {
		trimmed := strings.TrimSpace(name)
		switch {
		case drop[trimmed]:
			dropIDs[oldID] = true
		case hasName(refByName, trimmed):
			mapping[oldID] = refByName[trimmed]
		default:
			stats.Unmapped = append(stats.Unmapped, trimmed)
			n.Logf("warning: class %q (ID %d) not in reference mapping (%s)", trimmed, oldID, filepath.Dir(yamlPath))
		}
	}

	labelsDir := filepath.Join(filepath.Dir(yamlPath), "labels")
	if n.FS.Exists(labelsDir) {
		files, err := fsutil.FindFiles(n.FS, labelsDir, func(name string) bool {
			return strings.EqualFold(filepath.Ext(name), ".txt")
		})
		if err != nil {
			return stats, fmt.Errorf("scan %s: %w", labelsDir, err)
		}

		for _, path := range files {
			data, err := n.FS.ReadFile(path)
			if err != nil {
				return stats, fmt.Errorf("read %s: %w", path, err)
			}

			out, rs := label.Remap(data, mapping, dropIDs)
			stats.Remapped += rs.Remapped
			stats.Dropped += rs.Dropped

			if string(out) == string(data) {
				continue
			}
			if n.DryRun {
				n.Logf("would rewrite %s", path)
				stats.FilesRewritten++
				continue
			}
			if err := n.FS.WriteFile(path, out, 0644); err != nil {
				return stats, fmt.Errorf("write %s: %w", path, err)
			}
			stats.FilesRewritten++
		}
	}

	if !n.DryRun {
		if err := WriteDataYAML(n.FS, yamlPath, reference); err != nil {
			return stats, err
		}
	}

	return stats, nil
}

func hasName(m map[string]int, name string) bool {
	_, ok := m[name]
	return ok
}

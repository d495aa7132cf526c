// Package report summarises the class distribution of a YOLO labels
// directory and renders it as an HTML chart.
package report

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/carvision/yolokit/internal/fsutil"
	"github.com/carvision/yolokit/internal/label"
)

// Stats aggregates annotation counts over a labels directory.
type Stats struct {
	// ClassCounts maps class ID to the number of annotations.
	ClassCounts map[int]int

	// Files is the number of label files read.
	Files int

	// BadLines is the number of malformed label lines skipped.
	BadLines int

	// PerImage holds the annotation count of each label file, used
	// for the distribution summary.
	PerImage []float64
}

// TotalAnnotations sums the per-class counts.
func (s *Stats) TotalAnnotations() int {
	total := 0
	for _, n := range s.ClassCounts {
		total += n
	}
	return total
}

// MeanPerImage is the mean annotation count per label file.
func (s *Stats) MeanPerImage() float64 {
	if len(s.PerImage) == 0 {
		return 0
	}
	return stat.Mean(s.PerImage, nil)
}

// MedianPerImage is the median annotation count per label file.
func (s *Stats) MedianPerImage() float64 {
	if len(s.PerImage) == 0 {
		return 0
	}
	sorted := append([]float64(nil), s.PerImage...)
	sort.Float64s(sorted)
	return stat.Quantile(0.5, stat.Empirical, sorted, nil)
}

// Collect reads every .txt file in labelsDir and tallies its records.
func Collect(fsys fsutil.FileSystem, labelsDir string) (*Stats, error) {
	entries, err := fsys.ReadDir(labelsDir)
	if err != nil {
		return nil, fmt.Errorf("read labels dir: %w", err)
	}

	s := &Stats{ClassCounts: make(map[int]int)}

	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".txt") {
			continue
		}

		data, err := fsys.ReadFile(filepath.Join(labelsDir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", e.Name(), err)
		}

		records, lineErrs := label.ParseAll(data)
		for _, rec := range records {
			s.ClassCounts[rec.Class]++
		}
		s.Files++
		s.BadLines += len(lineErrs)
		s.PerImage = append(s.PerImage, float64(len(records)))
	}

	return s, nil
}

package render

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/carvision/yolokit/internal/label"
)

// VisualiseSummary totals one visualiser run.
type VisualiseSummary struct {
	Processed      int
	Failed         int
	Annotations    int
	BadLines       int
	UnknownClasses int // records skipped because their class is not in data.yaml
}

// Visualiser walks an images directory, overlays the matching YOLO
// labels on each image, and writes the composited result to an output
// directory.
type Visualiser struct {
	Renderer *Renderer
	Logf     func(format string, args ...any)
}

// NewVisualiser wires a renderer to the standard logger.
func NewVisualiser(r *Renderer) *Visualiser {
	return &Visualiser{Renderer: r, Logf: log.Printf}
}

// ListImages returns the jpg/jpeg/png files in dir, sorted by name.
func ListImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read images dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".jpg", ".jpeg", ".png":
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Run processes up to limit images (all of them when limit <= 0). A
// failure on one image or one label line is logged and skipped; it
// never aborts the run.
func (v *Visualiser) Run(imagesDir, labelsDir, outputDir string, limit int) (VisualiseSummary, error) {
	var sum VisualiseSummary

	names, err := ListImages(imagesDir)
	if err != nil {
		return sum, err
	}
	if limit > 0 && len(names) > limit {
		names = names[:limit]
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return sum, fmt.Errorf("create output dir: %w", err)
	}

	for i, name := range names {
		v.Logf("[%d/%d] %s", i+1, len(names), name)

		drawn, bad, unknown, err := v.processOne(imagesDir, labelsDir, outputDir, name)
		if err != nil {
			v.Logf("warning: %s: %v", name, err)
			sum.Failed++
			continue
		}
		sum.Processed++
		sum.Annotations += drawn
		sum.BadLines += bad
		sum.UnknownClasses += unknown
	}

	return sum, nil
}

func (v *Visualiser) processOne(imagesDir, labelsDir, outputDir, name string) (drawn, bad, unknown int, err error) {
	img, err := decodeImage(filepath.Join(imagesDir, name))
	if err != nil {
		return 0, 0, 0, err
	}

	stem := strings.TrimSuffix(name, filepath.Ext(name))
	records, lineErrs := readLabels(filepath.Join(labelsDir, stem+".txt"))
	for _, le := range lineErrs {
		v.Logf("warning: %s.txt %v", stem, le)
	}

	annotated, drawn, skipped := v.Renderer.Annotate(img, records)
	for _, class := range skipped {
		v.Logf("warning: %s.txt: class %d not in data.yaml, record skipped", stem, class)
	}

	if err := encodeImage(filepath.Join(outputDir, name), annotated); err != nil {
		return 0, 0, 0, err
	}
	return drawn, len(lineErrs), len(skipped), nil
}

// readLabels parses a label file. A missing file simply means the
// image has no annotations.
func readLabels(path string) ([]label.Record, []label.LineError) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil
	}
	return label.ParseAll(data)
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return img, nil
}

func encodeImage(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return png.Encode(f, img)
	default:
		return jpeg.Encode(f, img, &jpeg.Options{Quality: 90})
	}
}

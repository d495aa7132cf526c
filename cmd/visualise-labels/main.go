// Command visualise-labels overlays YOLO box/polygon annotations on a
// directory of images and writes the composited images out, with class
// names taken from data.yaml.
package main

import (
	"flag"
	"log"

	"github.com/carvision/yolokit/internal/dataset"
	"github.com/carvision/yolokit/internal/fsutil"
	"github.com/carvision/yolokit/internal/render"
)

func main() {
	imagesDir := flag.String("images-dir", "", "directory containing images")
	labelsDir := flag.String("labels-dir", "", "directory containing YOLO label files")
	dataYAML := flag.String("data-yaml", "", "path to data.yaml with class names")
	outputDir := flag.String("output-dir", "", "directory to write annotated images")
	limit := flag.Int("limit", 0, "maximum number of images to process (0 = all)")
	fontPath := flag.String("font-path", "", "TrueType font for class-name text (default: embedded)")
	alpha := flag.Float64("alpha", 0.4, "fill opacity of the annotation overlay (0.0 to 1.0)")
	flag.Parse()

	if *imagesDir == "" || *labelsDir == "" || *dataYAML == "" || *outputDir == "" {
		log.Fatal("--images-dir, --labels-dir, --data-yaml and --output-dir are required")
	}

	names, err := dataset.LoadClassNames(fsutil.OSFileSystem{}, *dataYAML)
	if err != nil {
		log.Fatalf("failed to load class names: %v", err)
	}
	log.Printf("loaded %d classes from %s", len(names), *dataYAML)

	r, err := render.NewRenderer(names, *fontPath, *alpha)
	if err != nil {
		log.Fatalf("failed to set up renderer: %v", err)
	}

	sum, err := render.NewVisualiser(r).Run(*imagesDir, *labelsDir, *outputDir, *limit)
	if err != nil {
		log.Fatalf("visualise failed: %v", err)
	}

	if sum.BadLines > 0 {
		log.Printf("skipped %d malformed label lines", sum.BadLines)
	}
	if sum.UnknownClasses > 0 {
		log.Printf("skipped %d records with classes missing from data.yaml", sum.UnknownClasses)
	}
	if sum.Failed > 0 {
		log.Printf("failed to process %d images", sum.Failed)
	}
	log.Printf("✓ Processed %d images (%d annotations) into %s", sum.Processed, sum.Annotations, *outputDir)
}

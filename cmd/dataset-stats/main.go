// Command dataset-stats tallies the class distribution of a YOLO
// labels directory and renders it as an HTML bar chart.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/carvision/yolokit/internal/dataset"
	"github.com/carvision/yolokit/internal/fsutil"
	"github.com/carvision/yolokit/internal/report"
)

func main() {
	labelsDir := flag.String("labels-dir", "", "directory containing YOLO label files")
	dataYAML := flag.String("data-yaml", "", "path to data.yaml with class names")
	output := flag.String("output", "class_distribution.html", "output HTML file")
	flag.Parse()

	if *labelsDir == "" || *dataYAML == "" {
		log.Fatal("both --labels-dir and --data-yaml are required")
	}

	fsys := fsutil.OSFileSystem{}
	names, err := dataset.LoadClassNames(fsys, *dataYAML)
	if err != nil {
		log.Fatalf("failed to load class names: %v", err)
	}

	stats, err := report.Collect(fsys, *labelsDir)
	if err != nil {
		log.Fatalf("failed to collect stats: %v", err)
	}
	log.Printf("read %d label files: %d annotations across %d classes (%d malformed lines)",
		stats.Files, stats.TotalAnnotations(), len(stats.ClassCounts), stats.BadLines)

	f, err := os.Create(*output)
	if err != nil {
		log.Fatalf("failed to create %s: %v", *output, err)
	}
	defer f.Close()

	if err := report.RenderHTML(f, stats, names); err != nil {
		log.Fatalf("failed to render report: %v", err)
	}
	log.Printf("✓ Report written to %s", *output)
}

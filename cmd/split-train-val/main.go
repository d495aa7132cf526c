// Command split-train-val moves the images named in a val.txt file
// (and their labels) from the train split to the val split of a YOLO
// dataset.
package main

import (
	"flag"
	"log"

	"github.com/carvision/yolokit/internal/dataset"
	"github.com/carvision/yolokit/internal/fsutil"
)

func main() {
	valTxt := flag.String("val-txt", "", "path to val.txt listing validation image names")
	dataDir := flag.String("data-dir", "", "dataset root containing images/ and labels/")
	dryRun := flag.Bool("dry-run", false, "preview changes without moving files")
	flag.Parse()

	if *valTxt == "" || *dataDir == "" {
		log.Fatal("both --val-txt and --data-dir are required")
	}

	fsys := fsutil.OSFileSystem{}
	names, err := dataset.ReadValList(fsys, *valTxt)
	if err != nil {
		log.Fatalf("failed to read val list: %v", err)
	}
	log.Printf("found %d validation images in %s", len(names), *valTxt)

	s := dataset.NewSplitter()
	s.DryRun = *dryRun
	if *dryRun {
		log.Print("dry run: no files will be moved")
	}

	stats, err := s.Split(dataset.Layout{Root: *dataDir}, names)
	if err != nil {
		log.Fatalf("split failed: %v", err)
	}

	log.Printf("images moved: %d (already in val: %d, not found: %d, failed: %d)",
		stats.ImagesMoved, stats.ImagesInVal, stats.ImagesMissing, stats.ImagesFailed)
	log.Printf("labels moved: %d (already in val: %d, not found: %d, failed: %d)",
		stats.LabelsMoved, stats.LabelsInVal, stats.LabelsMissing, stats.LabelsFailed)
	if !*dryRun {
		log.Printf("✓ Split complete: %s", *dataDir)
	}
}

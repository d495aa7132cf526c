// Command normalise-annotations remaps the category IDs of every COCO
// annotations.json under a dataset directory to match a standard
// categories.json, rewriting each file with the full standard category
// set.
package main

import (
	"flag"
	"log"
	"sort"

	"github.com/carvision/yolokit/internal/coco"
	"github.com/carvision/yolokit/internal/fsutil"
)

func main() {
	categoriesFile := flag.String("categories-file", "", "standard categories.json defining the target IDs")
	datasetDir := flag.String("dataset-dir", "", "root directory to scan for annotations.json files")
	dryRun := flag.Bool("dry-run", false, "preview changes without rewriting files")
	flag.Parse()

	if *categoriesFile == "" || *datasetDir == "" {
		log.Fatal("both --categories-file and --dataset-dir are required")
	}

	fsys := fsutil.OSFileSystem{}
	standard, err := coco.LoadCategories(fsys, *categoriesFile)
	if err != nil {
		log.Fatalf("failed to load standard categories: %v", err)
	}
	log.Printf("loaded %d standard categories from %s", len(standard), *categoriesFile)

	files, err := fsutil.FindFiles(fsys, *datasetDir, func(name string) bool { return name == "annotations.json" })
	if err != nil {
		log.Fatalf("failed to scan %s: %v", *datasetDir, err)
	}
	log.Printf("found %d annotation files under %s", len(files), *datasetDir)

	n := coco.NewNormaliser()
	n.DryRun = *dryRun
	if *dryRun {
		log.Print("dry run: no files will be rewritten")
	}

	var total coco.NormaliseStats
	for i, path := range files {
		log.Printf("[%d/%d] %s", i+1, len(files), path)
		stats, err := n.NormaliseFile(path, standard)
		if err != nil {
			log.Printf("warning: %s: %v", path, err)
			continue
		}
		total.Add(stats)
	}

	log.Printf("categories: %d found, %d normalised", total.CategoriesFound, total.CategoriesNormalised)
	log.Printf("annotations updated: %d (files rewritten: %d)", total.AnnotationsUpdated, total.FilesRewritten)

	if len(total.Unmapped) > 0 {
		seen := make(map[string]bool)
		for _, name := range total.Unmapped {
			seen[name] = true
		}
		names := make([]string, 0, len(seen))
		for name := range seen {
			names = append(names, name)
		}
		sort.Strings(names)
		log.Printf("warning: %d unmapped category names:", len(names))
		for _, name := range names {
			log.Printf("  - %s", name)
		}
	} else {
		log.Print("✓ All categories mapped")
	}
}

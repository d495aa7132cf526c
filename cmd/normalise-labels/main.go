// Command normalise-labels remaps the class IDs of every YOLO dataset
// under a directory to match a reference data.yaml, optionally dropping
// named classes.
package main

import (
	"flag"
	"fmt"
	"log"
	"sort"

	"github.com/carvision/yolokit/internal/dataset"
	"github.com/carvision/yolokit/internal/fsutil"
)

type stringSet map[string]bool

func (s stringSet) String() string { return fmt.Sprint(map[string]bool(s)) }

func (s stringSet) Set(v string) error {
	s[v] = true
	return nil
}

func main() {
	reference := flag.String("reference", "", "reference data.yaml defining the standard class mapping")
	datasetsDir := flag.String("datasets-dir", "", "root directory containing raw datasets")
	dryRun := flag.Bool("dry-run", false, "preview changes without rewriting files")
	drop := stringSet{}
	flag.Var(drop, "drop-class", "class name to remove from labels (repeatable)")
	flag.Parse()

	if *reference == "" || *datasetsDir == "" {
		log.Fatal("both --reference and --datasets-dir are required")
	}

	fsys := fsutil.OSFileSystem{}
	refNames, err := dataset.LoadClassNames(fsys, *reference)
	if err != nil {
		log.Fatalf("failed to load reference mapping: %v", err)
	}
	log.Printf("loaded reference mapping with %d classes", len(refNames))

	yamls, err := fsutil.FindFiles(fsys, *datasetsDir, func(name string) bool { return name == "data.yaml" })
	if err != nil {
		log.Fatalf("failed to scan %s: %v", *datasetsDir, err)
	}
	log.Printf("found %d data.yaml files under %s", len(yamls), *datasetsDir)

	n := dataset.NewNormaliser()
	n.DryRun = *dryRun
	if *dryRun {
		log.Print("dry run: no files will be rewritten")
	}

	var total dataset.NormaliseStats
	for i, yamlPath := range yamls {
		log.Printf("[%d/%d] %s", i+1, len(yamls), yamlPath)
		stats, err := n.NormaliseDataset(yamlPath, refNames, drop)
		if err != nil {
			log.Printf("warning: %s: %v", yamlPath, err)
			continue
		}
		total.Add(stats)
	}

	log.Printf("files rewritten: %d", total.FilesRewritten)
	log.Printf("annotations remapped: %d, dropped: %d", total.Remapped, total.Dropped)

	if len(total.Unmapped) > 0 {
		seen := stringSet{}
		for _, name := range total.Unmapped {
			seen[name] = true
		}
		names := make([]string, 0, len(seen))
		for name := range seen {
			names = append(names, name)
		}
		sort.Strings(names)
		log.Printf("warning: %d unmapped class names:", len(names))
		for _, name := range names {
			log.Printf("  - %s", name)
		}
	} else {
		log.Print("✓ All classes mapped")
	}
}

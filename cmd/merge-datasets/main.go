// Command merge-datasets downloads the images referenced by every
// images.json manifest under a raw datasets directory into one merged
// images/train directory, copying the matching labels alongside.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/carvision/yolokit/internal/manifest"
)

func main() {
	rawDir := flag.String("raw-dir", "", "root directory containing raw datasets")
	outputDir := flag.String("output-dir", "", "output directory for merged images and labels")
	workers := flag.Int("workers", 8, "number of parallel download workers")
	filter := flag.String("filter", "", "only process datasets whose path contains this substring")
	flag.Parse()

	if *rawDir == "" || *outputDir == "" {
		log.Fatal("both --raw-dir and --output-dir are required")
	}

	outImages := filepath.Join(*outputDir, "images", "train")
	outLabels := filepath.Join(*outputDir, "labels", "train")
	for _, dir := range []string{outImages, outLabels} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("failed to create %s: %v", dir, err)
		}
	}

	manifests, err := manifest.FindManifests(*rawDir)
	if err != nil {
		log.Fatalf("failed to scan for manifests: %v", err)
	}
	if *filter != "" {
		var kept []string
		for _, m := range manifests {
			if strings.Contains(m, *filter) {
				kept = append(kept, m)
			}
		}
		manifests = kept
	}
	log.Printf("found %d datasets under %s", len(manifests), *rawDir)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := manifest.NewMerger(*workers)
	start := time.Now()

	var total manifest.MergeStats
	processed := 0
	for i, path := range manifests {
		log.Printf("[%d/%d] %s", i+1, len(manifests), filepath.Dir(path))
		stats, err := m.ProcessDataset(ctx, path, outImages, outLabels)
		total.Add(stats)
		if err != nil {
			if ctx.Err() != nil {
				log.Printf("interrupted: %v", err)
				break
			}
			log.Printf("warning: %s: %v", path, err)
			processed++
			continue
		}
		log.Printf("  downloaded %d, skipped %d, errors %d, labels %d",
			stats.Downloaded, stats.Skipped, stats.Errors, stats.LabelsCopied)
		processed++
	}

	elapsed := time.Since(start)
	log.Printf("images: %d downloaded, %d skipped, %d errors", total.Downloaded, total.Skipped, total.Errors)
	log.Printf("labels copied: %d", total.LabelsCopied)
	if ctx.Err() != nil {
		log.Printf("stopped after %d of %d datasets (%s)", processed, len(manifests), elapsed.Round(time.Second))
		return
	}
	log.Printf("✓ Merged %d datasets in %s into %s", len(manifests), elapsed.Round(time.Second), *outputDir)
}

// Command unzip-batch extracts every zip archive under a directory
// tree, each into a sibling directory named after the archive.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/carvision/yolokit/internal/ziputil"
)

func main() {
	root := flag.String("root", "", "directory to scan for zip files")
	flag.Parse()

	if *root == "" {
		log.Fatal("--root is required")
	}
	if _, err := os.Stat(*root); err != nil {
		log.Fatalf("cannot access %s: %v", *root, err)
	}

	zips, err := ziputil.FindZips(*root)
	if err != nil {
		log.Fatalf("failed to scan for archives: %v", err)
	}
	log.Printf("found %d zip files under %s", len(zips), *root)

	var extracted, skipped, failed int
	for i, zipPath := range zips {
		dest := ziputil.ExtractDir(zipPath)
		if _, err := os.Stat(dest); err == nil {
			log.Printf("[%d/%d] %s already extracted, skipping", i+1, len(zips), zipPath)
			skipped++
			continue
		}

		log.Printf("[%d/%d] extracting %s", i+1, len(zips), zipPath)
		if err := ziputil.Extract(zipPath); err != nil {
			log.Printf("warning: %s: %v", zipPath, err)
			failed++
			continue
		}
		extracted++
	}

	log.Printf("✓ Extracted %d archives (skipped %d, failed %d)", extracted, skipped, failed)
}

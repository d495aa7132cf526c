package manifest

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// MergeStats summarises one dataset's merge.
type MergeStats struct {
	Dataset      string
	Total        int
	Downloaded   int
	Skipped      int
	Errors       int
	LabelsCopied int
}

// Add accumulates another dataset's stats into the receiver.
func (s *MergeStats) Add(o MergeStats) {
	s.Total += o.Total
	s.Downloaded += o.Downloaded
	s.Skipped += o.Skipped
	s.Errors += o.Errors
	s.LabelsCopied += o.LabelsCopied
}

// Merger downloads a dataset's images into a shared output directory
// and copies the matching labels alongside them.
type Merger struct {
	Downloader *Downloader
	Workers    int
	Logf       func(format string, args ...any)
}

// NewMerger builds a merger with n download workers.
func NewMerger(n int) *Merger {
	if n < 1 {
		n = 1
	}
	return &Merger{Downloader: NewDownloader(), Workers: n, Logf: log.Printf}
}

// ProcessDataset downloads every entry of one images.json manifest
// into outImages and copies each entry's label from the dataset's
// labels/train into outLabels. Name collisions with already-merged
// datasets are resolved by prefixing with the dataset directory name;
// files already present are skipped so reruns are cheap.
func (m *Merger) ProcessDataset(ctx context.Context, manifestPath, outImages, outLabels string) (MergeStats, error) {
	datasetDir := filepath.Dir(manifestPath)
	stats := MergeStats{Dataset: filepath.Base(datasetDir)}

	entries, err := Load(manifestPath)
	if err != nil {
		return stats, err
	}
	stats.Total = len(entries)

	var (
		mu   sync.Mutex
		wg   sync.WaitGroup
		jobs = make(chan Entry)
	)

	for i := 0; i < m.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for e := range jobs {
				outcome := m.processEntry(ctx, e, datasetDir, outImages, outLabels, stats.Dataset)
				mu.Lock()
				stats.Downloaded += outcome.downloaded
				stats.Skipped += outcome.skipped
				stats.Errors += outcome.errors
				stats.LabelsCopied += outcome.labels
				mu.Unlock()
			}
		}()
	}

	for _, e := range entries {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return stats, ctx.Err()
		case jobs <- e:
		}
	}
	close(jobs)
	wg.Wait()

	// The select above can race past a cancellation when a worker was
	// ready; report it either way so callers see the interrupt.
	if err := ctx.Err(); err != nil {
		return stats, err
	}
	return stats, nil
}

type entryOutcome struct {
	downloaded, skipped, errors, labels int
}

func (m *Merger) processEntry(ctx context.Context, e Entry, datasetDir, outImages, outLabels, prefix string) entryOutcome {
	fileName := FileName(e)
	dest := filepath.Join(outImages, fileName)

	if _, err := os.Stat(dest); err == nil {
		// Taken by an earlier dataset; retry under a prefixed name.
		fileName = SanitizePrefix(prefix) + "_" + fileName
		dest = filepath.Join(outImages, fileName)
		if _, err := os.Stat(dest); err == nil {
			return entryOutcome{skipped: 1}
		}
	}

	if err := m.Downloader.Fetch(ctx, e.URL, dest); err != nil {
		m.Logf("warning: download %s: %v", e.Name, err)
		return entryOutcome{errors: 1}
	}

	out := entryOutcome{downloaded: 1}
	if m.copyLabel(e.Name, fileName, datasetDir, outLabels) {
		out.labels = 1
	}
	return out
}

// copyLabel copies the label matching the manifest's original name to
// the (possibly prefixed) merged name. Absent labels are fine; not
// every image is annotated.
func (m *Merger) copyLabel(originalName, mergedName, datasetDir, outLabels string) bool {
	srcStem := strings.TrimSuffix(originalName, filepath.Ext(originalName))
	dstStem := strings.TrimSuffix(mergedName, filepath.Ext(mergedName))

	src := filepath.Join(datasetDir, "labels", "train", srcStem+".txt")
	data, err := os.ReadFile(src)
	if err != nil {
		return false
	}

	dst := filepath.Join(outLabels, dstStem+".txt")
	if err := os.WriteFile(dst, data, 0644); err != nil {
		m.Logf("warning: copy label %s: %v", dstStem+".txt", err)
		return false
	}
	return true
}

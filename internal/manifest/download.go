package manifest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// Downloader fetches images over HTTP with bounded retries.
type Downloader struct {
	Client  *http.Client
	Retries int
	Backoff time.Duration
}

// NewDownloader returns a downloader with the defaults the merge tool
// uses: three attempts, exponential backoff starting at one second.
func NewDownloader() *Downloader {
	return &Downloader{
		Client:  &http.Client{Timeout: 30 * time.Second},
		Retries: 3,
		Backoff: time.Second,
	}
}

// Fetch downloads url into dest. Partial files are removed on failure
// so a rerun retries them cleanly.
func (d *Downloader) Fetch(ctx context.Context, url, dest string) error {
	var lastErr error

	for attempt := 0; attempt < d.Retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(d.Backoff << (attempt - 1)):
			}
		}

		lastErr = d.fetchOnce(ctx, url, dest)
		if lastErr == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}

	return fmt.Errorf("after %d attempts: %w", d.Retries, lastErr)
}

func (d *Downloader) fetchOnce(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "yolokit/merge-datasets")

	resp, err := d.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	out, err := os.Create(dest)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(dest)
		return err
	}
	return out.Close()
}

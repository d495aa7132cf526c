// Package manifest merges exported datasets: it reads images.json
// manifests, downloads the referenced images, and copies the matching
// label files into a single output layout.
package manifest

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// Entry is one image reference in an images.json manifest.
type Entry struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Load reads an images.json manifest.
func Load(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return entries, nil
}

// FindManifests returns every images.json under root, sorted by path.
func FindManifests(root string) ([]string, error) {
	var manifests []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && d.Name() == "images.json" {
			manifests = append(manifests, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	sort.Strings(manifests)
	return manifests, nil
}

var imageExts = []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".webp", ".tiff"}

// ExtFromURL guesses the image extension from a download URL,
// defaulting to .jpg.
func ExtFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ".jpg"
	}
	lower := strings.ToLower(path.Ext(u.Path))
	for _, ext := range imageExts {
		if lower == ext {
			return ext
		}
	}
	return ".jpg"
}

// FileName resolves the on-disk filename for an entry, appending the
// URL's extension when the manifest name has none.
func FileName(e Entry) string {
	lower := strings.ToLower(e.Name)
	for _, ext := range imageExts {
		if strings.HasSuffix(lower, ext) {
			return e.Name
		}
	}
	return e.Name + ExtFromURL(e.URL)
}

// SanitizePrefix reduces a dataset directory name to a safe filename
// prefix for collision renaming.
func SanitizePrefix(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

package fsutil

import (
	"path/filepath"
	"sort"
)

// FindFiles walks root recursively and returns the paths of all files
// whose base name satisfies match, sorted for deterministic processing.
func FindFiles(fsys FileSystem, root string, match func(name string) bool) ([]string, error) {
	var found []string
	if err := findFiles(fsys, root, match, &found); err != nil {
		return nil, err
	}
	sort.Strings(found)
	return found, nil
}

func findFiles(fsys FileSystem, dir string, match func(name string) bool, found *[]string) error {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		if e.IsDir() {
			if err := findFiles(fsys, path, match, found); err != nil {
				return err
			}
			continue
		}
		if match(e.Name()) {
			*found = append(*found, path)
		}
	}
	return nil
}

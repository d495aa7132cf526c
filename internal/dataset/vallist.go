package dataset

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/carvision/yolokit/internal/fsutil"
)

// ReadValList reads a validation list file: one image filename per
// line, blank lines skipped, surrounding whitespace trimmed.
func ReadValList(fsys fsutil.FileSystem, path string) ([]string, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read val list: %w", err)
	}

	var names []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		name := strings.TrimSpace(sc.Text())
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

// Stem returns the filename without its extension, used to match an
// image to its label file.
func Stem(name string) string {
	if i := strings.LastIndex(name, "."); i > 0 {
		return name[:i]
	}
	return name
}

package render

import (
	"fmt"
	"os"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"
)

// LoadFont parses a TrueType font from path. With an empty path it
// falls back to the embedded Go Regular face, whose Latin coverage
// includes Vietnamese diacritics.
func LoadFont(path string) (*truetype.Font, error) {
	if path == "" {
		return truetype.Parse(goregular.TTF)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font %s: %w", path, err)
	}
	fnt, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", path, err)
	}
	return fnt, nil
}

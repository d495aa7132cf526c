// Package coco normalises the category IDs of COCO annotation files
// against a standard categories.json.
package coco

import (
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"

	"github.com/carvision/yolokit/internal/fsutil"
)

// Category is one entry of a COCO categories array. The raw JSON is
// kept so rewrites preserve fields beyond id and name.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`

	raw json.RawMessage
}

func (c Category) encode() (json.RawMessage, error) {
	if c.raw != nil {
		return c.raw, nil
	}
	return json.Marshal(c)
}

func parseCategories(data []byte) ([]Category, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, err
	}

	cats := make([]Category, 0, len(raws))
	for i, r := range raws {
		var c Category
		if err := json.Unmarshal(r, &c); err != nil {
			return nil, fmt.Errorf("category %d: %w", i, err)
		}
		c.raw = r
		cats = append(cats, c)
	}
	return cats, nil
}

// LoadCategories reads a categories.json file: a JSON array of
// category objects carrying at least an id and a name.
func LoadCategories(fsys fsutil.FileSystem, path string) ([]Category, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cats, err := parseCategories(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cats, nil
}

// NameIndex maps whitespace-trimmed category names to their standard
// category.
func NameIndex(cats []Category) map[string]Category {
	byName := make(map[string]Category, len(cats))
	for _, c := range cats {
		byName[strings.TrimSpace(c.Name)] = c
	}
	return byName
}

// NormaliseStats summarises one annotation file's normalisation.
type NormaliseStats struct {
	CategoriesFound      int
	CategoriesNormalised int
	AnnotationsUpdated   int
	FilesRewritten       int
	Unmapped             []string
}

// Add accumulates another file's stats into the receiver.
func (s *NormaliseStats) Add(o NormaliseStats) {
	s.CategoriesFound += o.CategoriesFound
	s.CategoriesNormalised += o.CategoriesNormalised
	s.AnnotationsUpdated += o.AnnotationsUpdated
	s.FilesRewritten += o.FilesRewritten
	s.Unmapped = append(s.Unmapped, o.Unmapped...)
}

// Normaliser rewrites COCO annotation files so their category IDs
// match a standard category set.
type Normaliser struct {
	FS     fsutil.FileSystem
	DryRun bool
	Logf   func(format string, args ...any)
}

// NewNormaliser creates a normaliser over the real filesystem.
func NewNormaliser() *Normaliser {
	return &Normaliser{FS: fsutil.OSFileSystem{}, Logf: log.Printf}
}

// NormaliseFile rewrites one annotations.json: every annotation's
// category_id is remapped to the standard set by trimmed name, and the
// file's categories array is replaced with the full standard set
// sorted by ID. Category names absent from the standard set keep their
// IDs and are reported as unmapped; fields other than categories and
// category_id pass through untouched.
func (n *Normaliser) NormaliseFile(path string, standard []Category) (NormaliseStats, error) {
	var stats NormaliseStats

	data, err := n.FS.ReadFile(path)
	if err != nil {
		return stats, err
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return stats, fmt.Errorf("parse %s: %w", path, err)
	}

	catsRaw, ok := doc["categories"]
	if !ok {
		return stats, nil
	}
	old, err := parseCategories(catsRaw)
	if err != nil {
		return stats, fmt.Errorf("parse %s: %w", path, err)
	}
	stats.CategoriesFound = len(old)

	byName := NameIndex(standard)
	oldToNew := make(map[int]int, len(old))
	for _, c := range old {
		name := strings.TrimSpace(c.Name)
		std, ok := byName[name]
		if !ok {
			// Keep the ID so the annotations stay self-consistent.
			oldToNew[c.ID] = c.ID
			stats.Unmapped = append(stats.Unmapped, name)
			n.Logf("warning: category %q (ID %d) not in standard set (%s)", name, c.ID, path)
			continue
		}
		oldToNew[c.ID] = std.ID
		stats.CategoriesNormalised++
	}

	if annRaw, ok := doc["annotations"]; ok {
		var anns []map[string]json.RawMessage
		if err := json.Unmarshal(annRaw, &anns); err != nil {
			return stats, fmt.Errorf("parse %s annotations: %w", path, err)
		}
		for _, ann := range anns {
			idRaw, ok := ann["category_id"]
			if !ok {
				continue
			}
			var oldID int
			if err := json.Unmarshal(idRaw, &oldID); err != nil {
				continue
			}
			newID, ok := oldToNew[oldID]
			if !ok {
				continue
			}
			ann["category_id"] = json.RawMessage(strconv.Itoa(newID))
			stats.AnnotationsUpdated++
		}
		out, err := json.Marshal(anns)
		if err != nil {
			return stats, fmt.Errorf("encode %s annotations: %w", path, err)
		}
		doc["annotations"] = out
	}

	sorted := make([]Category, len(standard))
	copy(sorted, standard)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	encoded := make([]json.RawMessage, len(sorted))
	for i, c := range sorted {
		if encoded[i], err = c.encode(); err != nil {
			return stats, fmt.Errorf("encode category %d: %w", c.ID, err)
		}
	}
	catsOut, err := json.Marshal(encoded)
	if err != nil {
		return stats, fmt.Errorf("encode %s categories: %w", path, err)
	}
	doc["categories"] = catsOut

	if n.DryRun {
		n.Logf("would rewrite %s", path)
		return stats, nil
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return stats, fmt.Errorf("encode %s: %w", path, err)
	}
	out = append(out, '\n')
	if err := n.FS.WriteFile(path, out, 0644); err != nil {
		return stats, fmt.Errorf("write %s: %w", path, err)
	}
	stats.FilesRewritten++

	return stats, nil
}

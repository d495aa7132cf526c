package dataset

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/carvision/yolokit/internal/fsutil"
)

// ClassNames maps numeric class IDs to class names. In data.yaml the
// names field appears either as a mapping (0: name) or a sequence;
// both decode to the same map.
type ClassNames map[int]string

// UnmarshalYAML accepts both the mapping and sequence forms of the
// YOLO names field.
func (c *ClassNames) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.MappingNode:
		m := make(map[int]string)
		if err := value.Decode(&m); err != nil {
			return err
		}
		*c = m
	case yaml.SequenceNode:
		var names []string
		if err := value.Decode(&names); err != nil {
			return err
		}
		m := make(map[int]string, len(names))
		for i, name := range names {
			m[i] = name
		}
		*c = m
	default:
		return fmt.Errorf("names: expected mapping or sequence, got %v", value.Kind)
	}
	return nil
}

type dataYAML struct {
	Train string     `yaml:"train"`
	Val   string     `yaml:"val"`
	Names ClassNames `yaml:"names"`
}

// LoadClassNames reads the class-name mapping from a data.yaml file.
func LoadClassNames(fsys fsutil.FileSystem, path string) (ClassNames, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var d dataYAML
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(d.Names) == 0 {
		return nil, fmt.Errorf("%s has no names field", path)
	}
	return d.Names, nil
}

// ReferenceMapping inverts a class-name table into a trimmed
// name-to-ID lookup, used when normalising datasets against a
// reference data.yaml.
func ReferenceMapping(names ClassNames) map[string]int {
	m := make(map[string]int, len(names))
	for id, name := range names {
		m[strings.TrimSpace(name)] = id
	}
	return m
}

// WriteDataYAML writes a normalised data.yaml with the standard train
// and val paths and the given class names.
func WriteDataYAML(fsys fsutil.FileSystem, path string, names ClassNames) error {
	d := dataYAML{
		Train: "images/train",
		Val:   "images/val",
		Names: names,
	}
	out, err := yaml.Marshal(&d)
	if err != nil {
		return fmt.Errorf("marshal data.yaml: %w", err)
	}
	return fsys.WriteFile(path, out, 0644)
}

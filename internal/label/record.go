// Package label parses and rewrites YOLO-format annotation files.
//
// Each line of a label file encodes one object: a numeric class ID followed
// by normalized geometry in the [0,1] range. A five-field line is a bounding
// box (center x, center y, width, height); longer lines with an even number
// of coordinates are segmentation polygons.
package label

import (
	"bufio"
	"bytes"
	"fmt"
	"image"
	"math"
	"strconv"
	"strings"
)

// Point is a normalized coordinate pair in the [0,1] range.
type Point struct {
	X, Y float64
}

// Record is one parsed annotation.
type Record struct {
	Class  int
	Points []Point
	// Box is true when the record came from a five-field bounding-box
	// line rather than a polygon.
	Box bool
}

// LineError records a malformed label line together with its 1-based
// line number, so callers can warn and keep going.
type LineError struct {
	Line int
	Err  error
}

func (e LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

// ParseLine parses a single YOLO label line.
func ParseLine(line string) (Record, error) {
	fields := strings.Fields(line)
	if len(fields) < 5 {
		return Record{}, fmt.Errorf("expected at least 5 fields, got %d", len(fields))
	}

	class, err := strconv.Atoi(fields[0])
	if err != nil {
		return Record{}, fmt.Errorf("invalid class ID %q: %w", fields[0], err)
	}
	if class < 0 {
		return Record{}, fmt.Errorf("negative class ID %d", class)
	}

	coords := make([]float64, 0, len(fields)-1)
	for _, f := range fields[1:] {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return Record{}, fmt.Errorf("invalid coordinate %q: %w", f, err)
		}
		coords = append(coords, v)
	}

	if len(coords) == 4 {
		// Bounding box: center x, center y, width, height.
		cx, cy, w, h := coords[0], coords[1], coords[2], coords[3]
		return Record{
			Class: class,
			Box:   true,
			Points: []Point{
				{cx - w/2, cy - h/2},
				{cx + w/2, cy - h/2},
				{cx + w/2, cy + h/2},
				{cx - w/2, cy + h/2},
			},
		}, nil
	}

	if len(coords)%2 != 0 {
		return Record{}, fmt.Errorf("odd coordinate count %d", len(coords))
	}

	pts := make([]Point, 0, len(coords)/2)
	for i := 0; i < len(coords); i += 2 {
		pts = append(pts, Point{coords[i], coords[i+1]})
	}
	return Record{Class: class, Points: pts}, nil
}

// ParseAll parses every line of a label file. Malformed lines are
// returned as LineErrors alongside the records that did parse; a bad
// record never aborts the file.
func ParseAll(data []byte) ([]Record, []LineError) {
	var (
		records []Record
		errs    []LineError
	)

	sc := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		rec, err := ParseLine(line)
		if err != nil {
			errs = append(errs, LineError{Line: lineNo, Err: err})
			continue
		}
		records = append(records, rec)
	}

	return records, errs
}

// Denormalize converts a record's normalized points into pixel
// coordinates for an image of the given dimensions. Coordinates are
// clamped to the image bounds.
func Denormalize(rec Record, width, height int) []image.Point {
	pts := make([]image.Point, len(rec.Points))
	for i, p := range rec.Points {
		x := int(math.Round(p.X * float64(width)))
		y := int(math.Round(p.Y * float64(height)))
		pts[i] = image.Pt(clamp(x, 0, width-1), clamp(y, 0, height-1))
	}
	return pts
}

// Centroid returns the pixel centroid of the denormalized points,
// falling back to the first point for degenerate geometry.
func Centroid(pts []image.Point) image.Point {
	if len(pts) == 0 {
		return image.Point{}
	}
	var sx, sy int
	for _, p := range pts {
		sx += p.X
		sy += p.Y
	}
	return image.Pt(sx/len(pts), sy/len(pts))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

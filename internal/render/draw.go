package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/carvision/yolokit/internal/label"
)

const (
	outlineThickness = 2
	textSize         = 20
)

// Renderer composites YOLO annotations onto images.
type Renderer struct {
	// Names maps class IDs to display names. Records whose class is
	// absent from the table are skipped.
	Names map[int]string

	// Alpha is the opacity of the polygon fill, in [0,1].
	Alpha float64

	face font.Face
}

// NewRenderer builds a renderer with the given class table, font path
// (empty for the embedded default) and fill opacity.
func NewRenderer(names map[int]string, fontPath string, alpha float64) (*Renderer, error) {
	fnt, err := LoadFont(fontPath)
	if err != nil {
		return nil, err
	}
	return &Renderer{
		Names: names,
		Alpha: alpha,
		face:  truetype.NewFace(fnt, &truetype.Options{Size: textSize}),
	}, nil
}

// Annotate draws each record over a copy of src. It returns the result,
// the number of annotations drawn, and the class IDs of the records
// skipped because their class is absent from the table.
func (r *Renderer) Annotate(src image.Image, records []label.Record) (*image.NRGBA, int, []int) {
	bounds := src.Bounds()
	dst := image.NewNRGBA(bounds)
	draw.Draw(dst, bounds, src, bounds.Min, draw.Src)

	w, h := bounds.Dx(), bounds.Dy()
	drawn := 0
	var unknown []int

	for _, rec := range records {
		name, ok := r.Names[rec.Class]
		if !ok {
			unknown = append(unknown, rec.Class)
			continue
		}

		pts := label.Denormalize(rec, w, h)
		if len(pts) < 3 {
			continue
		}

		col := ClassColor(rec.Class)
		r.fillPolygon(dst, pts, col)
		r.outlinePolygon(dst, pts, col)
		r.drawText(dst, name, label.Centroid(pts), col)
		drawn++
	}

	return dst, drawn, unknown
}

// fillPolygon rasterizes the polygon and blends it over dst at the
// renderer's alpha.
func (r *Renderer) fillPolygon(dst *image.NRGBA, pts []image.Point, col color.NRGBA) {
	if r.Alpha <= 0 {
		return
	}
	alpha := r.Alpha
	if alpha > 1 {
		alpha = 1
	}

	b := dst.Bounds()
	ras := vector.NewRasterizer(b.Dx(), b.Dy())
	ras.DrawOp = draw.Over

	ras.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		ras.LineTo(float32(p.X), float32(p.Y))
	}
	ras.ClosePath()

	fill := color.NRGBA{R: col.R, G: col.G, B: col.B, A: uint8(alpha * 255)}
	ras.Draw(dst, b, image.NewUniform(fill), image.Point{})
}

// outlinePolygon draws the closed polygon boundary.
func (r *Renderer) outlinePolygon(dst *image.NRGBA, pts []image.Point, col color.NRGBA) {
	for i := range pts {
		drawLine(dst, pts[i], pts[(i+1)%len(pts)], col)
	}
}

// drawLine plots a thick line segment with integer Bresenham stepping.
func drawLine(dst *image.NRGBA, a, b image.Point, col color.NRGBA) {
	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	err := dx + dy

	x, y := a.X, a.Y
	for {
		plotThick(dst, x, y, col)
		if x == b.X && y == b.Y {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

func plotThick(dst *image.NRGBA, x, y int, col color.NRGBA) {
	for oy := 0; oy < outlineThickness; oy++ {
		for ox := 0; ox < outlineThickness; ox++ {
			p := image.Pt(x+ox, y+oy)
			if p.In(dst.Bounds()) {
				dst.SetNRGBA(p.X, p.Y, col)
			}
		}
	}
}

// drawText renders the class name at the given position over a dark
// backing rectangle so it stays readable on any image.
func (r *Renderer) drawText(dst *image.NRGBA, text string, at image.Point, col color.NRGBA) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: r.face,
		Dot:  fixed.P(at.X, at.Y),
	}

	width := d.MeasureString(text).Ceil()
	metrics := r.face.Metrics()
	ascent := metrics.Ascent.Ceil()
	descent := metrics.Descent.Ceil()

	backing := image.Rect(at.X-2, at.Y-ascent-2, at.X+width+2, at.Y+descent+2).
		Intersect(dst.Bounds())
	draw.Draw(dst, backing, image.NewUniform(color.NRGBA{A: 180}), image.Point{}, draw.Over)

	d.DrawString(text)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

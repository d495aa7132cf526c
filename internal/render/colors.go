// Package render draws YOLO annotations onto images: filled polygons
// blended over the source, outlines, and class-name text.
package render

import (
	"image/color"
	"math"
)

// goldenAngle spreads successive class hues around the color wheel so
// neighbouring class IDs get visually distinct colors.
const goldenAngle = 137.508

// ClassColor returns a deterministic, fully saturated color for a
// class ID.
func ClassColor(id int) color.NRGBA {
	hue := math.Mod(float64(id)*goldenAngle, 360)
	r, g, b := hsvToRGB(hue, 1, 1)
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

// hsvToRGB converts hue in [0,360) and saturation/value in [0,1] to
// 8-bit RGB.
func hsvToRGB(h, s, v float64) (uint8, uint8, uint8) {
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return uint8((r + m) * 255), uint8((g + m) * 255), uint8((b + m) * 255)
}

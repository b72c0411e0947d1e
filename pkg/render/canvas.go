// Package render draws a city map onto a Canvas: curved routes with
// direction arrows, city markers, and a one-shot path overlay.
package render

import (
	"image/color"

	"golang.org/x/image/font"

	"github.com/ha1tch/citymap/pkg/geom"
)

// Stroke describes how a line or curve is painted.
type Stroke struct {
	Color color.RGBA
	Width float64
	Dash  []float64 // on/off lengths in pixels; empty for solid
}

// Dashed reports whether the stroke has a dash pattern.
func (s Stroke) Dashed() bool {
	return len(s.Dash) > 0
}

// TextStyle describes how text is painted.
type TextStyle struct {
	Face  font.Face
	Size  float64 // point size of Face, for vector backends
	Color color.RGBA
}

// Canvas is the drawing sink for one frame. Coordinates are pixels with
// the origin at the top left and y growing downward.
type Canvas interface {
	// Size returns the drawable width and height.
	Size() (width, height float64)
	// StrokeQuad strokes the quadratic curve p0 → p1 bent through ctrl.
	StrokeQuad(p0, ctrl, p1 geom.Point, s Stroke)
	// StrokeLine strokes a straight segment.
	StrokeLine(p0, p1 geom.Point, s Stroke)
	// FillOval fills the circle inscribed in the size×size box at topLeft.
	FillOval(topLeft geom.Point, size float64, c color.RGBA)
	// DrawText draws text with its baseline starting at origin, rotated
	// by angle radians about origin.
	DrawText(text string, origin geom.Point, angle float64, ts TextStyle)
}

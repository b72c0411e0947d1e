package geom

import (
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"gonum.org/v1/gonum/spatial/r2"
)

// TextMetrics describes the extent of a run of text relative to its
// baseline origin. Ascent and Descent are both positive distances.
type TextMetrics struct {
	Width   float64
	Ascent  float64
	Descent float64
}

// MeasureText returns the metrics of text set in face.
func MeasureText(face font.Face, text string) TextMetrics {
	m := face.Metrics()
	return TextMetrics{
		Width:   fixedToFloat(font.MeasureString(face, text)),
		Ascent:  fixedToFloat(m.Ascent),
		Descent: fixedToFloat(m.Descent),
	}
}

// AnchorText returns the baseline origin from which text with metrics m,
// rotated by angle about that origin, has its visual center on p.
func AnchorText(p Point, angle float64, m TextMetrics) Point {
	// Center of the text box in its own frame (y grows downward, the
	// baseline sits at y=0).
	center := Point{X: m.Width / 2, Y: (m.Descent - m.Ascent) / 2}
	rotated := r2.Rotate(center, angle, Point{})
	return r2.Sub(p, rotated)
}

// TextCenter is the inverse of AnchorText: the visual center of text
// drawn from origin rotated by angle.
func TextCenter(origin Point, angle float64, m TextMetrics) Point {
	center := Point{X: m.Width / 2, Y: (m.Descent - m.Ascent) / 2}
	return r2.Add(origin, r2.Rotate(center, angle, Point{}))
}

// RotateTextAnchor measures text in face and returns its centered,
// rotated draw origin. See AnchorText.
func RotateTextAnchor(p Point, angle float64, text string, face font.Face) Point {
	return AnchorText(p, angle, MeasureText(face, text))
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

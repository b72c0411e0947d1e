// Raster rendering for city maps.
// Paints frames with fogleman/gg and encodes them as PNG.

package render

import (
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"

	"github.com/ha1tch/citymap/pkg/geom"
)

// PNGCanvas is a Canvas backed by an anti-aliased RGBA image.
type PNGCanvas struct {
	dc *gg.Context
}

// NewPNGCanvas creates a width×height raster filled with background.
func NewPNGCanvas(width, height int, background color.Color) *PNGCanvas {
	dc := gg.NewContext(width, height)
	dc.SetColor(background)
	dc.Clear()
	return &PNGCanvas{dc: dc}
}

// Size implements Canvas.
func (p *PNGCanvas) Size() (float64, float64) {
	return float64(p.dc.Width()), float64(p.dc.Height())
}

func (p *PNGCanvas) applyStroke(s Stroke) {
	p.dc.SetColor(s.Color)
	p.dc.SetLineWidth(s.Width)
	p.dc.SetDash(s.Dash...)
	if s.Dashed() {
		p.dc.SetLineCapButt()
		p.dc.SetLineJoinBevel()
	} else {
		p.dc.SetLineCapRound()
		p.dc.SetLineJoinRound()
	}
}

// StrokeQuad implements Canvas.
func (p *PNGCanvas) StrokeQuad(p0, ctrl, p1 geom.Point, s Stroke) {
	p.applyStroke(s)
	p.dc.MoveTo(p0.X, p0.Y)
	p.dc.QuadraticTo(ctrl.X, ctrl.Y, p1.X, p1.Y)
	p.dc.Stroke()
}

// StrokeLine implements Canvas.
func (p *PNGCanvas) StrokeLine(p0, p1 geom.Point, s Stroke) {
	p.applyStroke(s)
	p.dc.DrawLine(p0.X, p0.Y, p1.X, p1.Y)
	p.dc.Stroke()
}

// FillOval implements Canvas.
func (p *PNGCanvas) FillOval(topLeft geom.Point, size float64, c color.RGBA) {
	r := size / 2
	p.dc.SetColor(c)
	p.dc.DrawEllipse(topLeft.X+r, topLeft.Y+r, r, r)
	p.dc.Fill()
}

// DrawText implements Canvas.
func (p *PNGCanvas) DrawText(text string, origin geom.Point, angle float64, ts TextStyle) {
	if ts.Face != nil {
		p.dc.SetFontFace(ts.Face)
	}
	p.dc.SetColor(ts.Color)
	p.dc.Push()
	p.dc.RotateAbout(angle, origin.X, origin.Y)
	p.dc.DrawString(text, origin.X, origin.Y)
	p.dc.Pop()
}

// Image returns the painted image.
func (p *PNGCanvas) Image() image.Image {
	return p.dc.Image()
}

// Encode writes the image as PNG.
func (p *PNGCanvas) Encode(w io.Writer) error {
	return p.dc.EncodePNG(w)
}

// RenderPNG redraws e onto a fresh width×height raster and writes it to w.
func RenderPNG(e *Engine, w io.Writer, width, height int) (FrameStats, error) {
	c := NewPNGCanvas(width, height, e.Style().Background)
	stats := e.Redraw(c)
	return stats, c.Encode(w)
}

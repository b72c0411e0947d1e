// Vector rendering for city maps.
// Streams frames as SVG through ajstarks/svgo.

package render

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ha1tch/citymap/pkg/geom"
)

// SVGCanvas is a Canvas that writes SVG elements as it is drawn on.
// Call Close to finish the document.
type SVGCanvas struct {
	svg           *svg.SVG
	width, height int
}

// NewSVGCanvas starts a width×height SVG document on w with a background
// rectangle.
func NewSVGCanvas(w io.Writer, width, height int, background color.Color) *SVGCanvas {
	s := svg.New(w)
	s.Start(width, height)
	s.Rect(0, 0, width, height, "fill:"+cssColor(background))
	return &SVGCanvas{svg: s, width: width, height: height}
}

// Size implements Canvas.
func (s *SVGCanvas) Size() (float64, float64) {
	return float64(s.width), float64(s.height)
}

// StrokeQuad implements Canvas.
func (s *SVGCanvas) StrokeQuad(p0, ctrl, p1 geom.Point, st Stroke) {
	d := fmt.Sprintf("M%.2f,%.2f Q%.2f,%.2f %.2f,%.2f", p0.X, p0.Y, ctrl.X, ctrl.Y, p1.X, p1.Y)
	s.svg.Path(d, strokeCSS(st))
}

// StrokeLine implements Canvas.
func (s *SVGCanvas) StrokeLine(p0, p1 geom.Point, st Stroke) {
	d := fmt.Sprintf("M%.2f,%.2f L%.2f,%.2f", p0.X, p0.Y, p1.X, p1.Y)
	s.svg.Path(d, strokeCSS(st))
}

// FillOval implements Canvas.
func (s *SVGCanvas) FillOval(topLeft geom.Point, size float64, c color.RGBA) {
	r := size / 2
	s.svg.Circle(round(topLeft.X+r), round(topLeft.Y+r), round(r), "fill:"+cssColor(c))
}

// DrawText implements Canvas.
func (s *SVGCanvas) DrawText(text string, origin geom.Point, angle float64, ts TextStyle) {
	deg := angle * 180 / math.Pi
	s.svg.Gtransform(fmt.Sprintf("translate(%.2f,%.2f) rotate(%.3f)", origin.X, origin.Y, deg))
	style := fmt.Sprintf("fill:%s;font-family:Go,sans-serif;font-weight:bold", cssColor(ts.Color))
	if ts.Size > 0 {
		style += fmt.Sprintf(";font-size:%gpx", ts.Size)
	}
	s.svg.Text(0, 0, text, style)
	s.svg.Gend()
}

// Close writes the closing tag.
func (s *SVGCanvas) Close() {
	s.svg.End()
}

// RenderSVG redraws e as a width×height SVG document written to w.
func RenderSVG(e *Engine, w io.Writer, width, height int) FrameStats {
	c := NewSVGCanvas(w, width, height, e.Style().Background)
	stats := e.Redraw(c)
	c.Close()
	return stats
}

func strokeCSS(st Stroke) string {
	parts := []string{
		"fill:none",
		"stroke:" + cssColor(st.Color),
		fmt.Sprintf("stroke-width:%g", st.Width),
	}
	if st.Color.A != 0 && st.Color.A != 255 {
		parts = append(parts, fmt.Sprintf("stroke-opacity:%.3f", float64(st.Color.A)/255))
	}
	if st.Dashed() {
		dash := make([]string, len(st.Dash))
		for i, d := range st.Dash {
			dash[i] = fmt.Sprintf("%g", d)
		}
		parts = append(parts, "stroke-dasharray:"+strings.Join(dash, ","), "stroke-linecap:butt")
	} else {
		parts = append(parts, "stroke-linecap:round")
	}
	return strings.Join(parts, ";")
}

func cssColor(c color.Color) string {
	cc, ok := colorful.MakeColor(c)
	if !ok {
		return "none"
	}
	return cc.Hex()
}

func round(v float64) int {
	return int(math.Round(v))
}

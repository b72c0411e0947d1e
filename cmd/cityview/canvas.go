package main

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/ha1tch/citymap/pkg/geom"
	"github.com/ha1tch/citymap/pkg/render"
)

// Virtual pixels per terminal cell. Terminal cells are roughly twice as
// tall as they are wide.
const (
	CellWidth  = 8
	CellHeight = 16
)

var arrowRunes = []rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}

// TermCanvas draws onto a rectangle of a tcell screen. Coordinates are
// virtual pixels; each cell covers CellWidth×CellHeight of them.
type TermCanvas struct {
	screen     tcell.Screen
	x, y       int // top-left cell
	cols, rows int
}

// NewTermCanvas returns a canvas over cols×rows cells starting at (x, y).
func NewTermCanvas(s tcell.Screen, x, y, cols, rows int) *TermCanvas {
	return &TermCanvas{screen: s, x: x, y: y, cols: cols, rows: rows}
}

// Size implements render.Canvas.
func (c *TermCanvas) Size() (float64, float64) {
	return float64(c.cols * CellWidth), float64(c.rows * CellHeight)
}

// Cell maps a virtual pixel to its screen cell.
func (c *TermCanvas) Cell(p geom.Point) (int, int, bool) {
	col := int(math.Floor(p.X / CellWidth))
	row := int(math.Floor(p.Y / CellHeight))
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return 0, 0, false
	}
	return c.x + col, c.y + row, true
}

// PixelAt returns the virtual pixel at the center of a screen cell.
func (c *TermCanvas) PixelAt(sx, sy int) (float64, float64) {
	return float64((sx-c.x)*CellWidth + CellWidth/2), float64((sy-c.y)*CellHeight + CellHeight/2)
}

// Contains reports whether a screen cell lies inside the canvas.
func (c *TermCanvas) Contains(sx, sy int) bool {
	return sx >= c.x && sy >= c.y && sx < c.x+c.cols && sy < c.y+c.rows
}

func (c *TermCanvas) plot(p geom.Point, r rune, style tcell.Style) {
	if sx, sy, ok := c.Cell(p); ok {
		c.screen.SetContent(sx, sy, r, nil, style)
	}
}

// StrokeQuad implements render.Canvas.
func (c *TermCanvas) StrokeQuad(p0, ctrl, p1 geom.Point, s render.Stroke) {
	c.stroke(func(t float64) geom.Point {
		return geom.QuadBezierPoint(p0, ctrl, p1, t)
	}, geom.Distance(p0, ctrl)+geom.Distance(ctrl, p1), s)
}

// StrokeLine implements render.Canvas.
func (c *TermCanvas) StrokeLine(p0, p1 geom.Point, s render.Stroke) {
	c.stroke(func(t float64) geom.Point {
		return geom.QuadBezierPoint(p0, geom.Midpoint(p0, p1), p1, t)
	}, geom.Distance(p0, p1), s)
}

// stroke samples a curve at sub-cell spacing and marks each cell it
// crosses with a glyph following the local direction.
func (c *TermCanvas) stroke(at func(t float64) geom.Point, length float64, s render.Stroke) {
	style := strokeStyle(s.Color)
	steps := int(length/2) + 1

	prev := at(0)
	travelled := 0.0
	for i := 1; i <= steps; i++ {
		p := at(float64(i) / float64(steps))
		travelled += geom.Distance(prev, p)
		if !dashOn(s.Dash, travelled) {
			prev = p
			continue
		}
		c.plot(p, lineRune(prev, p), style)
		prev = p
	}
}

// dashOn reports whether distance d along a stroke falls in a drawn dash.
// An odd-length pattern repeats, as in SVG.
func dashOn(dash []float64, d float64) bool {
	if len(dash) == 0 {
		return true
	}
	pattern := dash
	if len(pattern)%2 == 1 {
		pattern = append(append([]float64(nil), dash...), dash...)
	}
	total := 0.0
	for _, v := range pattern {
		total += v
	}
	if total <= 0 {
		return true
	}
	d = math.Mod(d, total)
	for i, v := range pattern {
		if d < v {
			return i%2 == 0
		}
		d -= v
	}
	return true
}

// lineRune picks a box-drawing glyph for the direction a→b in cell units.
func lineRune(a, b geom.Point) rune {
	dx := (b.X - a.X) / CellWidth
	dy := (b.Y - a.Y) / CellHeight
	angle := geom.NormalizeAngle(math.Atan2(dy, dx))
	octant := int(math.Round(angle/(math.Pi/4))) % 4
	switch octant {
	case 0:
		return '─'
	case 1:
		return '╲'
	case 2:
		return '│'
	}
	return '╱'
}

// FillOval implements render.Canvas. Only the cell holding the center is
// painted; larger markers use a heavier glyph.
func (c *TermCanvas) FillOval(topLeft geom.Point, size float64, _ color.RGBA) {
	center := geom.Point{X: topLeft.X + size/2, Y: topLeft.Y + size/2}
	r := '•'
	if size >= 16 {
		r = '◉'
	} else if size >= 10 {
		r = '●'
	}
	c.plot(center, r, styleCity)
}

// DrawText implements render.Canvas. Terminal cells cannot hold rotated
// text, so the glyph is reduced to the arrow nearest its angle, placed at
// its visual center.
func (c *TermCanvas) DrawText(text string, origin geom.Point, angle float64, ts render.TextStyle) {
	center := origin
	if ts.Face != nil {
		center = geom.TextCenter(origin, angle, geom.MeasureText(ts.Face, text))
	}
	c.plot(center, arrowRune(angle), styleArrow)
}

func arrowRune(angle float64) rune {
	i := int(math.Round(geom.NormalizeAngle(angle)/(math.Pi/4))) % len(arrowRunes)
	return arrowRunes[i]
}

// strokeStyle maps a stroke color onto the terminal. Black would vanish on
// a dark terminal, so it falls back to the default foreground.
func strokeStyle(c color.RGBA) tcell.Style {
	if c.R == 0 && c.G == 0 && c.B == 0 {
		return styleRoute
	}
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
}

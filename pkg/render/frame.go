package render

import (
	"image/color"

	"github.com/ha1tch/citymap/pkg/geom"
)

// CommandKind identifies a recorded draw call.
type CommandKind int

const (
	CmdQuad CommandKind = iota
	CmdLine
	CmdOval
	CmdText
)

func (k CommandKind) String() string {
	switch k {
	case CmdQuad:
		return "quad"
	case CmdLine:
		return "line"
	case CmdOval:
		return "oval"
	case CmdText:
		return "text"
	}
	return "unknown"
}

// Command is one recorded draw call. Points holds p0, ctrl, p1 for quads,
// p0, p1 for lines, and the top-left corner or text origin otherwise.
type Command struct {
	Kind   CommandKind
	Points []geom.Point
	Stroke Stroke
	Size   float64
	Color  color.RGBA
	Text   string
	Angle  float64
	Style  TextStyle
}

// Frame is a Canvas that records draw calls instead of painting them.
// A frame can be replayed onto any other Canvas.
type Frame struct {
	width, height float64
	Commands      []Command
}

// NewFrame creates an empty frame of the given size.
func NewFrame(width, height float64) *Frame {
	return &Frame{width: width, height: height}
}

// Size implements Canvas.
func (f *Frame) Size() (float64, float64) {
	return f.width, f.height
}

// StrokeQuad implements Canvas.
func (f *Frame) StrokeQuad(p0, ctrl, p1 geom.Point, s Stroke) {
	f.Commands = append(f.Commands, Command{
		Kind:   CmdQuad,
		Points: []geom.Point{p0, ctrl, p1},
		Stroke: s,
	})
}

// StrokeLine implements Canvas.
func (f *Frame) StrokeLine(p0, p1 geom.Point, s Stroke) {
	f.Commands = append(f.Commands, Command{
		Kind:   CmdLine,
		Points: []geom.Point{p0, p1},
		Stroke: s,
	})
}

// FillOval implements Canvas.
func (f *Frame) FillOval(topLeft geom.Point, size float64, c color.RGBA) {
	f.Commands = append(f.Commands, Command{
		Kind:   CmdOval,
		Points: []geom.Point{topLeft},
		Size:   size,
		Color:  c,
	})
}

// DrawText implements Canvas.
func (f *Frame) DrawText(text string, origin geom.Point, angle float64, ts TextStyle) {
	f.Commands = append(f.Commands, Command{
		Kind:   CmdText,
		Points: []geom.Point{origin},
		Text:   text,
		Angle:  angle,
		Style:  ts,
	})
}

// Count returns how many commands of kind k were recorded.
func (f *Frame) Count(k CommandKind) int {
	n := 0
	for _, c := range f.Commands {
		if c.Kind == k {
			n++
		}
	}
	return n
}

// OfKind returns the recorded commands of kind k, in order.
func (f *Frame) OfKind(k CommandKind) []Command {
	var out []Command
	for _, c := range f.Commands {
		if c.Kind == k {
			out = append(out, c)
		}
	}
	return out
}

// Replay issues every recorded command, in order, on dst.
func (f *Frame) Replay(dst Canvas) {
	for _, c := range f.Commands {
		switch c.Kind {
		case CmdQuad:
			dst.StrokeQuad(c.Points[0], c.Points[1], c.Points[2], c.Stroke)
		case CmdLine:
			dst.StrokeLine(c.Points[0], c.Points[1], c.Stroke)
		case CmdOval:
			dst.FillOval(c.Points[0], c.Size, c.Color)
		case CmdText:
			dst.DrawText(c.Text, c.Points[0], c.Angle, c.Style)
		}
	}
}

// Reset drops all recorded commands, keeping the size.
func (f *Frame) Reset() {
	f.Commands = f.Commands[:0]
}

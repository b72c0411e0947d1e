package render

import (
	"fmt"
	"image/color"
	"log/slog"

	"golang.org/x/image/font"

	"github.com/ha1tch/citymap/pkg/citymap"
	"github.com/ha1tch/citymap/pkg/geom"
	"github.com/ha1tch/citymap/pkg/route"
)

// Style configures how a map is painted.
type Style struct {
	Background    color.RGBA
	EdgeWidth     float64
	ArrowGlyph    string
	ArrowFace     font.Face
	ArrowSize     float64 // point size of ArrowFace
	ArrowColor    color.RGBA
	NodeColor     color.RGBA
	Overlay       Stroke
	TangentArrows bool // orient arrows along the curve instead of the chord
}

// Colors used in rendering
var (
	colorWhite = color.RGBA{255, 255, 255, 255}
	colorBlack = color.RGBA{0, 0, 0, 255}
	colorRed   = color.RGBA{255, 0, 0, 255}
)

// DefaultArrowSize is the default point size of the direction glyph.
const DefaultArrowSize = 20

// DefaultStyle returns the standard map style: 4px routes with a bold
// "-->" glyph at each midpoint, black cities, and a red dashed overlay.
func DefaultStyle() Style {
	face, err := NewFace(DefaultArrowSize)
	if err != nil {
		panic(err) // should never happen with embedded font
	}
	return Style{
		Background: colorWhite,
		EdgeWidth:  4,
		ArrowGlyph: "-->",
		ArrowFace:  face,
		ArrowSize:  DefaultArrowSize,
		ArrowColor: colorBlack,
		NodeColor:  colorBlack,
		Overlay: Stroke{
			Color: colorRed,
			Width: 2,
			Dash:  []float64{9},
		},
	}
}

// Options configures an Engine.
type Options struct {
	Style  Style
	Logger *slog.Logger
	// Repaint is called after every mutation made through the Engine.
	Repaint func()
}

// DefaultOptions returns options with DefaultStyle and the default logger.
func DefaultOptions() Options {
	return Options{Style: DefaultStyle()}
}

// OverlayState is the state of the one-shot path overlay.
type OverlayState int

const (
	OverlayEmpty OverlayState = iota // nothing to draw
	OverlayArmed                     // drawn and cleared by the next Redraw
)

func (s OverlayState) String() string {
	if s == OverlayArmed {
		return "armed"
	}
	return "empty"
}

type pathOverlay struct {
	state OverlayState
	path  []citymap.Node
}

// FrameStats summarizes one Redraw.
type FrameStats struct {
	Edges           int
	Nodes           int
	OverlaySegments int
	MaxAttempts     int // most router attempts any edge needed
}

// Engine renders a Model and mediates the UI-facing operations on it.
// Like the Model, it must be confined to one goroutine.
type Engine struct {
	model   *citymap.Model
	style   Style
	logger  *slog.Logger
	repaint func()
	overlay pathOverlay

	width, height float64
}

// New creates an Engine over m.
func New(m *citymap.Model, opts Options) *Engine {
	if opts.Style.ArrowFace == nil {
		def := DefaultStyle()
		opts.Style.ArrowFace = def.ArrowFace
		opts.Style.ArrowSize = def.ArrowSize
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Engine{
		model:   m,
		style:   opts.Style,
		logger:  opts.Logger,
		repaint: opts.Repaint,
	}
}

// Model returns the underlying model.
func (e *Engine) Model() *citymap.Model { return e.model }

// Style returns the engine's style.
func (e *Engine) Style() Style { return e.style }

// Redraw paints the whole map onto c: routes first, then cities, then the
// path overlay if one is armed. An armed overlay is cleared afterwards.
//
// Every edge must reference nodes present in the model; a dangling edge
// panics.
func (e *Engine) Redraw(c Canvas) FrameStats {
	w, h := c.Size()
	e.width, e.height = w, h

	nodes := e.model.SnapshotNodes()
	edges := e.model.SnapshotEdges()
	router := route.NewRouter()

	var stats FrameStats
	for i := 0; i < edges.Len(); i++ {
		edge := edges.At(i)
		from := mustNode(nodes, edge, edge.From)
		to := mustNode(nodes, edge, edge.To)

		p1 := geom.Scale(geom.Point{X: from.X, Y: from.Y}, w, h)
		p2 := geom.Scale(geom.Point{X: to.X, Y: to.Y}, w, h)

		cp := router.Route(p1, p2)
		if cp.Attempts > stats.MaxAttempts {
			stats.MaxAttempts = cp.Attempts
		}

		c.StrokeQuad(p1, cp.Point, p2, Stroke{Color: edge.Color, Width: e.style.EdgeWidth})
		e.drawArrow(c, p1, cp.Point, p2)
		stats.Edges++
	}

	for i := 0; i < nodes.Len(); i++ {
		n := nodes.At(i)
		p := geom.Scale(geom.Point{X: n.X, Y: n.Y}, w, h)
		r := float64(n.Type.Radius())
		c.FillOval(geom.Point{X: p.X - r, Y: p.Y - r}, float64(n.Type.Size()), e.style.NodeColor)
		stats.Nodes++
	}

	stats.OverlaySegments = e.drawOverlay(c, w, h)

	e.logger.Debug("redraw",
		slog.Int("edges", stats.Edges),
		slog.Int("nodes", stats.Nodes),
		slog.Int("overlay_segments", stats.OverlaySegments),
		slog.Int("max_attempts", stats.MaxAttempts))
	return stats
}

func mustNode(nodes citymap.NodeSnapshot, edge citymap.Edge, id int) citymap.Node {
	n, ok := nodes.Lookup(id)
	if !ok {
		panic(fmt.Errorf("render: edge %d endpoint %d: %w", edge.ID, id, citymap.ErrDanglingEdge))
	}
	return n
}

// drawArrow places the direction glyph at the curve midpoint.
func (e *Engine) drawArrow(c Canvas, p1, ctrl, p2 geom.Point) {
	if e.style.ArrowGlyph == "" {
		return
	}
	pos := geom.QuadBezierPoint(p1, ctrl, p2, 0.5)

	angle := geom.Bearing(p1, p2)
	if e.style.TangentArrows {
		angle = geom.Bearing(geom.Point{}, geom.QuadBezierTangent(p1, ctrl, p2, 0.5))
	}

	origin := geom.RotateTextAnchor(pos, angle, e.style.ArrowGlyph, e.style.ArrowFace)
	c.DrawText(e.style.ArrowGlyph, origin, angle, TextStyle{
		Face:  e.style.ArrowFace,
		Size:  e.style.ArrowSize,
		Color: e.style.ArrowColor,
	})
}

// drawOverlay consumes an armed overlay and returns the segments drawn.
func (e *Engine) drawOverlay(c Canvas, w, h float64) int {
	if e.overlay.state != OverlayArmed {
		return 0
	}
	path := e.overlay.path
	e.overlay = pathOverlay{state: OverlayEmpty}

	segments := 0
	for i := 0; i+1 < len(path); i++ {
		p1 := geom.Scale(geom.Point{X: path[i].X, Y: path[i].Y}, w, h)
		p2 := geom.Scale(geom.Point{X: path[i+1].X, Y: path[i+1].Y}, w, h)
		c.StrokeLine(p1, p2, e.style.Overlay)
		segments++
	}
	return segments
}

// SetPathOverlay stages path to be drawn by the next Redraw only.
func (e *Engine) SetPathOverlay(path []citymap.Node) {
	cp := make([]citymap.Node, len(path))
	copy(cp, path)
	e.overlay = pathOverlay{state: OverlayArmed, path: cp}
	e.requestRepaint()
}

// OverlayState reports whether a path overlay is waiting to be drawn.
func (e *Engine) OverlayState() OverlayState {
	return e.overlay.state
}

// SetCanvasSize sets the size used by FindNearest before the first Redraw.
// Redraw overwrites it with the canvas size.
func (e *Engine) SetCanvasSize(width, height float64) {
	e.width, e.height = width, height
}

// CanvasSize returns the size of the last canvas drawn on.
func (e *Engine) CanvasSize() (float64, float64) {
	return e.width, e.height
}

// FindNearest returns the city under the normalized point q, if any.
func (e *Engine) FindNearest(q geom.Point) (citymap.Node, bool) {
	return citymap.FindNearest(q, e.model.SnapshotNodes(), e.width)
}

// FindNearestPixel is FindNearest for a point in canvas pixels.
func (e *Engine) FindNearestPixel(x, y float64) (citymap.Node, bool) {
	if e.width <= 0 || e.height <= 0 {
		return citymap.Node{}, false
	}
	return e.FindNearest(geom.Point{X: x / e.width, Y: y / e.height})
}

// NodeCount returns the number of cities.
func (e *Engine) NodeCount() int {
	return e.model.NodeCount()
}

// InsertNode adds or replaces a city and requests a repaint.
func (e *Engine) InsertNode(n citymap.Node) error {
	if err := e.model.InsertNode(n); err != nil {
		return err
	}
	e.requestRepaint()
	return nil
}

// RemoveNode deletes a city and requests a repaint. Routes touching it
// must be removed by the caller before the next Redraw.
func (e *Engine) RemoveNode(id int) {
	e.model.RemoveNode(id)
	e.requestRepaint()
}

// InsertEdge adds or replaces a route and requests a repaint.
func (e *Engine) InsertEdge(edge citymap.Edge) {
	e.model.InsertEdge(edge)
	e.requestRepaint()
}

// RemoveEdge deletes a route and requests a repaint.
func (e *Engine) RemoveEdge(id int) {
	e.model.RemoveEdge(id)
	e.requestRepaint()
}

// Clear removes every city and route and requests a repaint.
func (e *Engine) Clear() {
	e.model.Clear()
	e.requestRepaint()
}

// Replace swaps the whole map and requests a repaint. On error the model
// is unchanged and no repaint is requested.
func (e *Engine) Replace(nodes []citymap.Node, edges []citymap.Edge) error {
	if err := e.model.Replace(nodes, edges); err != nil {
		return err
	}
	e.requestRepaint()
	return nil
}

func (e *Engine) requestRepaint() {
	if e.repaint != nil {
		e.repaint()
	}
}

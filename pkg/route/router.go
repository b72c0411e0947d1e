// Curved edge routing for city map rendering.
// Each edge bends to its left by a fifth of its length; edges whose control
// points would coincide are pushed further out until they separate.

// Package route computes per-frame quadratic control points for map edges.
package route

import (
	"math"

	"github.com/ha1tch/citymap/pkg/geom"
)

const (
	// ShiftDivisor sets the initial bend: shift = length / ShiftDivisor.
	ShiftDivisor = 5.0
	// ShiftGrowth multiplies the shift on each collision.
	ShiftGrowth = 1.2
	// MinEdgeLength is the length assumed for degenerate edges, in pixels.
	// It keeps the shift non-zero so collisions between coincident
	// endpoints still resolve.
	MinEdgeLength = 1.0
)

// leftTurn rotates an edge bearing to its perpendicular-left bearing.
const leftTurn = 3 * math.Pi / 2

// ControlPoint is the routed midpoint of one edge's quadratic curve.
type ControlPoint struct {
	geom.Point
	Shift    float64 // final perpendicular offset from the chord midpoint
	Attempts int     // candidates tried, 1 when the first was free
}

// Segment is an edge's canvas-space endpoints.
type Segment struct {
	From, To geom.Point
}

// Router hands out control points for one frame. Each point is checked only
// against points handed out earlier by the same Router, so results depend
// on routing order. The zero value is ready to use.
type Router struct {
	placed map[geom.Point]struct{}
	order  []geom.Point
}

// NewRouter returns an empty Router.
func NewRouter() *Router {
	return &Router{placed: make(map[geom.Point]struct{})}
}

// Route computes the control point for the edge p1→p2 and records it.
func (r *Router) Route(p1, p2 geom.Point) ControlPoint {
	if r.placed == nil {
		r.placed = make(map[geom.Point]struct{})
	}

	angle := geom.NormalizeAngle(geom.Bearing(p1, p2) + leftTurn)
	length := geom.Distance(p1, p2)
	if !(length >= MinEdgeLength) {
		length = MinEdgeLength
	}
	shift := length / ShiftDivisor
	mid := geom.Midpoint(p1, p2)

	cp := ControlPoint{Point: geom.Polar(mid, angle, shift), Shift: shift, Attempts: 1}
	for r.taken(cp.Point) {
		shift *= ShiftGrowth
		cp.Point = geom.Polar(mid, angle, shift)
		cp.Shift = shift
		cp.Attempts++
	}

	r.placed[cp.Point] = struct{}{}
	r.order = append(r.order, cp.Point)
	return cp
}

// RouteAll routes segments in order and returns one control point each.
func (r *Router) RouteAll(segments []Segment) []ControlPoint {
	out := make([]ControlPoint, len(segments))
	for i, s := range segments {
		out[i] = r.Route(s.From, s.To)
	}
	return out
}

// Placed returns the control points handed out so far, in order.
func (r *Router) Placed() []geom.Point {
	out := make([]geom.Point, len(r.order))
	copy(out, r.order)
	return out
}

// Reset forgets every control point handed out so far.
func (r *Router) Reset() {
	r.placed = make(map[geom.Point]struct{})
	r.order = nil
}

func (r *Router) taken(p geom.Point) bool {
	_, ok := r.placed[p]
	return ok
}

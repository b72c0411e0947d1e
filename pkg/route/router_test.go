package route

import (
	"math"
	"testing"

	"github.com/ha1tch/citymap/pkg/geom"
)

func TestRouteSingleEdge(t *testing.T) {
	r := NewRouter()
	p1 := geom.Point{X: 0, Y: 100}
	p2 := geom.Point{X: 200, Y: 100}

	cp := r.Route(p1, p2)

	// Eastward edge: perpendicular-left on a y-down canvas is "up".
	if cp.Attempts != 1 {
		t.Errorf("expected 1 attempt, got %d", cp.Attempts)
	}
	if math.Abs(cp.Shift-40) > 1e-9 {
		t.Errorf("expected shift 40 (200/5), got %.3f", cp.Shift)
	}
	if math.Abs(cp.X-100) > 1e-9 || math.Abs(cp.Y-60) > 1e-9 {
		t.Errorf("expected control point (100,60), got (%.3f,%.3f)", cp.X, cp.Y)
	}
}

func TestRouteReverseEdgeBendsOtherWay(t *testing.T) {
	r := NewRouter()
	a := geom.Point{X: 0, Y: 100}
	b := geom.Point{X: 200, Y: 100}

	forward := r.Route(a, b)
	backward := r.Route(b, a)

	if forward.Point == backward.Point {
		t.Fatal("opposite edges should not share a control point")
	}
	if (forward.Y-100)*(backward.Y-100) >= 0 {
		t.Errorf("opposite edges should bend to opposite sides: %.2f vs %.2f", forward.Y, backward.Y)
	}
	if backward.Attempts != 1 {
		t.Errorf("reverse edge should not collide, took %d attempts", backward.Attempts)
	}
}

func TestRouteParallelDuplicates(t *testing.T) {
	// Two routes from (0,0) to (1,0) on a 100x100 canvas.
	r := NewRouter()
	p1 := geom.Scale(geom.Point{X: 0, Y: 0}, 100, 100)
	p2 := geom.Scale(geom.Point{X: 1, Y: 0}, 100, 100)

	first := r.Route(p1, p2)
	second := r.Route(p1, p2)

	if first.Point == second.Point {
		t.Fatalf("duplicate routes got identical control points %v", first.Point)
	}
	if second.Attempts != 2 {
		t.Errorf("second duplicate should resolve on attempt 2, got %d", second.Attempts)
	}
	if math.Abs(second.Shift-first.Shift*ShiftGrowth) > 1e-9 {
		t.Errorf("expected shift %.3f, got %.3f", first.Shift*ShiftGrowth, second.Shift)
	}
}

func TestRouteShiftMonotonicAndBounded(t *testing.T) {
	r := NewRouter()
	p1 := geom.Point{X: 10, Y: 20}
	p2 := geom.Point{X: 310, Y: 420}

	prevShift := 0.0
	for i := 0; i < 40; i++ {
		cp := r.Route(p1, p2)
		if cp.Attempts > 50 {
			t.Fatalf("edge %d took %d attempts", i, cp.Attempts)
		}
		if cp.Attempts != i+1 {
			t.Errorf("edge %d: expected %d attempts, got %d", i, i+1, cp.Attempts)
		}
		if cp.Shift < prevShift {
			t.Errorf("edge %d: shift decreased from %.3f to %.3f", i, prevShift, cp.Shift)
		}
		prevShift = cp.Shift
	}

	placed := r.Placed()
	seen := make(map[geom.Point]bool)
	for _, p := range placed {
		if seen[p] {
			t.Fatalf("control point %v handed out twice", p)
		}
		seen[p] = true
	}
}

func TestRouteZeroLengthEdge(t *testing.T) {
	r := NewRouter()
	p := geom.Point{X: 50, Y: 50}

	a := r.Route(p, p)
	b := r.Route(p, p)

	for _, cp := range []ControlPoint{a, b} {
		if math.IsNaN(cp.X) || math.IsNaN(cp.Y) {
			t.Fatalf("degenerate edge produced NaN: %v", cp)
		}
	}
	if a.Shift != MinEdgeLength/ShiftDivisor {
		t.Errorf("expected fallback shift %.3f, got %.3f", MinEdgeLength/ShiftDivisor, a.Shift)
	}
	if a.Point == b.Point {
		t.Error("coincident degenerate edges should still separate")
	}
}

func TestRouteOrderDependence(t *testing.T) {
	// Only later edges move; the first keeps its natural control point.
	p1 := geom.Point{X: 0, Y: 0}
	p2 := geom.Point{X: 100, Y: 0}

	r := NewRouter()
	got := r.RouteAll([]Segment{{p1, p2}, {p1, p2}, {p1, p2}})

	fresh := NewRouter().Route(p1, p2)
	if got[0].Point != fresh.Point {
		t.Errorf("first edge should be unaffected: %v vs %v", got[0].Point, fresh.Point)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Shift <= got[i-1].Shift {
			t.Errorf("edge %d shift %.3f should exceed edge %d shift %.3f", i, got[i].Shift, i-1, got[i-1].Shift)
		}
	}
}

func TestRouterReset(t *testing.T) {
	var r Router
	p1 := geom.Point{X: 0, Y: 0}
	p2 := geom.Point{X: 100, Y: 0}

	first := r.Route(p1, p2)
	r.Reset()
	again := r.Route(p1, p2)

	if first != again {
		t.Errorf("reset router should reproduce the first point: %v vs %v", first, again)
	}
	if len(r.Placed()) != 1 {
		t.Errorf("expected 1 placed point after reset, got %d", len(r.Placed()))
	}
}

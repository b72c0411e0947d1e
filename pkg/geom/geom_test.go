package geom

import (
	"math"
	"testing"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
)

func TestQuadBezierPointEndpoints(t *testing.T) {
	p0 := Point{X: 12.5, Y: -3.25}
	ctrl := Point{X: 40.1, Y: 77.7}
	p1 := Point{X: 199.9, Y: 0.3}

	if got := QuadBezierPoint(p0, ctrl, p1, 0); got != p0 {
		t.Errorf("t=0 should give p0 exactly, got %v", got)
	}
	if got := QuadBezierPoint(p0, ctrl, p1, 1); got != p1 {
		t.Errorf("t=1 should give p1 exactly, got %v", got)
	}
}

func TestQuadBezierPointMidpoint(t *testing.T) {
	p0 := Point{X: 0, Y: 0}
	ctrl := Point{X: 50, Y: 100}
	p1 := Point{X: 100, Y: 0}

	got := QuadBezierPoint(p0, ctrl, p1, 0.5)

	// B(0.5) = 0.25*p0 + 0.5*ctrl + 0.25*p1
	want := Point{
		X: 0.25*p0.X + 0.5*ctrl.X + 0.25*p1.X,
		Y: 0.25*p0.Y + 0.5*ctrl.Y + 0.25*p1.Y,
	}
	if math.Abs(got.X-want.X) > 1e-12 || math.Abs(got.Y-want.Y) > 1e-12 {
		t.Errorf("midpoint: expected %v, got %v", want, got)
	}
	if want.X != 50 || want.Y != 50 {
		t.Errorf("sanity: expected (50,50), got %v", want)
	}
}

func TestQuadBezierTangent(t *testing.T) {
	p0 := Point{X: 0, Y: 0}
	ctrl := Point{X: 50, Y: 50}
	p1 := Point{X: 100, Y: 0}

	// Symmetric curve: tangent at the apex is horizontal.
	tan := QuadBezierTangent(p0, ctrl, p1, 0.5)
	if math.Abs(tan.Y) > 1e-12 {
		t.Errorf("tangent at apex should be horizontal, got %v", tan)
	}
	if tan.X <= 0 {
		t.Errorf("tangent should point toward p1, got %v", tan)
	}

	start := QuadBezierTangent(p0, ctrl, p1, 0)
	if math.Abs(Bearing(Point{}, start)-math.Pi/4) > 1e-12 {
		t.Errorf("start tangent should point at ctrl, got %v", start)
	}
}

func TestDistanceAndBearing(t *testing.T) {
	tests := []struct {
		name    string
		a, b    Point
		dist    float64
		bearing float64
	}{
		{"east", Point{X: 0, Y: 0}, Point{X: 3, Y: 0}, 3, 0},
		{"south (y down)", Point{X: 1, Y: 1}, Point{X: 1, Y: 5}, 4, math.Pi / 2},
		{"west", Point{X: 2, Y: 0}, Point{X: -2, Y: 0}, 4, math.Pi},
		{"pythagorean", Point{X: 0, Y: 0}, Point{X: 3, Y: 4}, 5, math.Atan2(4, 3)},
		{"zero length", Point{X: 7, Y: 7}, Point{X: 7, Y: 7}, 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if d := Distance(tc.a, tc.b); math.Abs(d-tc.dist) > 1e-12 {
				t.Errorf("distance: expected %.3f, got %.3f", tc.dist, d)
			}
			if b := Bearing(tc.a, tc.b); math.Abs(b-tc.bearing) > 1e-12 {
				t.Errorf("bearing: expected %.3f, got %.3f", tc.bearing, b)
			}
		})
	}
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{FullTurn, 0},
		{-math.Pi / 2, 3 * math.Pi / 2},
		{5 * math.Pi / 2, math.Pi / 2},
		{-1e-18, 0},
	}
	for _, tc := range tests {
		got := NormalizeAngle(tc.in)
		if got < 0 || got >= FullTurn {
			t.Errorf("NormalizeAngle(%v) = %v, outside [0, 2π)", tc.in, got)
		}
		if math.Abs(got-tc.want) > 1e-12 {
			t.Errorf("NormalizeAngle(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestMidpointPolarScale(t *testing.T) {
	m := Midpoint(Point{X: 0, Y: 10}, Point{X: 20, Y: 30})
	if m.X != 10 || m.Y != 20 {
		t.Errorf("midpoint wrong: %v", m)
	}

	p := Polar(Point{X: 1, Y: 1}, math.Pi/2, 2)
	if math.Abs(p.X-1) > 1e-12 || math.Abs(p.Y-3) > 1e-12 {
		t.Errorf("polar wrong: %v", p)
	}

	s := Scale(Point{X: 0.5, Y: 0.25}, 200, 100)
	if s.X != 100 || s.Y != 25 {
		t.Errorf("scale wrong: %v", s)
	}
}

func TestAnchorTextUnrotated(t *testing.T) {
	m := TextMetrics{Width: 30, Ascent: 16, Descent: 4}
	p := Point{X: 100, Y: 50}

	origin := AnchorText(p, 0, m)

	// Left edge half a width to the left; baseline below the center by
	// (ascent-descent)/2.
	if math.Abs(origin.X-85) > 1e-9 {
		t.Errorf("origin.X expected 85, got %.3f", origin.X)
	}
	if math.Abs(origin.Y-56) > 1e-9 {
		t.Errorf("origin.Y expected 56, got %.3f", origin.Y)
	}
}

func TestAnchorTextRotated(t *testing.T) {
	m := TextMetrics{Width: 30, Ascent: 16, Descent: 4}
	p := Point{X: 100, Y: 50}

	for _, angle := range []float64{0, math.Pi / 6, math.Pi / 2, math.Pi, -2.5} {
		origin := AnchorText(p, angle, m)

		// Walking from the origin along the rotated baseline by width/2,
		// then along the rotated "up" by the half-height, must land on p.
		c := Polar(origin, angle, m.Width/2)
		c = Polar(c, angle+math.Pi/2, (m.Descent-m.Ascent)/2)
		if math.Abs(c.X-p.X) > 1e-9 || math.Abs(c.Y-p.Y) > 1e-9 {
			t.Errorf("angle %.2f: text center %v, want %v", angle, c, p)
		}
	}
}

func TestTextCenterInvertsAnchor(t *testing.T) {
	m := TextMetrics{Width: 42, Ascent: 15, Descent: 5}
	p := Point{X: -3, Y: 70}
	for _, angle := range []float64{0, 1, math.Pi, 4.5} {
		got := TextCenter(AnchorText(p, angle, m), angle, m)
		if math.Abs(got.X-p.X) > 1e-9 || math.Abs(got.Y-p.Y) > 1e-9 {
			t.Errorf("angle %.2f: expected %v, got %v", angle, p, got)
		}
	}
}

func TestRotateTextAnchorWithFace(t *testing.T) {
	fnt, err := opentype.Parse(gobold.TTF)
	if err != nil {
		t.Fatalf("parse font: %v", err)
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{Size: 20, DPI: 72, Hinting: font.HintingNone})
	if err != nil {
		t.Fatalf("new face: %v", err)
	}
	defer face.Close()

	m := MeasureText(face, "-->")
	if m.Width <= 0 || m.Ascent <= 0 {
		t.Fatalf("expected positive metrics, got %+v", m)
	}

	p := Point{X: 10, Y: 10}
	got := RotateTextAnchor(p, 0.3, "-->", face)
	want := AnchorText(p, 0.3, m)
	if got != want {
		t.Errorf("RotateTextAnchor %v differs from AnchorText %v", got, want)
	}
}

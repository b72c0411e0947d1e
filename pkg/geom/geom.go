// Geometric utilities for city map rendering.
// Provides quadratic Bézier evaluation, bearings, and text anchoring.

// Package geom holds the stateless math used by the router and renderer.
package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Point represents a 2D coordinate in canvas or normalized space.
type Point = r2.Vec

// FullTurn is one complete revolution in radians.
const FullTurn = 2 * math.Pi

// QuadBezierPoint evaluates the quadratic Bézier p0, ctrl, p1 at t ∈ [0,1].
// B(t) = (1-t)²p0 + 2(1-t)t·ctrl + t²p1
func QuadBezierPoint(p0, ctrl, p1 Point, t float64) Point {
	mt := 1 - t
	a := mt * mt
	b := 2 * mt * t
	c := t * t
	return Point{
		X: a*p0.X + b*ctrl.X + c*p1.X,
		Y: a*p0.Y + b*ctrl.Y + c*p1.Y,
	}
}

// QuadBezierTangent returns the derivative of the quadratic Bézier at t.
func QuadBezierTangent(p0, ctrl, p1 Point, t float64) Point {
	// B'(t) = 2(1-t)(ctrl-p0) + 2t(p1-ctrl)
	return r2.Add(
		r2.Scale(2*(1-t), r2.Sub(ctrl, p0)),
		r2.Scale(2*t, r2.Sub(p1, ctrl)),
	)
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return r2.Norm(r2.Sub(b, a))
}

// Bearing returns the angle of the vector a→b, in (-π, π].
func Bearing(a, b Point) float64 {
	return math.Atan2(b.Y-a.Y, b.X-a.X)
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b Point) Point {
	return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

// Polar returns origin moved r units along angle.
func Polar(origin Point, angle, r float64) Point {
	return Point{
		X: origin.X + math.Cos(angle)*r,
		Y: origin.Y + math.Sin(angle)*r,
	}
}

// NormalizeAngle wraps a into [0, 2π).
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, FullTurn)
	if a < 0 {
		a += FullTurn
	}
	// a tiny negative remainder plus FullTurn can round up to FullTurn
	if a >= FullTurn {
		a = 0
	}
	return a
}

// Scale maps a normalized point onto a canvas of the given size.
func Scale(p Point, width, height float64) Point {
	return Point{X: p.X * width, Y: p.Y * height}
}

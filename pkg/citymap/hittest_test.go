package citymap

import (
	"testing"

	"github.com/ha1tch/citymap/pkg/geom"
)

func TestFindNearestScenario(t *testing.T) {
	// A 10px city on a 100px canvas reaches 5/100 + 3/100 = 0.08 each way.
	nodes := NewNodeSnapshot([]Node{{ID: 1, X: 0.5, Y: 0.5, Type: TypeCity}})

	n, ok := FindNearest(geom.Point{X: 0.5, Y: 0.5}, nodes, 100)
	if !ok || n.ID != 1 {
		t.Errorf("expected node 1 at its center, got %+v, %v", n, ok)
	}

	if n, ok := FindNearest(geom.Point{X: 0.9, Y: 0.9}, nodes, 100); ok {
		t.Errorf("expected no node at (0.9,0.9), got %+v", n)
	}
}

func TestFindNearestBoxEdges(t *testing.T) {
	const width = 200.0
	node := Node{ID: 3, X: 0.25, Y: 0.75, Type: TypeCapital}
	nodes := NewNodeSnapshot([]Node{node})

	// half = 8/200 = 0.04, gap = 3/200 = 0.015, reach = 0.055
	reach := 0.055

	tests := []struct {
		name string
		q    geom.Point
		hit  bool
	}{
		{"center", geom.Point{X: 0.25, Y: 0.75}, true},
		{"just inside x", geom.Point{X: 0.25 + reach*0.99, Y: 0.75}, true},
		{"just inside corner", geom.Point{X: 0.25 - reach*0.99, Y: 0.75 + reach*0.99}, true},
		{"outside x", geom.Point{X: 0.25 + reach*1.01, Y: 0.75}, false},
		{"outside y", geom.Point{X: 0.25, Y: 0.75 - reach*1.01}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := FindNearest(tc.q, nodes, width)
			if ok != tc.hit {
				t.Errorf("hit = %v, want %v", ok, tc.hit)
			}
		})
	}
}

func TestFindNearestFirstMatchWins(t *testing.T) {
	// Two overlapping nodes: the earlier one in order wins even though the
	// later one is closer.
	nodes := NewNodeSnapshot([]Node{
		{ID: 1, X: 0.50, Y: 0.50, Type: TypeCapital},
		{ID: 2, X: 0.52, Y: 0.50, Type: TypeCapital},
	})

	n, ok := FindNearest(geom.Point{X: 0.52, Y: 0.5}, nodes, 100)
	if !ok || n.ID != 1 {
		t.Errorf("expected first node in order, got %+v", n)
	}
}

func TestFindNearestEmptyAndBadWidth(t *testing.T) {
	if _, ok := FindNearest(geom.Point{X: 0.5, Y: 0.5}, NodeSnapshot{}, 100); ok {
		t.Error("empty snapshot should return none")
	}
	nodes := NewNodeSnapshot([]Node{{ID: 1, X: 0.5, Y: 0.5}})
	if _, ok := FindNearest(geom.Point{X: 0.5, Y: 0.5}, nodes, 0); ok {
		t.Error("zero canvas width should return none")
	}
}

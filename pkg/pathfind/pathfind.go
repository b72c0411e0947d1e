// Package pathfind finds shortest routes between cities.
package pathfind

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/ha1tch/citymap/pkg/citymap"
	"github.com/ha1tch/citymap/pkg/geom"
)

var (
	// ErrNoPath is returned when the destination cannot be reached.
	ErrNoPath = errors.New("no path")
	// ErrUnknownNode is returned when an endpoint is not in the map.
	ErrUnknownNode = errors.New("unknown node")
)

// Graph is a weighted directed view of a map. Edge weights are Euclidean
// lengths in normalized coordinates.
type Graph struct {
	g     *simple.WeightedDirectedGraph
	nodes citymap.NodeSnapshot
}

// NewGraph builds a graph from snapshots. Self loops are dropped, parallel
// routes collapse to one edge, and routes with a missing endpoint are an
// error.
func NewGraph(nodes citymap.NodeSnapshot, edges citymap.EdgeSnapshot) (*Graph, error) {
	g := simple.NewWeightedDirectedGraph(0, math.Inf(1))
	for i := 0; i < nodes.Len(); i++ {
		g.AddNode(simple.Node(nodes.At(i).ID))
	}

	for i := 0; i < edges.Len(); i++ {
		e := edges.At(i)
		from, ok := nodes.Lookup(e.From)
		if !ok {
			return nil, fmt.Errorf("route %d from %d: %w", e.ID, e.From, citymap.ErrDanglingEdge)
		}
		to, ok := nodes.Lookup(e.To)
		if !ok {
			return nil, fmt.Errorf("route %d to %d: %w", e.ID, e.To, citymap.ErrDanglingEdge)
		}
		if from.ID == to.ID {
			continue
		}
		if g.HasEdgeFromTo(int64(from.ID), int64(to.ID)) {
			continue
		}
		w := distance(from, to)
		g.SetWeightedEdge(g.NewWeightedEdge(simple.Node(from.ID), simple.Node(to.ID), w))
	}
	return &Graph{g: g, nodes: nodes}, nil
}

// ShortestPath returns the cities along the shortest route from one city
// to another, both ends included.
func (g *Graph) ShortestPath(from, to int) ([]citymap.Node, error) {
	if _, ok := g.nodes.Lookup(from); !ok {
		return nil, fmt.Errorf("from %d: %w", from, ErrUnknownNode)
	}
	goal, ok := g.nodes.Lookup(to)
	if !ok {
		return nil, fmt.Errorf("to %d: %w", to, ErrUnknownNode)
	}

	h := func(x, _ graph.Node) float64 {
		n, ok := g.nodes.Lookup(int(x.ID()))
		if !ok {
			return 0
		}
		return distance(n, goal)
	}
	shortest, _ := path.AStar(simple.Node(from), simple.Node(to), g.g, h)
	steps, weight := shortest.To(int64(to))
	if len(steps) == 0 || math.IsInf(weight, 1) {
		return nil, fmt.Errorf("%d to %d: %w", from, to, ErrNoPath)
	}

	out := make([]citymap.Node, len(steps))
	for i, s := range steps {
		out[i], _ = g.nodes.Lookup(int(s.ID()))
	}
	return out, nil
}

// ShortestPath builds a graph from the snapshots and searches it once.
func ShortestPath(nodes citymap.NodeSnapshot, edges citymap.EdgeSnapshot, from, to int) ([]citymap.Node, error) {
	g, err := NewGraph(nodes, edges)
	if err != nil {
		return nil, err
	}
	return g.ShortestPath(from, to)
}

// Length returns the total normalized length of a path.
func Length(p []citymap.Node) float64 {
	total := 0.0
	for i := 0; i+1 < len(p); i++ {
		total += distance(p[i], p[i+1])
	}
	return total
}

func distance(a, b citymap.Node) float64 {
	return geom.Distance(geom.Point{X: a.X, Y: a.Y}, geom.Point{X: b.X, Y: b.Y})
}

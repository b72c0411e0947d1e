// Package citymap provides the city/route graph model and node hit testing.
package citymap

import (
	"errors"
	"fmt"
	"image/color"
	"strings"
)

var (
	// ErrOutOfBounds is returned for a node whose position leaves the unit square.
	ErrOutOfBounds = errors.New("node position outside unit square")
	// ErrDanglingEdge is returned when an edge references a node that is not present.
	ErrDanglingEdge = errors.New("edge references missing node")
)

// NodeType classifies a city's marker size.
type NodeType int

const (
	TypeVillage NodeType = iota
	TypeTown
	TypeCity
	TypeCapital
)

var nodeTypeNames = map[NodeType]string{
	TypeVillage: "village",
	TypeTown:    "town",
	TypeCity:    "city",
	TypeCapital: "capital",
}

// Size returns the marker diameter in pixels.
func (t NodeType) Size() int {
	switch t {
	case TypeCapital:
		return 16
	case TypeCity:
		return 10
	case TypeTown:
		return 8
	default:
		return 6
	}
}

// Radius returns the marker radius in pixels.
func (t NodeType) Radius() int {
	return t.Size() / 2
}

func (t NodeType) String() string {
	if name, ok := nodeTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("NodeType(%d)", int(t))
}

// ParseNodeType parses a type name such as "capital" or "town".
// The empty string yields TypeCity.
func ParseNodeType(s string) (NodeType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return TypeCity, nil
	}
	for t, name := range nodeTypeNames {
		if name == s {
			return t, nil
		}
	}
	return TypeCity, fmt.Errorf("unknown node type %q", s)
}

// Node is a city at a normalized position.
type Node struct {
	ID   int
	Name string
	X, Y float64 // normalized, [0,1]
	Type NodeType
}

// Validate checks that the node lies inside the unit square.
func (n Node) Validate() error {
	if !(n.X >= 0 && n.X <= 1 && n.Y >= 0 && n.Y <= 1) {
		return fmt.Errorf("node %d at (%g, %g): %w", n.ID, n.X, n.Y, ErrOutOfBounds)
	}
	return nil
}

// Label returns the node's name, or its id when unnamed.
func (n Node) Label() string {
	if n.Name != "" {
		return n.Name
	}
	return fmt.Sprintf("#%d", n.ID)
}

// Edge is a directed route between two nodes.
type Edge struct {
	ID    int
	From  int // source node id
	To    int // destination node id
	Color color.RGBA
}

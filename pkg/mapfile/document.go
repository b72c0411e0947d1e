// Package mapfile reads and writes city map documents and loads them into
// a model.
package mapfile

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ha1tch/citymap/pkg/citymap"
)

var (
	// ErrUnknownFormat is returned for a file extension or format name that
	// has no codec.
	ErrUnknownFormat = errors.New("unknown map format")
	// ErrInvalidDocument is returned when a document cannot be turned into
	// nodes and edges.
	ErrInvalidDocument = errors.New("invalid map document")
)

// Document is the on-disk representation of a map.
type Document struct {
	Name   string  `json:"name,omitempty" toml:"name,omitempty" yaml:"name,omitempty"`
	Cities []City  `json:"cities" toml:"cities" yaml:"cities"`
	Routes []Route `json:"routes" toml:"routes" yaml:"routes"`
}

// City is a node entry.
type City struct {
	ID   int     `json:"id" toml:"id" yaml:"id"`
	Name string  `json:"name,omitempty" toml:"name,omitempty" yaml:"name,omitempty"`
	X    float64 `json:"x" toml:"x" yaml:"x"`
	Y    float64 `json:"y" toml:"y" yaml:"y"`
	Type string  `json:"type,omitempty" toml:"type,omitempty" yaml:"type,omitempty"`
}

// Route is an edge entry. Color is a "#rrggbb" hex string; empty means black.
type Route struct {
	ID    int    `json:"id" toml:"id" yaml:"id"`
	From  int    `json:"from" toml:"from" yaml:"from"`
	To    int    `json:"to" toml:"to" yaml:"to"`
	Color string `json:"color,omitempty" toml:"color,omitempty" yaml:"color,omitempty"`
}

// Nodes converts the cities to model nodes.
func (d *Document) Nodes() ([]citymap.Node, error) {
	nodes := make([]citymap.Node, 0, len(d.Cities))
	seen := make(map[int]bool, len(d.Cities))
	for _, c := range d.Cities {
		if seen[c.ID] {
			return nil, fmt.Errorf("duplicate city id %d: %w", c.ID, ErrInvalidDocument)
		}
		seen[c.ID] = true

		typ, err := citymap.ParseNodeType(c.Type)
		if err != nil {
			return nil, fmt.Errorf("city %d: %v: %w", c.ID, err, ErrInvalidDocument)
		}
		n := citymap.Node{ID: c.ID, Name: c.Name, X: c.X, Y: c.Y, Type: typ}
		if err := n.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

// Edges converts the routes to model edges. Endpoints are not checked.
func (d *Document) Edges() ([]citymap.Edge, error) {
	edges := make([]citymap.Edge, 0, len(d.Routes))
	seen := make(map[int]bool, len(d.Routes))
	for _, r := range d.Routes {
		if seen[r.ID] {
			return nil, fmt.Errorf("duplicate route id %d: %w", r.ID, ErrInvalidDocument)
		}
		seen[r.ID] = true

		c, err := ParseColor(r.Color)
		if err != nil {
			return nil, fmt.Errorf("route %d: %v: %w", r.ID, err, ErrInvalidDocument)
		}
		edges = append(edges, citymap.Edge{ID: r.ID, From: r.From, To: r.To, Color: c})
	}
	return edges, nil
}

// Validate checks that the document converts cleanly and that every route
// references a city.
func (d *Document) Validate() error {
	nodes, err := d.Nodes()
	if err != nil {
		return err
	}
	edges, err := d.Edges()
	if err != nil {
		return err
	}
	return citymap.CheckEdges(citymap.NewNodeSnapshot(nodes), edges)
}

// FromModel builds a document from the current contents of m.
func FromModel(name string, m *citymap.Model) *Document {
	nodes := m.SnapshotNodes()
	edges := m.SnapshotEdges()

	doc := &Document{
		Name:   name,
		Cities: make([]City, 0, nodes.Len()),
		Routes: make([]Route, 0, edges.Len()),
	}
	for i := 0; i < nodes.Len(); i++ {
		n := nodes.At(i)
		doc.Cities = append(doc.Cities, City{
			ID:   n.ID,
			Name: n.Name,
			X:    n.X,
			Y:    n.Y,
			Type: n.Type.String(),
		})
	}
	for i := 0; i < edges.Len(); i++ {
		e := edges.At(i)
		doc.Routes = append(doc.Routes, Route{
			ID:    e.ID,
			From:  e.From,
			To:    e.To,
			Color: FormatColor(e.Color),
		})
	}
	return doc
}

// ParseColor parses a "#rrggbb" hex color. The empty string is opaque black.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return color.RGBA{A: 255}, nil
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, err
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// FormatColor formats c as "#rrggbb". Fully transparent colors format as "".
func FormatColor(c color.RGBA) string {
	cc, ok := colorful.MakeColor(c)
	if !ok {
		return ""
	}
	return cc.Hex()
}

package mapfile

import (
	"context"
	"fmt"

	"github.com/ha1tch/citymap/pkg/citymap"
)

// Source supplies the nodes and edges of a map.
type Source interface {
	FetchNodes(ctx context.Context) ([]citymap.Node, error)
	FetchEdges(ctx context.Context) ([]citymap.Edge, error)
}

// Replacer is anything that can swap in a whole map, such as a
// *citymap.Model or a *render.Engine.
type Replacer interface {
	Replace(nodes []citymap.Node, edges []citymap.Edge) error
}

// FetchNodes implements Source.
func (d *Document) FetchNodes(ctx context.Context) ([]citymap.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return d.Nodes()
}

// FetchEdges implements Source.
func (d *Document) FetchEdges(ctx context.Context) ([]citymap.Edge, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return d.Edges()
}

// FileSource reads a map document from disk. FetchNodes re-reads the file;
// FetchEdges returns the routes of the document read by the last FetchNodes
// so a Load sees one consistent version of the file.
type FileSource struct {
	Path string

	doc *Document
}

// NewFileSource returns a source for the document at path.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// FetchNodes implements Source.
func (s *FileSource) FetchNodes(ctx context.Context) ([]citymap.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, err := ReadFile(s.Path)
	if err != nil {
		return nil, err
	}
	s.doc = doc
	return doc.Nodes()
}

// FetchEdges implements Source.
func (s *FileSource) FetchEdges(ctx context.Context) ([]citymap.Edge, error) {
	if s.doc == nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		doc, err := ReadFile(s.Path)
		if err != nil {
			return nil, err
		}
		s.doc = doc
	}
	return s.doc.FetchEdges(ctx)
}

// Document returns the document read by the last fetch, or nil.
func (s *FileSource) Document() *Document {
	return s.doc
}

// Load fetches a full map from src, checks it, and swaps it into dst. On
// any error dst is left untouched.
func Load(ctx context.Context, src Source, dst Replacer) error {
	nodes, err := src.FetchNodes(ctx)
	if err != nil {
		return fmt.Errorf("fetch nodes: %w", err)
	}
	edges, err := src.FetchEdges(ctx)
	if err != nil {
		return fmt.Errorf("fetch edges: %w", err)
	}

	for _, n := range nodes {
		if err := n.Validate(); err != nil {
			return err
		}
	}
	if err := citymap.CheckEdges(citymap.NewNodeSnapshot(nodes), edges); err != nil {
		return err
	}
	return dst.Replace(nodes, edges)
}

package citymap

import "fmt"

// store keeps values keyed by id in insertion order. Replacing an existing
// id keeps its original slot.
type store[T any] struct {
	ids   []int
	items map[int]T
}

func newStore[T any]() store[T] {
	return store[T]{items: make(map[int]T)}
}

func (s *store[T]) put(id int, v T) {
	if _, ok := s.items[id]; !ok {
		s.ids = append(s.ids, id)
	}
	s.items[id] = v
}

func (s *store[T]) remove(id int) {
	if _, ok := s.items[id]; !ok {
		return
	}
	delete(s.items, id)
	for i, existing := range s.ids {
		if existing == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			break
		}
	}
}

func (s *store[T]) clear() {
	s.ids = nil
	s.items = make(map[int]T)
}

func (s *store[T]) values() []T {
	out := make([]T, len(s.ids))
	for i, id := range s.ids {
		out[i] = s.items[id]
	}
	return out
}

// Model is the in-memory city map. It is not safe for concurrent use;
// callers confine it to one goroutine.
type Model struct {
	nodes store[Node]
	edges store[Edge]
}

// NewModel creates an empty model.
func NewModel() *Model {
	return &Model{
		nodes: newStore[Node](),
		edges: newStore[Edge](),
	}
}

// InsertNode adds n, replacing any node with the same id.
func (m *Model) InsertNode(n Node) error {
	if err := n.Validate(); err != nil {
		return err
	}
	m.nodes.put(n.ID, n)
	return nil
}

// RemoveNode deletes the node with the given id. Edges that reference it
// are left alone.
func (m *Model) RemoveNode(id int) {
	m.nodes.remove(id)
}

// InsertEdge adds e, replacing any edge with the same id. Endpoints are not
// checked.
func (m *Model) InsertEdge(e Edge) {
	m.edges.put(e.ID, e)
}

// RemoveEdge deletes the edge with the given id.
func (m *Model) RemoveEdge(id int) {
	m.edges.remove(id)
}

// Clear removes every node and edge.
func (m *Model) Clear() {
	m.nodes.clear()
	m.edges.clear()
}

// Replace swaps the model contents for the given nodes and edges, in order.
// Nodes are validated first; on error the model is unchanged.
func (m *Model) Replace(nodes []Node, edges []Edge) error {
	for _, n := range nodes {
		if err := n.Validate(); err != nil {
			return err
		}
	}

	m.Clear()
	for _, n := range nodes {
		m.nodes.put(n.ID, n)
	}
	for _, e := range edges {
		m.edges.put(e.ID, e)
	}
	return nil
}

// NodeCount returns the number of nodes.
func (m *Model) NodeCount() int {
	return len(m.nodes.ids)
}

// EdgeCount returns the number of edges.
func (m *Model) EdgeCount() int {
	return len(m.edges.ids)
}

// SnapshotNodes returns an immutable, insertion-ordered copy of the nodes.
func (m *Model) SnapshotNodes() NodeSnapshot {
	return NodeSnapshot{newSnapshot(m.nodes.values(), func(n Node) int { return n.ID })}
}

// SnapshotEdges returns an immutable, insertion-ordered copy of the edges.
func (m *Model) SnapshotEdges() EdgeSnapshot {
	return EdgeSnapshot{newSnapshot(m.edges.values(), func(e Edge) int { return e.ID })}
}

// CheckIntegrity reports the first edge whose endpoint is missing.
func (m *Model) CheckIntegrity() error {
	return CheckEdges(m.SnapshotNodes(), m.edges.values())
}

// CheckEdges reports the first edge in edges with an endpoint absent from nodes.
func CheckEdges(nodes NodeSnapshot, edges []Edge) error {
	for _, e := range edges {
		if _, ok := nodes.Lookup(e.From); !ok {
			return fmt.Errorf("edge %d source %d: %w", e.ID, e.From, ErrDanglingEdge)
		}
		if _, ok := nodes.Lookup(e.To); !ok {
			return fmt.Errorf("edge %d destination %d: %w", e.ID, e.To, ErrDanglingEdge)
		}
	}
	return nil
}

type snapshot[T any] struct {
	items []T
	index map[int]int
}

func newSnapshot[T any](items []T, id func(T) int) snapshot[T] {
	index := make(map[int]int, len(items))
	for i, v := range items {
		index[id(v)] = i
	}
	return snapshot[T]{items: items, index: index}
}

// Len returns the number of items.
func (s snapshot[T]) Len() int { return len(s.items) }

// At returns the i-th item in insertion order.
func (s snapshot[T]) At(i int) T { return s.items[i] }

// Lookup returns the item with the given id.
func (s snapshot[T]) Lookup(id int) (T, bool) {
	i, ok := s.index[id]
	if !ok {
		var zero T
		return zero, false
	}
	return s.items[i], true
}

// Slice returns a copy of the items in insertion order.
func (s snapshot[T]) Slice() []T {
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// NodeSnapshot is a read-only view of the model's nodes at one instant.
type NodeSnapshot struct{ snapshot[Node] }

// EdgeSnapshot is a read-only view of the model's edges at one instant.
type EdgeSnapshot struct{ snapshot[Edge] }

// NewNodeSnapshot builds a snapshot from nodes, keeping their order.
func NewNodeSnapshot(nodes []Node) NodeSnapshot {
	items := make([]Node, len(nodes))
	copy(items, nodes)
	return NodeSnapshot{newSnapshot(items, func(n Node) int { return n.ID })}
}

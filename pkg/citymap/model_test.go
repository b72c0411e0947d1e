package citymap

import (
	"errors"
	"image/color"
	"testing"
)

func TestInsertRemoveRoundTrip(t *testing.T) {
	m := NewModel()
	if err := m.InsertNode(Node{ID: 1, X: 0.1, Y: 0.1}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	before := m.NodeCount()

	n := Node{ID: 42, Name: "Szeged", X: 0.6, Y: 0.8, Type: TypeTown}
	if err := m.InsertNode(n); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if m.NodeCount() != before+1 {
		t.Errorf("expected %d nodes after insert, got %d", before+1, m.NodeCount())
	}
	m.RemoveNode(n.ID)

	if m.NodeCount() != before {
		t.Errorf("expected %d nodes after remove, got %d", before, m.NodeCount())
	}
}

func TestInsertNodeRejectsOutOfBounds(t *testing.T) {
	m := NewModel()
	tests := []Node{
		{ID: 1, X: -0.01, Y: 0.5},
		{ID: 2, X: 0.5, Y: 1.01},
		{ID: 3, X: 2, Y: 2},
	}
	for _, n := range tests {
		err := m.InsertNode(n)
		if !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("node %d: expected ErrOutOfBounds, got %v", n.ID, err)
		}
	}
	if m.NodeCount() != 0 {
		t.Errorf("rejected nodes should not be stored, got %d", m.NodeCount())
	}

	// Corners are inside.
	if err := m.InsertNode(Node{ID: 4, X: 1, Y: 0}); err != nil {
		t.Errorf("corner should be accepted: %v", err)
	}
}

func TestSnapshotOrderAndReplace(t *testing.T) {
	m := NewModel()
	for _, id := range []int{5, 3, 9, 1} {
		m.InsertNode(Node{ID: id, X: 0.5, Y: 0.5})
	}

	// Replacing id 3 keeps its slot.
	m.InsertNode(Node{ID: 3, Name: "renamed", X: 0.2, Y: 0.2})
	m.RemoveNode(9)

	snap := m.SnapshotNodes()
	want := []int{5, 3, 1}
	if snap.Len() != len(want) {
		t.Fatalf("expected %d nodes, got %d", len(want), snap.Len())
	}
	for i, id := range want {
		if snap.At(i).ID != id {
			t.Errorf("position %d: expected id %d, got %d", i, id, snap.At(i).ID)
		}
	}
	if n, _ := snap.Lookup(3); n.Name != "renamed" {
		t.Errorf("expected replaced node, got %+v", n)
	}
}

func TestSnapshotIsImmutable(t *testing.T) {
	m := NewModel()
	m.InsertNode(Node{ID: 1, X: 0.1, Y: 0.1})
	m.InsertEdge(Edge{ID: 1, From: 1, To: 1})

	nodes := m.SnapshotNodes()
	edges := m.SnapshotEdges()

	m.InsertNode(Node{ID: 2, X: 0.2, Y: 0.2})
	m.RemoveEdge(1)
	m.Clear()

	if nodes.Len() != 1 {
		t.Errorf("node snapshot changed: %d", nodes.Len())
	}
	if edges.Len() != 1 {
		t.Errorf("edge snapshot changed: %d", edges.Len())
	}

	s := nodes.Slice()
	s[0].Name = "mutated"
	if nodes.At(0).Name != "" {
		t.Errorf("Slice should return a copy")
	}
}

func TestEdgesAndClear(t *testing.T) {
	m := NewModel()
	m.InsertNode(Node{ID: 1, X: 0, Y: 0})
	m.InsertNode(Node{ID: 2, X: 1, Y: 0})
	red := color.RGBA{255, 0, 0, 255}
	m.InsertEdge(Edge{ID: 10, From: 1, To: 2, Color: red})
	m.InsertEdge(Edge{ID: 11, From: 2, To: 1})

	if m.EdgeCount() != 2 {
		t.Fatalf("expected 2 edges, got %d", m.EdgeCount())
	}
	e, ok := m.SnapshotEdges().Lookup(10)
	if !ok || e.Color != red {
		t.Errorf("edge lookup failed: %+v %v", e, ok)
	}

	m.Clear()
	if m.NodeCount() != 0 || m.EdgeCount() != 0 {
		t.Errorf("clear left %d nodes, %d edges", m.NodeCount(), m.EdgeCount())
	}
}

func TestCheckIntegrity(t *testing.T) {
	m := NewModel()
	m.InsertNode(Node{ID: 1, X: 0, Y: 0})
	m.InsertNode(Node{ID: 2, X: 1, Y: 1})
	m.InsertEdge(Edge{ID: 1, From: 1, To: 2})

	if err := m.CheckIntegrity(); err != nil {
		t.Errorf("expected intact model, got %v", err)
	}

	m.RemoveNode(2)
	if err := m.CheckIntegrity(); !errors.Is(err, ErrDanglingEdge) {
		t.Errorf("expected ErrDanglingEdge, got %v", err)
	}
}

func TestModelReplaceIsAtomic(t *testing.T) {
	m := NewModel()
	m.InsertNode(Node{ID: 1, X: 0.5, Y: 0.5})

	err := m.Replace([]Node{{ID: 7, X: 0.1, Y: 0.1}, {ID: 8, X: 3, Y: 0}}, nil)
	if !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
	if _, ok := m.SnapshotNodes().Lookup(1); !ok || m.NodeCount() != 1 {
		t.Errorf("failed Replace should leave model untouched")
	}

	err = m.Replace([]Node{{ID: 7, X: 0.1, Y: 0.1}}, []Edge{{ID: 1, From: 7, To: 7}})
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if m.NodeCount() != 1 || m.EdgeCount() != 1 {
		t.Errorf("unexpected counts after replace: %d nodes, %d edges", m.NodeCount(), m.EdgeCount())
	}
}

func TestNodeTypes(t *testing.T) {
	tests := []struct {
		name string
		typ  NodeType
		size int
	}{
		{"capital", TypeCapital, 16},
		{"city", TypeCity, 10},
		{"town", TypeTown, 8},
		{"village", TypeVillage, 6},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseNodeType(tc.name)
			if err != nil || got != tc.typ {
				t.Fatalf("ParseNodeType(%q) = %v, %v", tc.name, got, err)
			}
			if got.Size() != tc.size || got.Radius() != tc.size/2 {
				t.Errorf("size/radius = %d/%d, want %d/%d", got.Size(), got.Radius(), tc.size, tc.size/2)
			}
			if got.String() != tc.name {
				t.Errorf("String() = %q", got.String())
			}
		})
	}

	if _, err := ParseNodeType("metropolis"); err == nil {
		t.Error("expected error for unknown type")
	}
	if got, _ := ParseNodeType(""); got != TypeCity {
		t.Errorf("empty type should default to city, got %v", got)
	}
}

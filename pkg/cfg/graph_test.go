package cfg

import (
	"errors"
	"strings"
	"testing"
)

func TestGraphAddNode(t *testing.T) {
	g := NewGraph()

	if err := g.AddNode(Node{ID: "n1", Label: "a"}); err != nil {
		t.Fatalf("AddNode error: %v", err)
	}

	// Empty IDs are rejected
	if err := g.AddNode(Node{Label: "no id"}); !errors.Is(err, ErrInvalidNodeID) {
		t.Errorf("AddNode empty ID error = %v, want ErrInvalidNodeID", err)
	}

	// Duplicate IDs are rejected
	if err := g.AddNode(Node{ID: "n1", Label: "again"}); !errors.Is(err, ErrDuplicateNodeID) {
		t.Errorf("AddNode duplicate error = %v, want ErrDuplicateNodeID", err)
	}

	n, ok := g.Node("n1")
	if !ok || n.Label != "a" {
		t.Errorf("Node(n1) = %+v, %v", n, ok)
	}
	if _, ok := g.Node("missing"); ok {
		t.Error("Node(missing) should report not found")
	}
}

func TestGraphAddEdge(t *testing.T) {
	g := NewGraph()
	_ = g.AddNode(Node{ID: "a"})
	_ = g.AddNode(Node{ID: "b"})

	if err := g.AddEdge(Edge{From: "a", To: "b"}); err != nil {
		t.Fatalf("AddEdge error: %v", err)
	}
	if err := g.AddEdge(Edge{From: "x", To: "b"}); !errors.Is(err, ErrUnknownSourceNode) {
		t.Errorf("AddEdge unknown source error = %v", err)
	}
	if err := g.AddEdge(Edge{From: "a", To: "x"}); !errors.Is(err, ErrUnknownTargetNode) {
		t.Errorf("AddEdge unknown target error = %v", err)
	}

	// Duplicate (from, to) pairs are distinct edges, not collapsed.
	if err := g.AddEdge(Edge{From: "a", To: "b"}); err != nil {
		t.Fatalf("duplicate AddEdge error: %v", err)
	}
	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount = %d, want 2", g.EdgeCount())
	}
	if g.OutDegree("a") != 2 || g.InDegree("b") != 2 {
		t.Errorf("degrees = out %d / in %d, want 2 / 2", g.OutDegree("a"), g.InDegree("b"))
	}
}

func TestGraphSourcesAndReachability(t *testing.T) {
	g := NewGraph()
	for _, id := range []NodeID{"a", "b", "c", "island"} {
		_ = g.AddNode(Node{ID: id})
	}
	_ = g.AddEdge(Edge{From: "a", To: "b"})
	_ = g.AddEdge(Edge{From: "b", To: "c"})

	sources := g.Sources()
	if len(sources) != 2 || sources[0] != "a" || sources[1] != "island" {
		t.Errorf("Sources = %v, want [a island]", sources)
	}

	reach := g.ReachableFrom("a")
	if len(reach) != 3 || !reach["a"] || !reach["b"] || !reach["c"] {
		t.Errorf("ReachableFrom(a) = %v", reach)
	}
	if reach["island"] {
		t.Error("island should not be reachable from a")
	}
	if len(g.ReachableFrom("missing")) != 0 {
		t.Error("ReachableFrom(missing) should be empty")
	}
}

func TestGraphNodesOrder(t *testing.T) {
	g := NewGraph()
	ids := []NodeID{"n3", "n1", "n2"}
	for _, id := range ids {
		_ = g.AddNode(Node{ID: id})
	}

	nodes := g.Nodes()
	for i, id := range ids {
		if nodes[i].ID != id {
			t.Errorf("Nodes()[%d].ID = %s, want %s (creation order)", i, nodes[i].ID, id)
		}
	}
}

func TestCleanLabel(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trim", "  x = 1  ", "x = 1"},
		{"quotes", `print("hi")`, "print('hi')"},
		{"exactLimit", strings.Repeat("a", 40), strings.Repeat("a", 40)},
		{
			"truncated",
			strings.Repeat("a", 20) + strings.Repeat("b", 20) + strings.Repeat("c", 15),
			strings.Repeat("a", 20) + "..." + strings.Repeat("c", 15),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanLabel(tt.input); got != tt.want {
				t.Errorf("cleanLabel(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

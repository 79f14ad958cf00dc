package cfg

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node ID is
	// empty. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.AddNode] when a node with the
	// same ID already exists. Node IDs are unique and never reused.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [Graph.AddEdge] when the From node
	// does not exist in the graph.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Graph.AddEdge] when the To node
	// does not exist in the graph.
	ErrUnknownTargetNode = errors.New("unknown target node")
)

// NodeID identifies a node within one graph. IDs are assigned monotonically
// during parsing ("N1", "N2", ...) and are opaque to consumers.
type NodeID string

// Shape is the visual shape category of a node. The renderer maps shapes to
// a visual grammar; the builder assigns them by construct.
type Shape string

// Shape categories.
const (
	ShapeBox     Shape = "box"     // statement blocks
	ShapeOval    Shape = "oval"    // START and END terminals
	ShapeDiamond Shape = "diamond" // decisions: if/elif tests and loop headers
	ShapePoint   Shape = "point"   // structural connectors: merge, else, loop exit
)

// Fill is the fill category of a node. Like Shape it is semantic, not a
// color - the renderer owns the mapping to actual colors.
type Fill string

// Fill categories.
const (
	FillStart     Fill = "start"
	FillEnd       Fill = "end"
	FillDecision  Fill = "decision"
	FillStatement Fill = "statement"
	FillConnector Fill = "connector"
	// FillReturn marks early-return statement nodes, which render highlighted
	// (same color as END) to make exit points easy to spot.
	FillReturn Fill = "return"
)

// EdgeLabel annotates an edge. Most edges are unlabeled; decisions label
// their fall-through edge "False" and loops label their back-edge "Loop".
type EdgeLabel string

// Edge labels.
const (
	LabelNone  EdgeLabel = ""
	LabelFalse EdgeLabel = "False"
	LabelLoop  EdgeLabel = "Loop"
)

// Node is a vertex in the control-flow graph. Nodes are immutable once
// created and are never deleted.
type Node struct {
	ID    NodeID
	Label string
	Shape Shape
	Fill  Fill
}

// Edge is a directed connection between two nodes. Edges are created once
// and never mutated. Multiple edges between the same ordered pair are
// allowed: several branch exits may converge on one merge node.
type Edge struct {
	From  NodeID
	To    NodeID
	Label EdgeLabel
}

// Graph is an append-only control-flow graph. It is populated by the parser
// and becomes read-only once parsing finishes; none of the accessors mutate
// it. Graph is not safe for concurrent mutation.
type Graph struct {
	nodes    map[NodeID]Node
	order    []NodeID // insertion order, for deterministic iteration
	edges    []Edge
	outgoing map[NodeID][]NodeID
	incoming map[NodeID][]NodeID
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes:    make(map[NodeID]Node),
		outgoing: make(map[NodeID][]NodeID),
		incoming: make(map[NodeID][]NodeID),
	}
}

// AddNode adds a node to the graph. Returns ErrInvalidNodeID for an empty
// ID or ErrDuplicateNodeID if the ID is already taken.
func (g *Graph) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	g.nodes[n.ID] = n
	g.order = append(g.order, n.ID)
	return nil
}

// AddEdge adds a directed edge between two existing nodes. Returns
// ErrUnknownSourceNode or ErrUnknownTargetNode when an endpoint is missing.
// Duplicate (From, To) pairs are appended as distinct edges.
func (g *Graph) AddEdge(e Edge) error {
	if _, ok := g.nodes[e.From]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := g.nodes[e.To]; !ok {
		return ErrUnknownTargetNode
	}
	g.edges = append(g.edges, e)
	g.outgoing[e.From] = append(g.outgoing[e.From], e.To)
	g.incoming[e.To] = append(g.incoming[e.To], e.From)
	return nil
}

// Node returns the node with the given ID and true, or a zero Node and
// false if not found.
func (g *Graph) Node(id NodeID) (Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns all nodes in creation order. Because IDs are assigned
// monotonically, this order is stable across identical inputs.
func (g *Graph) Nodes() []Node {
	nodes := make([]Node, len(g.order))
	for i, id := range g.order {
		nodes[i] = g.nodes[id]
	}
	return nodes
}

// Edges returns a copy of all edges in insertion order.
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, len(g.edges))
	copy(edges, g.edges)
	return edges
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// OutDegree returns the number of outgoing edges from the node.
// Returns 0 if the node doesn't exist.
func (g *Graph) OutDegree(id NodeID) int { return len(g.outgoing[id]) }

// InDegree returns the number of incoming edges to the node.
// Returns 0 if the node doesn't exist.
func (g *Graph) InDegree(id NodeID) int { return len(g.incoming[id]) }

// Sources returns the IDs of nodes with no incoming edges, in creation
// order. A well-formed parse produces exactly one source: START.
func (g *Graph) Sources() []NodeID {
	var sources []NodeID
	for _, id := range g.order {
		if len(g.incoming[id]) == 0 {
			sources = append(sources, id)
		}
	}
	return sources
}

// ReachableFrom returns the set of node IDs reachable from id, including id
// itself. Returns an empty set if the node doesn't exist.
func (g *Graph) ReachableFrom(id NodeID) map[NodeID]bool {
	seen := make(map[NodeID]bool)
	if _, ok := g.nodes[id]; !ok {
		return seen
	}
	stack := []NodeID{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[cur] {
			continue
		}
		seen[cur] = true
		stack = append(stack, g.outgoing[cur]...)
	}
	return seen
}

// Label length bounds. Labels longer than maxLabelLen runes are shortened to
// the first labelHeadLen runes, an ellipsis, and the last labelTailLen runes.
const (
	maxLabelLen  = 40
	labelHeadLen = 20
	labelTailLen = 15
)

// cleanLabel normalizes raw statement text for display: trims whitespace,
// rewrites double quotes to single quotes (labels are embedded in quoted DOT
// attributes), and truncates overlong labels keeping a prefix and suffix.
func cleanLabel(raw string) string {
	clean := strings.ReplaceAll(strings.TrimSpace(raw), `"`, "'")
	runes := []rune(clean)
	if len(runes) <= maxLabelLen {
		return clean
	}
	return fmt.Sprintf("%s...%s", string(runes[:labelHeadLen]), string(runes[len(runes)-labelTailLen:]))
}

// Package graphio serializes control-flow graphs.
//
// Graph is the canonical serialization format, used for API responses and
// saved-analysis storage. The struct tags cover both JSON (API, files) and
// BSON (MongoDB persistence via package store). The format round-trips:
// FromGraph followed by ToGraph reproduces the original graph exactly,
// including node order, edge order, and edge labels.
package graphio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/flowgraph/pkg/cfg"
)

// Graph is the serialized form of a control-flow graph.
type Graph struct {
	Nodes []Node `json:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges" bson:"edges"`
}

// Node is the serialized form of one graph node.
type Node struct {
	ID    string `json:"id" bson:"id"`
	Label string `json:"label" bson:"label"`
	Shape string `json:"shape" bson:"shape"`
	Fill  string `json:"fill" bson:"fill"`
}

// Edge is the serialized form of one directed edge.
type Edge struct {
	From  string `json:"from" bson:"from"`
	To    string `json:"to" bson:"to"`
	Label string `json:"label,omitempty" bson:"label,omitempty"`
}

// FromGraph converts a graph to its serialization format. Nodes keep their
// creation order, so identical parses serialize identically.
func FromGraph(g *cfg.Graph) Graph {
	nodes := g.Nodes()
	edges := g.Edges()

	out := Graph{
		Nodes: make([]Node, len(nodes)),
		Edges: make([]Edge, len(edges)),
	}
	for i, n := range nodes {
		out.Nodes[i] = Node{
			ID:    string(n.ID),
			Label: n.Label,
			Shape: string(n.Shape),
			Fill:  string(n.Fill),
		}
	}
	for i, e := range edges {
		out.Edges[i] = Edge{
			From:  string(e.From),
			To:    string(e.To),
			Label: string(e.Label),
		}
	}
	return out
}

// ToGraph rebuilds a cfg.Graph from its serialized form. Returns an error
// when the document violates graph constraints (duplicate IDs, edges with
// missing endpoints).
func ToGraph(gj Graph) (*cfg.Graph, error) {
	g := cfg.NewGraph()
	for _, nj := range gj.Nodes {
		n := cfg.Node{
			ID:    cfg.NodeID(nj.ID),
			Label: nj.Label,
			Shape: cfg.Shape(nj.Shape),
			Fill:  cfg.Fill(nj.Fill),
		}
		if err := g.AddNode(n); err != nil {
			return nil, fmt.Errorf("add node %s: %w", nj.ID, err)
		}
	}
	for _, ej := range gj.Edges {
		e := cfg.Edge{
			From:  cfg.NodeID(ej.From),
			To:    cfg.NodeID(ej.To),
			Label: cfg.EdgeLabel(ej.Label),
		}
		if err := g.AddEdge(e); err != nil {
			return nil, fmt.Errorf("add edge %s→%s: %w", ej.From, ej.To, err)
		}
	}
	return g, nil
}

// Marshal converts a graph to indented JSON bytes.
func Marshal(g *cfg.Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write writes a graph as JSON to an io.Writer.
func Write(g *cfg.Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromGraph(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteFile writes a graph to a JSON file with 0644 permissions.
func WriteFile(g *cfg.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(g, f)
}

// Read decodes a JSON graph from an io.Reader.
func Read(r io.Reader) (*cfg.Graph, error) {
	var data Graph
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return ToGraph(data)
}

// ReadFile reads a JSON file and returns the decoded graph.
func ReadFile(path string) (*cfg.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// Package metrics derives standard complexity metrics from a finished
// control-flow graph.
//
// The metrics follow McCabe's formulation for a single-entry/single-exit
// graph: cyclomatic complexity is E − N + 2, and the region count equals the
// complexity (reported separately because both names are in common use).
package metrics

import "github.com/matzehuels/flowgraph/pkg/cfg"

// Report holds the metrics derived from one graph.
type Report struct {
	Nodes      int `json:"nodes" bson:"nodes"`
	Edges      int `json:"edges" bson:"edges"`
	Complexity int `json:"complexity" bson:"complexity"`
	Predicates int `json:"predicates" bson:"predicates"`
	Regions    int `json:"regions" bson:"regions"`
}

// Calculate computes the metrics for a finished graph. It is a pure
// function: the graph is only read. A nil or empty graph yields a zero
// Report rather than an error.
func Calculate(g *cfg.Graph) Report {
	if g == nil || g.NodeCount() == 0 {
		return Report{}
	}

	nodes := g.NodeCount()
	edges := g.EdgeCount()

	predicates := 0
	for _, n := range g.Nodes() {
		if g.OutDegree(n.ID) > 1 {
			predicates++
		}
	}

	complexity := edges - nodes + 2
	return Report{
		Nodes:      nodes,
		Edges:      edges,
		Complexity: complexity,
		Predicates: predicates,
		Regions:    complexity,
	}
}

// Package render turns control-flow graphs into diagrams.
//
// The graph is first emitted as Graphviz DOT (ToDOT), mapping the semantic
// shape and fill categories of package cfg onto a concrete visual grammar.
// The DOT text can then be rasterized to SVG or PNG with [SVG] and [PNG],
// which use the pure-Go Graphviz build from goccy/go-graphviz - no external
// binaries required.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/flowgraph/pkg/cfg"
)

// fillColors maps fill categories to concrete colors. Early-return nodes
// share the END color so exit points stand out.
var fillColors = map[cfg.Fill]string{
	cfg.FillStart:     "#C8E6C9",
	cfg.FillEnd:       "#FFCDD2",
	cfg.FillReturn:    "#FFCDD2",
	cfg.FillDecision:  "#FFE0B2",
	cfg.FillStatement: "white",
	cfg.FillConnector: "grey",
}

// ToDOT converts a control-flow graph to Graphviz DOT with a top-to-bottom
// layout. Node and edge order follow graph insertion order, so identical
// graphs produce identical DOT text.
func ToDOT(g *cfg.Graph) string {
	var buf bytes.Buffer
	buf.WriteString("digraph CFG {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontsize=12, style=filled];\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		fmt.Fprintf(&buf, "  %q [%s];\n", string(n.ID), strings.Join(nodeAttrs(n), ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		if e.Label != cfg.LabelNone {
			fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", string(e.From), string(e.To), string(e.Label))
		} else {
			fmt.Fprintf(&buf, "  %q -> %q;\n", string(e.From), string(e.To))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n cfg.Node) []string {
	color, ok := fillColors[n.Fill]
	if !ok {
		color = "white"
	}
	return []string{
		fmt.Sprintf("label=%q", n.Label),
		fmt.Sprintf("shape=%s", n.Shape),
		fmt.Sprintf("fillcolor=%q", color),
	}
}

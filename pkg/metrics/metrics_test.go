package metrics

import (
	"testing"

	"github.com/matzehuels/flowgraph/pkg/cfg"
)

func TestCalculateEmpty(t *testing.T) {
	// Nil and empty graphs yield a zero report, not an error.
	if got := Calculate(nil); got != (Report{}) {
		t.Errorf("Calculate(nil) = %+v, want zero report", got)
	}
	if got := Calculate(cfg.NewGraph()); got != (Report{}) {
		t.Errorf("Calculate(empty) = %+v, want zero report", got)
	}
}

func TestCalculateSequential(t *testing.T) {
	got := Calculate(cfg.Parse("a\nb\nc"))

	want := Report{Nodes: 3, Edges: 2, Complexity: 1, Predicates: 0, Regions: 1}
	if got != want {
		t.Errorf("Calculate = %+v, want %+v", got, want)
	}
}

func TestCalculateBranching(t *testing.T) {
	tests := []struct {
		name           string
		input          string
		wantPredicates int
	}{
		{"ifElse", "if x:\na\nelse:\nb", 1},
		{"loop", "while x:\na", 1},
		{"elifChain", "if a:\nx\nelif b:\ny\nelse:\nz", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := cfg.Parse(tt.input)
			got := Calculate(g)

			if got.Predicates != tt.wantPredicates {
				t.Errorf("Predicates = %d, want %d", got.Predicates, tt.wantPredicates)
			}
			if got.Complexity != got.Edges-got.Nodes+2 {
				t.Errorf("Complexity = %d, want E-N+2 = %d", got.Complexity, got.Edges-got.Nodes+2)
			}
			if got.Regions != got.Complexity {
				t.Errorf("Regions = %d, want Complexity %d", got.Regions, got.Complexity)
			}
		})
	}
}

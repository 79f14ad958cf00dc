package pipeline

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	apperrors "github.com/matzehuels/flowgraph/pkg/errors"
)

func TestOptionsValidateAndSetDefaults(t *testing.T) {
	// Empty formats default to dot
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults error: %v", err)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatDOT {
		t.Errorf("default Formats = %v, want [dot]", opts.Formats)
	}
	if opts.CacheTTL != DefaultCacheTTL {
		t.Errorf("default CacheTTL = %v, want %v", opts.CacheTTL, DefaultCacheTTL)
	}

	// Invalid formats are rejected
	opts = Options{Formats: []string{"gif"}}
	if err := opts.ValidateAndSetDefaults(); err == nil {
		t.Error("invalid format should be rejected")
	}

	// Idempotent
	opts = Options{Formats: []string{FormatSVG}}
	_ = opts.ValidateAndSetDefaults()
	_ = opts.ValidateAndSetDefaults()
	if len(opts.Formats) != 1 {
		t.Errorf("Formats = %v after repeated validation", opts.Formats)
	}
}

func TestExecuteDOTAndJSON(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(nil, nil)

	result, err := runner.Execute(ctx, "if x:\na\nelse:\nb", Options{
		Formats: []string{FormatDOT, FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	if result.Mode != "indent" {
		t.Errorf("Mode = %s, want indent", result.Mode)
	}
	if result.Metrics.Nodes == 0 || result.Metrics.Predicates != 1 {
		t.Errorf("Metrics = %+v", result.Metrics)
	}

	dot := string(result.Artifacts[FormatDOT])
	if !strings.HasPrefix(dot, "digraph CFG {") {
		t.Errorf("dot artifact = %q...", dot[:min(len(dot), 40)])
	}

	var doc struct {
		Nodes []json.RawMessage `json:"nodes"`
		Edges []json.RawMessage `json:"edges"`
	}
	if err := json.Unmarshal(result.Artifacts[FormatJSON], &doc); err != nil {
		t.Fatalf("json artifact invalid: %v", err)
	}
	if len(doc.Nodes) != result.Metrics.Nodes || len(doc.Edges) != result.Metrics.Edges {
		t.Errorf("json artifact has %d nodes / %d edges, metrics say %d / %d",
			len(doc.Nodes), len(doc.Edges), result.Metrics.Nodes, result.Metrics.Edges)
	}

	// dot and json are never cached
	if result.CacheInfo.Hits[FormatDOT] || result.CacheInfo.Hits[FormatJSON] {
		t.Error("dot/json artifacts should not report cache hits")
	}
}

func TestExecuteInvalidOptions(t *testing.T) {
	runner := NewRunner(nil, nil)

	_, err := runner.Execute(context.Background(), "a", Options{Formats: []string{"bmp"}})
	if err == nil {
		t.Fatal("expected error for invalid format")
	}
	if apperrors.GetCode(err) != apperrors.ErrCodeInvalidInput {
		t.Errorf("error code = %s, want INVALID_INPUT", apperrors.GetCode(err))
	}
}

func TestExecuteMalformedInput(t *testing.T) {
	// Parsing never fails: unclosed brace-mode blocks produce a best-effort
	// graph, never an error.
	runner := NewRunner(nil, nil)

	result, err := runner.Execute(context.Background(), "while (x) {\na;\nif (y) {\nb;\n}", Options{})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if result.Mode != "brace" {
		t.Errorf("Mode = %s, want brace", result.Mode)
	}
	if result.Metrics.Nodes == 0 {
		t.Error("accumulated graph should not be empty")
	}
}

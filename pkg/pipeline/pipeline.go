// Package pipeline provides the core analysis pipeline for flowgraph.
//
// This package implements the complete normalize → parse → metrics → render
// flow shared by the CLI and the web server. Centralizing it here keeps
// behavior identical across entry points and gives caching a single home.
//
// # Architecture
//
// A pipeline run has three stages:
//
//  1. Parse: normalize the source text and build the control-flow graph
//  2. Measure: derive the complexity metrics from the finished graph
//  3. Render: produce the requested artifact formats (dot, json, svg, png)
//
// Parsing and measuring are cheap and always run; rendered artifacts are
// cached keyed by a hash of the source and the format.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, logger)
//	result, err := runner.Execute(ctx, source, pipeline.Options{
//	    Formats: []string{pipeline.FormatSVG},
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts[pipeline.FormatSVG]
package pipeline

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flowgraph/pkg/cfg"
	"github.com/matzehuels/flowgraph/pkg/metrics"
)

// Output format constants.
const (
	FormatDOT  = "dot"
	FormatJSON = "json"
	FormatSVG  = "svg"
	FormatPNG  = "png"
)

// ValidFormats is the set of supported artifact formats.
var ValidFormats = map[string]bool{
	FormatDOT:  true,
	FormatJSON: true,
	FormatSVG:  true,
	FormatPNG:  true,
}

// DefaultCacheTTL bounds how long rendered artifacts stay cached.
const DefaultCacheTTL = 24 * time.Hour

// Options configures one pipeline run.
type Options struct {
	// Formats lists the artifact formats to render. Defaults to ["dot"].
	Formats []string `json:"formats,omitempty"`

	// Refresh bypasses the artifact cache and re-renders everything.
	Refresh bool `json:"refresh,omitempty"`

	// CacheTTL overrides the artifact cache TTL. Zero means DefaultCacheTTL.
	CacheTTL time.Duration `json:"-"`

	// Logger overrides the runner's logger for this run (not serialized).
	Logger *log.Logger `json:"-"`
}

// ValidateAndSetDefaults checks the options and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatDOT}
	}
	for _, f := range o.Formats {
		if !ValidFormats[f] {
			return fmt.Errorf("invalid format: %q (must be one of: dot, json, svg, png)", f)
		}
	}
	if o.CacheTTL == 0 {
		o.CacheTTL = DefaultCacheTTL
	}
	return nil
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the parsed control-flow graph.
	Graph *cfg.Graph

	// Mode is the syntax mode the normalizer selected.
	Mode cfg.Mode

	// Metrics is the complexity report for the graph.
	Metrics metrics.Report

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing information.
	Stats Stats

	// CacheInfo tracks which artifacts came from cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ParseTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits per rendered format.
type CacheInfo struct {
	Hits map[string]bool
}

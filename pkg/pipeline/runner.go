package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flowgraph/pkg/cache"
	"github.com/matzehuels/flowgraph/pkg/cfg"
	apperrors "github.com/matzehuels/flowgraph/pkg/errors"
	"github.com/matzehuels/flowgraph/pkg/graphio"
	"github.com/matzehuels/flowgraph/pkg/metrics"
	"github.com/matzehuels/flowgraph/pkg/render"
)

// Runner executes the analysis pipeline. One Runner can serve many
// sequential or concurrent Execute calls; all per-run state lives in the
// call frame.
type Runner struct {
	cache  cache.Cache
	logger *log.Logger
}

// NewRunner creates a pipeline runner. A nil cache disables artifact
// caching; a nil logger falls back to the default logger.
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{cache: c, logger: logger}
}

// Execute runs the full pipeline on the given source text.
//
// Parsing itself never fails - the core treats unrecognized statements as
// opaque text and malformed input best-effort. Errors come from option
// validation and from the rendering stage, wrapped with application error
// codes for the boundary to report.
func (r *Runner) Execute(ctx context.Context, source string, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "invalid pipeline options")
	}

	logger := r.logger
	if opts.Logger != nil {
		logger = opts.Logger
	}

	parseStart := time.Now()
	lines, mode := cfg.Normalize(source)
	graph := cfg.ParseLines(lines, mode)
	report := metrics.Calculate(graph)
	parseTime := time.Since(parseStart)

	logger.Debug("parsed source",
		"mode", mode,
		"lines", len(lines),
		"nodes", report.Nodes,
		"edges", report.Edges,
		"complexity", report.Complexity,
	)

	result := &Result{
		Graph:     graph,
		Mode:      mode,
		Metrics:   report,
		Artifacts: make(map[string][]byte, len(opts.Formats)),
		Stats:     Stats{ParseTime: parseTime},
		CacheInfo: CacheInfo{Hits: make(map[string]bool)},
	}

	renderStart := time.Now()
	for _, format := range opts.Formats {
		artifact, hit, err := r.renderFormat(ctx, graph, source, format, opts)
		if err != nil {
			return nil, err
		}
		result.Artifacts[format] = artifact
		result.CacheInfo.Hits[format] = hit
	}
	result.Stats.RenderTime = time.Since(renderStart)

	return result, nil
}

// renderFormat produces one artifact, consulting the cache first. DOT and
// JSON are cheap enough that they are never cached; SVG and PNG go through
// Graphviz layout and are.
func (r *Runner) renderFormat(ctx context.Context, g *cfg.Graph, source, format string, opts Options) ([]byte, bool, error) {
	switch format {
	case FormatDOT:
		return []byte(render.ToDOT(g)), false, nil

	case FormatJSON:
		data, err := graphio.Marshal(g)
		if err != nil {
			return nil, false, apperrors.Wrap(apperrors.ErrCodeInternal, err, "serialize graph")
		}
		return data, false, nil
	}

	key := cache.Key("artifact", cache.Hash([]byte(source)), format)
	if !opts.Refresh {
		if data, ok, err := r.cache.Get(ctx, key); err == nil && ok {
			return data, true, nil
		}
	}

	dot := render.ToDOT(g)
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatSVG:
		data, err = render.SVG(ctx, dot)
	case FormatPNG:
		data, err = render.PNG(ctx, dot)
	}
	if err != nil {
		return nil, false, apperrors.Wrap(apperrors.ErrCodeRenderFailed, err, "render %s", format)
	}

	if err := r.cache.Set(ctx, key, data, opts.CacheTTL); err != nil {
		// Cache failures degrade to re-rendering next time.
		r.logger.Debug("cache artifact", "format", format, "err", err)
	}
	return data, false, nil
}

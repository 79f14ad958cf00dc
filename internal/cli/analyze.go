package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowgraph/pkg/cache"
	"github.com/matzehuels/flowgraph/pkg/pipeline"
)

// analyzeOpts holds the command-line flags for the analyze command.
type analyzeOpts struct {
	formats []string // output formats: dot, json, svg, png
	output  string   // output file (single format) or base path (multiple)
	noCache bool     // disable the artifact cache
	refresh bool     // bypass the cache and re-render
}

// newAnalyzeCmd creates the analyze command. Without --format it parses the
// input and prints the metrics table; with --format it writes the requested
// artifacts to --output (or stdout for a single text format).
func newAnalyzeCmd() *cobra.Command {
	var formatsStr string
	opts := analyzeOpts{}

	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Parse source text and report control-flow metrics",
		Long: `Analyze parses simplified source text into a control-flow graph and derives
cyclomatic-complexity metrics. Input comes from a file argument or stdin
(use "-" or no argument). The syntax mode (brace or indentation) is inferred
from the text.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if formatsStr != "" {
				opts.formats = strings.Split(formatsStr, ",")
			}
			return runAnalyze(cmd.Context(), args, &opts)
		},
	}

	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): dot, json, svg, png (comma-separated)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the rendered-artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass the cache and re-render")

	return cmd
}

func runAnalyze(ctx context.Context, args []string, opts *analyzeOpts) error {
	logger := loggerFromContext(ctx)

	source, name, err := readSource(args)
	if err != nil {
		return err
	}
	logger.Debug("read input", "source", name, "bytes", len(source))

	c, err := buildCache(opts.noCache)
	if err != nil {
		return err
	}
	defer c.Close()

	runner := pipeline.NewRunner(c, logger)

	pipelineOpts := pipeline.Options{
		Formats: opts.formats,
		Refresh: opts.refresh,
	}
	if len(opts.formats) == 0 {
		// Metrics-only run; dot is the cheapest placeholder format.
		pipelineOpts.Formats = []string{pipeline.FormatDOT}
	}

	track := newProgress(logger)
	result, err := runner.Execute(ctx, source, pipelineOpts)
	if err != nil {
		return err
	}
	track.done(fmt.Sprintf("Analyzed %s: %d nodes, %d edges, complexity %d",
		name, result.Metrics.Nodes, result.Metrics.Edges, result.Metrics.Complexity))

	if len(opts.formats) == 0 {
		fmt.Println(metricsTable(result.Metrics, string(result.Mode)))
		return nil
	}

	return writeArtifacts(result.Artifacts, opts.formats, opts.output)
}

// readSource reads the input text from the file argument or stdin.
// Returns the text and a display name for logging.
func readSource(args []string) (string, string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), "stdin", nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("read %s: %w", args[0], err)
	}
	return string(data), filepath.Base(args[0]), nil
}

// buildCache returns the artifact cache for CLI runs: a file cache under the
// user cache dir, or a null cache when disabled or the dir is unavailable.
func buildCache(disabled bool) (cache.Cache, error) {
	if disabled {
		return cache.NewNullCache(), nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(filepath.Join(base, "flowgraph"))
}

// writeArtifacts writes rendered artifacts. A single text format with no
// --output goes to stdout; binary formats require --output. Multiple formats
// treat --output as a base path and append the format extension.
func writeArtifacts(artifacts map[string][]byte, formats []string, output string) error {
	if output == "" {
		if len(formats) > 1 {
			return fmt.Errorf("--output is required with multiple formats")
		}
		format := formats[0]
		if format == pipeline.FormatPNG {
			return fmt.Errorf("--output is required for png")
		}
		_, err := os.Stdout.Write(artifacts[format])
		return err
	}

	if len(formats) == 1 {
		return writeFile(output, artifacts[formats[0]])
	}

	base := strings.TrimSuffix(output, filepath.Ext(output))
	for _, format := range formats {
		if err := writeFile(base+"."+format, artifacts[format]); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Package cli implements the flowgraph command-line interface.
//
// This package provides commands for analyzing source text into control-flow
// graphs, rendering them as diagrams, serving the web UI, and browsing
// results interactively. The CLI is built using cobra with verbose logging
// via the charmbracelet/log library.
//
// # Commands
//
//   - analyze: parse source text, print metrics, and emit dot/json/svg/png
//   - serve: run the web editor and JSON API
//   - view: interactive terminal viewer for a parsed file
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context so subcommands share one configuration.
package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/flowgraph/pkg/buildinfo"
)

// Execute runs the flowgraph CLI and returns an error if any command fails.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "flowgraph",
		Short:        "flowgraph turns simple source text into control-flow diagrams",
		Long:         `flowgraph parses simplified, statement-oriented source text (brace-delimited or indentation-delimited) into a control-flow graph, derives cyclomatic-complexity metrics, and renders Graphviz diagrams.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate("flowgraph " + buildinfo.String() + "\n")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newAnalyzeCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newViewCmd())

	return root.ExecuteContext(ctx)
}

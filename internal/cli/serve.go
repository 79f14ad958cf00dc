package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowgraph/internal/config"
	"github.com/matzehuels/flowgraph/internal/web"
	"github.com/matzehuels/flowgraph/pkg/cache"
	"github.com/matzehuels/flowgraph/pkg/pipeline"
	"github.com/matzehuels/flowgraph/pkg/store"
)

// newServeCmd creates the serve command, which runs the web editor and the
// JSON API until interrupted.
func newServeCmd() *cobra.Command {
	var (
		addr       string
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the flowgraph web editor and API",
		Long: `Serve starts the HTTP server: a browser editor that shows the rendered
control-flow diagram and metrics next to the source text, plus a JSON API.
Backends (artifact cache, analysis store) are configured via a TOML file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), addr, configPath)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to TOML config file")

	return cmd
}

func runServe(ctx context.Context, addr, configPath string) error {
	logger := loggerFromContext(ctx)

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}

	c, err := serveCache(ctx, cfg.Cache)
	if err != nil {
		return err
	}
	defer c.Close()

	st, err := serveStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close(context.Background())

	runner := pipeline.NewRunner(c, logger)
	server := web.NewServer(runner, st, logger)
	return server.ListenAndServe(ctx, cfg.Server.Addr)
}

// serveCache builds the artifact cache from config: redis when an address is
// set, a file cache when a directory is set, otherwise no caching.
func serveCache(ctx context.Context, cfg config.CacheConfig) (cache.Cache, error) {
	switch {
	case cfg.RedisAddr != "":
		return cache.NewRedisCache(ctx, cfg.RedisAddr)
	case cfg.Dir != "":
		return cache.NewFileCache(cfg.Dir)
	default:
		return cache.NewNullCache(), nil
	}
}

// serveStore builds the analysis store from config: MongoDB when a URI is
// set, otherwise in-memory.
func serveStore(ctx context.Context, cfg config.StoreConfig) (store.Store, error) {
	if cfg.MongoURI != "" {
		return store.NewMongoStore(ctx, cfg.MongoURI, cfg.Database)
	}
	return store.NewMemoryStore(), nil
}

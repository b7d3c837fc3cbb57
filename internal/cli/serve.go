package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/binoviz/bino/internal/server"
	"github.com/binoviz/bino/pkg/cache"
	"github.com/binoviz/bino/pkg/pipeline"
)

// serveCommand runs the HTTP figure service.
func (c *CLI) serveCommand() *cobra.Command {
	cfg := c.Config.Serve
	if cfg.Addr == "" {
		cfg.Addr = ":8787"
	}
	if cfg.DataRoot == "" {
		cfg.DataRoot = "."
	}
	if cfg.Cache == "" {
		cfg.Cache = "memory"
	}
	ttlDefault := 30 * time.Second
	if cfg.TTL != "" {
		if d, err := time.ParseDuration(cfg.TTL); err == nil {
			ttlDefault = d
		}
	}

	var (
		addr      string
		dataRoot  string
		cacheSpec string
		ttl       time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve figures over HTTP",
		Long: `Serve runs an HTTP service rendering figures from query parameters:

  GET /v1/figure?mode=hist1d&file=chain.csv&x=0
  GET /v1/datasets?file=chain.csv
  GET /healthz

File access is confined to the data root.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			store, err := cache.Open(ctx, cacheSpec)
			if err != nil {
				return err
			}
			defer store.Close()

			runner := pipeline.NewRunner(store, ttl, logger)
			handler := server.New(runner, dataRoot, logger)
			handler.Names = cache.NewScoped(store, "datasets:")
			handler.NamesTTL = ttl
			srv := &http.Server{
				Addr:    addr,
				Handler: handler.Router(),
			}

			errc := make(chan error, 1)
			go func() {
				errc <- srv.ListenAndServe()
			}()
			printInfo("serving figures on %s (data root %s, cache %s)", addr, dataRoot, cacheSpec)

			select {
			case err := <-errc:
				return err
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", cfg.Addr, "listen address")
	cmd.Flags().StringVar(&dataRoot, "data-root", cfg.DataRoot, "directory served data files live under")
	cmd.Flags().StringVar(&cacheSpec, "cache", cfg.Cache, "figure cache backend: memory, off, dir:PATH or redis://...")
	cmd.Flags().DurationVar(&ttl, "ttl", ttlDefault, "figure cache entry lifetime")
	return cmd
}

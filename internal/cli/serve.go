package cli

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/initializr/pkg/observability"
	"github.com/matzehuels/initializr/pkg/refresh"
	"github.com/matzehuels/initializr/pkg/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog over HTTP",
		Long: `Serve the catalog over HTTP.

Endpoints:
  GET  /metadata   catalog metadata document
  POST /describe   resolve a project request
  GET  /graph      version bindings (DOT, or ?format=svg)
  POST /refresh    schedule a refresh from the release feed
  GET  /healthz    liveness
  GET  /metrics    Prometheus metrics

When a feed is configured, versions are refreshed at startup and then every
refresh.interval. A failed refresh keeps the versions already served.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			env, err := c.open(ctx)
			if err != nil {
				return err
			}
			defer env.Close()
			if addr == "" {
				addr = env.cfg.Server.Addr
			}

			registry := prometheus.NewRegistry()
			registry.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
			metrics := observability.NewPrometheus()
			metrics.MustRegister(registry)
			observability.SetAll(metrics)
			defer observability.Reset()

			opts := server.Options{Gatherer: registry, Logger: logger}
			var scheduler *refresh.Scheduler
			if env.cfg.Refresh.Enabled() {
				scheduler = refresh.NewScheduler(env.provider, env.cfg.Refresh.Interval.Duration, logger)
				opts.Scheduler = scheduler
			}
			logger.Info("serving catalog", "versions", versionsSummary(env.provider.Get()))

			g, ctx := errgroup.WithContext(ctx)
			if scheduler != nil {
				g.Go(func() error {
					scheduler.Run(ctx)
					return nil
				})
			}
			g.Go(func() error {
				return server.New(env.provider, opts).ListenAndServe(ctx, addr)
			})
			return g.Wait()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")

	return cmd
}

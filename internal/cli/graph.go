package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/initializr/pkg/render"
)

const (
	formatDOT = "dot"
	formatSVG = "svg"
)

// graphCommand creates the graph command.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		format    string
		output    string
		deps      bool
		doRefresh bool
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Draw framework to platform version bindings",
		Long: `Draw the framework versions of the catalog with the platform version each
one is bound to. With --dependencies, dependencies are linked to every
platform version they are compatible with.

The graph is written as Graphviz DOT, or rendered to SVG with --format svg.`,
		Example: `  initializr graph --refresh -f svg -o versions.svg
  initializr graph --dependencies | dot -Tpng > versions.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatDOT && format != formatSVG {
				return fmt.Errorf("unsupported format %q (want %s or %s)", format, formatDOT, formatSVG)
			}
			ctx := cmd.Context()
			env, err := c.open(ctx)
			if err != nil {
				return err
			}
			defer env.Close()

			catalog := env.provider.Get()
			if doRefresh {
				catalog = env.refreshOnce(ctx, noCache)
			}

			data := []byte(render.ToDOT(catalog, render.Options{Dependencies: deps}))
			if format == formatSVG {
				spinner := newSpinnerWithContext(ctx, "Rendering svg...")
				spinner.Start()
				data, err = render.RenderSVG(string(data))
				spinner.Stop()
				if err != nil {
					return fmt.Errorf("render svg: %w", err)
				}
			}

			if output == "" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printSuccess(cmd.OutOrStdout(), "Rendered %s", versionsSummary(catalog))
			printFile(cmd.OutOrStdout(), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatDOT, "output format: dot, svg")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&deps, "dependencies", false, "link dependencies to compatible platform versions")
	cmd.Flags().BoolVar(&doRefresh, "refresh", false, "refresh versions from the feed first")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the feed cache when refreshing")

	return cmd
}

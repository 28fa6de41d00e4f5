package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/initializr/pkg/metadata"
)

// metadataCommand creates the metadata command.
func (c *CLI) metadataCommand() *cobra.Command {
	var (
		doRefresh bool
		noCache   bool
		asTable   bool
	)

	cmd := &cobra.Command{
		Use:   "metadata",
		Short: "Print the catalog as a metadata document",
		Long: `Print the catalog as the JSON metadata document served by 'initializr serve'
at /metadata. With --table, print a summary of the capabilities instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runMetadata(cmd.Context(), cmd.OutOrStdout(), doRefresh, noCache, asTable)
		},
	}

	cmd.Flags().BoolVar(&doRefresh, "refresh", false, "refresh versions from the feed first")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the feed cache when refreshing")
	cmd.Flags().BoolVar(&asTable, "table", false, "print a capability summary")

	return cmd
}

func (c *CLI) runMetadata(ctx context.Context, w io.Writer, doRefresh, noCache, asTable bool) error {
	env, err := c.open(ctx)
	if err != nil {
		return err
	}
	defer env.Close()

	catalog := env.provider.Get()
	if doRefresh {
		catalog = env.refreshOnce(ctx, noCache)
	}
	if asTable {
		writeCatalogSummary(w, catalog)
		return nil
	}
	return metadata.WriteDocument(w, catalog)
}

// writeCatalogSummary prints one row per single-select capability with its
// default, followed by the dependency groups.
func writeCatalogSummary(w io.Writer, c *metadata.Catalog) {
	t := newTable("Capability", "Options", "Default")
	defaultType, _ := c.Types.Default()
	t.Row("type", fmt.Sprint(len(c.Types.Content())), defaultType.ID)
	for _, s := range []*metadata.SingleSelect{c.Packagings, c.JavaVersions, c.Languages, c.PlatformVersions, c.FrameworkVersions} {
		if s.Len() == 0 {
			continue
		}
		t.Row(s.ID, fmt.Sprint(s.Len()), s.DefaultID())
	}
	fmt.Fprintln(w, t.Render())

	groups := newTable("Group", "Dependencies")
	for _, g := range c.Dependencies.Groups() {
		groups.Row(g.Name, fmt.Sprint(len(g.Content)))
	}
	if fw := c.FrameworkDependencies.Len(); fw > 0 {
		groups.Row("framework", fmt.Sprint(fw))
	}
	fmt.Fprintln(w, groups.Render())
}

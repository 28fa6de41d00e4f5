package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/initializr/pkg/metadata"
)

// versionsCommand creates the versions command.
func (c *CLI) versionsCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "versions",
		Short: "Refresh and list platform and framework versions",
		Long: `Refresh the catalog from the configured release feed once and list the
platform versions and the framework versions with the platform each one is
bound to. Without a feed the configured versions are listed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			env, err := c.open(ctx)
			if err != nil {
				return err
			}
			defer env.Close()

			writeVersions(cmd.OutOrStdout(), env.refreshOnce(ctx, noCache))
			return nil
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the feed cache")

	return cmd
}

func writeVersions(w io.Writer, c *metadata.Catalog) {
	platforms := newTable("Platform", "Name", "")
	for _, e := range c.PlatformVersions.Content() {
		platforms.Row(e.ID, e.DisplayName(), defaultMark(e.ID == c.PlatformVersions.DefaultID()))
	}
	fmt.Fprintln(w, platforms.Render())

	if !c.HasFrameworkAxis() {
		return
	}
	frameworks := newTable("Framework", "Name", "Platform", "")
	for _, e := range c.FrameworkVersions.Content() {
		bound := e.Bound
		if bound != "" {
			if _, ok := c.PlatformVersions.Get(bound); ok {
				bound = StylePlatform.Render(bound)
			} else {
				bound = StyleWarning.Render(bound + " (unknown)")
			}
		}
		frameworks.Row(e.ID, e.DisplayName(), bound, defaultMark(e.ID == c.FrameworkVersions.DefaultID()))
	}
	fmt.Fprintln(w, frameworks.Render())
}

// versionsSummary describes the axes of c in one line.
func versionsSummary(c *metadata.Catalog) string {
	s := fmt.Sprintf("%d platform versions (default %s)", c.PlatformVersions.Len(), c.PlatformVersions.DefaultID())
	if c.HasFrameworkAxis() {
		s += fmt.Sprintf(", %d framework versions", c.FrameworkVersions.Len())
	}
	return s
}

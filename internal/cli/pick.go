package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/initializr/pkg/errors"
	"github.com/matzehuels/initializr/pkg/project"
)

// pickCommand creates the pick command.
func (c *CLI) pickCommand() *cobra.Command {
	var (
		req  project.Request
		opts describeOptions
	)

	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Pick dependencies interactively and describe the project",
		Long: `Pick dependencies from the catalog interactively, then resolve the project
as 'describe' does. Dependencies that are not compatible with the platform
version are listed but cannot be picked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			env, err := c.open(ctx)
			if err != nil {
				return err
			}
			defer env.Close()

			catalog := env.provider.Get()
			if opts.refresh {
				catalog = env.refreshOnce(ctx, opts.noCache)
			}

			platformID := req.PlatformVersion
			if platformID == "" {
				platformID = catalog.PlatformVersions.DefaultID()
			}
			platform, err := catalog.PlatformParser().ParseVersion(platformID)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidVersion, err, "invalid platform version %s", platformID)
			}

			final, err := tea.NewProgram(NewDependencyPickerModel(catalog, platform), tea.WithContext(ctx)).Run()
			if err != nil {
				return fmt.Errorf("dependency picker: %w", err)
			}
			m, ok := final.(DependencyPickerModel)
			if !ok || !m.Confirmed {
				printInfo(cmd.OutOrStdout(), "Cancelled")
				return nil
			}

			req.Dependencies = m.Selection()
			return describe(ctx, cmd.OutOrStdout(), &req, catalog, opts.json)
		},
	}

	cmd.Flags().StringVarP(&req.Type, "type", "t", "", "project type")
	cmd.Flags().StringVarP(&req.Language, "language", "l", "", "language")
	cmd.Flags().StringVarP(&req.PlatformVersion, "boot-version", "b", "", "platform version")
	cmd.Flags().StringVar(&req.Name, "name", "", "project name")
	cmd.Flags().StringVar(&req.GroupID, "group-id", "", "project group id")
	cmd.Flags().StringVar(&req.ArtifactID, "artifact-id", "", "project artifact id")
	opts.register(cmd)
	c.registerCatalogCompletions(cmd)

	return cmd
}

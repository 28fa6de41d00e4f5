package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/initializr/pkg/metadata"
)

// completionCommand prints shell completion scripts.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Print a completion script for initializr to standard output.

  bash:        source <(initializr completion bash)
  zsh:         initializr completion zsh > "${fpath[1]}/_initializr"
  fish:        initializr completion fish | source
  powershell:  initializr completion powershell | Out-String | Invoke-Expression

Completions cover commands and flags, including the --type, --language and
--boot-version values of the configured catalog when a configuration file is
found.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
			return nil
		},
	}

	return cmd
}

// registerCatalogCompletions completes the catalog-backed flags of cmd from
// the configured catalog. Flags missing from cmd are skipped.
func (c *CLI) registerCatalogCompletions(cmd *cobra.Command) {
	values := map[string]func(*metadata.Catalog) []string{
		"type": func(cat *metadata.Catalog) []string {
			var ids []string
			for _, t := range cat.Types.Content() {
				ids = append(ids, t.ID)
			}
			return ids
		},
		"language":          func(cat *metadata.Catalog) []string { return elementIDs(cat.Languages) },
		"packaging":         func(cat *metadata.Catalog) []string { return elementIDs(cat.Packagings) },
		"java-version":      func(cat *metadata.Catalog) []string { return elementIDs(cat.JavaVersions) },
		"boot-version":      func(cat *metadata.Catalog) []string { return elementIDs(cat.PlatformVersions) },
		"framework-version": func(cat *metadata.Catalog) []string { return elementIDs(cat.FrameworkVersions) },
		"dependencies": func(cat *metadata.Catalog) []string {
			var ids []string
			for _, d := range cat.Dependencies.All() {
				ids = append(ids, d.ID)
			}
			return ids
		},
	}

	for name, list := range values {
		if cmd.Flags().Lookup(name) == nil {
			continue
		}
		_ = cmd.RegisterFlagCompletionFunc(name, func(cmd *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
			cfg, err := c.loadConfig()
			if err != nil {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			cat, err := buildCatalog(cfg, log.New(io.Discard))
			if err != nil {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return list(cat), cobra.ShellCompDirectiveNoFileComp
		})
	}
}

func elementIDs(s *metadata.SingleSelect) []string {
	var ids []string
	for _, e := range s.Content() {
		ids = append(ids, e.ID)
	}
	return ids
}

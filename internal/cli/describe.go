package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/initializr/pkg/errors"
	"github.com/matzehuels/initializr/pkg/metadata"
	"github.com/matzehuels/initializr/pkg/project"
)

// describeOptions are the output switches shared by describe and pick.
type describeOptions struct {
	refresh bool
	noCache bool
	json    bool
}

func (o *describeOptions) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.refresh, "refresh", false, "refresh versions from the feed first")
	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "bypass the feed cache when refreshing")
	cmd.Flags().BoolVar(&o.json, "json", false, "print the descriptor as JSON")
}

// describeCommand creates the describe command.
func (c *CLI) describeCommand() *cobra.Command {
	var (
		flags       project.Request
		requestFile string
		opts        describeOptions
	)

	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Resolve a project request into a project description",
		Long: `Resolve a project request into a project description.

The request is read from --request (JSON) and/or the flags below; flags take
precedence over the file. Blank settings take the catalog defaults. The
request is validated, the platform version chosen and every dependency
resolved to concrete coordinates for that platform.`,
		Example: `  initializr describe --type maven-project -d web,cloud
  initializr describe --request request.json --boot-version 2.1.6.RELEASE --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := &project.Request{}
			if requestFile != "" {
				r, err := readRequest(requestFile)
				if err != nil {
					return err
				}
				req = r
			}
			overlayRequest(req, &flags, cmd.Flags().Changed)
			return c.runDescribe(cmd.Context(), cmd.OutOrStdout(), req, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&requestFile, "request", "", "project request JSON file")
	f.StringVar(&flags.GroupID, "group-id", "", "project group id")
	f.StringVar(&flags.ArtifactID, "artifact-id", "", "project artifact id")
	f.StringVar(&flags.Version, "version", "", "project version")
	f.StringVar(&flags.Name, "name", "", "project name")
	f.StringVar(&flags.Description, "description", "", "project description")
	f.StringVar(&flags.PackageName, "package-name", "", "root package")
	f.StringVar(&flags.ApplicationName, "application-name", "", "application class name")
	f.StringVar(&flags.BaseDir, "base-dir", "", "base directory inside the archive")
	f.StringVarP(&flags.Type, "type", "t", "", "project type, e.g. maven-project")
	f.StringVarP(&flags.Language, "language", "l", "", "language")
	f.StringVar(&flags.JavaVersion, "java-version", "", "java version")
	f.StringVar(&flags.Packaging, "packaging", "", "packaging")
	f.StringVarP(&flags.PlatformVersion, "boot-version", "b", "", "platform version")
	f.StringVarP(&flags.FrameworkVersion, "framework-version", "f", "", "framework version")
	f.StringSliceVarP(&flags.Dependencies, "dependencies", "d", nil, "dependency ids (comma-separated)")
	opts.register(cmd)
	c.registerCatalogCompletions(cmd)

	return cmd
}

// runDescribe converts req against the current catalog and prints the result.
func (c *CLI) runDescribe(ctx context.Context, w io.Writer, req *project.Request, opts describeOptions) error {
	env, err := c.open(ctx)
	if err != nil {
		return err
	}
	defer env.Close()

	catalog := env.provider.Get()
	if opts.refresh {
		catalog = env.refreshOnce(ctx, opts.noCache)
	}
	return describe(ctx, w, req, catalog, opts.json)
}

func describe(ctx context.Context, w io.Writer, req *project.Request, catalog *metadata.Catalog, asJSON bool) error {
	prog := newProgress(loggerFromContext(ctx))
	d, err := project.NewConverter(loggerFromContext(ctx)).Convert(ctx, req, catalog)
	if err != nil {
		return err
	}
	prog.done("Resolved project", "deps", len(d.Dependencies), "platform", d.PlatformVersion)

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	}
	writeDescriptor(w, d)
	return nil
}

// readRequest decodes a project request file. Unknown fields are rejected.
func readRequest(path string) (*project.Request, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "cannot open request %s", path)
	}
	defer f.Close()

	var req project.Request
	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request %s: %v", path, err)
	}
	return &req, nil
}

// overlayRequest copies the fields of src whose flag was set onto dst.
func overlayRequest(dst, src *project.Request, changed func(string) bool) {
	set := func(flag string, target *string, value string) {
		if changed(flag) {
			*target = value
		}
	}
	set("group-id", &dst.GroupID, src.GroupID)
	set("artifact-id", &dst.ArtifactID, src.ArtifactID)
	set("version", &dst.Version, src.Version)
	set("name", &dst.Name, src.Name)
	set("description", &dst.Description, src.Description)
	set("package-name", &dst.PackageName, src.PackageName)
	set("application-name", &dst.ApplicationName, src.ApplicationName)
	set("base-dir", &dst.BaseDir, src.BaseDir)
	set("type", &dst.Type, src.Type)
	set("language", &dst.Language, src.Language)
	set("java-version", &dst.JavaVersion, src.JavaVersion)
	set("packaging", &dst.Packaging, src.Packaging)
	set("boot-version", &dst.PlatformVersion, src.PlatformVersion)
	set("framework-version", &dst.FrameworkVersion, src.FrameworkVersion)
	if changed("dependencies") {
		dst.Dependencies = src.Dependencies
		dst.Style = nil
	}
}

// =============================================================================
// Descriptor Output
// =============================================================================

func writeDescriptor(w io.Writer, d *project.Descriptor) {
	fmt.Fprintln(w, StyleTitle.Render(d.Name))
	if d.Description != "" {
		fmt.Fprintln(w, StyleDim.Render(d.Description))
	}
	fmt.Fprintln(w)

	kv := func(key, value string) { printKeyValue(w, key, value) }
	kv("Coordinates", d.GroupID+":"+d.ArtifactID+":"+d.Version)
	kv("Package", d.PackageName)
	kv("Application", d.ApplicationName)
	kv("Base dir", d.BaseDirectory)
	kv("Build", d.BuildSystem)
	kv("Language", d.Language)
	kv("Java", d.JavaVersion)
	kv("Packaging", d.Packaging)
	kv("Platform", StylePlatform.Render(d.PlatformVersion))
	if d.FrameworkVersion != "" {
		kv("Framework", StyleFramework.Render(d.FrameworkVersion))
	}

	if len(d.Dependencies) > 0 {
		rows := make([][]string, 0, len(d.Dependencies))
		for _, dep := range d.Dependencies {
			v := dep.Version
			if dep.Managed() {
				v = "managed"
			}
			rows = append(rows, []string{dep.ID, dep.GroupID + ":" + dep.ArtifactID, v, dep.Scope})
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, newTable("Dependency", "Coordinates", "Version", "Scope").Rows(rows...).Render())
	}

	for _, id := range slices.Sorted(maps.Keys(d.Boms)) {
		b := d.Boms[id]
		kv("BOM "+id, b.GroupID+":"+b.ArtifactID+":"+b.Version)
	}
	for _, id := range slices.Sorted(maps.Keys(d.Repositories)) {
		kv("Repo "+id, StyleLink.Render(d.Repositories[id].URL))
	}
	if d.RequestID != "" {
		fmt.Fprintln(w, StyleDim.Render("request "+d.RequestID))
	}
}

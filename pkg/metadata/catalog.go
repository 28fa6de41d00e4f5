package metadata

import (
	"fmt"
	"strings"

	"github.com/matzehuels/initializr/pkg/errors"
	"github.com/matzehuels/initializr/pkg/version"
)

// Capability ids, also used as keys of the metadata document.
const (
	IDGroupID               = "groupId"
	IDArtifactID            = "artifactId"
	IDVersion               = "version"
	IDName                  = "name"
	IDDescription           = "description"
	IDPackageName           = "packageName"
	IDType                  = "type"
	IDPackaging             = "packaging"
	IDJavaVersion           = "javaVersion"
	IDLanguage              = "language"
	IDPlatformVersion       = "bootVersion"
	IDFrameworkVersion      = "frameworkVersion"
	IDDependencies          = "dependencies"
	IDFrameworkDependencies = "frameworkDependencies"
)

// Catalog is everything a project request can select from.
//
// A Catalog is not safe for concurrent mutation. Shared catalogs are
// treated as immutable snapshots: writers work on a Clone and publish it.
type Catalog struct {
	Config *Configuration

	GroupID     *TextCapability
	ArtifactID  *TextCapability
	Version     *TextCapability
	Name        *TextCapability
	Description *TextCapability
	PackageName *TextCapability

	Types             *TypeCapability
	Packagings        *SingleSelect
	JavaVersions      *SingleSelect
	Languages         *SingleSelect
	PlatformVersions  *SingleSelect
	FrameworkVersions *SingleSelect

	Dependencies          *DependenciesCapability
	FrameworkDependencies *DependenciesCapability

	frameworkAxis bool
}

// New creates an empty catalog. A nil cfg uses DefaultConfiguration. The
// framework axis is enabled by the configuration and fixed for the life of
// the catalog.
func New(cfg *Configuration) *Catalog {
	if cfg == nil {
		cfg = DefaultConfiguration()
	}
	return &Catalog{
		Config:                cfg,
		GroupID:               NewTextCapability(IDGroupID, "Group", "project coordinates"),
		ArtifactID:            NewTextCapability(IDArtifactID, "Artifact", "project coordinates (infer archive name)"),
		Version:               NewTextCapability(IDVersion, "Version", "project version"),
		Name:                  NewTextCapability(IDName, "Name", "project name (infer application name)"),
		Description:           NewTextCapability(IDDescription, "Description", "project description"),
		PackageName:           NewTextCapability(IDPackageName, "Package Name", "root package"),
		Types:                 NewTypeCapability(),
		Packagings:            NewSingleSelect(IDPackaging, "Packaging", "project packaging"),
		JavaVersions:          NewSingleSelect(IDJavaVersion, "Java Version", "language level"),
		Languages:             NewSingleSelect(IDLanguage, "Language", "programming language"),
		PlatformVersions:      NewSingleSelect(IDPlatformVersion, "Platform Version", "platform version"),
		FrameworkVersions:     NewSingleSelect(IDFrameworkVersion, "Framework Version", "framework version"),
		Dependencies:          NewDependenciesCapability(IDDependencies, "Project dependencies"),
		FrameworkDependencies: NewDependenciesCapability(IDFrameworkDependencies, "Framework dependencies"),
		frameworkAxis:         cfg.Env.FrameworkAxis,
	}
}

// HasFrameworkAxis reports whether the catalog exposes framework versions.
func (c *Catalog) HasFrameworkAxis() bool {
	return c.frameworkAxis
}

// UpdatePlatformVersions replaces the platform versions and recomputes the
// compatibility ranges of every dependency.
func (c *Catalog) UpdatePlatformVersions(elements []Element) error {
	c.PlatformVersions.Replace(elements)
	return c.UpdateCompatibility()
}

// UpdateFrameworkVersions replaces the framework versions and recomputes the
// compatibility ranges of every dependency.
func (c *Catalog) UpdateFrameworkVersions(elements []Element) error {
	c.FrameworkVersions.Replace(elements)
	return c.UpdateCompatibility()
}

// UpdateCompatibility re-parses the ranges of both dependency capabilities
// against the platform versions.
func (c *Catalog) UpdateCompatibility() error {
	p := c.PlatformParser()
	if err := c.Dependencies.UpdateCompatibilityRange(p); err != nil {
		return err
	}
	return c.FrameworkDependencies.UpdateCompatibilityRange(p)
}

// PlatformParser returns a version parser resolving placeholders against
// the platform versions. Unparseable ids are skipped.
func (c *Catalog) PlatformParser() *version.Parser {
	var known []version.Version
	for _, e := range c.PlatformVersions.content {
		if v := version.SafeParse(e.ID); v != nil {
			known = append(known, *v)
		}
	}
	return version.NewParser(known)
}

// BoundPlatformVersion returns the platform version the framework version
// frameworkID is bound to.
func (c *Catalog) BoundPlatformVersion(frameworkID string) (string, bool) {
	e, ok := c.FrameworkVersions.Get(frameworkID)
	if !ok || !e.IsBound() {
		return "", false
	}
	return e.Bound, true
}

// PlatformVersionFloor returns the lowest platform version a request may use.
func (c *Catalog) PlatformVersionFloor() version.Version {
	if v := version.SafeParse(c.Config.Env.PlatformVersionFloor); v != nil {
		return *v
	}
	return version.MustParse(DefaultPlatformVersionFloor)
}

// Merge returns a copy of c with other merged into it. Lists are merged by
// id, text values and settings of other override those of c when set.
// Neither input is modified and the framework axis of c is kept.
func (c *Catalog) Merge(other *Catalog) *Catalog {
	out := c.Clone()
	out.Config.Merge(other.Config.Env)
	other.GroupID.Apply(out.GroupID)
	other.ArtifactID.Apply(out.ArtifactID)
	other.Version.Apply(out.Version)
	other.Name.Apply(out.Name)
	other.Description.Apply(out.Description)
	other.PackageName.Apply(out.PackageName)

	out.Types.Merge(other.Types.content...)
	out.Packagings.Merge(other.Packagings.content...)
	out.JavaVersions.Merge(other.JavaVersions.content...)
	out.Languages.Merge(other.Languages.content...)
	out.PlatformVersions.Merge(other.PlatformVersions.content...)
	out.FrameworkVersions.Merge(other.FrameworkVersions.content...)
	out.Dependencies.Merge(other.Dependencies.groups)
	out.FrameworkDependencies.Merge(other.FrameworkDependencies.groups)
	return out
}

// Clone returns a deep copy of the catalog.
func (c *Catalog) Clone() *Catalog {
	return &Catalog{
		Config:                c.Config.clone(),
		GroupID:               c.GroupID.clone(),
		ArtifactID:            c.ArtifactID.clone(),
		Version:               c.Version.clone(),
		Name:                  c.Name.clone(),
		Description:           c.Description.clone(),
		PackageName:           c.PackageName.clone(),
		Types:                 c.Types.clone(),
		Packagings:            c.Packagings.clone(),
		JavaVersions:          c.JavaVersions.clone(),
		Languages:             c.Languages.clone(),
		PlatformVersions:      c.PlatformVersions.clone(),
		FrameworkVersions:     c.FrameworkVersions.clone(),
		Dependencies:          c.Dependencies.clone(),
		FrameworkDependencies: c.FrameworkDependencies.clone(),
		frameworkAxis:         c.frameworkAxis,
	}
}

// Validate checks the structure of the catalog and reports every problem
// found as a single configuration error.
func (c *Catalog) Validate() error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if version.SafeParse(c.Config.Env.PlatformVersionFloor) == nil {
		add("platform version floor %q is not a version", c.Config.Env.PlatformVersionFloor)
	}
	for _, t := range c.Types.content {
		if t.ID == "" {
			add("type without id")
		}
	}
	for _, s := range []*SingleSelect{c.Packagings, c.JavaVersions, c.Languages, c.PlatformVersions, c.FrameworkVersions} {
		validateSelect(s, add)
	}
	for _, e := range c.PlatformVersions.content {
		if version.SafeParse(e.ID) == nil {
			add("platform version %q is not a version", e.ID)
		}
	}
	if c.PlatformVersions.Len() > 0 {
		for _, e := range c.FrameworkVersions.content {
			if e.IsBound() {
				if _, ok := c.PlatformVersions.Get(e.Bound); !ok {
					add("framework version %q is bound to unknown platform version %q", e.ID, e.Bound)
				}
			}
		}
	}

	p := c.PlatformParser()
	for _, deps := range []*DependenciesCapability{c.Dependencies, c.FrameworkDependencies} {
		for _, d := range deps.All() {
			c.validateDependency(deps.ID, d, p, add)
		}
	}

	if len(problems) > 0 {
		return errors.New(errors.ErrCodeConfigInvalid, "invalid catalog: %s", strings.Join(problems, "; "))
	}
	return nil
}

func validateSelect(s *SingleSelect, add func(string, ...any)) {
	defaults := 0
	for _, e := range s.content {
		if e.ID == "" {
			add("%s element without id", s.ID)
		}
		if e.Default {
			defaults++
		}
	}
	if defaults > 1 {
		add("%s has %d default elements", s.ID, defaults)
	}
}

func (c *Catalog) validateDependency(capability string, d *Dependency, p *version.Parser, add func(string, ...any)) {
	if d.ID == "" {
		add("%s: dependency without id", capability)
		return
	}
	if d.GroupID == "" || d.ArtifactID == "" {
		missing := false
		for _, m := range d.Mappings {
			if m.GroupID == "" && d.GroupID == "" || m.ArtifactID == "" && d.ArtifactID == "" {
				missing = true
			}
		}
		if len(d.Mappings) == 0 || missing {
			add("dependency '%s' has no group or artifact id", d.ID)
		}
	}
	if d.Scope != "" && !knownScopes[d.Scope] {
		add("dependency '%s' has unknown scope %q", d.ID, d.Scope)
	}
	if d.BOM != "" {
		if _, ok := c.Config.Env.Boms[d.BOM]; !ok {
			add("dependency '%s' uses unknown bom %q", d.ID, d.BOM)
		}
	}
	if d.Repository != "" {
		if _, ok := c.Config.Env.Repositories[d.Repository]; !ok {
			add("dependency '%s' uses unknown repository %q", d.ID, d.Repository)
		}
	}
	if err := d.clone().updateRange(p); err != nil {
		add("%s", errors.UserMessage(err))
	}
}

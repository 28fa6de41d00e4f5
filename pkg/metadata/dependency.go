package metadata

import (
	"github.com/matzehuels/initializr/pkg/errors"
	"github.com/matzehuels/initializr/pkg/version"
)

// Dependency scopes.
const (
	ScopeCompile             = "compile"
	ScopeRuntime             = "runtime"
	ScopeProvided            = "provided"
	ScopeTest                = "test"
	ScopeAnnotationProcessor = "annotationProcessor"
	ScopeCompileOnly         = "compileOnly"
)

var knownScopes = map[string]bool{
	ScopeCompile:             true,
	ScopeRuntime:             true,
	ScopeProvided:            true,
	ScopeTest:                true,
	ScopeAnnotationProcessor: true,
	ScopeCompileOnly:         true,
}

// Mapping overrides the coordinates of a dependency for the platform
// versions within its compatibility range. Blank fields keep the value of
// the dependency.
type Mapping struct {
	CompatibilityRange string `json:"compatibilityRange,omitempty" toml:"compatibilityRange" yaml:"compatibilityRange,omitempty"`
	GroupID            string `json:"groupId,omitempty" toml:"groupId" yaml:"groupId,omitempty"`
	ArtifactID         string `json:"artifactId,omitempty" toml:"artifactId" yaml:"artifactId,omitempty"`
	Version            string `json:"version,omitempty" toml:"version" yaml:"version,omitempty"`

	rng *version.Range
}

// Range returns the parsed compatibility range, nil meaning every version.
func (m *Mapping) Range() *version.Range {
	return m.rng
}

// Dependency is an entry of the dependency catalog. A dependency without a
// version uses the version managed by the platform.
type Dependency struct {
	ID                 string    `json:"id" toml:"id" yaml:"id"`
	Name               string    `json:"name,omitempty" toml:"name" yaml:"name,omitempty"`
	Description        string    `json:"description,omitempty" toml:"description" yaml:"description,omitempty"`
	GroupID            string    `json:"groupId,omitempty" toml:"groupId" yaml:"groupId,omitempty"`
	ArtifactID         string    `json:"artifactId,omitempty" toml:"artifactId" yaml:"artifactId,omitempty"`
	Version            string    `json:"version,omitempty" toml:"version" yaml:"version,omitempty"`
	Scope              string    `json:"scope,omitempty" toml:"scope" yaml:"scope,omitempty"`
	Type               string    `json:"type,omitempty" toml:"type" yaml:"type,omitempty"`
	BOM                string    `json:"bom,omitempty" toml:"bom" yaml:"bom,omitempty"`
	Repository         string    `json:"repository,omitempty" toml:"repository" yaml:"repository,omitempty"`
	CompatibilityRange string    `json:"compatibilityRange,omitempty" toml:"compatibilityRange" yaml:"compatibilityRange,omitempty"`
	Mappings           []Mapping `json:"mappings,omitempty" toml:"mappings" yaml:"mappings,omitempty"`

	rng *version.Range
}

// Resolved is a dependency with concrete coordinates for one platform version.
type Resolved struct {
	ID         string `json:"id"`
	GroupID    string `json:"groupId"`
	ArtifactID string `json:"artifactId"`
	Version    string `json:"version,omitempty"`
	Scope      string `json:"scope"`
	Type       string `json:"type,omitempty"`
	BOM        string `json:"bom,omitempty"`
	Repository string `json:"repository,omitempty"`

	rng *version.Range
}

// Managed reports whether the version is left to the platform.
func (r Resolved) Managed() bool {
	return r.Version == ""
}

// Match reports whether v lies within the dependency's own range.
func (r Resolved) Match(v version.Version) bool {
	return r.rng.Match(v)
}

// Range returns the parsed compatibility range, nil meaning every version.
func (d *Dependency) Range() *version.Range {
	return d.rng
}

// Match reports whether the dependency's own range contains v.
func (d *Dependency) Match(v version.Version) bool {
	return d.rng.Match(v)
}

// Resolve returns the coordinates of the dependency for platform.
//
// The dependency's own range, inherited from its group when not declared,
// must contain platform. Declared mappings are then walked in order and the
// first whose range contains platform overrides the coordinates; when
// mappings are declared, one of them must match.
func (d *Dependency) Resolve(platform version.Version) (Resolved, error) {
	if !d.rng.Match(platform) {
		return Resolved{}, d.incompatible(platform)
	}
	r := d.resolved()
	if len(d.Mappings) == 0 {
		return r, nil
	}

	for _, m := range d.Mappings {
		if !m.rng.Match(platform) {
			continue
		}
		if m.GroupID != "" {
			r.GroupID = m.GroupID
		}
		if m.ArtifactID != "" {
			r.ArtifactID = m.ArtifactID
		}
		if m.Version != "" {
			r.Version = m.Version
		}
		return r, nil
	}
	return Resolved{}, d.incompatible(platform)
}

func (d *Dependency) resolved() Resolved {
	scope := d.Scope
	if scope == "" {
		scope = ScopeCompile
	}
	return Resolved{
		ID:         d.ID,
		GroupID:    d.GroupID,
		ArtifactID: d.ArtifactID,
		Version:    d.Version,
		Scope:      scope,
		Type:       d.Type,
		BOM:        d.BOM,
		Repository: d.Repository,
		rng:        d.rng,
	}
}

func (d *Dependency) incompatible(platform version.Version) error {
	return errors.New(errors.ErrCodeIncompatibleDependency,
		"Dependency '%s' is not compatible with platform version %s", d.ID, platform)
}

// updateRange parses the declared ranges of d and its mappings with p.
func (d *Dependency) updateRange(p *version.Parser) error {
	rng, err := parseRange(p, d.CompatibilityRange)
	if err != nil {
		return errors.Wrap(errors.ErrCodeConfigInvalid, err, "invalid compatibility range for dependency '%s'", d.ID)
	}
	mappings := make([]Mapping, len(d.Mappings))
	for i, m := range d.Mappings {
		m.rng, err = parseRange(p, m.CompatibilityRange)
		if err != nil {
			return errors.Wrap(errors.ErrCodeConfigInvalid, err, "invalid mapping range for dependency '%s'", d.ID)
		}
		mappings[i] = m
	}
	d.rng = rng
	d.Mappings = mappings
	return nil
}

func parseRange(p *version.Parser, text string) (*version.Range, error) {
	if text == "" {
		return nil, nil
	}
	return p.ParseRange(text)
}

func (d *Dependency) clone() *Dependency {
	c := *d
	c.Mappings = append([]Mapping(nil), d.Mappings...)
	return &c
}

// DependencyGroup is a named collection of dependencies. Its range, BOM and
// repository are inherited by the dependencies that do not set their own.
type DependencyGroup struct {
	Name               string        `json:"name" toml:"name" yaml:"name"`
	CompatibilityRange string        `json:"compatibilityRange,omitempty" toml:"compatibilityRange" yaml:"compatibilityRange,omitempty"`
	BOM                string        `json:"bom,omitempty" toml:"bom" yaml:"bom,omitempty"`
	Repository         string        `json:"repository,omitempty" toml:"repository" yaml:"repository,omitempty"`
	Content            []*Dependency `json:"content" toml:"content" yaml:"content"`
}

// DependenciesCapability aggregates dependency groups and indexes their
// dependencies by id.
type DependenciesCapability struct {
	ID    string
	Title string

	groups []*DependencyGroup
	index  map[string]*Dependency
}

// NewDependenciesCapability creates an empty capability.
func NewDependenciesCapability(id, title string) *DependenciesCapability {
	return &DependenciesCapability{ID: id, Title: title, index: make(map[string]*Dependency)}
}

// Get looks up a dependency by id.
func (c *DependenciesCapability) Get(id string) (*Dependency, bool) {
	d, ok := c.index[id]
	return d, ok
}

// Groups returns the groups in declaration order.
func (c *DependenciesCapability) Groups() []*DependencyGroup {
	return append([]*DependencyGroup(nil), c.groups...)
}

// All returns every dependency, group by group.
func (c *DependenciesCapability) All() []*Dependency {
	var all []*Dependency
	for _, g := range c.groups {
		all = append(all, g.Content...)
	}
	return all
}

// Len returns the number of dependencies.
func (c *DependenciesCapability) Len() int {
	return len(c.index)
}

// Merge adds the dependencies of groups. Groups are matched by name and
// dependencies by id: a known dependency is replaced where it stands, an
// unknown one is appended to its group. The input groups are copied.
func (c *DependenciesCapability) Merge(groups []*DependencyGroup) {
	for _, g := range groups {
		target := c.group(g.Name)
		if target == nil {
			target = &DependencyGroup{
				Name:               g.Name,
				CompatibilityRange: g.CompatibilityRange,
				BOM:                g.BOM,
				Repository:         g.Repository,
			}
			c.groups = append(c.groups, target)
		}
		for _, d := range g.Content {
			dep := d.clone()
			if dep.CompatibilityRange == "" {
				dep.CompatibilityRange = g.CompatibilityRange
			}
			if dep.BOM == "" {
				dep.BOM = g.BOM
			}
			if dep.Repository == "" {
				dep.Repository = g.Repository
			}
			if !c.replace(dep) {
				target.Content = append(target.Content, dep)
			}
			c.index[dep.ID] = dep
		}
	}
}

func (c *DependenciesCapability) group(name string) *DependencyGroup {
	for _, g := range c.groups {
		if g.Name == name {
			return g
		}
	}
	return nil
}

func (c *DependenciesCapability) replace(dep *Dependency) bool {
	if _, ok := c.index[dep.ID]; !ok {
		return false
	}
	for _, g := range c.groups {
		for i, d := range g.Content {
			if d.ID == dep.ID {
				g.Content[i] = dep
				return true
			}
		}
	}
	return false
}

// UpdateCompatibilityRange re-parses every declared range against p, which
// resolves "x" placeholders with the currently known platform versions.
// Nothing is updated when any range fails to parse.
func (c *DependenciesCapability) UpdateCompatibilityRange(p *version.Parser) error {
	updated := make([]*Dependency, 0, len(c.index))
	for _, d := range c.All() {
		u := d.clone()
		if err := u.updateRange(p); err != nil {
			return err
		}
		updated = append(updated, u)
	}
	for _, u := range updated {
		d := c.index[u.ID]
		d.rng = u.rng
		d.Mappings = u.Mappings
	}
	return nil
}

func (c *DependenciesCapability) clone() *DependenciesCapability {
	out := NewDependenciesCapability(c.ID, c.Title)
	for _, g := range c.groups {
		cg := *g
		cg.Content = make([]*Dependency, len(g.Content))
		for i, d := range g.Content {
			cg.Content[i] = d.clone()
			out.index[d.ID] = cg.Content[i]
		}
		out.groups = append(out.groups, &cg)
	}
	return out
}

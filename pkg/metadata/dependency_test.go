package metadata

import (
	"strings"
	"testing"

	"github.com/matzehuels/initializr/pkg/errors"
	"github.com/matzehuels/initializr/pkg/version"
)

func parsedDependency(t *testing.T, d *Dependency, known ...string) *Dependency {
	t.Helper()
	var versions []version.Version
	for _, k := range known {
		versions = append(versions, version.MustParse(k))
	}
	if err := d.updateRange(version.NewParser(versions)); err != nil {
		t.Fatalf("updateRange: %v", err)
	}
	return d
}

func TestDependency_ResolveWithMappings(t *testing.T) {
	d := parsedDependency(t, &Dependency{
		ID:         "cloud-config",
		GroupID:    "org.acme",
		ArtifactID: "config-client",
		Mappings: []Mapping{
			{CompatibilityRange: "[1.5.0.RELEASE,2.0.0.RELEASE)", Version: "1.4.0"},
			{CompatibilityRange: "[2.0.0.RELEASE,2.1.0.RELEASE)", Version: "2.0.1", ArtifactID: "config-starter"},
			{CompatibilityRange: "2.1.0.RELEASE", Version: "2.1.3", GroupID: "io.acme"},
		},
	})

	tests := []struct {
		platform   string
		groupID    string
		artifactID string
		version    string
	}{
		{"1.5.22.RELEASE", "org.acme", "config-client", "1.4.0"},
		{"2.0.9.RELEASE", "org.acme", "config-starter", "2.0.1"},
		{"2.1.6.RELEASE", "io.acme", "config-client", "2.1.3"},
		{"2.2.0.M3", "io.acme", "config-client", "2.1.3"},
	}

	for _, tt := range tests {
		t.Run(tt.platform, func(t *testing.T) {
			r, err := d.Resolve(version.MustParse(tt.platform))
			if err != nil {
				t.Fatalf("Resolve() error: %v", err)
			}
			if r.GroupID != tt.groupID || r.ArtifactID != tt.artifactID || r.Version != tt.version {
				t.Errorf("Resolve() = %s:%s:%s, want %s:%s:%s",
					r.GroupID, r.ArtifactID, r.Version, tt.groupID, tt.artifactID, tt.version)
			}
			if r.Scope != ScopeCompile {
				t.Errorf("Scope = %q, want compile", r.Scope)
			}
			if !r.Match(version.MustParse(tt.platform)) {
				t.Error("resolved dependency should match its platform")
			}
		})
	}
}

func TestDependency_ResolveIncompatible(t *testing.T) {
	tests := []struct {
		name string
		dep  *Dependency
	}{
		{
			name: "no mapping matches",
			dep: &Dependency{ID: "legacy", GroupID: "g", ArtifactID: "a", Mappings: []Mapping{
				{CompatibilityRange: "[2.0.0.RELEASE,2.1.0.RELEASE)", Version: "1.0"},
			}},
		},
		{
			name: "own range excludes despite a broad mapping",
			dep: &Dependency{ID: "legacy", GroupID: "g", ArtifactID: "a", CompatibilityRange: "[2.0.0.RELEASE,3.0.0.RELEASE)", Mappings: []Mapping{
				{CompatibilityRange: "1.5.0.RELEASE", Version: "1.0.0"},
			}},
		},
		{
			name: "own range excludes",
			dep:  &Dependency{ID: "legacy", GroupID: "g", ArtifactID: "a", CompatibilityRange: "[2.0.0.RELEASE,2.1.0.RELEASE)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := parsedDependency(t, tt.dep)
			_, err := d.Resolve(version.MustParse("1.5.3.RELEASE"))
			if !errors.Is(err, errors.ErrCodeIncompatibleDependency) {
				t.Fatalf("error = %v, want INCOMPATIBLE_DEPENDENCY", err)
			}
			msg := errors.UserMessage(err)
			if !strings.Contains(msg, "legacy") || !strings.Contains(msg, "1.5.3.RELEASE") {
				t.Errorf("message %q should name dependency and platform", msg)
			}
		})
	}
}

func TestDependency_UnrangedIsManagedEverywhere(t *testing.T) {
	d := parsedDependency(t, &Dependency{ID: "web", GroupID: "org.acme", ArtifactID: "starter-web", Scope: ScopeRuntime})
	r, err := d.Resolve(version.MustParse("1.5.0.RELEASE"))
	if err != nil {
		t.Fatal(err)
	}
	if !r.Managed() {
		t.Error("dependency without version should be managed")
	}
	if r.Scope != ScopeRuntime {
		t.Errorf("Scope = %q, want runtime", r.Scope)
	}
}

func TestDependency_PlaceholderRange(t *testing.T) {
	d := parsedDependency(t, &Dependency{
		ID: "reactive", GroupID: "g", ArtifactID: "a",
		CompatibilityRange: "[2.0.0.RELEASE,2.1.x.RELEASE]",
	}, "2.1.6.RELEASE", "2.0.9.RELEASE")

	if !d.Match(version.MustParse("2.1.6.RELEASE")) {
		t.Error("should match latest 2.1")
	}
	if d.Match(version.MustParse("2.2.0.M1")) {
		t.Error("should not match 2.2")
	}
}

func TestDependenciesCapability_Merge(t *testing.T) {
	c := NewDependenciesCapability(IDDependencies, "Dependencies")
	c.Merge([]*DependencyGroup{{
		Name:               "Web",
		CompatibilityRange: "2.0.0.RELEASE",
		BOM:                "acme-bom",
		Content: []*Dependency{
			{ID: "web", GroupID: "g", ArtifactID: "web"},
			{ID: "webflux", GroupID: "g", ArtifactID: "webflux", CompatibilityRange: "2.1.0.RELEASE"},
		},
	}})
	c.Merge([]*DependencyGroup{
		{Name: "Web", Content: []*Dependency{{ID: "web", GroupID: "g", ArtifactID: "web", Name: "Spring Web"}}},
		{Name: "SQL", Content: []*Dependency{{ID: "jdbc", GroupID: "g", ArtifactID: "jdbc"}}},
	})

	if c.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", c.Len())
	}
	groups := c.Groups()
	if len(groups) != 2 || groups[0].Name != "Web" || groups[1].Name != "SQL" {
		t.Fatalf("unexpected groups: %+v", groups)
	}
	web, _ := c.Get("web")
	if web.Name != "Spring Web" {
		t.Errorf("web should be overridden, got name %q", web.Name)
	}
	if groups[0].Content[0] != web {
		t.Error("overridden dependency should keep its position")
	}

	flux, _ := c.Get("webflux")
	if flux.CompatibilityRange != "2.1.0.RELEASE" {
		t.Errorf("own range should win, got %q", flux.CompatibilityRange)
	}
	if flux.BOM != "acme-bom" {
		t.Errorf("bom should be inherited from group, got %q", flux.BOM)
	}
	ids := []string{}
	for _, d := range c.All() {
		ids = append(ids, d.ID)
	}
	if strings.Join(ids, ",") != "web,webflux,jdbc" {
		t.Errorf("All() order = %v", ids)
	}
}

func TestDependenciesCapability_UpdateCompatibilityRange(t *testing.T) {
	c := NewDependenciesCapability(IDDependencies, "Dependencies")
	c.Merge([]*DependencyGroup{{Name: "Core", Content: []*Dependency{
		{ID: "ok", GroupID: "g", ArtifactID: "a", CompatibilityRange: "2.0.x.RELEASE"},
		{ID: "bad", GroupID: "g", ArtifactID: "b", CompatibilityRange: "[oops"},
	}}})

	p := version.NewParser([]version.Version{version.MustParse("2.0.9.RELEASE")})
	err := c.UpdateCompatibilityRange(p)
	if !errors.Is(err, errors.ErrCodeConfigInvalid) {
		t.Fatalf("error = %v, want CONFIG_INVALID", err)
	}
	ok, _ := c.Get("ok")
	if ok.Range() != nil {
		t.Error("no range should be updated when one fails")
	}
}

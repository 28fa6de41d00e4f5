// Package metadatatest provides a small, fully populated catalog for tests
// of packages built on top of metadata.
package metadatatest

import (
	"testing"

	"github.com/matzehuels/initializr/pkg/metadata"
)

// Properties returns the properties of the test catalog. Each call returns
// a fresh value that callers may modify.
//
// The catalog has three platform versions (2.1.6.RELEASE is the default),
// two framework versions bound to them, and these dependencies:
//
//   - web: compatible with every platform version
//   - reactive: 2.1.0.RELEASE and later
//   - legacy: [1.5.0.RELEASE,2.0.0.RELEASE)
//   - cloud: versions mapped per platform range, imported through a bom
//     from a milestone repository
//   - fw-core: framework dependency
func Properties() *metadata.Properties {
	return &metadata.Properties{
		Types: []metadata.Type{
			{ID: "maven-project", Name: "Maven Project", Default: true, Action: "/starter.zip", Tags: map[string]string{metadata.BuildTag: "maven", "format": "project"}},
			{ID: "gradle-project", Name: "Gradle Project", Action: "/starter.zip", Tags: map[string]string{metadata.BuildTag: "gradle", "format": "project"}},
			{ID: "raw", Name: "Raw archive", Action: "/starter.zip", Tags: map[string]string{"format": "project"}},
		},
		Packagings:   []metadata.Element{{ID: "jar", Name: "Jar", Default: true}, {ID: "war", Name: "War"}},
		JavaVersions: []metadata.Element{{ID: "17", Name: "17", Default: true}, {ID: "11", Name: "11"}, {ID: "1.8", Name: "8"}},
		Languages: []metadata.Element{
			{ID: "java", Name: "Java", Default: true},
			{ID: "kotlin", Name: "Kotlin"},
			{ID: "groovy", Name: "Groovy"},
		},
		PlatformVersions: []metadata.Element{
			{ID: "2.2.0.M3", Name: "2.2.0 (M3)"},
			{ID: "2.1.6.RELEASE", Name: "2.1.6", Default: true},
			{ID: "1.5.22.RELEASE", Name: "1.5.22"},
		},
		FrameworkVersions: []metadata.Element{
			{ID: "3.1.0", Name: "3.1.0", Bound: "2.1.6.RELEASE", Default: true},
			{ID: "3.0.0", Name: "3.0.0", Bound: "1.5.22.RELEASE"},
		},
		Dependencies: []*metadata.DependencyGroup{
			{
				Name: "Web",
				Content: []*metadata.Dependency{
					{ID: "web", Name: "Web", Description: "Servlet web applications", GroupID: "org.acme.boot", ArtifactID: "starter-web"},
					{ID: "reactive", Name: "Reactive Web", GroupID: "org.acme.boot", ArtifactID: "starter-reactive", CompatibilityRange: "2.1.0.RELEASE"},
				},
			},
			{
				Name: "Ops",
				Content: []*metadata.Dependency{
					{ID: "legacy", Name: "Legacy Actuator", GroupID: "org.acme.boot", ArtifactID: "starter-legacy", CompatibilityRange: "[1.5.0.RELEASE,2.0.0.RELEASE)"},
				},
			},
			{
				Name:       "Cloud",
				BOM:        "cloud-bom",
				Repository: "milestones",
				Content: []*metadata.Dependency{{
					ID: "cloud", Name: "Cloud Config", GroupID: "org.acme.cloud", ArtifactID: "cloud-config",
					Mappings: []metadata.Mapping{
						{CompatibilityRange: "[1.5.0.RELEASE,2.0.0.RELEASE)", Version: "1.4.0"},
						{CompatibilityRange: "[2.0.0.RELEASE,2.2.0.M1)", Version: "2.1.0", ArtifactID: "cloud-config-client"},
					},
				}},
			},
		},
		FrameworkDependencies: []*metadata.DependencyGroup{{
			Name:    "Framework",
			Content: []*metadata.Dependency{{ID: "fw-core", Name: "Framework Core", GroupID: "io.framework", ArtifactID: "core"}},
		}},
		Env: metadata.Env{
			FrameworkAxis: true,
			Boms: map[string]metadata.BOM{
				"cloud-bom": {GroupID: "org.acme.cloud", ArtifactID: "cloud-dependencies", Version: "2019.0.0"},
			},
			Repositories: map[string]metadata.Repository{
				"milestones": {Name: "Milestones", URL: "https://repo.example.com/milestone"},
			},
		},
	}
}

// Catalog builds the test catalog, failing t on error.
func Catalog(t testing.TB) *metadata.Catalog {
	t.Helper()
	c, err := metadata.FromProperties(Properties()).Build()
	if err != nil {
		t.Fatalf("build test catalog: %v", err)
	}
	return c
}

package project

import (
	"strings"

	"github.com/matzehuels/initializr/pkg/metadata"
)

// Descriptor is a fully resolved project, ready for generation.
type Descriptor struct {
	RequestID        string                         `json:"requestId,omitempty"`
	ApplicationName  string                         `json:"applicationName"`
	GroupID          string                         `json:"groupId"`
	ArtifactID       string                         `json:"artifactId"`
	Version          string                         `json:"version"`
	Name             string                         `json:"name"`
	Description      string                         `json:"description"`
	PackageName      string                         `json:"packageName"`
	BaseDirectory    string                         `json:"baseDirectory,omitempty"`
	BuildSystem      string                         `json:"buildSystem,omitempty"`
	Language         string                         `json:"language"`
	JavaVersion      string                         `json:"javaVersion,omitempty"`
	Packaging        string                         `json:"packaging"`
	PlatformVersion  string                         `json:"platformVersion"`
	FrameworkVersion string                         `json:"frameworkVersion,omitempty"`
	Dependencies     []metadata.Resolved            `json:"dependencies"`
	Boms             map[string]metadata.BOM        `json:"boms,omitempty"`
	Repositories     map[string]metadata.Repository `json:"repositories,omitempty"`
}

// BuildDescriptor derives a descriptor from a validated request. Blank
// request fields take the catalog defaults. The boms and repositories
// referenced by deps are copied from the catalog environment.
func BuildDescriptor(req *Request, c *metadata.Catalog, deps []metadata.Resolved, platform, framework string) *Descriptor {
	d := &Descriptor{
		ApplicationName:  applicationName(req, c),
		GroupID:          groupID(req, c),
		ArtifactID:       artifactID(req, c),
		Version:          valueOr(req.Version, c.Version.Value()),
		Name:             name(req, c),
		Description:      valueOr(req.Description, c.Description.Value()),
		PackageName:      c.Config.CleanPackageName(req.PackageName, c.PackageName.Value()),
		BaseDirectory:    baseDirectory(req),
		BuildSystem:      buildSystem(req, c),
		Language:         valueOr(req.Language, c.Languages.DefaultID()),
		JavaVersion:      valueOr(req.JavaVersion, c.JavaVersions.DefaultID()),
		Packaging:        valueOr(req.Packaging, c.Packagings.DefaultID()),
		PlatformVersion:  platform,
		FrameworkVersion: framework,
		Dependencies:     deps,
	}

	for _, r := range deps {
		if r.BOM != "" {
			if bom, ok := c.Config.Env.Boms[r.BOM]; ok {
				if d.Boms == nil {
					d.Boms = make(map[string]metadata.BOM)
				}
				d.Boms[r.BOM] = bom
			}
		}
		if r.Repository != "" {
			if repo, ok := c.Config.Env.Repositories[r.Repository]; ok {
				if d.Repositories == nil {
					d.Repositories = make(map[string]metadata.Repository)
				}
				d.Repositories[r.Repository] = repo
			}
		}
	}
	return d
}

func valueOr(candidate, fallback string) string {
	if strings.TrimSpace(candidate) != "" {
		return candidate
	}
	return fallback
}

func groupID(req *Request, c *metadata.Catalog) string {
	if strings.TrimSpace(req.GroupID) == "" {
		return c.GroupID.Value()
	}
	return CleanMavenCoordinate(req.GroupID, ".")
}

func artifactID(req *Request, c *metadata.Catalog) string {
	if strings.TrimSpace(req.ArtifactID) == "" {
		return c.ArtifactID.Value()
	}
	return CleanMavenCoordinate(req.ArtifactID, "-")
}

func name(req *Request, c *metadata.Catalog) string {
	if strings.TrimSpace(req.Name) == "" {
		return c.Name.Value()
	}
	if req.Name == req.ArtifactID {
		return CleanMavenCoordinate(req.Name, "-")
	}
	return req.Name
}

func baseDirectory(req *Request) string {
	if req.BaseDir != "" && req.BaseDir == req.ArtifactID {
		return CleanMavenCoordinate(req.BaseDir, "-")
	}
	return req.BaseDir
}

// applicationName is generated from the resolved project name when the
// request does not set one.
func applicationName(req *Request, c *metadata.Catalog) string {
	if strings.TrimSpace(req.ApplicationName) != "" {
		return req.ApplicationName
	}
	return c.Config.GenerateApplicationName(name(req, c))
}

func buildSystem(req *Request, c *metadata.Catalog) string {
	t, ok := c.Types.Get(req.Type)
	if !ok {
		t, ok = c.Types.Default()
	}
	if !ok {
		return ""
	}
	build, _ := t.Build()
	return build
}

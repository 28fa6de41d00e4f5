package metadata

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/initializr/pkg/errors"
)

// Properties is the declarative shape of a catalog, as written in the
// service configuration or in an override document.
type Properties struct {
	GroupID     string `json:"groupId,omitempty" toml:"groupId" yaml:"groupId,omitempty"`
	ArtifactID  string `json:"artifactId,omitempty" toml:"artifactId" yaml:"artifactId,omitempty"`
	Version     string `json:"version,omitempty" toml:"version" yaml:"version,omitempty"`
	Name        string `json:"name,omitempty" toml:"name" yaml:"name,omitempty"`
	Description string `json:"description,omitempty" toml:"description" yaml:"description,omitempty"`
	PackageName string `json:"packageName,omitempty" toml:"packageName" yaml:"packageName,omitempty"`

	Types             []Type    `json:"types,omitempty" toml:"types" yaml:"types,omitempty"`
	Packagings        []Element `json:"packagings,omitempty" toml:"packagings" yaml:"packagings,omitempty"`
	JavaVersions      []Element `json:"javaVersions,omitempty" toml:"javaVersions" yaml:"javaVersions,omitempty"`
	Languages         []Element `json:"languages,omitempty" toml:"languages" yaml:"languages,omitempty"`
	PlatformVersions  []Element `json:"bootVersions,omitempty" toml:"bootVersions" yaml:"bootVersions,omitempty"`
	FrameworkVersions []Element `json:"frameworkVersions,omitempty" toml:"frameworkVersions" yaml:"frameworkVersions,omitempty"`

	Dependencies          []*DependencyGroup `json:"dependencies,omitempty" toml:"dependencies" yaml:"dependencies,omitempty"`
	FrameworkDependencies []*DependencyGroup `json:"frameworkDependencies,omitempty" toml:"frameworkDependencies" yaml:"frameworkDependencies,omitempty"`

	Env Env `json:"env,omitempty" toml:"env" yaml:"env,omitempty"`
}

// Customize merges the properties into c. It implements Customizer.
func (p *Properties) Customize(c *Catalog) error {
	text := func(value string, target *TextCapability) {
		(&TextCapability{Content: value}).Apply(target)
	}
	text(p.GroupID, c.GroupID)
	text(p.ArtifactID, c.ArtifactID)
	text(p.Version, c.Version)
	text(p.Name, c.Name)
	text(p.Description, c.Description)
	text(p.PackageName, c.PackageName)

	c.Types.Merge(p.Types...)
	c.Packagings.Merge(p.Packagings...)
	c.JavaVersions.Merge(p.JavaVersions...)
	c.Languages.Merge(p.Languages...)
	c.PlatformVersions.Merge(p.PlatformVersions...)
	c.FrameworkVersions.Merge(p.FrameworkVersions...)
	c.Dependencies.Merge(p.Dependencies)
	c.FrameworkDependencies.Merge(p.FrameworkDependencies)
	return nil
}

// LoadProperties reads properties from a TOML, YAML or JSON file, chosen by
// extension.
func LoadProperties(path string) (*Properties, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfigParse, err, "cannot open %s", path)
	}
	defer f.Close()
	return DecodeProperties(f, formatOf(path), path)
}

// DecodeProperties reads properties in the given format ("toml", "yaml" or
// "json"). Name identifies the source in errors.
func DecodeProperties(r io.Reader, format, name string) (*Properties, error) {
	var p Properties
	var err error
	switch format {
	case "toml":
		_, err = toml.NewDecoder(r).Decode(&p)
	case "yaml":
		err = yaml.NewDecoder(r).Decode(&p)
		if err == io.EOF {
			err = nil
		}
	case "json":
		err = json.NewDecoder(r).Decode(&p)
	default:
		return nil, errors.New(errors.ErrCodeConfigParse, "unsupported format %q for %s", format, name)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfigParse, err, "cannot parse %s", name)
	}
	return &p, nil
}

func formatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return "toml"
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "json"
	}
}

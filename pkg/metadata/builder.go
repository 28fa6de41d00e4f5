package metadata

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/initializr/pkg/errors"
)

// Defaults applied to text capabilities left empty after customization.
const (
	DefaultName        = "demo"
	DefaultDescription = "Demo project"
	DefaultGroupID     = "com.example"
	DefaultVersion     = "0.0.1-SNAPSHOT"
)

// Customizer contributes to a catalog under construction.
type Customizer interface {
	Customize(c *Catalog) error
}

// CustomizerFunc adapts a function to the Customizer interface.
type CustomizerFunc func(c *Catalog) error

// Customize calls f(c).
func (f CustomizerFunc) Customize(c *Catalog) error { return f(c) }

// Builder assembles a Catalog from a base configuration and an ordered list
// of customizers.
//
//	catalog, err := metadata.FromProperties(props).
//	    WithDocument("overrides.json", f).
//	    Build()
type Builder struct {
	config      *Configuration
	customizers []Customizer
	logger      *log.Logger
}

// NewBuilder creates a builder. A nil cfg uses DefaultConfiguration.
func NewBuilder(cfg *Configuration) *Builder {
	if cfg == nil {
		cfg = DefaultConfiguration()
	}
	return &Builder{config: cfg, logger: log.Default()}
}

// FromProperties creates a builder whose configuration and content come
// from p.
func FromProperties(p *Properties) *Builder {
	cfg := DefaultConfiguration()
	cfg.Merge(p.Env)
	return NewBuilder(cfg).WithProperties(p)
}

// WithLogger sets the logger used while building. Nil keeps the default.
func (b *Builder) WithLogger(logger *log.Logger) *Builder {
	if logger != nil {
		b.logger = logger
	}
	return b
}

// WithProperties merges the content of p. Its env is not merged.
func (b *Builder) WithProperties(p *Properties) *Builder {
	return b.WithCustomizer(p)
}

// WithDocument merges a whole catalog document in JSON form. The document is
// read immediately and parsed on every Build.
func (b *Builder) WithDocument(name string, r io.Reader) *Builder {
	data, readErr := io.ReadAll(r)
	return b.WithCustomizer(CustomizerFunc(func(c *Catalog) error {
		if readErr != nil {
			return errors.Wrap(errors.ErrCodeConfigParse, readErr, "cannot read catalog document %s", name)
		}
		b.logger.Debug("merging catalog document", "source", name, "bytes", len(data))
		var p Properties
		if err := json.Unmarshal(data, &p); err != nil {
			return errors.Wrap(errors.ErrCodeConfigParse, err, "cannot merge catalog document %s", name)
		}
		other := New(&Configuration{Env: p.Env})
		if err := p.Customize(other); err != nil {
			return err
		}
		*c = *c.Merge(other)
		return nil
	}))
}

// WithCustomizer adds a customizer. Customizers run in insertion order.
func (b *Builder) WithCustomizer(customizer Customizer) *Builder {
	b.customizers = append(b.customizers, customizer)
	return b
}

// Build creates the catalog, runs every customizer, applies the defaults and
// validates the result. It never returns a partially built catalog.
func (b *Builder) Build() (*Catalog, error) {
	c := New(b.config.clone())
	for _, customizer := range b.customizers {
		if err := customizer.Customize(c); err != nil {
			if errors.IsConfiguration(err) {
				return nil, err
			}
			return nil, errors.Wrap(errors.ErrCodeConfigInvalid, err, "cannot customize catalog")
		}
	}
	applyDefaults(c)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := c.UpdateCompatibility(); err != nil {
		return nil, err
	}
	return c, nil
}

func applyDefaults(c *Catalog) {
	setIfBlank(c.Name, DefaultName)
	setIfBlank(c.Description, DefaultDescription)
	setIfBlank(c.GroupID, DefaultGroupID)
	setIfBlank(c.Version, DefaultVersion)
	setIfBlank(c.ArtifactID, c.Name.Value())
	setIfBlank(c.PackageName, c.GroupID.Value()+"."+c.ArtifactID.Value())
}

func setIfBlank(t *TextCapability, value string) {
	if strings.TrimSpace(t.Value()) == "" {
		t.Content = value
	}
}

package metadata

import (
	"maps"
	"strings"
)

// BuildTag is the type tag naming the build system of a project type.
const BuildTag = "build"

// TextCapability is a free-form scalar such as the group id or the project
// name. Content is the configured value and DefaultValue the fallback used
// when Content is blank.
type TextCapability struct {
	ID           string
	Title        string
	Description  string
	Content      string
	DefaultValue string
}

// NewTextCapability creates an empty text capability.
func NewTextCapability(id, title, description string) *TextCapability {
	return &TextCapability{ID: id, Title: title, Description: description}
}

// Value returns the content, or the default value when the content is blank.
func (t *TextCapability) Value() string {
	if strings.TrimSpace(t.Content) != "" {
		return t.Content
	}
	return t.DefaultValue
}

// Apply copies the content of t onto target. A blank content never
// overrides an existing value.
func (t *TextCapability) Apply(target *TextCapability) {
	if strings.TrimSpace(t.Content) != "" {
		target.Content = t.Content
	}
}

func (t *TextCapability) clone() *TextCapability {
	c := *t
	return &c
}

// Type is a project archetype. Its build tag names the build system used
// to generate it.
type Type struct {
	ID          string            `json:"id" toml:"id" yaml:"id"`
	Name        string            `json:"name,omitempty" toml:"name" yaml:"name,omitempty"`
	Description string            `json:"description,omitempty" toml:"description" yaml:"description,omitempty"`
	Default     bool              `json:"default,omitempty" toml:"default" yaml:"default,omitempty"`
	Action      string            `json:"action,omitempty" toml:"action" yaml:"action,omitempty"`
	Tags        map[string]string `json:"tags,omitempty" toml:"tags" yaml:"tags,omitempty"`
}

// Build returns the build system tag, if any.
func (t Type) Build() (string, bool) {
	b, ok := t.Tags[BuildTag]
	return b, ok && b != ""
}

// TypeCapability lists the project types.
type TypeCapability struct {
	ID    string
	Title string

	content []Type
	index   map[string]int
}

// NewTypeCapability creates an empty type capability.
func NewTypeCapability() *TypeCapability {
	return &TypeCapability{ID: "type", Title: "Type", index: make(map[string]int)}
}

// Content returns a copy of the types in declaration order.
func (c *TypeCapability) Content() []Type {
	return append([]Type(nil), c.content...)
}

// Get looks up a type by id.
func (c *TypeCapability) Get(id string) (Type, bool) {
	i, ok := c.index[id]
	if !ok {
		return Type{}, false
	}
	return c.content[i], true
}

// Default returns the flagged default type, or the first one.
func (c *TypeCapability) Default() (Type, bool) {
	for _, t := range c.content {
		if t.Default {
			return t, true
		}
	}
	if len(c.content) == 0 {
		return Type{}, false
	}
	return c.content[0], true
}

// Merge adds types, replacing those whose id is already known.
func (c *TypeCapability) Merge(types ...Type) {
	incomingDefault := false
	for _, t := range types {
		incomingDefault = incomingDefault || t.Default
	}
	if incomingDefault {
		for i := range c.content {
			c.content[i].Default = false
		}
	}
	for _, t := range types {
		t.Tags = maps.Clone(t.Tags)
		if i, ok := c.index[t.ID]; ok {
			c.content[i] = t
			continue
		}
		c.index[t.ID] = len(c.content)
		c.content = append(c.content, t)
	}
	seen := false
	for i := range c.content {
		if c.content[i].Default {
			c.content[i].Default = !seen
			seen = true
		}
	}
}

func (c *TypeCapability) clone() *TypeCapability {
	out := NewTypeCapability()
	out.Merge(c.content...)
	return out
}

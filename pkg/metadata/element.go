package metadata

import (
	"fmt"

	"github.com/matzehuels/initializr/pkg/errors"
)

// Element is one selectable option of a capability: a language, a
// packaging, a platform version or a framework version.
//
// Bound is the id of the platform version a framework version is bound to.
// It is only set on the framework axis and is a weak reference: the
// platform list may be replaced without touching it.
type Element struct {
	ID          string `json:"id" toml:"id" yaml:"id"`
	Name        string `json:"name,omitempty" toml:"name" yaml:"name,omitempty"`
	Description string `json:"description,omitempty" toml:"description" yaml:"description,omitempty"`
	Default     bool   `json:"default,omitempty" toml:"default" yaml:"default,omitempty"`
	Bound       string `json:"bind,omitempty" toml:"bind" yaml:"bind,omitempty"`
}

// DisplayName returns the name of the element, or its id when unnamed.
func (e Element) DisplayName() string {
	if e.Name != "" {
		return e.Name
	}
	return e.ID
}

// IsBound reports whether the element references an element of another axis.
func (e Element) IsBound() bool {
	return e.Bound != ""
}

// SingleSelect is a capability from which a request picks exactly one
// element. At most one element is flagged default; when none is, the first
// element acts as the default.
type SingleSelect struct {
	ID          string
	Title       string
	Description string

	content []Element
	index   map[string]int
}

// NewSingleSelect creates an empty capability.
func NewSingleSelect(id, title, description string) *SingleSelect {
	return &SingleSelect{
		ID:          id,
		Title:       title,
		Description: description,
		index:       make(map[string]int),
	}
}

// Content returns a copy of the elements in declaration order.
func (s *SingleSelect) Content() []Element {
	return append([]Element(nil), s.content...)
}

// Len returns the number of elements.
func (s *SingleSelect) Len() int {
	return len(s.content)
}

// Get looks up an element by id.
func (s *SingleSelect) Get(id string) (Element, bool) {
	i, ok := s.index[id]
	if !ok {
		return Element{}, false
	}
	return s.content[i], true
}

// Default returns the flagged default element, or the first element when
// none is flagged. It reports false when the capability is empty.
func (s *SingleSelect) Default() (Element, bool) {
	for _, e := range s.content {
		if e.Default {
			return e, true
		}
	}
	if len(s.content) == 0 {
		return Element{}, false
	}
	return s.content[0], true
}

// DefaultID returns the id of the default element, or "" when empty.
func (s *SingleSelect) DefaultID() string {
	e, _ := s.Default()
	return e.ID
}

// Merge adds elements to the capability. An element whose id is already
// known replaces the existing one in place; unknown ids are appended. When
// an incoming element is flagged default it takes over the default flag.
func (s *SingleSelect) Merge(elements ...Element) {
	if hasDefault(elements) {
		for i := range s.content {
			s.content[i].Default = false
		}
	}
	for _, e := range elements {
		if i, ok := s.index[e.ID]; ok {
			s.content[i] = e
			continue
		}
		s.index[e.ID] = len(s.content)
		s.content = append(s.content, e)
	}
	s.normalizeDefault(false)
}

// Replace swaps the whole content for elements. The first flagged element
// stays default; when none is flagged, the first element is flagged.
func (s *SingleSelect) Replace(elements []Element) {
	s.content = make([]Element, 0, len(elements))
	s.index = make(map[string]int, len(elements))
	for _, e := range elements {
		if _, dup := s.index[e.ID]; dup {
			continue
		}
		s.index[e.ID] = len(s.content)
		s.content = append(s.content, e)
	}
	s.normalizeDefault(true)
}

// SetDefault flags the element with the given id as default.
func (s *SingleSelect) SetDefault(id string) error {
	i, ok := s.index[id]
	if !ok {
		return errors.New(errors.ErrCodeConfigInvalid, "%s has no element '%s'", s.ID, id)
	}
	for j := range s.content {
		s.content[j].Default = j == i
	}
	return nil
}

// normalizeDefault clears every default flag after the first. With force,
// the first element is flagged when no element is.
func (s *SingleSelect) normalizeDefault(force bool) {
	seen := false
	for i := range s.content {
		if s.content[i].Default {
			if seen {
				s.content[i].Default = false
			}
			seen = true
		}
	}
	if force && !seen && len(s.content) > 0 {
		s.content[0].Default = true
	}
}

func (s *SingleSelect) clone() *SingleSelect {
	c := NewSingleSelect(s.ID, s.Title, s.Description)
	c.content = s.Content()
	for id, i := range s.index {
		c.index[id] = i
	}
	return c
}

func (s *SingleSelect) String() string {
	return fmt.Sprintf("%s(%d)", s.ID, len(s.content))
}

func hasDefault(elements []Element) bool {
	for _, e := range elements {
		if e.Default {
			return true
		}
	}
	return false
}

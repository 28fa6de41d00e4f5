package metadata

import (
	"encoding/json"
	"io"
	"maps"
)

// Capability types of the metadata document.
const (
	TypeSingleSelect = "single-select"
	TypeHierarchical = "hierarchical-multi-select"
	TypeAction       = "action"
	TypeText         = "text"
)

// Document renders the catalog as the metadata document consumed by
// clients, keyed by capability id. Framework entries are only present when
// the catalog has the framework axis.
func Document(c *Catalog) map[string]any {
	doc := map[string]any{
		IDDependencies:    dependenciesDocument(c.Dependencies),
		IDType:            typesDocument(c.Types),
		IDPackaging:       selectDocument(c.Packagings),
		IDJavaVersion:     selectDocument(c.JavaVersions),
		IDLanguage:        selectDocument(c.Languages),
		IDPlatformVersion: selectDocument(c.PlatformVersions),
		IDGroupID:         textDocument(c.GroupID),
		IDArtifactID:      textDocument(c.ArtifactID),
		IDVersion:         textDocument(c.Version),
		IDName:            textDocument(c.Name),
		IDDescription:     textDocument(c.Description),
		IDPackageName:     textDocument(c.PackageName),
	}
	if c.HasFrameworkAxis() {
		doc[IDFrameworkVersion] = selectDocument(c.FrameworkVersions)
		doc[IDFrameworkDependencies] = dependenciesDocument(c.FrameworkDependencies)
	}
	return doc
}

// WriteDocument writes the metadata document of c as indented JSON.
func WriteDocument(w io.Writer, c *Catalog) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Document(c))
}

func selectDocument(s *SingleSelect) map[string]any {
	values := make([]map[string]any, 0, s.Len())
	for _, e := range s.content {
		v := map[string]any{"id": e.ID, "name": e.DisplayName()}
		if e.Description != "" {
			v["description"] = e.Description
		}
		if e.IsBound() {
			v["boundVersionId"] = e.Bound
		}
		values = append(values, v)
	}
	doc := map[string]any{"type": TypeSingleSelect, "values": values}
	if id := s.DefaultID(); id != "" {
		doc["default"] = id
	}
	return doc
}

func typesDocument(c *TypeCapability) map[string]any {
	values := make([]map[string]any, 0, len(c.content))
	for _, t := range c.content {
		name := t.Name
		if name == "" {
			name = t.ID
		}
		v := map[string]any{"id": t.ID, "name": name, "action": t.Action, "tags": maps.Clone(t.Tags)}
		if t.Description != "" {
			v["description"] = t.Description
		}
		values = append(values, v)
	}
	doc := map[string]any{"type": TypeAction, "values": values}
	if t, ok := c.Default(); ok {
		doc["default"] = t.ID
	}
	return doc
}

func textDocument(t *TextCapability) map[string]any {
	return map[string]any{"type": TypeText, "default": t.Value()}
}

func dependenciesDocument(c *DependenciesCapability) map[string]any {
	values := make([]map[string]any, 0, c.Len())
	for _, d := range c.All() {
		name := d.Name
		if name == "" {
			name = d.ID
		}
		v := map[string]any{"id": d.ID, "name": name}
		if d.GroupID != "" {
			v["groupId"] = d.GroupID
		}
		if d.Description != "" {
			v["description"] = d.Description
		}
		values = append(values, v)
	}
	return map[string]any{"type": TypeHierarchical, "values": values}
}

package feed

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/matzehuels/initializr/pkg/errors"
	"github.com/matzehuels/initializr/pkg/metadata"
)

const snapshotSuffix = " (SNAPSHOT)"

// Info describes one version in the feed.
type Info struct {
	Version            string `json:"version"`
	VersionDisplayName string `json:"versionDisplayName,omitempty"`
	Snapshot           bool   `json:"snapshot"`
	Current            bool   `json:"current"`
}

// Release is a framework release together with the platform version it
// is built on.
type Release struct {
	Info
	BootInfo Info `json:"bootInfo"`
}

// Document is the version feed.
type Document struct {
	ProjectReleases []Release `json:"projectReleases"`
}

// Decode reads a feed document from r.
func Decode(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFeed, err, "cannot decode version feed")
	}
	return &doc, nil
}

// Read converts the releases of doc into platform and framework elements,
// both in feed order. Every framework element is bound to the id of its
// platform version. Platform versions shared by several releases appear
// once, at their first position.
//
// Releases without a version are rejected with INVALID_FEED.
func Read(doc *Document) (platforms, frameworks []metadata.Element, err error) {
	if doc == nil {
		return nil, nil, nil
	}
	seen := make(map[string]int)
	for i, r := range doc.ProjectReleases {
		if strings.TrimSpace(r.Version) == "" {
			return nil, nil, errors.New(errors.ErrCodeInvalidFeed, "release #%d has no version", i+1)
		}
		if strings.TrimSpace(r.BootInfo.Version) == "" {
			return nil, nil, errors.New(errors.ErrCodeInvalidFeed, "release %s has no platform version", r.Version)
		}

		platform := element(r.BootInfo)
		framework := element(r.Info)
		framework.Bound = platform.ID
		frameworks = append(frameworks, framework)

		if i, ok := seen[platform.ID]; ok {
			platforms[i].Default = platforms[i].Default || platform.Default
			continue
		}
		seen[platform.ID] = len(platforms)
		platforms = append(platforms, platform)
	}
	return platforms, frameworks, nil
}

// EnsureDefault flags the first element as default when none is.
// The slice is modified in place and returned.
func EnsureDefault(elements []metadata.Element) []metadata.Element {
	for _, e := range elements {
		if e.Default {
			return elements
		}
	}
	if len(elements) > 0 {
		elements[0].Default = true
	}
	return elements
}

func element(info Info) metadata.Element {
	name := info.VersionDisplayName
	if name == "" {
		name = info.Version
	}
	if info.Snapshot {
		name += snapshotSuffix
	}
	return metadata.Element{
		ID:      info.Version,
		Name:    name,
		Default: info.Current,
	}
}

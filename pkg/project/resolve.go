package project

import (
	"github.com/matzehuels/initializr/pkg/errors"
	"github.com/matzehuels/initializr/pkg/metadata"
	"github.com/matzehuels/initializr/pkg/version"
)

// ResolveDependencies resolves ids against platform. The result keeps the
// order of ids, duplicates included.
func ResolveDependencies(ids []string, platform version.Version, c *metadata.Catalog) ([]metadata.Resolved, error) {
	resolved := make([]metadata.Resolved, 0, len(ids))
	for _, id := range ids {
		d, ok := c.Dependencies.Get(id)
		if !ok {
			return nil, errors.New(errors.ErrCodeUnknownDependency, "Unknown dependency '%s' check project metadata", id)
		}
		r, err := d.Resolve(platform)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, r)
	}
	if err := checkCompatible(resolved, platform); err != nil {
		return nil, err
	}
	return resolved, nil
}

// checkCompatible fails on the first dependency whose own range, inherited
// from its group when not declared, excludes platform.
func checkCompatible(resolved []metadata.Resolved, platform version.Version) error {
	for _, r := range resolved {
		if !r.Match(platform) {
			return errors.New(errors.ErrCodeIncompatibleDependency,
				"Dependency '%s' is not compatible with platform version %s", r.ID, platform)
		}
	}
	return nil
}

package project

import (
	"github.com/matzehuels/initializr/pkg/errors"
	"github.com/matzehuels/initializr/pkg/metadata"
	"github.com/matzehuels/initializr/pkg/version"
)

// Validate checks req against c. Checks run in order and the first failure
// is returned:
//
//  1. platform version: parses and is not below the catalog floor
//  2. type: exists and declares a build tag
//  3. language exists
//  4. packaging exists
//  5. every effective dependency is a well-formed id and exists
//  6. framework version exists, when the catalog has a framework axis
//
// Every error is an invalid request error naming the offending value.
func Validate(req *Request, c *metadata.Catalog) error {
	if err := validatePlatformVersion(req.PlatformVersion, c); err != nil {
		return err
	}
	if err := validateType(req.Type, c); err != nil {
		return err
	}
	if req.Language != "" {
		if _, ok := c.Languages.Get(req.Language); !ok {
			return errors.New(errors.ErrCodeUnknownLanguage, "Unknown language '%s' check project metadata", req.Language)
		}
	}
	if req.Packaging != "" {
		if _, ok := c.Packagings.Get(req.Packaging); !ok {
			return errors.New(errors.ErrCodeUnknownPackaging, "Unknown packaging '%s' check project metadata", req.Packaging)
		}
	}
	for _, id := range req.EffectiveDependencies() {
		if err := errors.ValidateIdentifier("dependency", id); err != nil {
			return err
		}
		if _, ok := c.Dependencies.Get(id); !ok {
			return errors.New(errors.ErrCodeUnknownDependency, "Unknown dependency '%s' check project metadata", id)
		}
	}
	if req.FrameworkVersion != "" && c.HasFrameworkAxis() {
		if _, ok := c.FrameworkVersions.Get(req.FrameworkVersion); !ok {
			return errors.New(errors.ErrCodeUnknownFrameworkVersion, "Unknown framework version '%s' check project metadata", req.FrameworkVersion)
		}
	}
	return nil
}

func validatePlatformVersion(requested string, c *metadata.Catalog) error {
	if requested == "" {
		return nil
	}
	v, err := version.Parse(requested)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidVersion, err, "Invalid platform version '%s'", requested)
	}
	floor := c.PlatformVersionFloor()
	if version.Compare(v, floor) < 0 {
		return errors.New(errors.ErrCodeUnsupportedVersion, "Invalid platform version %s, must be %d.%d.%d or higher",
			v, floor.Major, floor.Minor, floor.Patch)
	}
	return nil
}

func validateType(id string, c *metadata.Catalog) error {
	if id == "" {
		return nil
	}
	t, ok := c.Types.Get(id)
	if !ok {
		return errors.New(errors.ErrCodeUnknownType, "Unknown type '%s' check project metadata", id)
	}
	if _, ok := t.Build(); !ok {
		return errors.New(errors.ErrCodeInvalidType, "Invalid type '%s' (missing build tag) check project metadata", id)
	}
	return nil
}

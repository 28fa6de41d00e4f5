package project

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/initializr/pkg/errors"
	"github.com/matzehuels/initializr/pkg/metadata"
	"github.com/matzehuels/initializr/pkg/observability"
	"github.com/matzehuels/initializr/pkg/version"
)

// Converter validates requests and resolves them into descriptors.
// It holds no per-request state and is safe for concurrent use.
type Converter struct {
	logger *log.Logger
}

// NewConverter creates a converter. A nil logger uses the default logger.
func NewConverter(logger *log.Logger) *Converter {
	if logger == nil {
		logger = log.Default()
	}
	return &Converter{logger: logger}
}

// Convert resolves req against c.
//
// The platform version is the requested one, else the platform bound to
// the requested framework version, else the catalog default. The framework
// version is the requested one, else the catalog default.
func (cv *Converter) Convert(ctx context.Context, req *Request, c *metadata.Catalog) (*Descriptor, error) {
	start := time.Now()
	d, platform, err := cv.convert(req, c)

	code := ""
	if err != nil {
		code = string(errors.GetCode(err))
		if code == "" {
			code = string(errors.ErrCodeInternal)
		}
	}
	observability.Resolve().OnResolve(ctx, platform, len(req.EffectiveDependencies()), time.Since(start), code)

	if err != nil {
		cv.logger.Debug("rejected project request", "code", code, "error", err)
		return nil, err
	}
	cv.logger.Debug("resolved project request",
		"request", d.RequestID,
		"platform", d.PlatformVersion,
		"dependencies", len(d.Dependencies))
	return d, nil
}

func (cv *Converter) convert(req *Request, c *metadata.Catalog) (*Descriptor, string, error) {
	if err := Validate(req, c); err != nil {
		return nil, req.PlatformVersion, err
	}

	platformID := choosePlatform(req, c)
	if platformID == "" {
		return nil, "", errors.New(errors.ErrCodeInternal, "catalog has no platform version")
	}
	platform, err := version.Parse(platformID)
	if err != nil {
		return nil, platformID, errors.Wrap(errors.ErrCodeInvalidVersion, err, "Invalid platform version '%s'", platformID)
	}

	framework := ""
	if c.HasFrameworkAxis() {
		framework = valueOr(req.FrameworkVersion, c.FrameworkVersions.DefaultID())
	}

	deps, err := ResolveDependencies(req.EffectiveDependencies(), platform, c)
	if err != nil {
		return nil, platformID, err
	}

	d := BuildDescriptor(req, c, deps, platformID, framework)
	d.RequestID = uuid.NewString()
	return d, platformID, nil
}

func choosePlatform(req *Request, c *metadata.Catalog) string {
	if req.PlatformVersion != "" {
		return req.PlatformVersion
	}
	if req.FrameworkVersion != "" && c.HasFrameworkAxis() {
		if bound, ok := c.BoundPlatformVersion(req.FrameworkVersion); ok {
			return bound
		}
	}
	return c.PlatformVersions.DefaultID()
}

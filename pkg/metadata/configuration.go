package metadata

import (
	"regexp"
	"slices"
	"strings"
	"unicode"
)

// Default environment values.
const (
	DefaultFallbackApplicationName = "Application"
	DefaultPlatformVersionFloor    = "1.5.0.RELEASE"
)

// BOM is a bill of materials imported by the generated build.
type BOM struct {
	GroupID    string `json:"groupId" toml:"groupId" yaml:"groupId"`
	ArtifactID string `json:"artifactId" toml:"artifactId" yaml:"artifactId"`
	Version    string `json:"version,omitempty" toml:"version" yaml:"version,omitempty"`
}

// Repository is an artifact repository required by some dependencies.
type Repository struct {
	Name      string `json:"name" toml:"name" yaml:"name"`
	URL       string `json:"url" toml:"url" yaml:"url"`
	Snapshots bool   `json:"snapshotsEnabled,omitempty" toml:"snapshotsEnabled" yaml:"snapshotsEnabled,omitempty"`
}

// Env holds the service-wide settings of a catalog.
type Env struct {
	FallbackApplicationName string                `json:"fallbackApplicationName,omitempty" toml:"fallbackApplicationName" yaml:"fallbackApplicationName,omitempty"`
	InvalidApplicationNames []string              `json:"invalidApplicationNames,omitempty" toml:"invalidApplicationNames" yaml:"invalidApplicationNames,omitempty"`
	InvalidPackageNames     []string              `json:"invalidPackageNames,omitempty" toml:"invalidPackageNames" yaml:"invalidPackageNames,omitempty"`
	PlatformVersionFloor    string                `json:"platformVersionFloor,omitempty" toml:"platformVersionFloor" yaml:"platformVersionFloor,omitempty"`
	FrameworkAxis           bool                  `json:"frameworkAxis,omitempty" toml:"frameworkAxis" yaml:"frameworkAxis,omitempty"`
	Boms                    map[string]BOM        `json:"boms,omitempty" toml:"boms" yaml:"boms,omitempty"`
	Repositories            map[string]Repository `json:"repositories,omitempty" toml:"repositories" yaml:"repositories,omitempty"`
}

// Configuration carries the environment of a catalog along with the naming
// rules derived from it.
type Configuration struct {
	Env Env
}

// DefaultConfiguration returns a configuration with the stock environment.
func DefaultConfiguration() *Configuration {
	return &Configuration{Env: Env{
		FallbackApplicationName: DefaultFallbackApplicationName,
		InvalidApplicationNames: []string{"SpringApplication", "SpringBootApplication"},
		InvalidPackageNames:     []string{"org.springframework"},
		PlatformVersionFloor:    DefaultPlatformVersionFloor,
		Boms:                    map[string]BOM{},
		Repositories:            map[string]Repository{},
	}}
}

// Merge overlays the non-zero settings of env.
func (c *Configuration) Merge(env Env) {
	if env.FallbackApplicationName != "" {
		c.Env.FallbackApplicationName = env.FallbackApplicationName
	}
	if len(env.InvalidApplicationNames) > 0 {
		c.Env.InvalidApplicationNames = slices.Clone(env.InvalidApplicationNames)
	}
	if len(env.InvalidPackageNames) > 0 {
		c.Env.InvalidPackageNames = slices.Clone(env.InvalidPackageNames)
	}
	if env.PlatformVersionFloor != "" {
		c.Env.PlatformVersionFloor = env.PlatformVersionFloor
	}
	if env.FrameworkAxis {
		c.Env.FrameworkAxis = true
	}
	if c.Env.Boms == nil {
		c.Env.Boms = map[string]BOM{}
	}
	for id, b := range env.Boms {
		c.Env.Boms[id] = b
	}
	if c.Env.Repositories == nil {
		c.Env.Repositories = map[string]Repository{}
	}
	for id, r := range env.Repositories {
		c.Env.Repositories[id] = r
	}
}

func (c *Configuration) clone() *Configuration {
	out := &Configuration{Env: c.Env}
	out.Env.InvalidApplicationNames = slices.Clone(c.Env.InvalidApplicationNames)
	out.Env.InvalidPackageNames = slices.Clone(c.Env.InvalidPackageNames)
	out.Env.Boms = make(map[string]BOM, len(c.Env.Boms))
	for id, b := range c.Env.Boms {
		out.Env.Boms[id] = b
	}
	out.Env.Repositories = make(map[string]Repository, len(c.Env.Repositories))
	for id, r := range c.Env.Repositories {
		out.Env.Repositories[id] = r
	}
	return out
}

var (
	nonWordRun   = regexp.MustCompile(`\W+`)
	wordBoundary = regexp.MustCompile(`[_\- :]+`)
)

// CleanPackageName turns candidate into a valid package name, or returns
// fallback when that is not possible or the result is reserved.
//
// Dashes are dropped, any other non-word character separates segments, and
// leading digits are stripped from segments that are not purely numeric.
func (c *Configuration) CleanPackageName(candidate, fallback string) string {
	if strings.TrimSpace(candidate) == "" {
		return fallback
	}
	cleaned := cleanPackageName(candidate)
	if cleaned == "" || !isIdentifier(strings.ReplaceAll(cleaned, ".", "")) ||
		slices.Contains(c.Env.InvalidPackageNames, cleaned) {
		return fallback
	}
	return cleaned
}

func cleanPackageName(name string) string {
	name = strings.ReplaceAll(strings.TrimSpace(name), "-", "")
	var b strings.Builder
	for _, element := range nonWordRun.Split(name, -1) {
		if element == "" {
			continue
		}
		numeric := isDigits(element)
		if !numeric {
			element = strings.TrimLeftFunc(element, isASCIIDigit)
		}
		if !numeric && b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(element)
	}
	return b.String()
}

// GenerateApplicationName derives the main class name from a project name:
// "my-demo" becomes "MyDemoApplication". Blank, invalid or reserved names
// yield the fallback application name.
func (c *Configuration) GenerateApplicationName(name string) string {
	fallback := c.Env.FallbackApplicationName
	if fallback == "" {
		fallback = DefaultFallbackApplicationName
	}
	if strings.TrimSpace(name) == "" {
		return fallback
	}

	var b strings.Builder
	for _, word := range wordBoundary.Split(splitCamelCase(strings.TrimSpace(name)), -1) {
		b.WriteString(capitalize(word))
	}
	result := b.String()
	if !strings.HasSuffix(result, "Application") {
		result += "Application"
	}
	result = capitalize(result)

	if !isIdentifier(result) || slices.Contains(c.Env.InvalidApplicationNames, result) {
		return fallback
	}
	return result
}

// splitCamelCase lower-cases every camel-case word and capitalizes it, so
// "MYDemoApp" becomes "MyDemoApp".
func splitCamelCase(text string) string {
	runes := []rune(text)
	var b strings.Builder
	start := 0
	flush := func(end int) {
		if end > start {
			b.WriteString(capitalize(strings.ToLower(string(runes[start:end]))))
		}
		start = end
	}
	for i := 1; i < len(runes); i++ {
		if !isASCIIUpper(runes[i]) {
			continue
		}
		afterLower := !isASCIIUpper(runes[i-1])
		beforeLower := i+1 < len(runes) && isASCIILower(runes[i+1])
		if afterLower || beforeLower {
			flush(i)
		}
	}
	flush(len(runes))
	return b.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// isIdentifier reports whether s is a valid Java identifier.
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		start := unicode.IsLetter(r) || r == '_' || r == '$'
		if i == 0 && !start {
			return false
		}
		if !start && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func isDigits(s string) bool {
	for _, r := range s {
		if !isASCIIDigit(r) {
			return false
		}
	}
	return s != ""
}

func isASCIIDigit(r rune) bool { return r >= '0' && r <= '9' }
func isASCIIUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func isASCIILower(r rune) bool { return r >= 'a' && r <= 'z' }

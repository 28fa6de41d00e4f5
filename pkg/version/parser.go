package version

import (
	"fmt"
	"strconv"
	"strings"
)

// placeholder is the component used when an "x" cannot be resolved.
const placeholder = 999

// Parser parses versions and ranges, resolving "x" placeholders such as
// "2.1.x.RELEASE" against a list of known versions.
//
// A Parser is immutable after construction and safe for concurrent use.
type Parser struct {
	latest []Version
}

// NewParser creates a Parser that resolves placeholders against latest.
func NewParser(latest []Version) *Parser {
	return &Parser{latest: append([]Version(nil), latest...)}
}

// ParseVersion parses text into a Version.
//
// "2.1.x.RELEASE" resolves to the highest known 2.1 release; "2.x.x.RELEASE"
// to the highest known 2.y release. When no known version matches, the
// placeholder components become 999.
func (p *Parser) ParseVersion(text string) (Version, error) {
	m := versionRegex.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return Version{}, fmt.Errorf("%w: %q", ErrInvalidVersion, text)
	}

	major, _ := strconv.Atoi(m[1])
	var q *Qualifier
	if m[5] != "" {
		q = &Qualifier{ID: m[5], Separator: m[4]}
		if m[6] != "" {
			q.Number, _ = strconv.Atoi(m[6])
		}
	}

	if m[2] == "x" || m[3] == "x" {
		var minor *int
		if m[2] != "x" {
			n, _ := strconv.Atoi(m[2])
			minor = &n
		}
		if latest, ok := p.findLatest(major, minor, q); ok {
			return latest, nil
		}
		v := Version{Major: major, Minor: placeholder, Patch: placeholder, Qualifier: q}
		if minor != nil {
			v.Minor = *minor
		}
		if m[3] != "x" {
			v.Patch, _ = strconv.Atoi(m[3])
		}
		return v, nil
	}

	minor, _ := strconv.Atoi(m[2])
	patch, _ := strconv.Atoi(m[3])
	return Version{Major: major, Minor: minor, Patch: patch, Qualifier: q}, nil
}

func (p *Parser) findLatest(major int, minor *int, q *Qualifier) (Version, bool) {
	var candidates []Version
	for _, v := range p.latest {
		if v.Major != major || (minor != nil && v.Minor != *minor) {
			continue
		}
		if qualifierKey(v.Qualifier) != qualifierKey(q) {
			continue
		}
		candidates = append(candidates, v)
	}
	return Max(candidates)
}

func qualifierKey(q *Qualifier) string {
	if q == nil {
		return ""
	}
	return q.ID
}

// ParseRange parses a range in Maven notation: "[1.5.0.RELEASE,2.0.0.M1)",
// "(1.0.0,2.0.0]" or a bare version "1.5.0.RELEASE" meaning "at least".
func (p *Parser) ParseRange(text string) (*Range, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return nil, fmt.Errorf("%w: empty range", ErrInvalidVersion)
	}

	first, last := s[0], s[len(s)-1]
	if first != '[' && first != '(' {
		v, err := p.ParseVersion(s)
		if err != nil {
			return nil, err
		}
		return &Range{Lower: v, LowerInclusive: true}, nil
	}
	if last != ']' && last != ')' {
		return nil, fmt.Errorf("%w: unterminated range %q", ErrInvalidVersion, text)
	}

	bounds := strings.Split(s[1:len(s)-1], ",")
	if len(bounds) != 2 {
		return nil, fmt.Errorf("%w: range %q must have two bounds", ErrInvalidVersion, text)
	}
	lower, err := p.ParseVersion(bounds[0])
	if err != nil {
		return nil, err
	}
	upper, err := p.ParseVersion(bounds[1])
	if err != nil {
		return nil, err
	}
	if Compare(lower, upper) > 0 {
		return nil, fmt.Errorf("%w: range %q has lower bound above upper bound", ErrInvalidVersion, text)
	}
	return &Range{
		Lower:          lower,
		LowerInclusive: first == '[',
		Upper:          &upper,
		UpperInclusive: last == ']',
	}, nil
}

// ParseRange parses text without placeholder resolution.
func ParseRange(text string) (*Range, error) {
	return NewParser(nil).ParseRange(text)
}

// Range is an interval of versions. A nil *Range matches every version.
type Range struct {
	Lower          Version
	LowerInclusive bool
	Upper          *Version
	UpperInclusive bool
}

// Match reports whether v lies within r.
func (r *Range) Match(v Version) bool {
	if r == nil {
		return true
	}
	c := Compare(v, r.Lower)
	if c < 0 || (c == 0 && !r.LowerInclusive) {
		return false
	}
	if r.Upper == nil {
		return true
	}
	c = Compare(v, *r.Upper)
	return c < 0 || (c == 0 && r.UpperInclusive)
}

// String returns the range in the notation accepted by ParseRange.
func (r *Range) String() string {
	if r == nil {
		return ""
	}
	if r.Upper == nil && r.LowerInclusive {
		return r.Lower.String()
	}
	var b strings.Builder
	if r.LowerInclusive {
		b.WriteByte('[')
	} else {
		b.WriteByte('(')
	}
	b.WriteString(r.Lower.String())
	b.WriteByte(',')
	if r.Upper != nil {
		b.WriteString(r.Upper.String())
	}
	if r.UpperInclusive {
		b.WriteByte(']')
	} else {
		b.WriteByte(')')
	}
	return b.String()
}

// Package version models platform and framework versions as they appear in
// the catalog and in the version feed: "2.1.6.RELEASE", "2.2.0.M3",
// "2.2.0.RC1", "2.2.0.BUILD-SNAPSHOT" or plain "2.1.6".
//
// Ordering follows the release train convention: the numeric triple first,
// then the qualifier with M < RC < BUILD-SNAPSHOT < RELEASE. A version
// without a qualifier is a release.
//
// Comparison is delegated to github.com/Masterminds/semver/v3: each version
// is mapped to a semantic version whose pre-release part encodes the
// qualifier rank, so the library's numeric pre-release ordering yields the
// release train ordering.
package version

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	mm "github.com/Masterminds/semver/v3"
)

// ErrInvalidVersion is returned when a version or range cannot be parsed.
var ErrInvalidVersion = errors.New("invalid version")

// Well-known qualifiers.
const (
	Release   = "RELEASE"
	Snapshot  = "BUILD-SNAPSHOT"
	Milestone = "M"
	RC        = "RC"
)

// qualifierRank orders known qualifiers; unknown qualifiers rank lowest.
var qualifierRank = map[string]int{
	Milestone:  1,
	RC:         2,
	"SNAPSHOT": 3,
	Snapshot:   3,
}

var versionRegex = regexp.MustCompile(`^(\d+)\.(\d+|x)\.(\d+|x)(?:([.\-])([^0-9]+)(\d+)?)?$`)

// Qualifier is the optional suffix of a version ("RELEASE", "M3", ...).
type Qualifier struct {
	ID        string // Qualifier name without number (e.g. "M", "RC", "RELEASE")
	Number    int    // Qualifier number (e.g. 3 for "M3"), 0 when absent
	Separator string // "." or "-"
}

// Version is a parsed platform or framework version.
//
// The zero value is "0.0.0". Versions are immutable values and safe to share.
type Version struct {
	Major     int
	Minor     int
	Patch     int
	Qualifier *Qualifier
}

// Parse parses text without resolving "x" placeholders against known
// versions; a placeholder resolves to 999.
func Parse(text string) (Version, error) {
	return NewParser(nil).ParseVersion(text)
}

// MustParse is like Parse but panics on error.
func MustParse(text string) Version {
	v, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return v
}

// SafeParse returns nil when text is not a valid version.
func SafeParse(text string) *Version {
	v, err := Parse(text)
	if err != nil {
		return nil
	}
	return &v
}

// IsRelease reports whether v has no qualifier or the RELEASE qualifier.
func (v Version) IsRelease() bool {
	return v.Qualifier == nil || v.Qualifier.ID == Release
}

// IsSnapshot reports whether v carries a snapshot qualifier.
func (v Version) IsSnapshot() bool {
	return v.Qualifier != nil && strings.HasSuffix(v.Qualifier.ID, "SNAPSHOT")
}

// String returns the canonical text form of v.
func (v Version) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if q := v.Qualifier; q != nil {
		sep := q.Separator
		if sep == "" {
			sep = "."
		}
		s += sep + q.ID
		if q.Number > 0 {
			s += strconv.Itoa(q.Number)
		}
	}
	return s
}

// Compare returns -1, 0 or 1 when a is lower than, equal to or higher than b.
func Compare(a, b Version) int {
	if c := a.semver().Compare(b.semver()); c != 0 {
		return c
	}
	// Same rank: unknown qualifiers fall back to lexical order.
	qa, qb := a.qualifierID(), b.qualifierID()
	return strings.Compare(qa, qb)
}

// Equal reports whether a and b denote the same version.
func Equal(a, b Version) bool { return Compare(a, b) == 0 }

func (v Version) qualifierID() string {
	if v.IsRelease() {
		return ""
	}
	return v.Qualifier.ID
}

// semver maps v to a semantic version. Releases carry no pre-release part;
// other qualifiers become "<rank>.<number>".
func (v Version) semver() *mm.Version {
	pre := ""
	if !v.IsRelease() {
		pre = fmt.Sprintf("%d.%d", qualifierRank[v.Qualifier.ID], v.Qualifier.Number)
	}
	return mm.New(uint64(v.Major), uint64(v.Minor), uint64(v.Patch), pre, "")
}

// Max returns the highest version in candidates, or false when empty.
func Max(candidates []Version) (Version, bool) {
	var best Version
	found := false
	for _, c := range candidates {
		if !found || Compare(c, best) > 0 {
			best = c
			found = true
		}
	}
	return best, found
}

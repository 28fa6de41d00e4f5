package project

import (
	"regexp"
	"strings"
)

var (
	invalidCoordinateRun = regexp.MustCompile(`[^A-Za-z0-9_.\-]+`)
	specialRun           = regexp.MustCompile(`[_.\-]{2,}`)
)

// CleanMavenCoordinate normalizes a group, artifact or directory name.
// Runs of characters that are not letters, digits or one of "_.-" are
// replaced by delimiter, unless the neighbour already is one of "_.-".
// Runs of "_.-" collapse to their first character:
//
//	CleanMavenCoordinate("My Project", "-") // "My-Project"
//	CleanMavenCoordinate("my--lib", "-")    // "my-lib"
//	CleanMavenCoordinate("com acme", ".")   // "com.acme"
//
// Cleaning a clean coordinate returns it unchanged.
func CleanMavenCoordinate(coordinate, delimiter string) string {
	parts := invalidCoordinateRun.Split(coordinate, -1)
	var b strings.Builder
	for _, part := range parts {
		if part == "" {
			continue
		}
		if b.Len() > 0 && !isSpecial(lastByte(b.String())) && !isSpecial(part[0]) {
			b.WriteString(delimiter)
		}
		b.WriteString(part)
	}
	return specialRun.ReplaceAllStringFunc(b.String(), func(run string) string {
		return run[:1]
	})
}

func isSpecial(c byte) bool {
	return c == '_' || c == '.' || c == '-'
}

func lastByte(s string) byte {
	return s[len(s)-1]
}

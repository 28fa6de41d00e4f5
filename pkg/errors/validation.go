package errors

import (
	"strings"
	"unicode"
)

// maxIdentifierLength bounds ids accepted from requests.
const maxIdentifierLength = 256

// ValidateIdentifier validates an id taken from a project request (a
// dependency, type, language or packaging id) before it is looked up.
//
// The rules are conservative:
//   - No empty ids
//   - No control characters or null bytes
//   - No whitespace
//   - Maximum length of 256 characters
func ValidateIdentifier(kind, id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "%s id cannot be empty", kind)
	}

	if len(id) > maxIdentifierLength {
		return New(ErrCodeInvalidInput, "%s id too long (max %d characters)", kind, maxIdentifierLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "%s id contains invalid control characters", kind)
		}
		if unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "%s id %q contains whitespace", kind, id)
		}
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}

package errors

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"
)

// elementIDRegex matches identifiers usable as XML attribute references:
// a letter or underscore followed by letters, digits, '_', '-' or '.'.
var elementIDRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.-]*$`)

// ValidateElementID validates an element identifier read from a document or
// given on the command line.
func ValidateElementID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "element id cannot be empty")
	}
	if len(id) > 128 {
		return New(ErrCodeInvalidInput, "element id too long (max 128 characters)")
	}
	if !elementIDRegex.MatchString(id) {
		return New(ErrCodeInvalidInput, "invalid element id: %q", id)
	}
	return nil
}

// boardNameRegex matches board names: lowercase words joined by '-' or '_'.
var boardNameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// ValidateBoardName validates a clipboard board name.
// Board names end up in file paths, redis keys and URLs, so the rules are
// intentionally conservative:
//   - No empty names
//   - Lowercase ASCII letters, digits, '-' and '_'
//   - Maximum length of 64 characters
func ValidateBoardName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidBoard, "board name cannot be empty")
	}
	if len(name) > 64 {
		return New(ErrCodeInvalidBoard, "board name too long (max 64 characters)")
	}
	if !boardNameRegex.MatchString(name) {
		return New(ErrCodeInvalidBoard, "invalid board name: %q", name)
	}
	return nil
}

// ValidatePath validates a local document path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateLocator validates a document locator taken from a transfer payload.
// Only absolute file URLs are accepted; anything else is text that some
// platforms put under the uri-list flavor by mistake.
func ValidateLocator(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, New(ErrCodeInvalidLocator, "locator cannot be empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, Wrap(ErrCodeInvalidLocator, err, "malformed locator %q", raw)
	}
	if !u.IsAbs() || u.Scheme != "file" {
		return nil, New(ErrCodeInvalidLocator, "locator must be an absolute file URL: %q", raw)
	}
	if u.Path == "" {
		return nil, New(ErrCodeInvalidLocator, "locator has no path: %q", raw)
	}
	return u, nil
}

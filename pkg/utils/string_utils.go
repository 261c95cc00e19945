package utils

import (
	"regexp"
	"strings"
)

// NewNullString is a helper for string pointers, returning nil if string is empty.
// Useful for fields that are optional and should be NULL in DB if not provided.
func NewNullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

var (
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugWhitespace   = regexp.MustCompile(`[\s_-]+`)
)

// Slugify converts a display name into a URL-safe slug: lowercase, with runs
// of whitespace/underscores/hyphens collapsed to single hyphens and all other
// non-alphanumeric characters removed. "Fresh Goat Meat" -> "fresh-goat-meat".
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugInvalidChars.ReplaceAllString(slug, "")
	slug = slugWhitespace.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

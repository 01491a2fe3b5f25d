// Package sanitize provides workarounds for stored rich-text content
package sanitize

import (
	"regexp"
	"strings"
)

// tagRegex matches HTML tags for search-time stripping
var tagRegex = regexp.MustCompile(`<[^>]*>`)

// TrimStoredQuotes strips one leading/trailing quote pair that the remote
// store sometimes introduces when round-tripping JSON-encoded HTML strings.
// This is not an HTML sanitizer: stored content is otherwise returned as-is.
func TrimStoredQuotes(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

// StripTags removes HTML markup so rich-text content can be matched by
// plain-text search. It is used for matching only, never for rendering.
func StripTags(s string) string {
	stripped := tagRegex.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(stripped), " ")
}

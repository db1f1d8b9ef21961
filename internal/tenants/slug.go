package tenants

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var slugRx = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

var slugNormalizer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeSlug strips diacritics and lowercases the candidate. Validation of
// the resulting shape is separate so the caller can report what was rejected.
func NormalizeSlug(candidate string) string {
	normalized, _, err := transform.String(slugNormalizer, strings.TrimSpace(candidate))
	if err != nil {
		normalized = strings.TrimSpace(candidate)
	}
	return strings.ToLower(normalized)
}

// ValidSlug reports whether the normalized slug is URL-safe.
func ValidSlug(slug string) bool {
	return len(slug) >= 2 && slugRx.MatchString(slug)
}

package ingest

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeText lowercases text and strips accents and punctuation,
// keeping only letters, digits and whitespace. Used to sanitize
// user-supplied identifiers before they become object path segments.
func NormalizeText(text string) string {
	if text == "" {
		return ""
	}

	// NFKD splits accented characters into base + combining mark.
	stripped, _, err := transform.String(transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn))), text)
	if err != nil {
		stripped = text
	}

	var b strings.Builder
	for _, r := range strings.ToLower(stripped) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', unicode.IsSpace(r):
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// CategorySlug sanitizes a user-supplied category into a path segment:
// accents stripped, lowercased, words joined with hyphens. Existing
// hyphens and underscores survive as word separators.
func CategorySlug(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")
	return strings.Join(strings.Fields(NormalizeText(s)), "-")
}

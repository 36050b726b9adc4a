package draft

import (
	"strings"
	"unicode"
)

// NormalizeSlug lowers, hyphenates, and trims a candidate public URL segment.
// Runs of non-alphanumeric characters collapse into single hyphens; leading
// and trailing hyphens are dropped.
func NormalizeSlug(candidate string) string {
	var b strings.Builder
	b.Grow(len(candidate))

	lastHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(candidate)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.Trim(b.String(), "-")
}

// ValidSlug reports whether a normalized slug is usable as a public URL
// segment.
func ValidSlug(slug string) bool {
	if slug == "" || len(slug) > 80 {
		return false
	}
	for _, r := range slug {
		if !unicode.IsLower(r) && !unicode.IsDigit(r) && r != '-' {
			return false
		}
	}
	return true
}

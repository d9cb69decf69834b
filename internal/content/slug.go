package content

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// slugPattern is the strict kebab-case form required of stored slugs
var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// deaccent decomposes characters and strips combining marks, folding
// "é" to "e" and similar
var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify derives the normalized URL-safe identifier for a label:
// lowercase, diacritics stripped, non-alphanumeric runs collapsed to a
// single hyphen, no leading or trailing hyphen. The same function is
// used for categories, tags and publish-time slug validation so the
// outputs stay consistent everywhere.
func Slugify(value string) string {
	folded, _, err := transform.String(deaccent, value)
	if err != nil {
		folded = value
	}

	var b strings.Builder
	b.Grow(len(folded))
	pendingHyphen := false
	for _, r := range strings.ToLower(folded) {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !isAlnum {
			pendingHyphen = b.Len() > 0
			continue
		}
		if pendingHyphen {
			b.WriteByte('-')
			pendingHyphen = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// IsValidSlug reports whether value already is a well-formed slug
func IsValidSlug(value string) bool {
	return slugPattern.MatchString(value)
}

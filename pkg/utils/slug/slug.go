// Package slug builds URL slugs for blog posts and title-cases labels.
package slug

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxLength caps the generated slug.
const MaxLength = 80

// Make lower-cases s, folds accents to ASCII, and joins the remaining words
// with hyphens: "Café Nights: Live!" -> "cafe-nights-live".
func Make(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
		if b.Len() >= MaxLength {
			break
		}
	}
	return strings.Trim(b.String(), "-")
}

// Unique returns base, or base-2, base-3, ... the first candidate taken
// reports as free.
func Unique(base string, taken func(string) bool) string {
	if base == "" {
		base = "post"
	}
	candidate := base
	for i := 2; taken(candidate); i++ {
		candidate = base + "-" + strconv.Itoa(i)
	}
	return candidate
}

var title = cases.Title(language.English)

// Title converts a stored choice value into a label: "live_performance" ->
// "Live Performance".
func Title(s string) string {
	return title.String(strings.NewReplacer("_", " ", "-", " ").Replace(s))
}

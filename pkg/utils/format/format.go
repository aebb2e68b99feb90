// Package format holds small display helpers shared by templates.
package format

import (
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
)

// Comma formats n with thousands separators ("1,000").
func Comma(n int) string {
	return humanize.Comma(int64(n))
}

// Counter is the label of a stats counter: "1,000+".
func Counter(n int) string {
	return Comma(n) + "+"
}

// Ordinal returns "1st", "2nd", ...
func Ordinal(n int) string {
	return humanize.Ordinal(n)
}

// Date renders a calendar date as "June 15, 2025".
func Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("January 2, 2006")
}

// Ago renders t relative to now ("3 days ago").
func Ago(t time.Time, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// Itoa formats an int.
func Itoa(i int) string { return strconv.Itoa(i) }

// Truncate shortens s to at most max runes, ending with "...".
func Truncate(s string, max int) string {
	if max < 4 || utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	return strings.TrimSpace(string(r[:max-3])) + "..."
}

// Initials returns up to two upper-case initials of a name ("Sarah & Michael" -> "SM").
func Initials(name string) string {
	var out []rune
	for _, w := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(w)
		if !unicode.IsLetter(r) {
			continue
		}
		out = append(out, r)
		if len(out) == 2 {
			break
		}
	}
	return strings.ToUpper(string(out))
}

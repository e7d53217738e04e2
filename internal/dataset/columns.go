package dataset

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Required light-curve columns.
const (
	TimeColumn      = "Tiempo desde erupcion (d)"
	MagnitudeColumn = "Magnitud"
)

// foldName lowercases s, strips combining marks and collapses whitespace,
// so "Tiempo desde erupción (d)" folds to the same key as TimeColumn.
func foldName(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.Join(strings.Fields(out), " "))
}

// ResolveColumn finds want in header: exact match first, then a case and
// accent insensitive match.
func ResolveColumn(header []string, want string) (string, bool) {
	for _, h := range header {
		if h == want {
			return h, true
		}
	}
	key := foldName(want)
	for _, h := range header {
		if foldName(h) == key {
			return h, true
		}
	}
	return "", false
}

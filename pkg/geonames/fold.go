package geonames

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// FoldKey normalizes a name for diacritic- and case-insensitive
// matching: NFD decomposition, removal of combining marks, NFC
// recomposition, then lower-casing. The gazetteer carries an ASCII
// name and alternate spellings precisely because exact unicode
// comparison misses; folding lets "sao paulo" match "São Paulo".
func FoldKey(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		// Fold is best-effort; fall back to the raw string.
		folded = s
	}
	return strings.ToLower(folded)
}

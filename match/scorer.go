package match

import (
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// Normalize collapses any run of whitespace to a single space, trims, and
// lowercases. Both scorer inputs pass through it, so matching is insensitive
// to case and spacing.
func Normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// Score computes a token-set similarity between a query string and a
// candidate field on a 0-100 scale. Both sides are normalized first; either
// side blank after normalization scores 0 (no match credit, not a failure).
//
// Token-set matching treats both strings as unordered word sets and aligns
// on their intersection, so it tolerates reordering, extra words and partial
// overlap: "Наша Ряба" against "ряба наша магазин" still scores high.
// Normalization is done here, so the library's ASCII-only preprocessing is
// switched off and Cyrillic input passes through intact.
func Score(query, candidate string) float64 {
	q := Normalize(query)
	c := Normalize(candidate)
	if q == "" || c == "" {
		return 0
	}
	return float64(fuzzy.TokenSetRatio(q, c, false, false))
}

// Package textnorm provides diacritic-insensitive text normalization for
// place-name matching and cache keys.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold lowercases the input and strips combining diacritical marks, so that
// "Iaşi", "Iași" and "iasi" compare equal. Romanian place names appear with
// both comma-below and cedilla forms in the wild; NFD decomposition handles
// both.
func Fold(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		// Transform only fails on invalid UTF-8; fall back to the raw input.
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

// FoldEqual reports whether two strings are equal under Fold.
func FoldEqual(a, b string) bool {
	return Fold(a) == Fold(b)
}

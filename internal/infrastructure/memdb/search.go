package memdb

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold normaliza texto para búsqueda: minúsculas y sin acentos ("José" → "jose").
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

// matches indica si todos los términos de search aparecen en text.
func matches(text, search string) bool {
	search = Fold(search)
	if search == "" {
		return true
	}
	text = Fold(text)
	for _, term := range strings.Fields(search) {
		if !strings.Contains(text, term) {
			return false
		}
	}
	return true
}

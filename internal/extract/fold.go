package extract

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// fold lowercases and strips diacritics so "Léo" matches "leo" and
// "médecin" matches "medecin". The transformer chain is built per call
// because chained transformers carry internal buffers.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(out)
}

// containsFolded reports whether folded haystack contains the folded needle.
// Plain substring matching: speech-to-text output is too noisy for strict
// word boundaries, and a false negative costs a lost task.
func containsFolded(haystack, needle string) bool {
	if needle == "" {
		return false
	}
	return strings.Contains(fold(haystack), fold(needle))
}

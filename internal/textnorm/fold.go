// Package textnorm holds the locale helpers shared by the report parsers:
// accent stripping, case folding, pt-BR number parsing and input decoding.
package textnorm

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	whitespaceRegex = regexp.MustCompile(`\s+`)
	nonKeyRegex     = regexp.MustCompile(`[^A-Z0-9/% ]+`)
)

// StripAccents removes combining marks: "Competência" -> "Competencia".
func StripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Fold strips accents, upper-cases and collapses whitespace.
func Fold(s string) string {
	s = strings.ToUpper(StripAccents(s))
	s = whitespaceRegex.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Key is Fold restricted to letters, digits, '/', '%' and single spaces.
// Labels and rule phrases are compared in this form.
func Key(s string) string {
	s = nonKeyRegex.ReplaceAllString(Fold(s), " ")
	s = whitespaceRegex.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// ContainsAny reports whether the Key form of s contains any of the
// Key forms of needles.
func ContainsAny(s string, needles ...string) bool {
	k := Key(s)
	for _, n := range needles {
		if nk := Key(n); nk != "" && strings.Contains(k, nk) {
			return true
		}
	}
	return false
}

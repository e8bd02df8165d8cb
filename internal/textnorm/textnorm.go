// Package textnorm folds arbitrary Unicode text into the printable ASCII
// range supported by the standard PDF Times fonts.
package textnorm

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// substitutions maps characters that NFD cannot fold (or folds badly) to
// their closest ASCII spelling. Applied before decomposition.
var substitutions = strings.NewReplacer(
	// Romanian comma-below and legacy cedilla forms.
	"ș", "s", "ş", "s", "Ș", "S", "Ş", "S",
	"ț", "t", "ţ", "t", "Ț", "T", "Ţ", "T",
	"ă", "a", "Ă", "A", "â", "a", "Â", "A", "î", "i", "Î", "I",

	// Letters without a canonical decomposition.
	"ß", "ss", "ẞ", "SS",
	"æ", "ae", "Æ", "AE",
	"œ", "oe", "Œ", "OE",
	"ø", "o", "Ø", "O",
	"đ", "d", "Đ", "D",
	"ł", "l", "Ł", "L",
	"þ", "th", "Þ", "TH",
	"ð", "d", "Ð", "D",
	"ı", "i",

	// Typography.
	"\u00a0", " ", "\u2009", " ", "\u202f", " ",
	"\u2018", "'", "\u2019", "'", "\u201a", "'", "\u2032", "'",
	"\u201c", "\"", "\u201d", "\"", "\u201e", "\"", "\u00ab", "\"", "\u00bb", "\"",
	"\u2013", "-", "\u2014", "-", "\u2212", "-", "\u2010", "-", "\u2011", "-",
	"…", "...",
	"•", "-",
	"€", "EUR",
)

// Normalize returns s folded to ASCII. It never fails: code points with no
// ASCII rendering are dropped. Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	if isASCII(s) {
		return s
	}

	s = substitutions.Replace(s)

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	return stripNonASCII(folded)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

func stripNonASCII(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] < utf8.RuneSelf {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

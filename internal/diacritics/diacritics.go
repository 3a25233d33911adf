// Package diacritics removes and inspects diacritic marks on letters.
// Stripping decomposes to NFD, drops combining marks (Unicode category Mn),
// and recomposes; letters whose mark is baked into the code point and never
// decomposes (stroked letters such as ł or ø) are mapped through an explicit
// base table.
package diacritics

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// specialBases maps letters that carry a diacritic without an NFD
// decomposition to their base letter.
var specialBases = map[rune]rune{
	'ł': 'l', 'Ł': 'L',
	'ø': 'o', 'Ø': 'O',
	'đ': 'd', 'Đ': 'D',
	'ħ': 'h', 'Ħ': 'H',
	'ŧ': 't', 'Ŧ': 'T',
}

// Strip returns text with diacritic marks removed.
func Strip(text string) string {
	stripper := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(stripper, text)
	if err != nil {
		stripped = text
	}
	return strings.Map(func(r rune) rune {
		if base, ok := specialBases[r]; ok {
			return base
		}
		return r
	}, stripped)
}

// Has reports whether s contains any diacritic mark.
func Has(s string) bool {
	return s != Strip(s)
}

// WithDiacritics returns the characters from chars that carry a diacritic,
// preserving order.
func WithDiacritics(chars []string) []string {
	var marked []string
	for _, ch := range chars {
		if Has(ch) {
			marked = append(marked, ch)
		}
	}
	return marked
}

// Variants groups chars by their stripped base form. Only bases occurring in
// more than one form are returned; each group is sorted and includes the base
// itself when present in chars.
func Variants(chars []string) map[string][]string {
	groups := make(map[string]map[string]struct{})
	for _, ch := range chars {
		base := Strip(ch)
		if groups[base] == nil {
			groups[base] = make(map[string]struct{})
		}
		groups[base][ch] = struct{}{}
	}

	variants := make(map[string][]string)
	for base, set := range groups {
		if len(set) < 2 {
			continue
		}
		forms := make([]string, 0, len(set))
		for form := range set {
			forms = append(forms, form)
		}
		sort.Strings(forms)
		variants[base] = forms
	}
	return variants
}

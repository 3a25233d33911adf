// Package tokenize turns raw text into the derived token sets the detection
// engine scores against: word tokens, character bigrams, bare letter characters,
// and the dominant Unicode script. All tokenization applies NFKC normalization
// followed by lowercasing so comparisons behave identically everywhere.
package tokenize

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalize applies the canonical text transform used across the engine:
// NFKC normalization followed by Unicode lowercasing.
func Normalize(text string) string {
	return strings.ToLower(norm.NFKC.String(text))
}

// Words returns the set of maximal letter runs in the text. Any non-letter
// character acts as a separator. Duplicates collapse; empty or letter-free
// input yields an empty set.
func Words(text string) map[string]struct{} {
	words := make(map[string]struct{})
	var b strings.Builder
	for _, r := range Normalize(text) {
		if unicode.IsLetter(r) {
			b.WriteRune(r)
			continue
		}
		if b.Len() > 0 {
			words[b.String()] = struct{}{}
			b.Reset()
		}
	}
	if b.Len() > 0 {
		words[b.String()] = struct{}{}
	}
	return words
}

// Bigrams returns the set of two-character windows over the letter sequence of
// the text. Non-letters are removed before windowing, so a bigram may span
// characters that were separated by punctuation or whitespace in the input.
// Fewer than two letters yields an empty set.
func Bigrams(text string) map[string]struct{} {
	var letters []rune
	for _, r := range Normalize(text) {
		if unicode.IsLetter(r) {
			letters = append(letters, r)
		}
	}
	bigrams := make(map[string]struct{})
	for i := 0; i+1 < len(letters); i++ {
		bigrams[string(letters[i:i+2])] = struct{}{}
	}
	return bigrams
}

// NormalizeForMatch reduces text to its normalized letter runs joined by
// single spaces, the transform under which an input is compared byte-for-byte
// against a language's canonical greeting phrase. Punctuation, digits, and
// surrounding whitespace all disappear: "Hello,  how are you?" and
// "hello how are you" reduce to the same string.
func NormalizeForMatch(text string) string {
	var b strings.Builder
	inRun := false
	for _, r := range Normalize(text) {
		if unicode.IsLetter(r) {
			if !inRun && b.Len() > 0 {
				b.WriteByte(' ')
			}
			inRun = true
			b.WriteRune(r)
			continue
		}
		inRun = false
	}
	return b.String()
}

// Characters returns the set of individual letter characters in the text.
func Characters(text string) map[string]struct{} {
	chars := make(map[string]struct{})
	for _, r := range Normalize(text) {
		if unicode.IsLetter(r) {
			chars[string(r)] = struct{}{}
		}
	}
	return chars
}

// ScriptNone is reported by DominantScript for input without letters.
const ScriptNone = "none"

// scriptProbe pairs a script name with its Unicode range table.
type scriptProbe struct {
	name  string
	table *unicode.RangeTable
}

// scriptProbes is the fixed test order for dominant-script detection. The
// order is load-bearing: ties are broken by the first matching entry, and
// downstream candidate ordering depends on it, so it must not be re-sorted.
var scriptProbes = []scriptProbe{
	{"Latin", unicode.Latin},
	{"Cyrillic", unicode.Cyrillic},
	{"Greek", unicode.Greek},
	{"Arabic", unicode.Arabic},
	{"Hebrew", unicode.Hebrew},
	{"Devanagari", unicode.Devanagari},
	{"Bengali", unicode.Bengali},
	{"Gurmukhi", unicode.Gurmukhi},
	{"Gujarati", unicode.Gujarati},
	{"Oriya", unicode.Oriya},
	{"Tamil", unicode.Tamil},
	{"Telugu", unicode.Telugu},
	{"Kannada", unicode.Kannada},
	{"Malayalam", unicode.Malayalam},
	{"Sinhala", unicode.Sinhala},
	{"Thai", unicode.Thai},
	{"Lao", unicode.Lao},
	{"Tibetan", unicode.Tibetan},
	{"Myanmar", unicode.Myanmar},
	{"Georgian", unicode.Georgian},
	{"Armenian", unicode.Armenian},
	{"Ethiopic", unicode.Ethiopic},
	{"Hangul", unicode.Hangul},
	{"Katakana", unicode.Katakana},
	{"Hiragana", unicode.Hiragana},
	{"Han", unicode.Han},
}

// DominantScript returns the name of the Unicode script with the highest
// character count in the text, or ScriptNone when no character belongs to a
// known script. Ties go to the script tested first in the fixed probe order.
func DominantScript(text string) string {
	counts := make([]int, len(scriptProbes))
	for _, r := range text {
		for i, probe := range scriptProbes {
			if unicode.Is(probe.table, r) {
				counts[i]++
				break
			}
		}
	}
	best := -1
	bestCount := 0
	for i, n := range counts {
		if n > bestCount {
			best = i
			bestCount = n
		}
	}
	if best < 0 {
		return ScriptNone
	}
	return scriptProbes[best].name
}

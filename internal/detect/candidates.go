package detect

import (
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/MeKo-Tech/langtab/internal/tokenize"
)

// Candidate-selection heuristics for short texts: when the input has at most
// shortTextWordLimit word tokens, languages whose greeting phrase shares
// enough sufficiently long words with the input are moved to the front.
const (
	shortTextWordLimit          = 6
	phraseShareMinWordLen       = 3
	latinPhraseShareThreshold   = 2
	defaultPhraseShareThreshold = 1
)

// primaryScriptLanguages seeds the candidate list per dominant script. Codes
// missing from the dataset simply score zero downstream.
var primaryScriptLanguages = map[string][]string{
	"Latin":      {"en", "es", "fr", "de", "pt", "it", "nl", "af"},
	"Cyrillic":   {"ru", "uk", "bg", "sr", "mk"},
	"Greek":      {"el"},
	"Arabic":     {"ar", "fa", "ur"},
	"Hebrew":     {"he", "yi"},
	"Devanagari": {"hi", "mr", "ne"},
	"Bengali":    {"bn"},
	"Tamil":      {"ta"},
	"Thai":       {"th"},
	"Hangul":     {"ko"},
	"Katakana":   {"ja"},
	"Hiragana":   {"ja"},
	"Han":        {"zh", "ja"},
	"Georgian":   {"ka"},
	"Armenian":   {"hy"},
	"Ethiopic":   {"am"},
}

// fallbackCandidates is used when no selection method produced anything.
var fallbackCandidates = []string{"en", "es", "fr", "de", "it"}

// selectCandidates narrows the language universe for a text when the caller
// did not supply candidates. The resulting order biases final ranking for
// otherwise-equal scores, so every step below is deterministic.
func (d *Detector) selectCandidates(tok analysis) ([]string, error) {
	charIndex, err := d.source.CharIndex()
	if err != nil {
		return nil, fmt.Errorf("loading character index: %w", err)
	}
	entries, err := d.source.Index()
	if err != nil {
		return nil, fmt.Errorf("loading language index: %w", err)
	}
	positions, err := d.indexPositions()
	if err != nil {
		return nil, err
	}

	coverage := charCoverage(tok.chars, charIndex)

	list := newCandidateList()

	// Primary languages for the dominant script come first.
	for _, lang := range primaryScriptLanguages[tok.script] {
		list.append(lang)
	}

	// Then every language hit by the character index, best coverage first.
	ranked := make([]string, 0, len(coverage))
	for lang := range coverage {
		ranked = append(ranked, lang)
	}
	sort.Slice(ranked, func(i, j int) bool {
		ci, cj := coverage[ranked[i]], coverage[ranked[j]]
		if ci != cj {
			return ci > cj
		}
		return indexPosOf(positions, ranked[i]) < indexPosOf(positions, ranked[j])
	})
	for _, lang := range ranked {
		if list.len() >= d.cfg.MaxCandidates {
			break
		}
		list.append(lang)
	}

	// Fill remaining room with languages sharing the dominant script.
	if list.len() < d.cfg.MaxCandidates {
		for _, entry := range entries {
			if list.len() >= d.cfg.MaxCandidates {
				break
			}
			if scriptMatchesEntry(tok.script, entry.Script) {
				list.append(entry.Language)
			}
		}
	}

	// Short inputs: greeting-phrase sharing moves languages to the front,
	// because statistical overlap is unreliable on very little data.
	if n := len(tok.words); n > 0 && n <= shortTextWordLimit {
		threshold := defaultPhraseShareThreshold
		if tok.script == "Latin" {
			threshold = latinPhraseShareThreshold
		}
		for _, entry := range entries {
			if d.phraseSharesWords(entry.Language, tok.words) >= threshold {
				list.prepend(entry.Language)
			}
		}
	}

	// A direct frequency-list word hit is a strong signal regardless of
	// character coverage.
	if len(tok.words) > 0 {
		for _, entry := range entries {
			if d.frequencyListHasAny(entry.Language, tok.words) {
				list.prepend(entry.Language)
			}
		}
	}

	if list.len() == 0 {
		return append([]string(nil), fallbackCandidates...), nil
	}
	return list.truncated(d.cfg.MaxCandidates), nil
}

// charCoverage accumulates per-language character hits. Precomposed Hangul
// syllables also probe the index under their decomposed compatibility Jamo,
// since the index is keyed at the Jamo level for Korean. Each input character
// counts at most once per language.
func charCoverage(chars map[string]struct{}, charIndex map[string][]string) map[string]float64 {
	if len(chars) == 0 {
		return nil
	}
	hits := make(map[string]int)
	for ch := range chars {
		keys := []string{ch}
		r, _ := utf8.DecodeRuneInString(ch)
		for _, jamo := range tokenize.DecomposeHangul(r) {
			keys = append(keys, string(jamo))
		}
		counted := make(map[string]struct{})
		for _, key := range keys {
			for _, lang := range charIndex[key] {
				if _, dup := counted[lang]; dup {
					continue
				}
				counted[lang] = struct{}{}
				hits[lang]++
			}
		}
	}
	coverage := make(map[string]float64, len(hits))
	total := float64(len(chars))
	for lang, n := range hits {
		coverage[lang] = float64(n) / total
	}
	return coverage
}

// phraseSharesWords counts words of the language's greeting phrase, at least
// phraseShareMinWordLen runes long, that also occur in the input.
func (d *Detector) phraseSharesWords(lang string, words map[string]struct{}) int {
	phrase := d.helloPhrase(lang)
	if phrase == "" {
		return 0
	}
	shared := 0
	for w := range tokenize.Words(phrase) {
		if len([]rune(w)) < phraseShareMinWordLen {
			continue
		}
		if _, ok := words[w]; ok {
			shared++
		}
	}
	return shared
}

// frequencyListHasAny reports whether lang's frequency list contains at least
// one of the input's word tokens.
func (d *Detector) frequencyListHasAny(lang string, words map[string]struct{}) bool {
	list := d.frequencyList(lang)
	if list == nil {
		return false
	}
	for w := range words {
		if _, ok := list.Rank(w); ok {
			return true
		}
	}
	return false
}

// scriptMatchesEntry relates a detected dominant script to the script names
// recorded in the language index. Japanese spans three detection scripts.
func scriptMatchesEntry(dominant, entryScript string) bool {
	if dominant == entryScript {
		return true
	}
	switch dominant {
	case "Hiragana", "Katakana":
		return entryScript == "Japanese"
	case "Han":
		return entryScript == "Japanese"
	default:
		return false
	}
}

func indexPosOf(positions map[string]int, lang string) int {
	if pos, ok := positions[lang]; ok {
		return pos
	}
	return int(^uint(0) >> 1)
}

// candidateList is an ordered, duplicate-free language list with cheap
// membership checks and move-to-front semantics.
type candidateList struct {
	langs   []string
	present map[string]struct{}
}

func newCandidateList() *candidateList {
	return &candidateList{present: make(map[string]struct{})}
}

func (c *candidateList) len() int { return len(c.langs) }

func (c *candidateList) append(lang string) {
	if _, ok := c.present[lang]; ok {
		return
	}
	c.present[lang] = struct{}{}
	c.langs = append(c.langs, lang)
}

// prepend moves lang to the front, inserting it if absent.
func (c *candidateList) prepend(lang string) {
	if _, ok := c.present[lang]; ok {
		for i, l := range c.langs {
			if l == lang {
				copy(c.langs[1:i+1], c.langs[:i])
				c.langs[0] = lang
				break
			}
		}
		return
	}
	c.present[lang] = struct{}{}
	c.langs = append([]string{lang}, c.langs...)
}

func (c *candidateList) truncated(limit int) []string {
	if len(c.langs) > limit {
		return c.langs[:limit]
	}
	return c.langs
}

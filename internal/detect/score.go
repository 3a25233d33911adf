package detect

import (
	"math"

	"github.com/MeKo-Tech/langtab/internal/data"
	"github.com/MeKo-Tech/langtab/internal/tokenize"
)

// Character-overlap blend: reward alphabet coverage of the text, penalize
// text characters foreign to the alphabet.
const (
	charCoverageWeight = 0.7
	charPenaltyWeight  = 0.3
)

// scoredLanguage is one candidate's raw score plus the evidence flags the
// ranker needs.
type scoredLanguage struct {
	language  string
	score     float64
	wordBased bool
	exact     bool
}

// scoreCandidates computes a raw blended score for every candidate that
// produced any evidence. Candidates with missing data contribute nothing and
// are skipped silently; the result is unsorted.
func (d *Detector) scoreCandidates(tok analysis, candidates []string, priors map[string]float64) []scoredLanguage {
	scores := make([]scoredLanguage, 0, len(candidates))
	for _, lang := range candidates {
		prior := priors[lang]

		// Tier one: token-frequency-rank overlap, blended with the prior. A
		// missing frequency list leaves the overlap at zero but the prior can
		// still carry the score over the gate.
		list := d.frequencyList(lang)
		tokens := tok.words
		if list != nil && list.Mode == data.ModeBigram {
			tokens = tok.bigrams
		}
		overlap := 0.0
		if list != nil && len(tokens) > 0 {
			overlap = rankOverlap(tokens, list) / math.Sqrt(float64(len(tokens))+3)
		}
		wordScore := d.cfg.PriorWeight*prior + d.cfg.FreqWeight*overlap

		base := 0.0
		wordBased := false
		switch {
		case wordScore > wordScoreThreshold:
			base = wordScore
			wordBased = true
		case len(tok.chars) > 0:
			// Tier two: character-set overlap, the only signal for languages
			// without a frequency corpus. Weighted lower because many
			// languages share an alphabet.
			record, err := d.source.Alphabet(lang, "")
			if err == nil && record != nil {
				charScore := d.cfg.PriorWeight*prior +
					d.cfg.CharWeight*characterOverlap(tok.chars, record.LowercaseSet())
				if charScore > charScoreThreshold {
					base = charScore
				}
			}
		}

		bonus, exact := d.phraseBonus(tok, lang)
		if base > 0 || bonus > 0 {
			scores = append(scores, scoredLanguage{
				language:  lang,
				score:     base + bonus,
				wordBased: wordBased,
				exact:     exact,
			})
		}
	}
	return scores
}

// rankOverlap sums the rank-weighted contribution of every input token found
// in the list: matching a more frequent token contributes more.
func rankOverlap(tokens map[string]struct{}, list *data.FrequencyList) float64 {
	score := 0.0
	for token := range tokens {
		if rank, ok := list.Rank(token); ok {
			score += 1 / math.Log2(float64(rank)+1.5)
		}
	}
	return score
}

// characterOverlap scores how well an alphabet explains the text's character
// set, in [0, 1]. No shared characters means zero, regardless of penalty.
func characterOverlap(textChars, alphabetChars map[string]struct{}) float64 {
	if len(textChars) == 0 || len(alphabetChars) == 0 {
		return 0
	}
	matching := 0
	for ch := range textChars {
		if _, ok := alphabetChars[ch]; ok {
			matching++
		}
	}
	if matching == 0 {
		return 0
	}
	total := float64(len(textChars))
	coverage := float64(matching) / total
	penalty := float64(len(textChars)-matching) / total
	score := coverage*charCoverageWeight - penalty*charPenaltyWeight
	if score < 0 {
		return 0
	}
	return score
}

// phraseBonus rewards overlap with the language's canonical greeting. An
// input that reduces to exactly the phrase gets the flat exact-match bonus
// and is flagged for the ranker's tie-break.
func (d *Detector) phraseBonus(tok analysis, lang string) (float64, bool) {
	phrase := d.helloPhrase(lang)
	if phrase == "" {
		return 0, false
	}
	matches := 0
	for w := range tokenize.Words(phrase) {
		if _, ok := tok.words[w]; ok {
			matches++
		}
	}
	bonus := math.Min(phraseBonusCap, float64(matches)*phraseMatchBonus)
	exact := tok.normalized != "" && tok.normalized == tokenize.NormalizeForMatch(phrase)
	if exact && bonus < exactMatchBonus {
		bonus = exactMatchBonus
	}
	return bonus, exact
}

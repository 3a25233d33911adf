package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/langtab/internal/data"
)

func TestRankOverlap_FrequentTokensContributeMore(t *testing.T) {
	list := data.NewFrequencyList("xx", data.ModeWord, []string{"alpha", "beta", "gamma"})

	top := rankOverlap(map[string]struct{}{"alpha": {}}, list)
	tail := rankOverlap(map[string]struct{}{"gamma": {}}, list)
	assert.Greater(t, top, tail)
	assert.InDelta(t, 0.7565, top, 1e-3)
	assert.InDelta(t, 0.4609, tail, 1e-3)

	both := rankOverlap(map[string]struct{}{"alpha": {}, "gamma": {}}, list)
	assert.InDelta(t, top+tail, both, 1e-9)

	assert.Zero(t, rankOverlap(map[string]struct{}{"delta": {}}, list))
}

func TestCharacterOverlap(t *testing.T) {
	set := func(chars ...string) map[string]struct{} {
		s := make(map[string]struct{}, len(chars))
		for _, ch := range chars {
			s[ch] = struct{}{}
		}
		return s
	}

	tests := []struct {
		name     string
		text     []string
		alphabet []string
		want     float64
	}{
		{"full coverage", []string{"a", "b"}, []string{"a", "b", "c"}, 0.7},
		{"half coverage", []string{"a", "b", "x", "y"}, []string{"a", "b"}, 0.2},
		{"floored at zero", []string{"a", "x", "y", "z", "w"}, []string{"a"}, 0},
		{"no intersection", []string{"x"}, []string{"a"}, 0},
		{"empty alphabet", []string{"a"}, nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := characterOverlap(set(tt.text...), set(tt.alphabet...))
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 1.0)
		})
	}
}

func TestScoreCandidates_GateFallsBackToCharacters(t *testing.T) {
	d := newTestDetector(t, latinUniverse())

	// No list token matches, no prior: the word tier stays at zero and the
	// character tier supplies the score.
	tok := analyze("qqq www")
	scores := d.scoreCandidates(tok, []string{"en"}, nil)
	require.Len(t, scores, 1)
	assert.False(t, scores[0].wordBased)
	assert.InDelta(t, 0.14, scores[0].score, 1e-9)
}

func TestScoreCandidates_PriorGateBoundary(t *testing.T) {
	d := newTestDetector(t, latinUniverse())
	tok := analyze("zzz")

	// 0.65 * 0.1 = 0.065 clears the word gate on its own.
	scores := d.scoreCandidates(tok, []string{"en"}, map[string]float64{"en": 0.1})
	require.Len(t, scores, 1)
	assert.True(t, scores[0].wordBased)
	assert.InDelta(t, 0.065, scores[0].score, 1e-9)

	// 0.65 * 0.05 = 0.0325 does not, but still blends into the character
	// tier - counted once, not twice.
	scores = d.scoreCandidates(tok, []string{"mi"}, map[string]float64{"mi": 0.05})
	require.Len(t, scores, 1)
	assert.False(t, scores[0].wordBased)
	assert.InDelta(t, 0.0325, scores[0].score, 1e-9)
}

func TestScoreCandidates_BigramModeMatchesBigrams(t *testing.T) {
	src := newMemorySource()
	src.addLanguage(
		data.IndexEntry{Language: "ja", Name: "Japanese", HasFrequency: true, Script: "Japanese", Direction: "ltr"},
		&data.AlphabetRecord{Language: "ja", Script: "Jpan", Lowercase: []string{"で", "す", "か"}},
		data.NewFrequencyList("ja", data.ModeBigram, []string{"です", "ます", "した"}),
	)
	d := newTestDetector(t, src)

	// The word (three characters) is absent from the list; only the bigram
	// view can match.
	tok := analyze("ですか")
	scores := d.scoreCandidates(tok, []string{"ja"}, nil)
	require.Len(t, scores, 1)
	assert.True(t, scores[0].wordBased)
	assert.InDelta(t, 0.1184, scores[0].score, 1e-3)
}

func TestScoreCandidates_NoEvidenceSkipped(t *testing.T) {
	d := newTestDetector(t, latinUniverse())

	// "zzz" shares nothing with the Maori alphabet and "xx" is unknown:
	// neither may appear in the output at all.
	tok := analyze("zzz")
	scores := d.scoreCandidates(tok, []string{"mi", "xx"}, nil)
	assert.Empty(t, scores)
}

func TestPhraseBonus(t *testing.T) {
	d := newTestDetector(t, latinUniverse())

	bonus, exact := d.phraseBonus(analyze("hello friend"), "en")
	assert.InDelta(t, 0.02, bonus, 1e-9)
	assert.False(t, exact)

	bonus, exact = d.phraseBonus(analyze("hello how things"), "en")
	assert.InDelta(t, 0.04, bonus, 1e-9)
	assert.False(t, exact)

	// All four words match but the text is longer than the phrase: capped,
	// not exact.
	bonus, exact = d.phraseBonus(analyze("hello how are you doing today friend"), "en")
	assert.InDelta(t, 0.05, bonus, 1e-9)
	assert.False(t, exact)

	// Byte-identical after reduction: the flat exact bonus replaces the cap.
	bonus, exact = d.phraseBonus(analyze("hello,  HOW are... you??"), "en")
	assert.InDelta(t, 0.3, bonus, 1e-9)
	assert.True(t, exact)

	bonus, exact = d.phraseBonus(analyze("hello"), "xx")
	assert.Zero(t, bonus)
	assert.False(t, exact)
}

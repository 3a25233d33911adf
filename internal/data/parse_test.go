package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFrequencyList_WordMode(t *testing.T) {
	list := parseFrequencyList("en", []byte("the\nof\nand\n"))
	assert.Equal(t, "en", list.Language)
	assert.Equal(t, ModeWord, list.Mode)
	assert.Equal(t, []string{"the", "of", "and"}, list.Tokens)

	rank, ok := list.Rank("of")
	require.True(t, ok)
	assert.Equal(t, 2, rank)

	_, ok = list.Rank("missing")
	assert.False(t, ok)
}

func TestParseFrequencyList_BigramHeader(t *testing.T) {
	list := parseFrequencyList("ja", []byte("# type=bigram\nです\nます\n"))
	assert.Equal(t, ModeBigram, list.Mode)

	rank, ok := list.Rank("です")
	require.True(t, ok)
	assert.Equal(t, 1, rank, "header line does not consume a rank")
}

func TestParseFrequencyList_UnknownHeaderStaysWordMode(t *testing.T) {
	list := parseFrequencyList("en", []byte("# generated 2024-01-05\nthe\n"))
	assert.Equal(t, ModeWord, list.Mode)

	rank, ok := list.Rank("the")
	require.True(t, ok)
	assert.Equal(t, 1, rank)
}

func TestParseFrequencyList_BlankAndDuplicateLinesConsumeRanks(t *testing.T) {
	list := parseFrequencyList("xx", []byte("one\n\nthree\none\nfive\n"))
	assert.Equal(t, []string{"one", "three", "five"}, list.Tokens)

	rank, _ := list.Rank("one")
	assert.Equal(t, 1, rank, "first occurrence wins")
	rank, _ = list.Rank("three")
	assert.Equal(t, 3, rank, "blank line consumed rank 2")
	rank, _ = list.Rank("five")
	assert.Equal(t, 5, rank, "duplicate line consumed rank 4")
}

func TestParseFrequencyList_WindowsLineEndings(t *testing.T) {
	list := parseFrequencyList("xx", []byte("one\r\ntwo\r\n"))
	assert.Equal(t, []string{"one", "two"}, list.Tokens)
}

func TestNewFrequencyList_RoundTrip(t *testing.T) {
	tokens := []string{"alpha", "beta", "gamma", "delta", "epsilon"}
	list := NewFrequencyList("xx", ModeWord, tokens)

	require.Equal(t, len(tokens), list.Len())
	for i, token := range tokens {
		rank, ok := list.Rank(token)
		require.True(t, ok, "token %q", token)
		assert.Equal(t, i+1, rank, "token %q", token)
	}
}

func TestParseAlphabet(t *testing.T) {
	content := []byte(`{
		"language": "de",
		"script": "Latn",
		"uppercase": ["A", "B"],
		"lowercase": ["a", "b", "ß"],
		"frequency": {"a": 0.5, "b": 0.3, "ß": 0.2},
		"digits": ["0", "1"],
		"hello_how_are_you": "Hallo, wie geht es dir?"
	}`)
	record, err := parseAlphabet(content)
	require.NoError(t, err)
	assert.Equal(t, "de", record.Language)
	assert.Equal(t, "Latn", record.Script)
	assert.Equal(t, []string{"a", "b", "ß"}, record.Lowercase)
	assert.Equal(t, "Hallo, wie geht es dir?", record.HelloPhrase)

	set := record.LowercaseSet()
	assert.Contains(t, set, "ß")
	assert.NotContains(t, set, "A")
}

func TestParseAlphabet_Invalid(t *testing.T) {
	_, err := parseAlphabet([]byte("{broken"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "alphabet")
}

func TestParseIndex(t *testing.T) {
	content := []byte(`[
		{"language": "ar", "language-name": "Arabic", "frequency-avail": true,
		 "script-type": "Arabic", "direction": "rtl"},
		{"language": "en", "language-name": "English", "frequency-avail": true,
		 "script-type": "Latin", "direction": "ltr"}
	]`)
	entries, err := parseIndex(content)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "ar", entries[0].Language)
	assert.Equal(t, "rtl", entries[0].Direction)
	assert.True(t, entries[1].HasFrequency)
	assert.Equal(t, "Latin", entries[1].Script)
}

func TestParseCharIndex_IgnoresSiblingSections(t *testing.T) {
	content := []byte(`{
		"char_to_languages": {"ж": ["bg", "ru"]},
		"language_count": 2,
		"char_count": 1
	}`)
	index, err := parseCharIndex(content)
	require.NoError(t, err)
	assert.Equal(t, []string{"bg", "ru"}, index["ж"])
}

func TestAlphabetRecord_TopLetters(t *testing.T) {
	record := &AlphabetRecord{
		Frequency: map[string]float64{"e": 0.5, "t": 0.3, "a": 0.3, "q": 0.01},
	}
	assert.Equal(t, []string{"e", "a", "t"}, record.TopLetters(3),
		"equal weights order lexicographically")
	assert.Equal(t, []string{"e", "a", "t", "q"}, record.TopLetters(-1))
	assert.Empty(t, record.TopLetters(0))
}

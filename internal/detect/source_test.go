package detect

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/langtab/internal/data"
)

// memorySource is a hand-built Source for exercising the engine without any
// dataset files. addLanguage derives the character index from the alphabet the
// same way the data pipeline does.
type memorySource struct {
	index     []data.IndexEntry
	alphabets map[string]*data.AlphabetRecord
	freqs     map[string]*data.FrequencyList
	charIndex map[string][]string
}

func newMemorySource() *memorySource {
	return &memorySource{
		alphabets: make(map[string]*data.AlphabetRecord),
		freqs:     make(map[string]*data.FrequencyList),
		charIndex: make(map[string][]string),
	}
}

func (m *memorySource) addLanguage(entry data.IndexEntry, record *data.AlphabetRecord, freq *data.FrequencyList) {
	m.index = append(m.index, entry)
	if record != nil {
		m.alphabets[entry.Language] = record
		for _, ch := range record.Lowercase {
			m.charIndex[ch] = append(m.charIndex[ch], entry.Language)
		}
		for _, ch := range record.Uppercase {
			m.charIndex[ch] = append(m.charIndex[ch], entry.Language)
		}
	}
	if freq != nil {
		m.freqs[entry.Language] = freq
	}
}

func (m *memorySource) FrequencyList(lang string) (*data.FrequencyList, error) {
	if list, ok := m.freqs[lang]; ok {
		return list, nil
	}
	return nil, &data.NotFoundError{Kind: "frequency list", Language: lang}
}

func (m *memorySource) Alphabet(lang, script string) (*data.AlphabetRecord, error) {
	if record, ok := m.alphabets[lang]; ok {
		if script == "" || script == record.Script {
			return record, nil
		}
	}
	return nil, &data.NotFoundError{Kind: "alphabet", Language: lang, Script: script}
}

func (m *memorySource) CharIndex() (map[string][]string, error) {
	return m.charIndex, nil
}

func (m *memorySource) Index() ([]data.IndexEntry, error) {
	return m.index, nil
}

func letters(from, to rune) []string {
	out := make([]string, 0, to-from+1)
	for r := from; r <= to; r++ {
		out = append(out, string(r))
	}
	return out
}

// latinUniverse builds a source with a handful of Latin-script languages
// sharing the a-z alphabet, a German list, and an English list plus greeting.
func latinUniverse() *memorySource {
	src := newMemorySource()
	src.addLanguage(
		data.IndexEntry{Language: "de", Name: "German", HasFrequency: true, Script: "Latin", Direction: "ltr"},
		&data.AlphabetRecord{
			Language: "de", Script: "Latn",
			Lowercase:   append(letters('a', 'z'), "ä", "ö", "ü", "ß"),
			HelloPhrase: "Hallo, wie geht es dir?",
		},
		data.NewFrequencyList("de", data.ModeWord,
			[]string{"ich", "sie", "das", "ist", "du", "nicht", "die", "und"}),
	)
	src.addLanguage(
		data.IndexEntry{Language: "en", Name: "English", HasFrequency: true, Script: "Latin", Direction: "ltr"},
		&data.AlphabetRecord{
			Language: "en", Script: "Latn",
			Lowercase:   letters('a', 'z'),
			HelloPhrase: "Hello, how are you?",
		},
		data.NewFrequencyList("en", data.ModeWord,
			[]string{"the", "of", "and", "to", "a", "in", "is", "you"}),
	)
	src.addLanguage(
		data.IndexEntry{Language: "mi", Name: "Maori", HasFrequency: false, Script: "Latin", Direction: "ltr"},
		&data.AlphabetRecord{
			Language: "mi", Script: "Latn",
			Lowercase:   []string{"a", "e", "h", "i", "k", "m", "n", "o", "p", "r", "t", "u", "w", "g"},
			HelloPhrase: "Kia ora, kei te pēhea koe?",
		},
		nil,
	)
	return src
}

func newTestDetector(t *testing.T, src Source) *Detector {
	t.Helper()
	d, err := New(src, DefaultConfig())
	require.NoError(t, err)
	return d
}

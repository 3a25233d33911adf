// Package data loads and caches the linguistic reference tables the detection
// engine consumes: per-language alphabets, ranked token-frequency lists, the
// character-to-languages index, and the language index. Tables are produced by
// an external data pipeline; this package only reads its on-disk formats. A
// snapshot of the dataset is embedded in the binary and individual files can
// be overridden from an external directory. All tables are immutable once
// loaded and safe for concurrent readers.
package data

import "sort"

// Mode selects how a frequency list was built: whole words for
// whitespace-delimited languages, character bigrams for scripts without word
// boundaries (CJK, Thai).
type Mode string

const (
	ModeWord   Mode = "word"
	ModeBigram Mode = "bigram"
)

// AlphabetRecord describes the writing system of one language in one script.
// Field names follow the JSON produced by the data pipeline.
type AlphabetRecord struct {
	Language     string             `json:"language"`
	Script       string             `json:"script"`
	Alphabetical []string           `json:"alphabetical,omitempty"`
	Uppercase    []string           `json:"uppercase"`
	Lowercase    []string           `json:"lowercase"`
	Frequency    map[string]float64 `json:"frequency,omitempty"`
	Digits       []string           `json:"digits,omitempty"`
	HelloPhrase  string             `json:"hello_how_are_you,omitempty"`
}

// LowercaseSet returns the lowercase letters as a membership set.
func (a *AlphabetRecord) LowercaseSet() map[string]struct{} {
	set := make(map[string]struct{}, len(a.Lowercase))
	for _, ch := range a.Lowercase {
		set[ch] = struct{}{}
	}
	return set
}

// TopLetters returns up to n letters ordered by descending frequency weight.
// Letters with equal weight are ordered lexicographically so the result is
// deterministic.
func (a *AlphabetRecord) TopLetters(n int) []string {
	letters := make([]string, 0, len(a.Frequency))
	for ch := range a.Frequency {
		letters = append(letters, ch)
	}
	sort.Slice(letters, func(i, j int) bool {
		fi, fj := a.Frequency[letters[i]], a.Frequency[letters[j]]
		if fi != fj {
			return fi > fj
		}
		return letters[i] < letters[j]
	})
	if n >= 0 && n < len(letters) {
		letters = letters[:n]
	}
	return letters
}

// FrequencyList is a ranked token list for one language. Rank is the 1-based
// position: rank 1 is the most frequent token.
type FrequencyList struct {
	Language string
	Mode     Mode
	Tokens   []string

	ranks map[string]int
}

// Rank returns the 1-based rank of token, or false when the token is not in
// the list.
func (f *FrequencyList) Rank(token string) (int, bool) {
	r, ok := f.ranks[token]
	return r, ok
}

// Len returns the number of ranked tokens.
func (f *FrequencyList) Len() int {
	return len(f.Tokens)
}

// IndexEntry is one row of the language index. JSON field names follow the
// index.json produced by the data pipeline.
type IndexEntry struct {
	Language     string `json:"language"`
	Name         string `json:"language-name"`
	HasFrequency bool   `json:"frequency-avail"`
	Script       string `json:"script-type"`
	Direction    string `json:"direction"`
}

// Package detect implements the language-identification engine: candidate
// selection, two-tier scoring (token-frequency-rank overlap with a
// character-set fallback), prior blending, greeting-phrase boosting, and
// deterministic ranking. Detection is a pure function of the input text and
// options given an immutable data source; one Detector is safe for concurrent
// use.
package detect

import (
	"github.com/MeKo-Tech/langtab/internal/data"
	"github.com/MeKo-Tech/langtab/internal/tokenize"
)

// Source supplies the read-only tables the engine consumes. *data.Store
// implements it; tests use synthetic in-memory sources. Implementations must
// return stable data: the engine caches nothing it reads here beyond a single
// call except the index ordering.
type Source interface {
	// FrequencyList returns the ranked token list for lang, or an error the
	// engine treats as "no word evidence".
	FrequencyList(lang string) (*data.FrequencyList, error)
	// Alphabet returns the alphabet record for lang; empty script selects the
	// language's default script.
	Alphabet(lang, script string) (*data.AlphabetRecord, error)
	// CharIndex maps a character to the languages whose alphabet contains it.
	CharIndex() (map[string][]string, error)
	// Index returns all known languages in canonical order.
	Index() ([]data.IndexEntry, error)
}

// analysis bundles the token views of one input text. Everything downstream
// (candidate selection and scoring) reads from it, so the text is tokenized
// exactly once per detection.
type analysis struct {
	words      map[string]struct{}
	bigrams    map[string]struct{}
	chars      map[string]struct{}
	script     string
	normalized string
}

func analyze(text string) analysis {
	return analysis{
		words:      tokenize.Words(text),
		bigrams:    tokenize.Bigrams(text),
		chars:      tokenize.Characters(text),
		script:     tokenize.DominantScript(text),
		normalized: tokenize.NormalizeForMatch(text),
	}
}

// empty reports whether the text produced no letter evidence at all.
func (a analysis) empty() bool {
	return len(a.chars) == 0
}

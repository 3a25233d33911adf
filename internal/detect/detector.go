package detect

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/MeKo-Tech/langtab/internal/data"
)

// ErrInvalidOptions marks rejected per-call options.
var ErrInvalidOptions = errors.New("invalid detection options")

// Detector runs language identification against a Source. Construct it once
// and share it; all state besides the memoized index ordering is per call.
type Detector struct {
	source Source
	cfg    Config

	indexOnce sync.Once
	indexPos  map[string]int
	indexErr  error
}

// New creates a Detector for the given source and configuration.
func New(source Source, cfg Config) (*Detector, error) {
	if source == nil {
		return nil, fmt.Errorf("detector requires a data source")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid detector config: %w", err)
	}
	return &Detector{source: source, cfg: cfg}, nil
}

// Options are per-call detection parameters.
type Options struct {
	// Candidates restricts detection to the listed language codes, used
	// verbatim even when a code is unknown (unknown codes simply produce no
	// evidence). Nil enables automatic candidate selection; an empty non-nil
	// slice means "no candidates" and yields an empty result.
	Candidates []string
	// Priors are caller-supplied belief weights per language, blended into
	// every score. Missing languages default to zero.
	Priors map[string]float64
	// TopK overrides the configured result count when positive.
	TopK int
}

func (o Options) validate() error {
	for i, lang := range o.Candidates {
		if lang == "" {
			return fmt.Errorf("candidate language at position %d is empty", i)
		}
	}
	if o.TopK < 0 {
		return fmt.Errorf("topK must not be negative, got %d", o.TopK)
	}
	return nil
}

// Result is one ranked language guess. Score is the raw blended confidence;
// ordering additionally favors word-based and exact-phrase evidence.
type Result struct {
	Language string  `json:"language"`
	Score    float64 `json:"score"`
}

// Detect returns the top language guesses for text, sorted most likely first.
// Empty or letter-free input yields an empty, non-nil result; detection never
// fails because a candidate lacks data.
func (d *Detector) Detect(text string, opts Options) ([]Result, error) {
	if err := opts.validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidOptions, err)
	}

	tok := analyze(text)
	if tok.empty() {
		return []Result{}, nil
	}

	candidates := opts.Candidates
	if candidates == nil {
		var err error
		candidates, err = d.selectCandidates(tok)
		if err != nil {
			return nil, err
		}
	}

	scores := d.scoreCandidates(tok, candidates, opts.Priors)

	topK := opts.TopK
	if topK == 0 {
		topK = d.cfg.TopK
	}
	positions, err := d.indexPositions()
	if err != nil {
		return nil, err
	}
	results := rank(scores, positions, tok.script, topK)
	slog.Debug("detection complete",
		"candidates", len(candidates), "scored", len(scores), "returned", len(results))
	return results, nil
}

// indexPositions memoizes the canonical index ordering used for tie-breaks.
func (d *Detector) indexPositions() (map[string]int, error) {
	d.indexOnce.Do(func() {
		entries, err := d.source.Index()
		if err != nil {
			d.indexErr = fmt.Errorf("loading language index: %w", err)
			return
		}
		d.indexPos = make(map[string]int, len(entries))
		for i, entry := range entries {
			if _, seen := d.indexPos[entry.Language]; !seen {
				d.indexPos[entry.Language] = i
			}
		}
	})
	return d.indexPos, d.indexErr
}

// helloPhrase returns the canonical greeting for lang, or "" when the
// language or phrase is absent. Missing data is no evidence, not an error.
func (d *Detector) helloPhrase(lang string) string {
	record, err := d.source.Alphabet(lang, "")
	if err != nil || record == nil {
		return ""
	}
	return record.HelloPhrase
}

// frequencyList returns lang's ranked tokens, or nil when absent.
func (d *Detector) frequencyList(lang string) *data.FrequencyList {
	list, err := d.source.FrequencyList(lang)
	if err != nil {
		return nil
	}
	return list
}

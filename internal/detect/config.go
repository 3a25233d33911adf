package detect

import (
	"errors"
	"fmt"
)

// Default scoring constants. The weights blend the caller-supplied prior with
// measured evidence; they are tunables surfaced through configuration, not
// compiled-in literals.
const (
	DefaultPriorWeight = 0.65
	DefaultFreqWeight  = 0.35
	DefaultCharWeight  = 0.2

	DefaultTopK          = 3
	DefaultMaxCandidates = 50

	// Acceptance gates: scores at or below these thresholds are discarded.
	wordScoreThreshold = 0.05
	charScoreThreshold = 0.02

	// Greeting-phrase boost: per shared word, capped, with a flat override
	// when the whole text equals the phrase.
	phraseMatchBonus = 0.02
	phraseBonusCap   = 0.05
	exactMatchBonus  = 0.3

	// Ranking boosts applied on top of the raw score when ordering results.
	wordBasedRankBoost  = 0.15
	exactMatchRankBoost = 0.05
)

// Config holds the engine tunables.
type Config struct {
	// PriorWeight scales the caller-supplied prior belief per language.
	PriorWeight float64
	// FreqWeight scales the token-frequency-rank overlap.
	FreqWeight float64
	// CharWeight scales the character-set overlap fallback.
	CharWeight float64
	// TopK is the default number of results returned.
	TopK int
	// MaxCandidates bounds automatic candidate selection.
	MaxCandidates int
}

// DefaultConfig returns the canonical engine configuration.
func DefaultConfig() Config {
	return Config{
		PriorWeight:   DefaultPriorWeight,
		FreqWeight:    DefaultFreqWeight,
		CharWeight:    DefaultCharWeight,
		TopK:          DefaultTopK,
		MaxCandidates: DefaultMaxCandidates,
	}
}

// Validate checks the configuration for values the engine cannot run with.
func (c Config) Validate() error {
	if c.PriorWeight < 0 || c.FreqWeight < 0 || c.CharWeight < 0 {
		return errors.New("scoring weights must be non-negative")
	}
	if c.TopK <= 0 {
		return fmt.Errorf("topK must be positive, got %d", c.TopK)
	}
	if c.MaxCandidates <= 0 {
		return fmt.Errorf("maxCandidates must be positive, got %d", c.MaxCandidates)
	}
	return nil
}

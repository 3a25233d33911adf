package data

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sync"
)

// Config controls where the Store reads dataset files from. Both directories
// are optional; files missing from them fall back to the embedded snapshot.
type Config struct {
	// Dir is an external dataset root with the same layout as the embedded
	// snapshot. Empty means embedded only.
	Dir string
	// FreqDir overrides the location of frequency lists alone, taking
	// precedence over Dir for freq/<lang>.txt lookups.
	FreqDir string
}

// Store provides read access to the dataset tables. Every table is loaded at
// most once and cached for the process lifetime; all accessors are safe for
// concurrent use.
type Store struct {
	cfg Config

	indexOnce sync.Once
	index     []IndexEntry
	indexPos  map[string]int
	indexErr  error

	charOnce  sync.Once
	charIndex map[string][]string
	charErr   error

	scriptsOnce sync.Once
	scripts     map[string][]string
	scriptsErr  error

	mu        sync.Mutex
	alphabets map[string]*AlphabetRecord // nil value = known absent
	freqs     map[string]*FrequencyList  // nil value = known absent
}

// NewStore creates a Store for the given locations. The zero Config serves
// the embedded dataset.
func NewStore(cfg Config) *Store {
	if cfg.Dir != "" {
		if _, err := os.Stat(cfg.Dir); err != nil {
			slog.Warn("dataset directory not accessible, using embedded data",
				"dir", cfg.Dir, "error", err)
		}
	}
	return &Store{
		cfg:       cfg,
		alphabets: make(map[string]*AlphabetRecord),
		freqs:     make(map[string]*FrequencyList),
	}
}

// read returns the contents of a dataset file, preferring the external
// directory when configured and falling back to the embedded snapshot.
func (s *Store) read(rel string) ([]byte, error) {
	if s.cfg.Dir != "" {
		content, err := os.ReadFile(filepath.Join(s.cfg.Dir, filepath.FromSlash(rel)))
		if err == nil {
			return content, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading dataset file %s: %w", rel, err)
		}
	}
	return embeddedFS.ReadFile(path.Join(embeddedRoot, rel))
}

// readFreq is like read but honors the frequency-directory override. The
// override directory holds bare <lang>.txt files, mirroring the layout the
// data pipeline emits for frequency snapshots.
func (s *Store) readFreq(lang string) ([]byte, error) {
	if s.cfg.FreqDir != "" {
		content, err := os.ReadFile(filepath.Join(s.cfg.FreqDir, lang+".txt"))
		if err == nil {
			return content, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading frequency list for %s: %w", lang, err)
		}
	}
	return s.read("freq/" + lang + ".txt")
}

// Index returns the language index in canonical order. The order is stable
// across calls and is used for tie-breaking, so callers must not reorder the
// returned slice.
func (s *Store) Index() ([]IndexEntry, error) {
	s.indexOnce.Do(func() {
		content, err := s.read("index.json")
		if err != nil {
			s.indexErr = fmt.Errorf("loading language index: %w", err)
			return
		}
		s.index, s.indexErr = parseIndex(content)
		if s.indexErr != nil {
			return
		}
		s.indexPos = make(map[string]int, len(s.index))
		for i, entry := range s.index {
			if _, seen := s.indexPos[entry.Language]; !seen {
				s.indexPos[entry.Language] = i
			}
		}
	})
	return s.index, s.indexErr
}

// IndexPosition returns the position of lang in the canonical index order.
func (s *Store) IndexPosition(lang string) (int, bool) {
	if _, err := s.Index(); err != nil {
		return 0, false
	}
	pos, ok := s.indexPos[lang]
	return pos, ok
}

// Entry returns the index row for lang.
func (s *Store) Entry(lang string) (IndexEntry, error) {
	entries, err := s.Index()
	if err != nil {
		return IndexEntry{}, err
	}
	pos, ok := s.indexPos[lang]
	if !ok {
		return IndexEntry{}, &NotFoundError{Kind: "language", Language: lang}
	}
	return entries[pos], nil
}

// AvailableLanguages returns all language codes in canonical index order.
func (s *Store) AvailableLanguages() ([]string, error) {
	entries, err := s.Index()
	if err != nil {
		return nil, err
	}
	codes := make([]string, len(entries))
	for i, entry := range entries {
		codes[i] = entry.Language
	}
	return codes, nil
}

// CharIndex returns the character-to-languages reverse mapping.
func (s *Store) CharIndex() (map[string][]string, error) {
	s.charOnce.Do(func() {
		content, err := s.read("char_index.json")
		if err != nil {
			s.charErr = fmt.Errorf("loading character index: %w", err)
			return
		}
		s.charIndex, s.charErr = parseCharIndex(content)
	})
	return s.charIndex, s.charErr
}

// Scripts returns the script codes for lang, default script first.
func (s *Store) Scripts(lang string) ([]string, error) {
	s.scriptsOnce.Do(func() {
		content, err := s.read("scripts.json")
		if err != nil {
			s.scriptsErr = fmt.Errorf("loading script table: %w", err)
			return
		}
		s.scripts, s.scriptsErr = parseScripts(content)
	})
	if s.scriptsErr != nil {
		return nil, s.scriptsErr
	}
	scripts, ok := s.scripts[lang]
	if !ok {
		return nil, &NotFoundError{Kind: "language", Language: lang}
	}
	return scripts, nil
}

// DefaultScript returns the first listed script for lang.
func (s *Store) DefaultScript(lang string) (string, error) {
	scripts, err := s.Scripts(lang)
	if err != nil {
		return "", err
	}
	if len(scripts) == 0 {
		return "", &NotFoundError{Kind: "language", Language: lang}
	}
	return scripts[0], nil
}

// Alphabet returns the alphabet record for lang in the given script. An empty
// script selects the language's default script.
func (s *Store) Alphabet(lang, script string) (*AlphabetRecord, error) {
	if script == "" {
		resolved, err := s.DefaultScript(lang)
		if err != nil {
			return nil, &NotFoundError{Kind: "alphabet", Language: lang}
		}
		script = resolved
	}

	key := lang + "_" + script
	s.mu.Lock()
	defer s.mu.Unlock()
	if record, seen := s.alphabets[key]; seen {
		if record == nil {
			return nil, &NotFoundError{Kind: "alphabet", Language: lang, Script: script}
		}
		return record, nil
	}

	content, err := s.read("alphabets/" + key + ".json")
	if err != nil {
		s.alphabets[key] = nil
		return nil, &NotFoundError{Kind: "alphabet", Language: lang, Script: script}
	}
	record, err := parseAlphabet(content)
	if err != nil {
		return nil, fmt.Errorf("alphabet %s: %w", key, err)
	}
	s.alphabets[key] = record
	return record, nil
}

// FrequencyList returns the ranked token list for lang. Missing lists are a
// NotFoundError; callers treating absence as "no word evidence" should check
// IsNotFound.
func (s *Store) FrequencyList(lang string) (*FrequencyList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if list, seen := s.freqs[lang]; seen {
		if list == nil {
			return nil, &NotFoundError{Kind: "frequency list", Language: lang}
		}
		return list, nil
	}

	content, err := s.readFreq(lang)
	if err != nil {
		s.freqs[lang] = nil
		return nil, &NotFoundError{Kind: "frequency list", Language: lang}
	}
	list := parseFrequencyList(lang, content)
	s.freqs[lang] = list
	return list, nil
}

// FrequencyTokens returns up to topN ranked tokens for lang. A negative topN
// returns the full list.
func (s *Store) FrequencyTokens(lang string, topN int) ([]string, error) {
	list, err := s.FrequencyList(lang)
	if err != nil {
		return nil, err
	}
	tokens := list.Tokens
	if topN >= 0 && topN < len(tokens) {
		tokens = tokens[:topN]
	}
	return tokens, nil
}

// HelloPhrase returns the canonical greeting for lang, or the empty string
// when the language or its phrase is absent.
func (s *Store) HelloPhrase(lang string) string {
	record, err := s.Alphabet(lang, "")
	if err != nil {
		return ""
	}
	return record.HelloPhrase
}

// LanguageName returns the display name for lang from the index.
func (s *Store) LanguageName(lang string) (string, bool) {
	entry, err := s.Entry(lang)
	if err != nil {
		return "", false
	}
	return entry.Name, true
}

// HasFrequency reports whether the index marks lang as having frequency data.
func (s *Store) HasFrequency(lang string) bool {
	entry, err := s.Entry(lang)
	if err != nil {
		return false
	}
	return entry.HasFrequency
}

// TopLetters returns up to n letters of lang's default alphabet ordered by
// descending frequency weight.
func (s *Store) TopLetters(lang string, n int) ([]string, error) {
	record, err := s.Alphabet(lang, "")
	if err != nil {
		return nil, err
	}
	return record.TopLetters(n), nil
}

// Warm eagerly loads every table so later detections never touch the
// filesystem. Missing per-language files are skipped, matching the detector's
// no-evidence policy; table-level failures are returned.
func (s *Store) Warm() error {
	entries, err := s.Index()
	if err != nil {
		return err
	}
	if _, err := s.CharIndex(); err != nil {
		return err
	}
	for _, entry := range entries {
		if _, err := s.Alphabet(entry.Language, ""); err != nil && !IsNotFound(err) {
			return err
		}
		if _, err := s.FrequencyList(entry.Language); err != nil && !IsNotFound(err) {
			return err
		}
	}
	slog.Debug("dataset warmed", "languages", len(entries))
	return nil
}

package data

import (
	"encoding/json"
	"fmt"
	"strings"
)

// parseFrequencyList parses the plain-text frequency format: one token per
// line, most frequent first, with an optional leading "# type=bigram" header.
// The rank of a token is the line number it first appears on (1-based, after
// the header); empty and duplicate lines consume a line number but produce no
// token, matching the data pipeline's reader.
func parseFrequencyList(lang string, content []byte) *FrequencyList {
	lines := strings.Split(string(content), "\n")
	mode := ModeWord
	if len(lines) > 0 && strings.HasPrefix(lines[0], "#") {
		if strings.Contains(lines[0], "bigram") {
			mode = ModeBigram
		}
		lines = lines[1:]
	}

	list := &FrequencyList{
		Language: lang,
		Mode:     mode,
		ranks:    make(map[string]int, len(lines)),
	}
	for i, line := range lines {
		token := strings.TrimRight(line, "\r")
		if token == "" {
			continue
		}
		if _, seen := list.ranks[token]; seen {
			continue
		}
		list.ranks[token] = i + 1
		list.Tokens = append(list.Tokens, token)
	}
	return list
}

// NewFrequencyList builds an in-memory list from unique tokens in rank order.
// Used by synthetic fixtures; file-backed lists go through parseFrequencyList.
func NewFrequencyList(lang string, mode Mode, tokens []string) *FrequencyList {
	list := &FrequencyList{
		Language: lang,
		Mode:     mode,
		Tokens:   tokens,
		ranks:    make(map[string]int, len(tokens)),
	}
	for i, token := range tokens {
		if _, seen := list.ranks[token]; !seen {
			list.ranks[token] = i + 1
		}
	}
	return list
}

func parseAlphabet(content []byte) (*AlphabetRecord, error) {
	var record AlphabetRecord
	if err := json.Unmarshal(content, &record); err != nil {
		return nil, fmt.Errorf("parsing alphabet record: %w", err)
	}
	return &record, nil
}

func parseIndex(content []byte) ([]IndexEntry, error) {
	var entries []IndexEntry
	if err := json.Unmarshal(content, &entries); err != nil {
		return nil, fmt.Errorf("parsing language index: %w", err)
	}
	return entries, nil
}

// charIndexFile mirrors char_index.json; only the reverse mapping is consumed
// here, the sibling sections exist for other tools in the pipeline.
type charIndexFile struct {
	CharToLanguages map[string][]string `json:"char_to_languages"`
}

func parseCharIndex(content []byte) (map[string][]string, error) {
	var file charIndexFile
	if err := json.Unmarshal(content, &file); err != nil {
		return nil, fmt.Errorf("parsing character index: %w", err)
	}
	return file.CharToLanguages, nil
}

func parseScripts(content []byte) (map[string][]string, error) {
	var scripts map[string][]string
	if err := json.Unmarshal(content, &scripts); err != nil {
		return nil, fmt.Errorf("parsing script table: %w", err)
	}
	return scripts, nil
}

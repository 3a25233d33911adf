package keyboard

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed layouts/*.json
var embeddedFS embed.FS

const embeddedRoot = "layouts"

// ErrNotFound reports that no layout exists for a requested ID.
var ErrNotFound = errors.New("keyboard layout not found")

// Store provides access to keyboard layouts. An optional external directory
// holding <id>.json files is consulted before the embedded set.
type Store struct {
	dir string
}

// NewStore creates a Store. An empty dir serves the embedded layouts only.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// AvailableLayouts returns all layout IDs, sorted, with external files merged
// over the embedded set.
func (s *Store) AvailableLayouts() ([]string, error) {
	ids := make(map[string]struct{})

	entries, err := embeddedFS.ReadDir(embeddedRoot)
	if err != nil {
		return nil, fmt.Errorf("listing embedded layouts: %w", err)
	}
	for _, entry := range entries {
		if id, ok := layoutID(entry.Name()); ok {
			ids[id] = struct{}{}
		}
	}

	if s.dir != "" {
		external, err := os.ReadDir(s.dir)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("listing layout directory %s: %w", s.dir, err)
		}
		for _, entry := range external {
			if id, ok := layoutID(entry.Name()); ok {
				ids[id] = struct{}{}
			}
		}
	}

	sorted := make([]string, 0, len(ids))
	for id := range ids {
		sorted = append(sorted, id)
	}
	sort.Strings(sorted)
	return sorted, nil
}

// Load returns the layout with the given ID. External files win over the
// embedded copy; a missing ID is an ErrNotFound.
func (s *Store) Load(id string) (*Layout, error) {
	content, err := s.read(id + ".json")
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	var layout Layout
	if err := json.Unmarshal(content, &layout); err != nil {
		return nil, fmt.Errorf("parsing keyboard layout %q: %w", id, err)
	}
	return &layout, nil
}

// ForLanguage returns the IDs of layouts for the given language code, sorted.
func (s *Store) ForLanguage(lang string) ([]string, error) {
	all, err := s.AvailableLayouts()
	if err != nil {
		return nil, err
	}
	var matched []string
	for _, id := range all {
		if id == lang || strings.HasPrefix(id, lang+"-") {
			matched = append(matched, id)
		}
	}
	return matched, nil
}

func (s *Store) read(name string) ([]byte, error) {
	if s.dir != "" {
		content, err := os.ReadFile(filepath.Join(s.dir, name))
		if err == nil {
			return content, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return embeddedFS.ReadFile(embeddedRoot + "/" + name)
}

func layoutID(filename string) (string, bool) {
	id, ok := strings.CutSuffix(filename, ".json")
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

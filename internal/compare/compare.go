// Package compare runs several language identification engines over the same
// labeled samples and reports per-engine accuracy plus pairwise agreement.
// Reference engines wrap lingua-go and whatlanggo; the project's own detector
// participates through the same interface.
package compare

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Sample is one labeled input: the expected ISO 639-1 code and the text.
type Sample struct {
	Language string
	Text     string
}

// ParseSamples reads labeled samples from r, one per line in the form
// "code<TAB>text". Blank lines and lines starting with # are skipped.
func ParseSamples(r io.Reader) ([]Sample, error) {
	var samples []Sample

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		code, text, found := strings.Cut(line, "\t")
		if !found || code == "" || strings.TrimSpace(text) == "" {
			return nil, fmt.Errorf("line %d: expected \"code<TAB>text\", got %q", lineNo, line)
		}
		samples = append(samples, Sample{
			Language: strings.TrimSpace(code),
			Text:     strings.TrimSpace(text),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading samples: %w", err)
	}

	return samples, nil
}

// LoadSamplesFile reads labeled samples from path.
func LoadSamplesFile(path string) ([]Sample, error) {
	f, err := os.Open(path) //nolint:gosec // G304: reading user-provided sample file is the job
	if err != nil {
		return nil, fmt.Errorf("opening samples file: %w", err)
	}
	defer func() { _ = f.Close() }()

	samples, err := ParseSamples(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return samples, nil
}

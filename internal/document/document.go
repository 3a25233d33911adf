// Package document reads detection input from files: plain text and Markdown
// directly, PDFs through embedded-text extraction. It never rasterizes pages;
// a PDF without embedded text yields empty output.
package document

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// SupportedExtensions lists the file extensions the readers accept.
func SupportedExtensions() []string {
	return []string{".txt", ".md", ".pdf"}
}

// IsSupported reports whether path has a readable extension.
func IsSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, supported := range SupportedExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// Read returns the text content of path, dispatching on the file extension.
func Read(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".txt", ".md":
		return ReadText(path)
	case ".pdf":
		return NewExtractor().ExtractFile(path)
	default:
		return "", fmt.Errorf("unsupported file type %q (supported: %s)",
			ext, strings.Join(SupportedExtensions(), ", "))
	}
}

// ReadText reads a plain UTF-8 text file.
func ReadText(path string) (string, error) {
	content, err := os.ReadFile(path) //nolint:gosec // G304: reading user-provided input path is the job
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	if !utf8.Valid(content) {
		return "", fmt.Errorf("%s is not valid UTF-8", path)
	}
	return string(content), nil
}

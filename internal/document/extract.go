package document

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dslipak/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// ErrEncrypted reports a password-protected PDF. Callers match it with
// errors.Is.
var ErrEncrypted = errors.New("pdf is encrypted")

// PageText is the embedded text of a single PDF page.
type PageText struct {
	Number int    `json:"page"`
	Text   string `json:"text"`
}

// Extractor pulls embedded text out of PDF files. Files are validated with
// pdfcpu before extraction so malformed input fails with a useful error
// instead of garbage text.
type Extractor struct{}

// NewExtractor creates a PDF text extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// IsEncrypted probes whether the PDF at path requires a password to open.
func IsEncrypted(path string) (bool, error) {
	if _, err := api.PageCountFile(path); err != nil {
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "encrypted") ||
			strings.Contains(msg, "password") ||
			strings.Contains(msg, "decrypt") {
			return true, nil
		}
		return false, fmt.Errorf("reading %s: %w", path, err)
	}
	return false, nil
}

// ExtractFile returns the embedded text of every page, joined with blank
// lines. Encrypted files fail with ErrEncrypted.
func (e *Extractor) ExtractFile(path string) (string, error) {
	pages, err := e.extract(path, nil)
	if err != nil {
		return "", err
	}
	parts := make([]string, 0, len(pages))
	for _, page := range pages {
		parts = append(parts, page.Text)
	}
	return strings.Join(parts, "\n\n"), nil
}

// ExtractPages returns per-page text for the pages selected by rangeStr,
// e.g. "3", "1-5" or "1,3,7-9". An empty range selects every page. Page
// numbers beyond the document are ignored.
func (e *Extractor) ExtractPages(path, rangeStr string) ([]PageText, error) {
	selected, err := parsePageRange(rangeStr)
	if err != nil {
		return nil, err
	}
	return e.extract(path, selected)
}

func (e *Extractor) extract(path string, selected []int) ([]PageText, error) {
	encrypted, err := IsEncrypted(path)
	if err != nil {
		return nil, err
	}
	if encrypted {
		return nil, fmt.Errorf("%w: %s", ErrEncrypted, path)
	}
	if err := api.ValidateFile(path, nil); err != nil {
		return nil, fmt.Errorf("validating %s: %w", path, err)
	}

	reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	totalPages := reader.NumPage()
	if len(selected) == 0 {
		for i := 1; i <= totalPages; i++ {
			selected = append(selected, i)
		}
	} else {
		valid := selected[:0]
		for _, number := range selected {
			if number >= 1 && number <= totalPages {
				valid = append(valid, number)
			}
		}
		selected = valid
	}

	pages := make([]PageText, 0, len(selected))
	for _, number := range selected {
		page := reader.Page(number)
		if page.V.IsNull() {
			continue
		}
		pages = append(pages, PageText{Number: number, Text: pageText(page)})
	}
	return pages, nil
}

// pageText extracts a page's text row by row, falling back to the plain-text
// walk when no row information is available.
func pageText(page pdf.Page) string {
	var b strings.Builder

	rows, err := page.GetTextByRow()
	if err == nil && len(rows) > 0 {
		for _, row := range rows {
			for i, text := range row.Content {
				if i > 0 {
					b.WriteString(" ")
				}
				b.WriteString(text.S)
			}
			b.WriteString("\n")
		}
		return strings.TrimRight(b.String(), "\n")
	}

	fonts := make(map[string]*pdf.Font)
	plain, _ := page.GetPlainText(fonts)
	return strings.TrimSpace(plain)
}

// parsePageRange expands a range expression like "1-5" or "1,3,7-9" into a
// list of page numbers. Empty input means all pages.
func parsePageRange(rangeStr string) ([]int, error) {
	if rangeStr == "" {
		return nil, nil
	}

	var pages []int
	for _, part := range strings.Split(rangeStr, ",") {
		tokenPages, err := parseRangeToken(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		pages = append(pages, tokenPages...)
	}
	return pages, nil
}

// parseRangeToken parses a single page token ("3") or a range token ("1-5").
func parseRangeToken(part string) ([]int, error) {
	if strings.Contains(part, "-") {
		rangeParts := strings.Split(part, "-")
		if len(rangeParts) != 2 {
			return nil, fmt.Errorf("invalid range format: %s", part)
		}
		start, err := strconv.Atoi(strings.TrimSpace(rangeParts[0]))
		if err != nil {
			return nil, fmt.Errorf("invalid start page: %s", rangeParts[0])
		}
		end, err := strconv.Atoi(strings.TrimSpace(rangeParts[1]))
		if err != nil {
			return nil, fmt.Errorf("invalid end page: %s", rangeParts[1])
		}
		if start > end {
			return nil, fmt.Errorf("start page %d greater than end page %d", start, end)
		}
		out := make([]int, 0, end-start+1)
		for i := start; i <= end; i++ {
			out = append(out, i)
		}
		return out, nil
	}
	page, err := strconv.Atoi(part)
	if err != nil {
		return nil, fmt.Errorf("invalid page number: %s", part)
	}
	return []int{page}, nil
}

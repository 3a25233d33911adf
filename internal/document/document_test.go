package document

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsSupported(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"notes.txt", true},
		{"README.md", true},
		{"report.pdf", true},
		{"REPORT.PDF", true},
		{"image.png", false},
		{"archive.tar.gz", false},
		{"noextension", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSupported(tt.path))
		})
	}
}

func TestReadText(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "sample.txt")
	require.NoError(t, os.WriteFile(path, []byte("Guten Morgen, wie geht es dir?\n"), 0o644))

	text, err := ReadText(path)
	require.NoError(t, err)
	assert.Equal(t, "Guten Morgen, wie geht es dir?\n", text)
}

func TestReadText_InvalidUTF8(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "binary.txt")
	require.NoError(t, os.WriteFile(path, []byte{0xff, 0xfe, 0x00, 0x41}, 0o644))

	_, err := ReadText(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not valid UTF-8")
}

func TestReadText_MissingFile(t *testing.T) {
	_, err := ReadText(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestRead_DispatchesByExtension(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "hello.md")
	require.NoError(t, os.WriteFile(path, []byte("# Bonjour\n"), 0o644))

	text, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, "# Bonjour\n", text)
}

func TestRead_UnsupportedExtension(t *testing.T) {
	_, err := Read("picture.png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")
	assert.Contains(t, err.Error(), ".pdf")
}

func TestParsePageRange(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []int
		wantErr  bool
	}{
		{name: "empty means all pages", input: "", expected: nil},
		{name: "single page", input: "3", expected: []int{3}},
		{name: "simple range", input: "1-4", expected: []int{1, 2, 3, 4}},
		{name: "comma separated", input: "1,3,5", expected: []int{1, 3, 5}},
		{name: "mixed tokens", input: "1,3-5,8", expected: []int{1, 3, 4, 5, 8}},
		{name: "spaces tolerated", input: " 2 , 4 - 5 ", expected: []int{2, 4, 5}},
		{name: "reversed range", input: "5-2", wantErr: true},
		{name: "garbage token", input: "abc", wantErr: true},
		{name: "bad range start", input: "x-3", wantErr: true},
		{name: "too many dashes", input: "1-2-3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pages, err := parsePageRange(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, pages)
		})
	}
}

func TestExtractFile_MissingFile(t *testing.T) {
	extractor := NewExtractor()

	_, err := extractor.ExtractFile(filepath.Join(t.TempDir(), "missing.pdf"))
	assert.Error(t, err)
}

func TestExtractFile_NotAPDF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fake.pdf")
	require.NoError(t, os.WriteFile(path, []byte("this is not a pdf"), 0o644))

	_, err := NewExtractor().ExtractFile(path)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrEncrypted))
}

func TestExtractPages_BadRange(t *testing.T) {
	_, err := NewExtractor().ExtractPages("whatever.pdf", "9-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "greater than end page")
}

func TestIsEncrypted_MissingFile(t *testing.T) {
	_, err := IsEncrypted(filepath.Join(t.TempDir(), "gone.pdf"))
	assert.Error(t, err)
}

// createTestPDF writes a minimal single-page PDF. It carries no embedded
// text, which is enough to exercise validation and the extraction path.
func createTestPDF(t *testing.T, path string) {
	t.Helper()
	pdfContent := `%PDF-1.4
1 0 obj
<<
/Type /Catalog
/Pages 2 0 R
>>
endobj

2 0 obj
<<
/Type /Pages
/Kids [3 0 R]
/Count 1
>>
endobj

3 0 obj
<<
/Type /Page
/Parent 2 0 R
/MediaBox [0 0 612 792]
>>
endobj

xref
0 4
0000000000 65535 f
0000000009 00000 n
0000000058 00000 n
0000000115 00000 n
trailer
<<
/Size 4
/Root 1 0 R
>>
startxref
186
%%EOF`

	err := os.WriteFile(path, []byte(pdfContent), 0o644)
	require.NoError(t, err)
}

func TestExtractFile_MinimalPDF(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	path := filepath.Join(t.TempDir(), "minimal.pdf")
	createTestPDF(t, path)

	text, err := NewExtractor().ExtractFile(path)
	if err != nil {
		// Hand-written fixtures are often rejected by strict validation.
		t.Logf("extraction failed (expected for minimal test PDF): %v", err)
		return
	}
	assert.Empty(t, text)
}

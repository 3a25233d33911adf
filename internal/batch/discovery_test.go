package batch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/MeKo-Tech/langtab/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverFiles_EmptyArgs(t *testing.T) {
	files, err := discoverFiles([]string{}, false, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestDiscoverFiles_SingleFiles(t *testing.T) {
	tempDir := testutil.CreateTempDir(t)

	txtFile := testutil.WriteTextFile(t, tempDir, "notes.txt", "hello")
	mdFile := testutil.WriteTextFile(t, tempDir, "readme.md", "# hola")

	files, err := discoverFiles([]string{txtFile, mdFile}, false, nil, nil)
	require.NoError(t, err)
	assert.Len(t, files, 2)
	assert.Contains(t, files, txtFile)
	assert.Contains(t, files, mdFile)
}

func TestDiscoverFiles_DirectorySkipsUnsupported(t *testing.T) {
	tempDir := testutil.CreateTempDir(t)

	txtFile := testutil.WriteTextFile(t, tempDir, "doc.txt", "text")
	mdFile := testutil.WriteTextFile(t, tempDir, "doc.md", "markdown")
	pngFile := filepath.Join(tempDir, "image.png")
	require.NoError(t, os.WriteFile(pngFile, []byte("fake png"), 0o600))

	files, err := discoverFiles([]string{tempDir}, false, nil, nil)
	require.NoError(t, err)
	assert.Len(t, files, 2)
	assert.Contains(t, files, txtFile)
	assert.Contains(t, files, mdFile)
	assert.NotContains(t, files, pngFile)
}

func TestDiscoverFiles_Recursive(t *testing.T) {
	tempDir := testutil.CreateTempDir(t)
	subDir := filepath.Join(tempDir, "subdir")
	require.NoError(t, os.MkdirAll(subDir, 0o750))

	rootFile := testutil.WriteTextFile(t, tempDir, "root.txt", "root")
	subFile := testutil.WriteTextFile(t, subDir, "sub.txt", "sub")

	files, err := discoverFiles([]string{tempDir}, true, nil, nil)
	require.NoError(t, err)
	assert.Len(t, files, 2)
	assert.Contains(t, files, rootFile)
	assert.Contains(t, files, subFile)
}

func TestDiscoverFiles_NonRecursive(t *testing.T) {
	tempDir := testutil.CreateTempDir(t)
	subDir := filepath.Join(tempDir, "subdir")
	require.NoError(t, os.MkdirAll(subDir, 0o750))

	rootFile := testutil.WriteTextFile(t, tempDir, "root.txt", "root")
	subFile := testutil.WriteTextFile(t, subDir, "sub.txt", "sub")

	files, err := discoverFiles([]string{tempDir}, false, nil, nil)
	require.NoError(t, err)
	assert.Len(t, files, 1)
	assert.Contains(t, files, rootFile)
	assert.NotContains(t, files, subFile)
}

func TestDiscoverFiles_IncludeExcludePatterns(t *testing.T) {
	tempDir := testutil.CreateTempDir(t)

	keepA := testutil.WriteTextFile(t, tempDir, "keep_a.txt", "a")
	keepB := testutil.WriteTextFile(t, tempDir, "keep_b.txt", "b")
	skipped := testutil.WriteTextFile(t, tempDir, "skip_this.txt", "c")

	files, err := discoverFiles([]string{tempDir}, false, []string{"keep_*.txt"}, []string{"*skip*"})
	require.NoError(t, err)
	assert.Len(t, files, 2)
	assert.Contains(t, files, keepA)
	assert.Contains(t, files, keepB)
	assert.NotContains(t, files, skipped)
}

func TestDiscoverFiles_NonExistentPath(t *testing.T) {
	files, err := discoverFiles([]string{"/nonexistent/directory"}, false, nil, nil)
	require.Error(t, err)
	assert.Nil(t, files)
	assert.Contains(t, err.Error(), "cannot access")
}

func TestDiscoverInDirectory_EmptyDirectory(t *testing.T) {
	tempDir := testutil.CreateTempDir(t)

	files, err := discoverInDirectory(tempDir, false, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestShouldIncludeFile(t *testing.T) {
	testCases := []struct {
		name     string
		path     string
		include  []string
		exclude  []string
		expected bool
	}{
		{"no patterns includes all", "a.txt", nil, nil, true},
		{"include match", "a.txt", []string{"*.txt"}, nil, true},
		{"include miss", "a.md", []string{"*.txt"}, nil, false},
		{"exclude wins over include", "draft_a.txt", []string{"*.txt"}, []string{"draft_*"}, false},
		{"exclude only", "backup.txt", nil, []string{"backup.*"}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, shouldIncludeFile(tc.path, tc.include, tc.exclude))
		})
	}
}

func TestMatchesAnyPattern(t *testing.T) {
	testCases := []struct {
		filename string
		patterns []string
		expected bool
	}{
		{"test.txt", []string{"*.txt"}, true},
		{"test.md", []string{"*.txt"}, false},
		{"test.TXT", []string{"*.txt"}, false}, // Case sensitive
		{"notes.md", []string{"*.txt", "*.md"}, true},
		{"anything", nil, false},
	}

	for _, tc := range testCases {
		result := matchesAnyPattern(tc.filename, tc.patterns)
		assert.Equal(t, tc.expected, result, "filename=%s, patterns=%v", tc.filename, tc.patterns)
	}
}

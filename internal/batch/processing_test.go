package batch

import (
	"context"
	"testing"

	"github.com/MeKo-Tech/langtab/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessFile_TextFile(t *testing.T) {
	tempDir := testutil.CreateTempDir(t)
	path := testutil.WriteTextFile(t, tempDir, "english.txt", testutil.SampleText(t, "en"))

	detector, err := buildDetector(&Config{})
	require.NoError(t, err)

	result := processFile(detector, path, &Config{})
	require.NoError(t, result.Err)
	assert.Equal(t, path, result.Path)
	require.NotEmpty(t, result.Matches)
	assert.Equal(t, "en", result.Matches[0].Language)
	assert.Positive(t, result.Duration)
}

func TestProcessFile_CandidatesAndPriors(t *testing.T) {
	tempDir := testutil.CreateTempDir(t)
	path := testutil.WriteTextFile(t, tempDir, "gracias.txt", "gracias por todo")

	detector, err := buildDetector(&Config{})
	require.NoError(t, err)

	config := &Config{
		Candidates: []string{"es", "pt"},
		Priors:     map[string]float64{"es": 0.6, "pt": 0.4},
	}
	result := processFile(detector, path, config)
	require.NoError(t, result.Err)
	require.Len(t, result.Matches, 2)
	assert.Equal(t, "es", result.Matches[0].Language)
	assert.InDelta(t, 0.4777, result.Matches[0].Score, 1e-3)
	assert.Equal(t, "pt", result.Matches[1].Language)
}

func TestProcessFile_InvalidUTF8(t *testing.T) {
	tempDir := testutil.CreateTempDir(t)
	path := testutil.WriteTextFile(t, tempDir, "binary.txt", string([]byte{0xff, 0xfe, 0x41}))

	detector, err := buildDetector(&Config{})
	require.NoError(t, err)

	result := processFile(detector, path, &Config{})
	require.Error(t, result.Err)
	assert.Empty(t, result.Matches)
	assert.Positive(t, result.Duration)
}

func TestProcessFilesParallel_OrderedResults(t *testing.T) {
	tempDir := testutil.CreateTempDir(t)
	paths := testutil.WriteSampleFiles(t, tempDir, "en", "fr", "de", "ru")

	detector, err := buildDetector(&Config{})
	require.NoError(t, err)

	config := &Config{Workers: 3}
	results, workers, err := processFilesParallel(context.Background(), detector, paths, config, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, workers)
	require.Len(t, results, len(paths))

	expected := []string{"en", "fr", "de", "ru"}
	for i, result := range results {
		assert.Equal(t, paths[i], result.Path, "results must keep input order")
		require.NoError(t, result.Err)
		require.NotEmpty(t, result.Matches)
		assert.Equal(t, expected[i], result.Matches[0].Language)
	}
}

func TestProcessFilesParallel_WorkerClamp(t *testing.T) {
	tempDir := testutil.CreateTempDir(t)
	paths := testutil.WriteSampleFiles(t, tempDir, "en", "fr")

	detector, err := buildDetector(&Config{})
	require.NoError(t, err)

	_, workers, err := processFilesParallel(context.Background(), detector, paths, &Config{Workers: 16}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, workers)
}

func TestProcessFilesParallel_ContinueOnError(t *testing.T) {
	tempDir := testutil.CreateTempDir(t)
	good := testutil.WriteTextFile(t, tempDir, "good.txt", testutil.SampleText(t, "en"))
	bad := testutil.WriteTextFile(t, tempDir, "bad.txt", string([]byte{0xff, 0xfe}))

	detector, err := buildDetector(&Config{})
	require.NoError(t, err)

	config := &Config{Workers: 2, ContinueOnError: true}
	results, _, err := processFilesParallel(context.Background(), detector, []string{good, bad}, config, nil)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.NoError(t, results[0].Err)
	assert.Error(t, results[1].Err)
}

func TestProcessFilesParallel_FailFast(t *testing.T) {
	tempDir := testutil.CreateTempDir(t)
	good := testutil.WriteTextFile(t, tempDir, "good.txt", testutil.SampleText(t, "en"))
	bad := testutil.WriteTextFile(t, tempDir, "bad.txt", string([]byte{0xff, 0xfe}))

	detector, err := buildDetector(&Config{})
	require.NoError(t, err)

	config := &Config{Workers: 2}
	results, _, err := processFilesParallel(context.Background(), detector, []string{good, bad}, config, nil)
	require.Error(t, err)
	assert.Nil(t, results)
	assert.Contains(t, err.Error(), "bad.txt")
}

func TestProcessFilesParallel_ContextCancelled(t *testing.T) {
	tempDir := testutil.CreateTempDir(t)
	paths := testutil.WriteSampleFiles(t, tempDir, "en", "fr", "de")

	detector, err := buildDetector(&Config{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err = processFilesParallel(ctx, detector, paths, &Config{Workers: 2}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

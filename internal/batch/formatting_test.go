package batch

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFileResults() []FileResult {
	return []FileResult{
		{
			Path: "/data/greeting.txt",
			Matches: []RankedMatch{
				{Language: "en", Score: 0.448021},
				{Language: "pt", Score: 0.14},
			},
		},
		{
			Path:    "/data/empty.txt",
			Matches: []RankedMatch{},
		},
		{
			Path: "/data/broken.txt",
			Err:  errors.New("not valid UTF-8"),
		},
	}
}

func TestFormatResults_Text(t *testing.T) {
	output, err := formatResults(sampleFileResults(), "text", 4)
	require.NoError(t, err)

	assert.Contains(t, output, "# /data/greeting.txt")
	assert.Contains(t, output, "en\t0.4480")
	assert.Contains(t, output, "pt\t0.1400")
	assert.Contains(t, output, "no language identified")
	assert.Contains(t, output, "error: not valid UTF-8")
}

func TestFormatResults_TextPrecision(t *testing.T) {
	output, err := formatResults(sampleFileResults(), "text", 2)
	require.NoError(t, err)

	assert.Contains(t, output, "en\t0.45")
	assert.NotContains(t, output, "0.4480")
}

func TestFormatResults_JSON(t *testing.T) {
	output, err := formatResults(sampleFileResults(), "json", 4)
	require.NoError(t, err)

	assert.Contains(t, output, `"file": "/data/greeting.txt"`)
	assert.Contains(t, output, `"language": "en"`)
	assert.Contains(t, output, `"score": 0.448`)
	assert.Contains(t, output, `"error": "not valid UTF-8"`)

	// Must round-trip as valid JSON
	var decoded struct {
		Files []struct {
			File    string `json:"file"`
			Matches []struct {
				Language string  `json:"language"`
				Score    float64 `json:"score"`
			} `json:"matches"`
			Error string `json:"error"`
		} `json:"files"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &decoded))
	require.Len(t, decoded.Files, 3)
	assert.Equal(t, "en", decoded.Files[0].Matches[0].Language)
	assert.InDelta(t, 0.448, decoded.Files[0].Matches[0].Score, 1e-9)
	assert.Empty(t, decoded.Files[1].Matches)
	assert.Equal(t, "not valid UTF-8", decoded.Files[2].Error)
}

func TestFormatResults_CSV(t *testing.T) {
	output, err := formatResults(sampleFileResults(), "csv", 4)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(output), "\n")
	require.Len(t, lines, 5) // header + 2 matches + empty row + error row

	assert.Equal(t, "file,rank,language,score,error", lines[0])
	assert.Equal(t, "/data/greeting.txt,1,en,0.4480,", lines[1])
	assert.Equal(t, "/data/greeting.txt,2,pt,0.1400,", lines[2])
	assert.Equal(t, "/data/empty.txt,0,,,", lines[3])
	assert.Equal(t, "/data/broken.txt,0,,,not valid UTF-8", lines[4])
}

func TestFormatResults_UnknownFormatFallsBackToText(t *testing.T) {
	output, err := formatResults(sampleFileResults(), "whatever", 4)
	require.NoError(t, err)
	assert.Contains(t, output, "# /data/greeting.txt")
}

func TestFormatResults_Empty(t *testing.T) {
	output, err := formatResults(nil, "text", 4)
	require.NoError(t, err)
	assert.Empty(t, output)
}

func TestFormatScore(t *testing.T) {
	assert.Equal(t, "0.4480", formatScore(0.448021, 4))
	assert.Equal(t, "0.45", formatScore(0.448021, 2))
	assert.Equal(t, "0", formatScore(0.448021, -1))
	assert.Equal(t, "1.000", formatScore(0.9999, 3))
}

func TestRoundScore(t *testing.T) {
	assert.InDelta(t, 0.448, roundScore(0.448021, 3), 1e-12)
	assert.InDelta(t, 0.448021, roundScore(0.448021, -1), 1e-12)
	assert.InDelta(t, 0.45, roundScore(0.448021, 2), 1e-12)
}

package batch

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// formatResults renders the per-file results in the requested format.
func formatResults(files []FileResult, format string, precision int) (string, error) {
	switch format {
	case "json":
		return formatJSON(files, precision)
	case "csv":
		return formatCSV(files, precision)
	default: // text
		return formatText(files, precision)
	}
}

// jsonFile mirrors FileResult with the error flattened to a string.
type jsonFile struct {
	File    string      `json:"file"`
	Matches []jsonMatch `json:"matches,omitempty"`
	Error   string      `json:"error,omitempty"`
}

type jsonMatch struct {
	Language string  `json:"language"`
	Score    float64 `json:"score"`
}

// formatJSON formats results as JSON.
func formatJSON(files []FileResult, precision int) (string, error) {
	batchResult := struct {
		Files []jsonFile `json:"files"`
	}{
		Files: make([]jsonFile, len(files)),
	}

	for i, file := range files {
		entry := jsonFile{File: file.Path}
		if file.Err != nil {
			entry.Error = file.Err.Error()
		}
		for _, match := range file.Matches {
			entry.Matches = append(entry.Matches, jsonMatch{
				Language: match.Language,
				Score:    roundScore(match.Score, precision),
			})
		}
		batchResult.Files[i] = entry
	}

	bts, err := json.MarshalIndent(batchResult, "", "  ")
	return string(bts), err
}

// formatCSV formats results as CSV.
func formatCSV(files []FileResult, precision int) (string, error) {
	var csvData [][]string
	// Header
	csvData = append(csvData, []string{"file", "rank", "language", "score", "error"})

	for _, file := range files {
		switch {
		case file.Err != nil:
			csvData = append(csvData, []string{file.Path, "0", "", "", file.Err.Error()})
		case len(file.Matches) == 0:
			// Add empty row for files with no matches
			csvData = append(csvData, []string{file.Path, "0", "", "", ""})
		default:
			for rank, match := range file.Matches {
				csvData = append(csvData, []string{
					file.Path,
					strconv.Itoa(rank + 1),
					match.Language,
					formatScore(match.Score, precision),
					"",
				})
			}
		}
	}

	var output strings.Builder
	writer := csv.NewWriter(&output)
	for _, row := range csvData {
		if err := writer.Write(row); err != nil {
			return "", err
		}
	}
	writer.Flush()
	return output.String(), nil
}

// formatText formats results as plain text.
func formatText(files []FileResult, precision int) (string, error) {
	var output strings.Builder
	for i, file := range files {
		if i > 0 {
			output.WriteString("\n")
		}
		output.WriteString(fmt.Sprintf("# %s\n", file.Path))
		if file.Err != nil {
			output.WriteString(fmt.Sprintf("error: %v\n", file.Err))
			continue
		}
		if len(file.Matches) == 0 {
			output.WriteString("no language identified\n")
			continue
		}
		for _, match := range file.Matches {
			output.WriteString(fmt.Sprintf("%s\t%s\n", match.Language, formatScore(match.Score, precision)))
		}
	}
	return output.String(), nil
}

// formatScore renders a score with the configured number of decimals.
func formatScore(score float64, precision int) string {
	if precision < 0 {
		precision = 0
	}
	return strconv.FormatFloat(score, 'f', precision, 64)
}

// roundScore rounds a score to the configured number of decimals for JSON
// output, keeping serialized values stable across runs.
func roundScore(score float64, precision int) float64 {
	if precision < 0 {
		return score
	}
	factor := math.Pow10(precision)
	return math.Round(score*factor) / factor
}

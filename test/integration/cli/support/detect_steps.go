package support

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
)

// guess is one parsed "<code> <score>" line of plain text detect output.
type guess struct {
	Language string
	Score    float64
}

var guessCodePattern = regexp.MustCompile(`^[a-z]{2,3}$`)

// parseGuessLines extracts ranked guesses from plain text output, tolerating
// log or status lines around them.
func (testCtx *TestContext) parseGuessLines() []guess {
	var guesses []guess
	for _, line := range strings.Split(testCtx.LastOutput, "\n") {
		fields := strings.Fields(line)
		if len(fields) != 2 || !guessCodePattern.MatchString(fields[0]) {
			continue
		}
		score, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			continue
		}
		guesses = append(guesses, guess{Language: fields[0], Score: score})
	}
	return guesses
}

// theTopGuessShouldBe verifies the first ranked guess in text output.
func (testCtx *TestContext) theTopGuessShouldBe(lang string) error {
	guesses := testCtx.parseGuessLines()
	if len(guesses) == 0 {
		return fmt.Errorf("no ranked guesses found in output:\n%s", testCtx.LastOutput)
	}
	if guesses[0].Language != lang {
		return fmt.Errorf("expected top guess %q, got %q:\n%s",
			lang, guesses[0].Language, testCtx.LastOutput)
	}
	return nil
}

// theGuessesShouldBeSortedByScore verifies ranked guesses descend by score.
func (testCtx *TestContext) theGuessesShouldBeSortedByScore() error {
	guesses := testCtx.parseGuessLines()
	if len(guesses) == 0 {
		return fmt.Errorf("no ranked guesses found in output:\n%s", testCtx.LastOutput)
	}
	for i := 1; i < len(guesses); i++ {
		if guesses[i].Score > guesses[i-1].Score {
			return fmt.Errorf("guesses are not sorted by score: %s %.4f follows %s %.4f",
				guesses[i].Language, guesses[i].Score, guesses[i-1].Language, guesses[i-1].Score)
		}
	}
	return nil
}

// theJSONMatchesShouldListFirst verifies the first match in JSON output.
func (testCtx *TestContext) theJSONMatchesShouldListFirst(lang string) error {
	payload, err := testCtx.jsonPayload()
	if err != nil {
		return err
	}

	var parsed struct {
		Matches []struct {
			Language string  `json:"language"`
			Score    float64 `json:"score"`
		} `json:"matches"`
	}
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		return fmt.Errorf("failed to parse detection JSON: %w\noutput: %s", err, testCtx.LastOutput)
	}
	if len(parsed.Matches) == 0 {
		return fmt.Errorf("no matches in JSON output:\n%s", testCtx.LastOutput)
	}
	if parsed.Matches[0].Language != lang {
		return fmt.Errorf("expected first match %q, got %q", lang, parsed.Matches[0].Language)
	}
	return nil
}

// theLanguageListShouldInclude verifies the languages JSON output includes a
// language code.
func (testCtx *TestContext) theLanguageListShouldInclude(code string) error {
	payload, err := testCtx.jsonPayload()
	if err != nil {
		return err
	}

	var entries []struct {
		Language string `json:"language"`
	}
	if err := json.Unmarshal([]byte(payload), &entries); err != nil {
		return fmt.Errorf("failed to parse language list JSON: %w\noutput: %s", err, testCtx.LastOutput)
	}

	for _, entry := range entries {
		if entry.Language == code {
			return nil
		}
	}
	return fmt.Errorf("language %q not found in list:\n%s", code, testCtx.LastOutput)
}

// batchReport mirrors the JSON report written by the batch command.
type batchReport struct {
	Files []struct {
		File    string `json:"file"`
		Error   string `json:"error"`
		Matches []struct {
			Language string  `json:"language"`
			Score    float64 `json:"score"`
		} `json:"matches"`
	} `json:"files"`
}

func (testCtx *TestContext) parseBatchReport() (*batchReport, error) {
	payload, err := testCtx.jsonPayload()
	if err != nil {
		return nil, err
	}

	var report batchReport
	if err := json.Unmarshal([]byte(payload), &report); err != nil {
		return nil, fmt.Errorf("failed to parse batch JSON: %w\noutput: %s", err, testCtx.LastOutput)
	}
	return &report, nil
}

// theBatchReportShouldIdentifyAs verifies the top guess for one file of a
// batch run.
func (testCtx *TestContext) theBatchReportShouldIdentifyAs(file, lang string) error {
	report, err := testCtx.parseBatchReport()
	if err != nil {
		return err
	}

	for _, entry := range report.Files {
		if filepath.Base(entry.File) != file {
			continue
		}
		if entry.Error != "" {
			return fmt.Errorf("file %s failed: %s", file, entry.Error)
		}
		if len(entry.Matches) == 0 {
			return fmt.Errorf("file %s has no matches", file)
		}
		if got := entry.Matches[0].Language; got != lang {
			return fmt.Errorf("expected %s to be identified as %q, got %q", file, lang, got)
		}
		return nil
	}
	return fmt.Errorf("file %s not found in batch report:\n%s", file, testCtx.LastOutput)
}

// theBatchReportShouldCoverFiles verifies the number of files in a batch run.
func (testCtx *TestContext) theBatchReportShouldCoverFiles(count int) error {
	report, err := testCtx.parseBatchReport()
	if err != nil {
		return err
	}

	if len(report.Files) != count {
		return fmt.Errorf("expected batch report to cover %d files, got %d:\n%s",
			count, len(report.Files), testCtx.LastOutput)
	}
	return nil
}

// RegisterDetectSteps registers language identification step definitions.
func (testCtx *TestContext) RegisterDetectSteps(sc *godog.ScenarioContext) {
	sc.Step(`^the top guess should be "([^"]*)"$`, testCtx.theTopGuessShouldBe)
	sc.Step(`^the guesses should be sorted by score$`, testCtx.theGuessesShouldBeSortedByScore)
	sc.Step(`^the JSON matches should list "([^"]*)" first$`, testCtx.theJSONMatchesShouldListFirst)
	sc.Step(`^the language list should include "([^"]*)"$`, testCtx.theLanguageListShouldInclude)
	sc.Step(`^the batch report should identify "([^"]*)" as "([^"]*)"$`, testCtx.theBatchReportShouldIdentifyAs)
	sc.Step(`^the batch report should cover (\d+) files$`, testCtx.theBatchReportShouldCoverFiles)
}

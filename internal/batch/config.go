package batch

import (
	"fmt"
	"os"
	"time"
)

// Config holds all configuration for batch processing.
type Config struct {
	// Detection settings
	DataDir       string
	FreqDir       string
	Candidates    []string
	Priors        map[string]float64
	TopK          int
	PriorWeight   float64
	FreqWeight    float64
	CharWeight    float64
	MaxCandidates int

	// Output settings
	Format         string
	OutputFile     string
	ScorePrecision int

	// Parallel processing settings
	Workers int

	// File discovery settings
	Recursive       bool
	IncludePatterns []string
	ExcludePatterns []string

	// Error handling: record per-file failures instead of aborting the run.
	ContinueOnError bool

	// Progress settings
	ShowProgress     bool
	Quiet            bool
	ShowStats        bool
	ProgressInterval time.Duration
}

// FileResult holds the detection outcome for a single file.
type FileResult struct {
	Path     string        `json:"file"`
	Matches  []RankedMatch `json:"matches,omitempty"`
	Err      error         `json:"-"`
	Duration time.Duration `json:"duration_ns"`
}

// RankedMatch is one language guess for a file.
type RankedMatch struct {
	Language string  `json:"language"`
	Score    float64 `json:"score"`
}

// Result holds the result of a batch run.
type Result struct {
	Files       []FileResult
	Duration    time.Duration
	WorkerCount int
}

// FormatResults formats the batch results in the specified format.
func (r *Result) FormatResults(format string, precision int) (string, error) {
	return formatResults(r.Files, format, precision)
}

// SaveResults writes the formatted results to a file or stdout.
func (r *Result) SaveResults(format, outputFile string, precision int, quiet bool) error {
	output, err := r.FormatResults(format, precision)
	if err != nil {
		return fmt.Errorf("failed to format results: %w", err)
	}

	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(output), 0o600); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		if !quiet {
			_, _ = fmt.Fprintf(os.Stdout, "Results written to %s\n", outputFile)
		}
	} else {
		_, _ = fmt.Fprint(os.Stdout, output)
	}

	return nil
}

// PrintStats prints processing statistics.
func (r *Result) PrintStats(quiet bool) {
	if quiet {
		return
	}
	stats := CalculateStats(r.Files, r.Duration, r.WorkerCount)
	_, _ = fmt.Fprintf(os.Stdout, "\nProcessing Statistics:\n")
	_, _ = fmt.Fprintf(os.Stdout, "  Total files: %d\n", stats.TotalFiles)
	_, _ = fmt.Fprintf(os.Stdout, "  Processed: %d\n", stats.ProcessedFiles)
	_, _ = fmt.Fprintf(os.Stdout, "  Failed: %d\n", stats.FailedFiles)
	_, _ = fmt.Fprintf(os.Stdout, "  Workers: %d\n", stats.WorkerCount)
	_, _ = fmt.Fprintf(os.Stdout, "  Duration: %v\n", stats.TotalDuration.Round(time.Millisecond))
	_, _ = fmt.Fprintf(os.Stdout, "  Avg per file: %v\n", stats.AveragePerFile.Round(time.Millisecond))
	_, _ = fmt.Fprintf(os.Stdout, "  Throughput: %.1f files/sec\n", stats.ThroughputPerSec)
	_, _ = fmt.Fprintf(os.Stdout, "  Memory: %s\n", stats.Memory.String())
}

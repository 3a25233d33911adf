// Package batch identifies the language of many files in one run: it
// discovers text and PDF inputs, fans them out to a worker pool, and formats
// the ranked guesses as text, JSON or CSV.
package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/MeKo-Tech/langtab/internal/detect"
)

// Process runs language detection over the files and directories in paths
// using the given configuration.
func Process(ctx context.Context, paths []string, config *Config) (*Result, error) {
	files, err := discoverFiles(paths, config.Recursive, config.IncludePatterns, config.ExcludePatterns)
	if err != nil {
		return nil, fmt.Errorf("failed to discover input files: %w", err)
	}

	if len(files) == 0 {
		return nil, errors.New("no input files found")
	}

	var progress ProgressCallback
	if config.ShowProgress && !config.Quiet {
		progress = NewConsoleProgressCallback(os.Stderr, "Detecting: ").
			WithUpdateInterval(config.ProgressInterval)
	}

	detector, err := buildDetector(config)
	if err != nil {
		return nil, fmt.Errorf("failed to build detector: %w", err)
	}

	startTime := time.Now()
	results, workers, err := processFilesParallel(ctx, detector, files, config, progress)
	duration := time.Since(startTime)

	if err != nil {
		return nil, fmt.Errorf("batch processing failed: %w", err)
	}

	return &Result{
		Files:       results,
		Duration:    duration,
		WorkerCount: workers,
	}, nil
}

// buildDetector creates a detector from the batch configuration. Zero-valued
// settings keep the detector defaults.
func buildDetector(config *Config) (*detect.Detector, error) {
	return detect.NewBuilder().
		WithDataDir(config.DataDir).
		WithFreqDir(config.FreqDir).
		WithTopK(config.TopK).
		WithMaxCandidates(config.MaxCandidates).
		WithWeights(orKeep(config.PriorWeight), orKeep(config.FreqWeight), orKeep(config.CharWeight)).
		Build()
}

// orKeep maps an unset weight to the builder's keep-current sentinel.
func orKeep(weight float64) float64 {
	if weight == 0 {
		return -1
	}
	return weight
}

package batch

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/MeKo-Tech/langtab/internal/common"
	"github.com/MeKo-Tech/langtab/internal/detect"
	"github.com/MeKo-Tech/langtab/internal/document"
)

// fileJob represents a single file detection job.
type fileJob struct {
	index int
	path  string
}

// fileOutcome carries one finished job back to the collector.
type fileOutcome struct {
	index  int
	result FileResult
}

// processFilesParallel runs detection over files using a worker pool and
// returns results in input order along with the effective worker count.
func processFilesParallel(
	ctx context.Context,
	detector *detect.Detector,
	files []string,
	config *Config,
	progress ProgressCallback,
) ([]FileResult, int, error) {
	workers := config.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(files) {
		workers = len(files)
	}

	if progress != nil {
		progress.OnStart(len(files))
		defer progress.OnComplete()
	}

	jobs := make(chan fileJob, len(files))
	outcomes := make(chan fileOutcome, len(files))

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go worker(ctx, detector, config, jobs, outcomes, &wg)
	}

	go func() {
		defer close(jobs)
		for i, path := range files {
			select {
			case jobs <- fileJob{index: i, path: path}:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	results := make([]FileResult, len(files))
	processed := 0
	for outcome := range outcomes {
		results[outcome.index] = outcome.result
		processed++

		if progress != nil {
			progress.OnProgress(processed, len(files))
			if outcome.result.Err != nil {
				progress.OnError(outcome.index, outcome.result.Err)
			}
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, workers, err
	}

	if !config.ContinueOnError {
		for _, result := range results {
			if result.Err != nil {
				return nil, workers, fmt.Errorf("%s: %w", result.Path, result.Err)
			}
		}
	}

	return results, workers, nil
}

// worker consumes file jobs until the channel closes or the context ends.
func worker(
	ctx context.Context,
	detector *detect.Detector,
	config *Config,
	jobs <-chan fileJob,
	outcomes chan<- fileOutcome,
	wg *sync.WaitGroup,
) {
	defer wg.Done()

	for {
		select {
		case job, ok := <-jobs:
			if !ok {
				return
			}

			result := processFile(detector, job.path, config)

			select {
			case outcomes <- fileOutcome{index: job.index, result: result}:
			case <-ctx.Done():
				return
			}

		case <-ctx.Done():
			return
		}
	}
}

// processFile reads a single file and runs language detection on its content.
func processFile(detector *detect.Detector, path string, config *Config) FileResult {
	timer := common.NewNamedTimer(path)

	text, err := document.Read(path)
	if err != nil {
		return FileResult{Path: path, Err: err, Duration: timer.Stop()}
	}

	matches, err := detector.Detect(text, detect.Options{
		Candidates: config.Candidates,
		Priors:     config.Priors,
		TopK:       config.TopK,
	})
	if err != nil {
		return FileResult{Path: path, Err: err, Duration: timer.Stop()}
	}

	ranked := make([]RankedMatch, 0, len(matches))
	for _, match := range matches {
		ranked = append(ranked, RankedMatch{Language: match.Language, Score: match.Score})
	}

	return FileResult{Path: path, Matches: ranked, Duration: timer.Stop()}
}

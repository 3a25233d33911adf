package compare

import (
	"context"
	"errors"
	"time"

	"github.com/MeKo-Tech/langtab/internal/common"
)

// EngineReport aggregates one engine's results over a sample set.
type EngineReport struct {
	Name     string        `json:"name"`
	Correct  int           `json:"correct"`
	Total    int           `json:"total"`
	Duration time.Duration `json:"duration_ns"`
}

// Accuracy returns the fraction of samples the engine identified correctly.
func (r EngineReport) Accuracy() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Total)
}

// AveragePerSample returns the mean identification time per sample.
func (r EngineReport) AveragePerSample() time.Duration {
	if r.Total == 0 {
		return 0
	}
	return r.Duration / time.Duration(r.Total)
}

// Row holds every engine's answer for one sample, parallel to Report.Engines.
type Row struct {
	Sample  Sample  `json:"sample"`
	Guesses []Guess `json:"guesses"`
}

// Disagreement reports whether the engines answered differently on this row,
// counting "no answer" as an answer of its own.
func (r Row) Disagreement() bool {
	for _, guess := range r.Guesses[1:] {
		if guess.Language != r.Guesses[0].Language {
			return true
		}
	}
	return false
}

// Report is the outcome of running every engine over every sample.
type Report struct {
	Engines []EngineReport `json:"engines"`
	Rows    []Row          `json:"rows"`

	// Agreement[i][j] counts samples where engines i and j returned the
	// same code. The diagonal equals the sample count.
	Agreement [][]int `json:"agreement"`
}

// Runner executes a fixed set of engines over labeled samples.
type Runner struct {
	engines []Engine
}

// NewRunner creates a Runner over the given engines.
func NewRunner(engines ...Engine) *Runner {
	return &Runner{engines: engines}
}

// Run identifies every sample with every engine and aggregates accuracy,
// timing, and pairwise agreement. The context is checked between samples.
func (r *Runner) Run(ctx context.Context, samples []Sample) (*Report, error) {
	if len(r.engines) == 0 {
		return nil, errors.New("no engines configured")
	}
	if len(samples) == 0 {
		return nil, errors.New("no samples provided")
	}

	report := &Report{
		Engines:   make([]EngineReport, len(r.engines)),
		Rows:      make([]Row, 0, len(samples)),
		Agreement: make([][]int, len(r.engines)),
	}
	for i, engine := range r.engines {
		report.Engines[i] = EngineReport{Name: engine.Name()}
		report.Agreement[i] = make([]int, len(r.engines))
	}

	for _, sample := range samples {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		row := Row{Sample: sample, Guesses: make([]Guess, len(r.engines))}
		for i, engine := range r.engines {
			timer := common.NewTimer()
			row.Guesses[i] = engine.Identify(sample.Text)
			report.Engines[i].Duration += timer.Stop()

			report.Engines[i].Total++
			if row.Guesses[i].Language == sample.Language {
				report.Engines[i].Correct++
			}
		}

		for i := range r.engines {
			for j := range r.engines {
				if row.Guesses[i].Language == row.Guesses[j].Language {
					report.Agreement[i][j]++
				}
			}
		}

		report.Rows = append(report.Rows, row)
	}

	return report, nil
}

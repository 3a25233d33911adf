package compare

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEngine struct {
	name    string
	answers map[string]Guess
}

func (s *stubEngine) Name() string { return s.name }

func (s *stubEngine) Identify(text string) Guess { return s.answers[text] }

func stubSamples() []Sample {
	return []Sample{
		{Language: "en", Text: "hello world"},
		{Language: "fr", Text: "bonjour"},
		{Language: "de", Text: "hallo"},
	}
}

func stubRunner() *Runner {
	alpha := &stubEngine{name: "alpha", answers: map[string]Guess{
		"hello world": {Language: "en", Confidence: 0.9},
		"bonjour":     {Language: "fr", Confidence: 0.8},
		"hallo":       {Language: "de", Confidence: 0.7},
	}}
	beta := &stubEngine{name: "beta", answers: map[string]Guess{
		"hello world": {Language: "en", Confidence: 0.5},
		"bonjour":     {Language: "en", Confidence: 0.4},
	}}
	return NewRunner(alpha, beta)
}

func TestRunner_Run(t *testing.T) {
	report, err := stubRunner().Run(context.Background(), stubSamples())
	require.NoError(t, err)

	require.Len(t, report.Engines, 2)
	assert.Equal(t, "alpha", report.Engines[0].Name)
	assert.Equal(t, 3, report.Engines[0].Correct)
	assert.Equal(t, 3, report.Engines[0].Total)
	assert.InDelta(t, 1.0, report.Engines[0].Accuracy(), 1e-9)

	// beta answers en for the first two samples and nothing for the third.
	assert.Equal(t, "beta", report.Engines[1].Name)
	assert.Equal(t, 1, report.Engines[1].Correct)
	assert.InDelta(t, 1.0/3.0, report.Engines[1].Accuracy(), 1e-9)

	require.Len(t, report.Rows, 3)
	assert.False(t, report.Rows[0].Disagreement())
	assert.True(t, report.Rows[1].Disagreement())
	assert.True(t, report.Rows[2].Disagreement())
}

func TestRunner_Run_Agreement(t *testing.T) {
	report, err := stubRunner().Run(context.Background(), stubSamples())
	require.NoError(t, err)

	// Diagonal cells count every sample.
	assert.Equal(t, 3, report.Agreement[0][0])
	assert.Equal(t, 3, report.Agreement[1][1])

	// alpha and beta only match on "hello world".
	assert.Equal(t, 1, report.Agreement[0][1])
	assert.Equal(t, 1, report.Agreement[1][0])
}

func TestRunner_Run_Timing(t *testing.T) {
	report, err := stubRunner().Run(context.Background(), stubSamples())
	require.NoError(t, err)

	for _, engine := range report.Engines {
		assert.GreaterOrEqual(t, engine.Duration, time.Duration(0))
	}
}

func TestRunner_Run_NoEngines(t *testing.T) {
	_, err := NewRunner().Run(context.Background(), stubSamples())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no engines configured")
}

func TestRunner_Run_NoSamples(t *testing.T) {
	_, err := stubRunner().Run(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no samples provided")
}

func TestRunner_Run_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := stubRunner().Run(ctx, stubSamples())
	require.ErrorIs(t, err, context.Canceled)
}

func TestEngineReport_Accuracy(t *testing.T) {
	assert.InDelta(t, 0.0, EngineReport{}.Accuracy(), 1e-9)
	assert.InDelta(t, 0.75, EngineReport{Correct: 3, Total: 4}.Accuracy(), 1e-9)
}

func TestEngineReport_AveragePerSample(t *testing.T) {
	assert.Equal(t, time.Duration(0), EngineReport{}.AveragePerSample())

	report := EngineReport{Total: 4, Duration: 200 * time.Millisecond}
	assert.Equal(t, 50*time.Millisecond, report.AveragePerSample())
}

func TestRow_Disagreement_EmptyGuesses(t *testing.T) {
	row := Row{Guesses: []Guess{{}, {}}}
	assert.False(t, row.Disagreement())
}

package compare

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testReport(t *testing.T) *Report {
	t.Helper()
	report, err := stubRunner().Run(context.Background(), stubSamples())
	require.NoError(t, err)
	return report
}

func TestReport_RenderSummary(t *testing.T) {
	var buf bytes.Buffer
	testReport(t).RenderSummary(&buf)

	out := buf.String()
	assert.Contains(t, out, "ENGINE")
	assert.Contains(t, out, "ACCURACY")
	assert.Contains(t, out, "alpha")
	assert.Contains(t, out, "beta")
	assert.Contains(t, out, "100.0%")
	assert.Contains(t, out, "33.3%")
	assert.Contains(t, strings.ToUpper(out), "TOTAL: 3 SAMPLES")
}

func TestReport_RenderAgreement(t *testing.T) {
	var buf bytes.Buffer
	testReport(t).RenderAgreement(&buf)

	out := buf.String()
	assert.Contains(t, out, "AGREEMENT")
	assert.Contains(t, out, "alpha")
	assert.Contains(t, out, "beta")
	assert.Contains(t, out, "3")
	assert.Contains(t, out, "1")
}

func TestReport_RenderDisagreements(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	testReport(t).RenderDisagreements(&buf, 0)

	out := buf.String()
	assert.Contains(t, out, "bonjour")
	assert.Contains(t, out, "hallo")
	assert.NotContains(t, out, "hello world")
	assert.Contains(t, out, "expected fr")
	assert.Contains(t, out, "no answer")
}

func TestReport_RenderDisagreements_Limit(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	testReport(t).RenderDisagreements(&buf, 1)

	out := buf.String()
	assert.Contains(t, out, "bonjour")
	assert.NotContains(t, out, "hallo")
}

func TestReport_RenderDisagreements_AllAgree(t *testing.T) {
	color.NoColor = true

	engine := &stubEngine{name: "solo", answers: map[string]Guess{
		"hello world": {Language: "en", Confidence: 1},
	}}
	report, err := NewRunner(engine, engine).Run(context.Background(), []Sample{
		{Language: "en", Text: "hello world"},
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	report.RenderDisagreements(&buf, 0)
	assert.Contains(t, buf.String(), "All engines agree")
}

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "short", truncateText("short", 10))

	long := strings.Repeat("д", 70)
	truncated := truncateText(long, 60)
	assert.Equal(t, strings.Repeat("д", 60)+"...", truncated)
}

package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/MeKo-Tech/langtab/internal/compare"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareCommand(t *testing.T) {
	assert.NotNil(t, compareCmd)
	assert.Equal(t, "compare", compareCmd.Use)
	assert.NotEmpty(t, compareCmd.Short)
}

func TestCompareCommandHelp(t *testing.T) {
	command := compareCmd
	buf := new(bytes.Buffer)
	command.SetOut(buf)
	command.SetErr(buf)
	err := command.Help()
	require.NoError(t, err)
	output := strings.TrimSpace(buf.String())
	assert.Contains(t, output, "lingua")
	assert.Contains(t, output, "Usage:")
}

func TestCompareCommandMissingSamples(t *testing.T) {
	err := compareCmd.RunE(compareCmd, []string{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no samples file provided")
}

func TestSampleLanguages(t *testing.T) {
	samples := []compare.Sample{
		{Language: "en", Text: "hello"},
		{Language: "fr", Text: "bonjour"},
		{Language: "en", Text: "good day"},
		{Language: "de", Text: "guten tag"},
	}

	assert.Equal(t, []string{"en", "fr", "de"}, sampleLanguages(samples))
	assert.Nil(t, sampleLanguages(nil))
}

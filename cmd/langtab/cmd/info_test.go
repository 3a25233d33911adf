package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInfoCommand(t *testing.T) {
	assert.NotNil(t, infoCmd)
	assert.True(t, strings.HasPrefix(infoCmd.Use, "info"))
	assert.NotEmpty(t, infoCmd.Short)
}

func TestInfoCommandHelp(t *testing.T) {
	command := infoCmd
	buf := new(bytes.Buffer)
	command.SetOut(buf)
	command.SetErr(buf)
	err := command.Help()
	require.NoError(t, err)
	output := strings.TrimSpace(buf.String())
	assert.Contains(t, output, "alphabet")
	assert.Contains(t, output, "Usage:")
}

func TestInfoCommandFrench(t *testing.T) {
	color.NoColor = true

	output, err := executeCommandAndCaptureOutput(t, rootCmd, []string{"info", "fr"})
	require.NoError(t, err)

	assert.Contains(t, output, "French (fr)")
	assert.Contains(t, output, "Lowercase:")
	assert.Contains(t, output, "Bonjour")
	assert.Contains(t, output, "Frequency list")
}

func TestInfoCommandNormalizesCode(t *testing.T) {
	color.NoColor = true

	output, err := executeCommandAndCaptureOutput(t, rootCmd, []string{"info", " FR "})
	require.NoError(t, err)
	assert.Contains(t, output, "French (fr)")
}

func TestInfoCommandUnknownLanguage(t *testing.T) {
	err := infoCmd.RunE(infoCmd, []string{"zz"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load language info")
}

package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveDir(t *testing.T) {
	t.Setenv(EnvDataDir, "/env/data")
	assert.Equal(t, "/explicit", ResolveDir("/explicit"),
		"explicit parameter wins over the environment")
	assert.Equal(t, "/env/data", ResolveDir(""))

	t.Setenv(EnvDataDir, "")
	assert.Empty(t, ResolveDir(""), "empty means embedded dataset")
}

func TestResolveFreqDir(t *testing.T) {
	t.Setenv(EnvFreqDir, "/env/freq")
	assert.Equal(t, "/explicit", ResolveFreqDir("/explicit"))
	assert.Equal(t, "/env/freq", ResolveFreqDir(""))
}

func TestResolveConfig(t *testing.T) {
	t.Setenv(EnvDataDir, "/env/data")
	t.Setenv(EnvFreqDir, "/env/freq")

	cfg := ResolveConfig("", "/freq")
	assert.Equal(t, "/env/data", cfg.Dir)
	assert.Equal(t, "/freq", cfg.FreqDir)
}

package data

import "os"

// Environment variables recognized for dataset location overrides.
const (
	// EnvDataDir points at an external dataset root (index.json, alphabets/,
	// freq/, ...). Files missing there fall back to the embedded snapshot.
	EnvDataDir = "LANGTAB_DATA_DIR"
	// EnvFreqDir overrides only the frequency-list directory, mirroring the
	// override the data pipeline's own tools honor.
	EnvFreqDir = "LANGTAB_FREQ_DIR"
)

// ResolveDir returns the dataset directory to use.
// Priority: 1. explicit dir parameter, 2. environment variable, 3. embedded
// dataset (empty string).
func ResolveDir(dir string) string {
	if dir != "" {
		return dir
	}
	return os.Getenv(EnvDataDir)
}

// ResolveFreqDir returns the frequency-list directory override, if any.
func ResolveFreqDir(freqDir string) string {
	if freqDir != "" {
		return freqDir
	}
	return os.Getenv(EnvFreqDir)
}

// ResolveConfig builds a Store config from explicit overrides plus the
// environment.
func ResolveConfig(dir, freqDir string) Config {
	return Config{
		Dir:     ResolveDir(dir),
		FreqDir: ResolveFreqDir(freqDir),
	}
}

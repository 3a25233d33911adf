package support

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// TestContext holds the state for integration tests.
type TestContext struct {
	// Command execution state
	LastCommand   string
	LastOutput    string
	LastError     error
	LastExitCode  int
	LastStartTime time.Time
	LastDuration  time.Duration

	// Test environment
	WorkingDir string
	TempDir    string
	EnvVars    []string

	// Server management
	ServerProcess  *os.Process
	ServerPort     int
	ServerHost     string
	HTTPTestServer *HTTPTestServerWrapper
	serverExit     chan error

	// HTTP response state
	LastHTTPStatusCode int
	LastHTTPResponse   string
	LastHTTPHeaders    map[string]string

	// Test artifacts
	CreatedFiles       []string
	CreatedDirectories []string
}

// NewTestContext creates a new test context.
func NewTestContext() (*TestContext, error) {
	// Get current working directory
	workingDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	// If we're in a subdirectory (test execution might cd), find project root
	// Look for go.mod file to identify project root
	currentDir := workingDir
	for {
		if _, err := os.Stat(filepath.Join(currentDir, "go.mod")); err == nil {
			workingDir = currentDir
			break
		}
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached filesystem root, use current directory
			break
		}
		currentDir = parentDir
	}

	// Create temporary directory for test artifacts
	tempDir, err := os.MkdirTemp("", "langtab-test-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}

	ctx := &TestContext{
		WorkingDir:         workingDir,
		TempDir:            tempDir,
		EnvVars:            []string{},
		CreatedFiles:       []string{},
		CreatedDirectories: []string{},
		ServerPort:         8080,
		ServerHost:         "localhost",
	}

	return ctx, nil
}

// Reset prepares the context for the next scenario. Step definitions stay
// bound to this instance across scenarios, so state is cleared in place:
// servers are stopped, command and HTTP state is zeroed, and a fresh temp
// working directory replaces the previous one.
func (testCtx *TestContext) Reset() error {
	if err := testCtx.StopServer(); err != nil {
		return err
	}
	if testCtx.TempDir != "" {
		if err := os.RemoveAll(testCtx.TempDir); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove temp directory %s: %w", testCtx.TempDir, err)
		}
	}

	tempDir, err := os.MkdirTemp("", "langtab-test-*")
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}

	testCtx.LastCommand = ""
	testCtx.LastOutput = ""
	testCtx.LastError = nil
	testCtx.LastExitCode = 0
	testCtx.LastDuration = 0
	testCtx.TempDir = tempDir
	testCtx.EnvVars = []string{}
	testCtx.ServerPort = 8080
	testCtx.ServerHost = "localhost"
	testCtx.serverExit = nil
	testCtx.LastHTTPStatusCode = 0
	testCtx.LastHTTPResponse = ""
	testCtx.LastHTTPHeaders = nil
	testCtx.CreatedFiles = []string{}
	testCtx.CreatedDirectories = []string{}
	return nil
}

// StopServer stops whichever server variant the scenario started.
func (testCtx *TestContext) StopServer() error {
	// Stop httptest server if running
	if testCtx.HTTPTestServer != nil {
		return testCtx.stopTestHTTPServer()
	}

	// Stop process-based server if running
	if testCtx.ServerProcess != nil {
		if err := testCtx.ServerProcess.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
			return fmt.Errorf("failed to kill server process: %w", err)
		}
		testCtx.ServerProcess = nil
	}
	return nil
}

// Cleanup removes all temporary files and directories created during tests.
func (testCtx *TestContext) Cleanup() error {
	var errs []error

	// Stop server if running
	if testCtx.ServerProcess != nil || testCtx.HTTPTestServer != nil {
		if err := testCtx.StopServer(); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop server: %w", err))
		}
	}

	// Remove created files
	for _, file := range testCtx.CreatedFiles {
		if err := os.Remove(file); err != nil && !os.IsNotExist(err) {
			errs = append(errs, fmt.Errorf("failed to remove file %s: %w", file, err))
		}
	}

	// Remove created directories
	for _, dir := range testCtx.CreatedDirectories {
		if err := os.RemoveAll(dir); err != nil && !os.IsNotExist(err) {
			errs = append(errs, fmt.Errorf("failed to remove directory %s: %w", dir, err))
		}
	}

	// Remove temp directory
	if err := os.RemoveAll(testCtx.TempDir); err != nil && !os.IsNotExist(err) {
		errs = append(errs, fmt.Errorf("failed to remove temp directory %s: %w", testCtx.TempDir, err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("cleanup errors: %v", errs)
	}

	return nil
}

// AddEnvVar adds an environment variable for command execution.
func (testCtx *TestContext) AddEnvVar(name, value string) {
	testCtx.EnvVars = append(testCtx.EnvVars, fmt.Sprintf("%s=%s", name, value))
}

// TrackFile adds a file to be cleaned up after tests.
func (testCtx *TestContext) TrackFile(filename string) {
	testCtx.CreatedFiles = append(testCtx.CreatedFiles, testCtx.resolvePath(filename))
}

// TrackDirectory adds a directory to be cleaned up after tests.
func (testCtx *TestContext) TrackDirectory(dirname string) {
	testCtx.CreatedDirectories = append(testCtx.CreatedDirectories, testCtx.resolvePath(dirname))
}

// GetTempFile returns a path to a temporary file.
func (testCtx *TestContext) GetTempFile(suffix string) string {
	return filepath.Join(testCtx.TempDir, fmt.Sprintf("test-%d%s", time.Now().UnixNano(), suffix))
}

// GetTempDir returns a path to a temporary directory.
func (testCtx *TestContext) GetTempDir(prefix string) string {
	dirPath := filepath.Join(testCtx.TempDir, fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano()))
	testCtx.TrackDirectory(dirPath)
	return dirPath
}

// resolvePath anchors relative scenario paths in the temp working directory,
// which is also where scenario commands run.
func (testCtx *TestContext) resolvePath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(testCtx.TempDir, name)
}

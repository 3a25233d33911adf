package support

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"strconv"
	"syscall"
	"time"
)

const serverReadyTimeout = 10 * time.Second

// cliBinary returns the path of the built CLI binary, falling back to PATH
// resolution.
func cliBinary() string {
	if bin := os.Getenv("LANGTAB_BIN"); bin != "" {
		return bin
	}
	return "langtab"
}

// freePort asks the kernel for an unused local port.
func freePort() (int, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, fmt.Errorf("failed to find a free port: %w", err)
	}
	port := listener.Addr().(*net.TCPAddr).Port
	if err := listener.Close(); err != nil {
		return 0, fmt.Errorf("failed to release probe listener: %w", err)
	}
	return port, nil
}

// StartServerProcess launches "langtab serve" on a free local port and waits
// until its health endpoint responds.
func (testCtx *TestContext) StartServerProcess() error {
	if testCtx.ServerProcess != nil {
		return nil
	}

	port, err := freePort()
	if err != nil {
		return err
	}

	cmd := exec.Command(cliBinary(), "serve", "--host", "127.0.0.1", "--port", strconv.Itoa(port))
	cmd.Dir = testCtx.TempDir
	cmd.Env = append(os.Environ(), testCtx.EnvVars...)

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start server process: %w", err)
	}

	testCtx.ServerProcess = cmd.Process
	testCtx.ServerHost = "127.0.0.1"
	testCtx.ServerPort = port

	// Reap the process and expose its exit status to shutdown assertions.
	testCtx.serverExit = make(chan error, 1)
	go func(exit chan<- error) {
		exit <- cmd.Wait()
	}(testCtx.serverExit)

	if err := testCtx.waitForServerReady(); err != nil {
		_ = testCtx.StopServer()
		return err
	}
	return nil
}

// waitForServerReady polls the health endpoint until the server answers.
func (testCtx *TestContext) waitForServerReady() error {
	deadline := time.Now().Add(serverReadyTimeout)
	for time.Now().Before(deadline) {
		if testCtx.isServerHealthy() {
			return nil
		}
		time.Sleep(100 * time.Millisecond)
	}
	return fmt.Errorf("server did not become ready within %s", serverReadyTimeout)
}

// isServerHealthy checks the health endpoint of the running server.
func (testCtx *TestContext) isServerHealthy() bool {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	url := testCtx.GetServerURL() + "/health"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return false
	}
	defer func() { _ = resp.Body.Close() }()

	return resp.StatusCode == http.StatusOK
}

// SendSignalToServer delivers a signal to the running server process.
func (testCtx *TestContext) SendSignalToServer(sig os.Signal) error {
	if testCtx.ServerProcess == nil {
		return fmt.Errorf("no server process running")
	}
	if err := testCtx.ServerProcess.Signal(sig); err != nil {
		return fmt.Errorf("failed to signal server process: %w", err)
	}
	return nil
}

// iSendSIGTERMToTheServerProcess asks the server to shut down gracefully.
func (testCtx *TestContext) iSendSIGTERMToTheServerProcess() error {
	return testCtx.SendSignalToServer(syscall.SIGTERM)
}

// theServerProcessShouldExitCleanly waits for the server to finish its
// graceful shutdown and verifies the exit status.
func (testCtx *TestContext) theServerProcessShouldExitCleanly() error {
	if testCtx.serverExit == nil {
		return fmt.Errorf("no server process was started")
	}

	select {
	case err := <-testCtx.serverExit:
		testCtx.ServerProcess = nil
		if err != nil {
			return fmt.Errorf("server exited with error: %w", err)
		}
		return nil
	case <-time.After(15 * time.Second):
		return fmt.Errorf("server did not exit within 15s of the shutdown signal")
	}
}

package support

import (
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/MeKo-Tech/langtab/internal/server"
)

// HTTPTestServerWrapper runs the real detection server on an httptest
// listener so API scenarios need no external process.
type HTTPTestServerWrapper struct {
	Server     *httptest.Server
	TestServer *server.Server
}

// startTestHTTPServer starts an in-process detection server backed by the
// embedded dataset.
func (testCtx *TestContext) startTestHTTPServer(config server.Config) error {
	if testCtx.HTTPTestServer != nil {
		return nil
	}

	srv, err := server.NewServer(config)
	if err != nil {
		return fmt.Errorf("failed to create detection server: %w", err)
	}

	mux := http.NewServeMux()
	srv.SetupRoutes(mux)

	testCtx.HTTPTestServer = &HTTPTestServerWrapper{
		Server:     httptest.NewServer(mux),
		TestServer: srv,
	}
	return nil
}

// stopTestHTTPServer shuts down the in-process server.
func (testCtx *TestContext) stopTestHTTPServer() error {
	if testCtx.HTTPTestServer == nil {
		return nil
	}
	testCtx.HTTPTestServer.Server.Close()
	testCtx.HTTPTestServer = nil
	return nil
}

// GetServerURL returns the base URL of whichever server the scenario started.
func (testCtx *TestContext) GetServerURL() string {
	if testCtx.HTTPTestServer != nil {
		return testCtx.HTTPTestServer.Server.URL
	}
	return fmt.Sprintf("http://%s:%d", testCtx.ServerHost, testCtx.ServerPort)
}

package support

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cucumber/godog"

	"github.com/MeKo-Tech/langtab/internal/server"
)

const httpRequestTimeout = 10 * time.Second

// aDetectionServerIsRunning starts an in-process detection server with
// default settings.
func (testCtx *TestContext) aDetectionServerIsRunning() error {
	return testCtx.startTestHTTPServer(server.Config{
		CORSOrigin: "*",
		MaxBodyKB:  512,
	})
}

// aDetectionServerWithARateLimitOfRequests starts an in-process server whose
// token bucket allows the given burst and refills slowly, so the limit is
// observable within one scenario.
func (testCtx *TestContext) aDetectionServerWithARateLimitOfRequests(burst int) error {
	return testCtx.startTestHTTPServer(server.Config{
		CORSOrigin: "*",
		MaxBodyKB:  512,
		RateLimit: server.RateLimitConfig{
			Enabled: true,
			RPS:     0.1,
			Burst:   burst,
		},
	})
}

// theDetectionServerIsStartedOnAFreePort launches the real serve command as a
// separate process.
func (testCtx *TestContext) theDetectionServerIsStartedOnAFreePort() error {
	return testCtx.StartServerProcess()
}

// makeHTTPRequest performs a request against the scenario server and captures
// status, body, and headers.
func (testCtx *TestContext) makeHTTPRequest(method, endpoint string, body io.Reader) error {
	ctx, cancel := context.WithTimeout(context.Background(), httpRequestTimeout)
	defer cancel()

	url := testCtx.GetServerURL() + endpoint
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("failed to create %s request for %s: %w", method, url, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s request to %s failed: %w", method, url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	testCtx.LastHTTPStatusCode = resp.StatusCode
	testCtx.LastHTTPResponse = string(data)
	testCtx.LastHTTPHeaders = make(map[string]string, len(resp.Header))
	for name := range resp.Header {
		testCtx.LastHTTPHeaders[name] = resp.Header.Get(name)
	}
	return nil
}

// iSendAPOSTRequestToWithBody posts a JSON document to an endpoint.
func (testCtx *TestContext) iSendAPOSTRequestToWithBody(endpoint string, body *godog.DocString) error {
	return testCtx.makeHTTPRequest(http.MethodPost, endpoint, strings.NewReader(body.Content))
}

// iSendAGETRequestTo fetches an endpoint.
func (testCtx *TestContext) iSendAGETRequestTo(endpoint string) error {
	return testCtx.makeHTTPRequest(http.MethodGet, endpoint, nil)
}

// iSendAnOPTIONSRequestTo sends a CORS preflight request to an endpoint.
func (testCtx *TestContext) iSendAnOPTIONSRequestTo(endpoint string) error {
	return testCtx.makeHTTPRequest(http.MethodOptions, endpoint, nil)
}

// iSendPOSTRequestsToWithText repeats a detection request, which is how the
// rate limit scenarios exhaust the token bucket.
func (testCtx *TestContext) iSendPOSTRequestsToWithText(count int, endpoint, text string) error {
	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return fmt.Errorf("failed to build request body: %w", err)
	}

	for i := 0; i < count; i++ {
		if err := testCtx.makeHTTPRequest(http.MethodPost, endpoint, strings.NewReader(string(payload))); err != nil {
			return err
		}
	}
	return nil
}

// theResponseStatusShouldBe verifies the HTTP status of the last response.
func (testCtx *TestContext) theResponseStatusShouldBe(expected int) error {
	if testCtx.LastHTTPStatusCode != expected {
		return fmt.Errorf("expected status %d, got %d: %s",
			expected, testCtx.LastHTTPStatusCode, testCtx.LastHTTPResponse)
	}
	return nil
}

// theResponseShouldContain verifies the response body contains the given text.
func (testCtx *TestContext) theResponseShouldContain(text string) error {
	if !strings.Contains(testCtx.LastHTTPResponse, text) {
		return fmt.Errorf("response does not contain %q:\n%s", text, testCtx.LastHTTPResponse)
	}
	return nil
}

// theResponseShouldBeValidJSON verifies the response body parses as JSON.
func (testCtx *TestContext) theResponseShouldBeValidJSON() error {
	var parsed interface{}
	if err := json.Unmarshal([]byte(testCtx.LastHTTPResponse), &parsed); err != nil {
		return fmt.Errorf("response is not valid JSON: %w\nresponse: %s", err, testCtx.LastHTTPResponse)
	}
	return nil
}

// theResponseFieldShouldBe verifies a (possibly dotted) field of the JSON
// response against its string rendering.
func (testCtx *TestContext) theResponseFieldShouldBe(field, expected string) error {
	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(testCtx.LastHTTPResponse), &parsed); err != nil {
		return fmt.Errorf("response is not a JSON object: %w\nresponse: %s", err, testCtx.LastHTTPResponse)
	}

	value, err := lookupJSONField(parsed, field)
	if err != nil {
		return fmt.Errorf("%w\nresponse: %s", err, testCtx.LastHTTPResponse)
	}

	if got := fmt.Sprintf("%v", value); got != expected {
		return fmt.Errorf("expected field %q to be %q, got %q", field, expected, got)
	}
	return nil
}

// theResponseMatchesShouldListFirst verifies the top match of a detection
// response.
func (testCtx *TestContext) theResponseMatchesShouldListFirst(lang string) error {
	var parsed struct {
		Matches []struct {
			Language string  `json:"language"`
			Score    float64 `json:"score"`
		} `json:"matches"`
	}
	if err := json.Unmarshal([]byte(testCtx.LastHTTPResponse), &parsed); err != nil {
		return fmt.Errorf("failed to parse detection response: %w\nresponse: %s", err, testCtx.LastHTTPResponse)
	}
	if len(parsed.Matches) == 0 {
		return fmt.Errorf("no matches in response:\n%s", testCtx.LastHTTPResponse)
	}
	if parsed.Matches[0].Language != lang {
		return fmt.Errorf("expected first match %q, got %q", lang, parsed.Matches[0].Language)
	}
	return nil
}

// theResponseHeaderShouldBe verifies a response header value.
func (testCtx *TestContext) theResponseHeaderShouldBe(name, expected string) error {
	got, ok := testCtx.LastHTTPHeaders[name]
	if !ok {
		return fmt.Errorf("response has no %s header", name)
	}
	if got != expected {
		return fmt.Errorf("expected header %s to be %q, got %q", name, expected, got)
	}
	return nil
}

// RegisterServerSteps registers HTTP server step definitions.
func (testCtx *TestContext) RegisterServerSteps(sc *godog.ScenarioContext) {
	// Server lifecycle
	sc.Step(`^a detection server is running$`, testCtx.aDetectionServerIsRunning)
	sc.Step(`^a detection server with a rate limit of (\d+) requests$`, testCtx.aDetectionServerWithARateLimitOfRequests)
	sc.Step(`^the detection server is started on a free port$`, testCtx.theDetectionServerIsStartedOnAFreePort)
	sc.Step(`^I send SIGTERM to the server process$`, testCtx.iSendSIGTERMToTheServerProcess)
	sc.Step(`^the server process should exit cleanly$`, testCtx.theServerProcessShouldExitCleanly)

	// HTTP requests
	sc.Step(`^I send a POST request to "([^"]*)" with body:$`, testCtx.iSendAPOSTRequestToWithBody)
	sc.Step(`^I send a GET request to "([^"]*)"$`, testCtx.iSendAGETRequestTo)
	sc.Step(`^I send an OPTIONS request to "([^"]*)"$`, testCtx.iSendAnOPTIONSRequestTo)
	sc.Step(`^I send (\d+) POST requests to "([^"]*)" with text "([^"]*)"$`, testCtx.iSendPOSTRequestsToWithText)

	// Response assertions
	sc.Step(`^the response status should be (\d+)$`, testCtx.theResponseStatusShouldBe)
	sc.Step(`^the response should contain "([^"]*)"$`, testCtx.theResponseShouldContain)
	sc.Step(`^the response should be valid JSON$`, testCtx.theResponseShouldBeValidJSON)
	sc.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, testCtx.theResponseFieldShouldBe)
	sc.Step(`^the response matches should list "([^"]*)" first$`, testCtx.theResponseMatchesShouldListFirst)
	sc.Step(`^the response header "([^"]*)" should be "([^"]*)"$`, testCtx.theResponseHeaderShouldBe)
}

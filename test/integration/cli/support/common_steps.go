package support

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/cucumber/godog"
)

// commandTimeout bounds a single scenario command.
const commandTimeout = 30 * time.Second

// iRunCommand executes a shell-style command line and captures its outcome.
func (testCtx *TestContext) iRunCommand(command string) error {
	args, err := splitCommandLine(command)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return errors.New("empty command")
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	testCtx.LastCommand = command
	testCtx.LastStartTime = time.Now()

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	// Run from the scenario temp dir so relative file names stay hermetic.
	cmd.Dir = testCtx.TempDir
	cmd.Env = append(os.Environ(), testCtx.EnvVars...)

	output, runErr := cmd.CombinedOutput()
	testCtx.LastDuration = time.Since(testCtx.LastStartTime)
	testCtx.LastOutput = string(output)
	testCtx.LastError = runErr

	testCtx.LastExitCode = 0
	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			testCtx.LastExitCode = exitErr.ExitCode()
		} else {
			testCtx.LastExitCode = -1
		}
	}
	return nil
}

// splitCommandLine splits a command line into arguments, honoring single and
// double quotes so sample sentences with spaces survive as one argument.
func splitCommandLine(command string) ([]string, error) {
	var args []string
	var current strings.Builder
	var quote rune
	inArg := false

	for _, r := range command {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote = r
			inArg = true
		case unicode.IsSpace(r):
			if inArg {
				args = append(args, current.String())
				current.Reset()
				inArg = false
			}
		default:
			current.WriteRune(r)
			inArg = true
		}
	}

	if quote != 0 {
		return nil, fmt.Errorf("unterminated %c quote in command: %s", quote, command)
	}
	if inArg {
		args = append(args, current.String())
	}
	return args, nil
}

// theCommandShouldSucceed verifies the last command exited with code 0.
func (testCtx *TestContext) theCommandShouldSucceed() error {
	if testCtx.LastExitCode != 0 {
		return fmt.Errorf("command %q failed with exit code %d: %s",
			testCtx.LastCommand, testCtx.LastExitCode, testCtx.LastOutput)
	}
	return nil
}

// theCommandShouldFail verifies the last command exited with a non-zero code.
func (testCtx *TestContext) theCommandShouldFail() error {
	if testCtx.LastExitCode == 0 {
		return fmt.Errorf("command %q succeeded but was expected to fail: %s",
			testCtx.LastCommand, testCtx.LastOutput)
	}
	return nil
}

// theExitCodeShouldBe verifies the exact exit code of the last command.
func (testCtx *TestContext) theExitCodeShouldBe(expected int) error {
	if testCtx.LastExitCode != expected {
		return fmt.Errorf("expected exit code %d, got %d: %s",
			expected, testCtx.LastExitCode, testCtx.LastOutput)
	}
	return nil
}

// theOutputShouldContain verifies the output contains the given text.
func (testCtx *TestContext) theOutputShouldContain(text string) error {
	if !strings.Contains(testCtx.LastOutput, text) {
		return fmt.Errorf("output does not contain %q:\n%s", text, testCtx.LastOutput)
	}
	return nil
}

// theOutputShouldNotContain verifies the output does not contain the given text.
func (testCtx *TestContext) theOutputShouldNotContain(text string) error {
	if strings.Contains(testCtx.LastOutput, text) {
		return fmt.Errorf("output contains %q but should not:\n%s", text, testCtx.LastOutput)
	}
	return nil
}

// jsonPayload returns the JSON portion of the last output, skipping any
// progress or status lines printed before it.
func (testCtx *TestContext) jsonPayload() (string, error) {
	idx := strings.IndexAny(testCtx.LastOutput, "{[")
	if idx < 0 {
		return "", fmt.Errorf("no JSON found in output: %s", testCtx.LastOutput)
	}
	return testCtx.LastOutput[idx:], nil
}

// theOutputShouldBeValidJSON verifies the output parses as JSON.
func (testCtx *TestContext) theOutputShouldBeValidJSON() error {
	payload, err := testCtx.jsonPayload()
	if err != nil {
		return err
	}

	var parsed interface{}
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		return fmt.Errorf("output is not valid JSON: %w\noutput: %s", err, testCtx.LastOutput)
	}
	return nil
}

// theJSONOutputShouldHaveField verifies a (possibly dotted) field exists in
// the JSON output.
func (testCtx *TestContext) theJSONOutputShouldHaveField(field string) error {
	payload, err := testCtx.jsonPayload()
	if err != nil {
		return err
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		return fmt.Errorf("output is not a JSON object: %w\noutput: %s", err, testCtx.LastOutput)
	}

	if _, err := lookupJSONField(parsed, field); err != nil {
		return fmt.Errorf("%w\noutput: %s", err, testCtx.LastOutput)
	}
	return nil
}

// lookupJSONField walks a dotted path through nested JSON objects.
func lookupJSONField(parsed map[string]interface{}, path string) (interface{}, error) {
	var current interface{} = parsed
	for _, part := range strings.Split(path, ".") {
		obj, ok := current.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("field %q does not lead through objects", path)
		}
		current, ok = obj[part]
		if !ok {
			return nil, fmt.Errorf("field %q not found in JSON output", path)
		}
	}
	return current, nil
}

// theErrorShouldMention verifies the failure output mentions the given text,
// case-insensitively, in either the captured output or the process error.
func (testCtx *TestContext) theErrorShouldMention(text string) error {
	combined := testCtx.LastOutput
	if testCtx.LastError != nil {
		combined += "\n" + testCtx.LastError.Error()
	}

	if !strings.Contains(strings.ToLower(combined), strings.ToLower(text)) {
		return fmt.Errorf("error output does not mention %q:\n%s", text, combined)
	}
	return nil
}

// theOutputShouldContainVersionInformation verifies version output.
func (testCtx *TestContext) theOutputShouldContainVersionInformation() error {
	for _, indicator := range []string{"version", "commit"} {
		if strings.Contains(strings.ToLower(testCtx.LastOutput), indicator) {
			return nil
		}
	}
	return fmt.Errorf("output does not contain version information: %s", testCtx.LastOutput)
}

// theErrorShouldSuggestAvailableCommands verifies unknown-command output
// points the user somewhere useful.
func (testCtx *TestContext) theErrorShouldSuggestAvailableCommands() error {
	combined := strings.ToLower(testCtx.LastOutput)
	if testCtx.LastError != nil {
		combined += "\n" + strings.ToLower(testCtx.LastError.Error())
	}

	for _, indicator := range []string{"available", "commands", "help", "usage"} {
		if strings.Contains(combined, indicator) {
			return nil
		}
	}
	return fmt.Errorf("error does not suggest available commands: %s", testCtx.LastOutput)
}

// aFileNamedContaining writes a scenario-provided text file into the temp
// working directory.
func (testCtx *TestContext) aFileNamedContaining(name string, content *godog.DocString) error {
	path := testCtx.resolvePath(name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", name, err)
	}
	if err := os.WriteFile(path, []byte(content.Content+"\n"), 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

// aDirectoryWithFiles creates a directory of sample files from a
// name | text table.
func (testCtx *TestContext) aDirectoryWithFiles(dir string, table *godog.Table) error {
	base := testCtx.resolvePath(dir)
	if err := os.MkdirAll(base, 0o750); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	if len(table.Rows) < 2 {
		return errors.New("expected a table with a header row and at least one file row")
	}
	for _, row := range table.Rows[1:] {
		if len(row.Cells) != 2 {
			return fmt.Errorf("expected rows of name | text, got %d cells", len(row.Cells))
		}
		name := row.Cells[0].Value
		text := row.Cells[1].Value
		if err := os.WriteFile(filepath.Join(base, name), []byte(text+"\n"), 0o600); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
	}
	return nil
}

// theFileShouldExist verifies a scenario file exists.
func (testCtx *TestContext) theFileShouldExist(name string) error {
	if _, err := os.Stat(testCtx.resolvePath(name)); err != nil {
		return fmt.Errorf("expected file %s to exist: %w", name, err)
	}
	return nil
}

// theFileShouldContain verifies a scenario file contains the given text.
func (testCtx *TestContext) theFileShouldContain(name, text string) error {
	data, err := os.ReadFile(testCtx.resolvePath(name))
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if !strings.Contains(string(data), text) {
		return fmt.Errorf("file %s does not contain %q:\n%s", name, text, string(data))
	}
	return nil
}

// iSetTheEnvironmentVariable sets an environment variable for subsequent
// scenario commands.
func (testCtx *TestContext) iSetTheEnvironmentVariable(name, value string) error {
	testCtx.AddEnvVar(name, value)
	return nil
}

// RegisterCommonSteps registers command execution and generic assertion steps.
func (testCtx *TestContext) RegisterCommonSteps(sc *godog.ScenarioContext) {
	// Command execution
	sc.Step(`^I run "([^"]*)"$`, testCtx.iRunCommand)
	sc.Step(`^the command should succeed$`, testCtx.theCommandShouldSucceed)
	sc.Step(`^the command should fail$`, testCtx.theCommandShouldFail)
	sc.Step(`^the exit code should be (\d+)$`, testCtx.theExitCodeShouldBe)

	// Output assertions
	sc.Step(`^the output should contain "([^"]*)"$`, testCtx.theOutputShouldContain)
	sc.Step(`^the output should not contain "([^"]*)"$`, testCtx.theOutputShouldNotContain)
	sc.Step(`^the output should be valid JSON$`, testCtx.theOutputShouldBeValidJSON)
	sc.Step(`^the JSON output should have field "([^"]*)"$`, testCtx.theJSONOutputShouldHaveField)
	sc.Step(`^the output should contain version information$`, testCtx.theOutputShouldContainVersionInformation)

	// Error assertions
	sc.Step(`^the error should mention "([^"]*)"$`, testCtx.theErrorShouldMention)
	sc.Step(`^the error should suggest available commands$`, testCtx.theErrorShouldSuggestAvailableCommands)

	// Files and environment
	sc.Step(`^a file named "([^"]*)" containing:$`, testCtx.aFileNamedContaining)
	sc.Step(`^a directory "([^"]*)" with files:$`, testCtx.aDirectoryWithFiles)
	sc.Step(`^the file "([^"]*)" should exist$`, testCtx.theFileShouldExist)
	sc.Step(`^the file "([^"]*)" should contain "([^"]*)"$`, testCtx.theFileShouldContain)
	sc.Step(`^I set the environment variable "([^"]*)" to "([^"]*)"$`, testCtx.iSetTheEnvironmentVariable)
}

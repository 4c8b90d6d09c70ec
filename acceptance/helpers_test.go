package acceptance_test

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// runTracedent executes the tracedent binary in dir and returns stdout,
// stderr, and exit code. HOME is pointed at dir so a user's real config
// file never leaks into a test run.
func runTracedent(t *testing.T, dir string, args ...string) (string, string, int) {
	t.Helper()
	return runTracedentStdin(t, dir, nil, args...)
}

// runTracedentStdin is runTracedent with the given stdin.
func runTracedentStdin(t *testing.T, dir string, stdin io.Reader, args ...string) (string, string, int) {
	t.Helper()
	cmd := exec.Command(tracedentBinary, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "HOME="+dir)
	cmd.Stdin = stdin
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			t.Fatalf("failed to run tracedent: %v", err)
		}
	}
	return stdout.String(), stderr.String(), exitCode
}

// runTracedentSuccess runs tracedent expecting exit code 0 and returns stdout.
func runTracedentSuccess(t *testing.T, dir string, args ...string) string {
	t.Helper()
	stdout, stderr, exitCode := runTracedent(t, dir, args...)
	if exitCode != 0 {
		t.Fatalf("expected exit 0, got %d\nargs: %v\nstdout: %s\nstderr: %s", exitCode, args, stdout, stderr)
	}
	return stdout
}

// writeDump creates a file with the given content, making parent
// directories as needed.
func writeDump(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create parent dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
}

// readFile reads a file's content.
func readFile(t *testing.T, dir, name string) string {
	t.Helper()
	content, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("failed to read file: %v", err)
	}
	return string(content)
}

// parseJSON unmarshals CLI JSON output into a generic map.
func parseJSON(t *testing.T, s string) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal([]byte(s), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\noutput: %s", err, s)
	}
	return result
}

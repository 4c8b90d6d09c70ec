package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// mockCheckRunner is a test double for CheckRunner. It records the last
// request so tests can assert how flags and rules were resolved.
type mockCheckRunner struct {
	result  *CheckResult
	err     error
	lastReq CheckRequest
}

func (m *mockCheckRunner) Check(ctx context.Context, req CheckRequest) (*CheckResult, error) {
	m.lastReq = req
	return m.result, m.err
}

// checkJSONOutput is a test-only type for parsing JSON output from tracedent check --json.
type checkJSONOutput struct {
	Findings []checkJSONFinding `json:"findings"`
	Summary  struct {
		Errors   int `json:"errors"`
		Warnings int `json:"warnings"`
	} `json:"summary"`
}

type checkJSONFinding struct {
	Type     string `json:"type"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Line     int    `json:"line"`
}

func TestCheckCmd_NoFindings(t *testing.T) {
	isolateHome(t)
	runner := &mockCheckRunner{
		result: &CheckResult{},
	}
	cmd := NewCheckCmd(runner)
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(new(bytes.Buffer))

	err := cmd.Execute()

	if err != nil {
		t.Fatalf("expected no error for clean check, got %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("clean check should be silent, got: %q", buf.String())
	}
}

func TestCheckCmd_NoFindings_JSON(t *testing.T) {
	isolateHome(t)
	runner := &mockCheckRunner{
		result: &CheckResult{},
	}
	cmd := NewCheckCmd(runner)
	cmd.SetArgs([]string{"--json"})
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(new(bytes.Buffer))

	err := cmd.Execute()

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	var output checkJSONOutput
	if jsonErr := json.Unmarshal(buf.Bytes(), &output); jsonErr != nil {
		t.Fatalf("invalid JSON output: %v\nraw: %s", jsonErr, buf.String())
	}
	if len(output.Findings) != 0 {
		t.Errorf("expected 0 findings, got %d", len(output.Findings))
	}
	if output.Summary.Errors != 0 {
		t.Errorf("summary errors = %d, want 0", output.Summary.Errors)
	}
	if output.Summary.Warnings != 0 {
		t.Errorf("summary warnings = %d, want 0", output.Summary.Warnings)
	}
	// findings must be [] in JSON, not null
	if !strings.Contains(buf.String(), `"findings":[]`) {
		t.Errorf("JSON should contain empty findings array, got: %q", buf.String())
	}
}

func TestCheckCmd_FindingTypes(t *testing.T) {
	tests := []struct {
		name    string
		finding CheckFinding
		wantSev string
	}{
		{
			name: "unbalanced_trace",
			finding: CheckFinding{
				Type:     FindingUnbalancedTrace,
				Severity: SeverityError,
				Message:  "final depth 2, want 0",
			},
			wantSev: "error",
		},
		{
			name: "negative_depth",
			finding: CheckFinding{
				Type:     FindingNegativeDepth,
				Severity: SeverityWarning,
				Message:  `depth -1 after unmatched "exiting"`,
				Line:     17,
			},
			wantSev: "warning",
		},
		{
			name: "max_depth_exceeded",
			finding: CheckFinding{
				Type:     FindingMaxDepthExceeded,
				Severity: SeverityError,
				Message:  "depth 33 exceeds max_depth 32",
				Line:     940,
			},
			wantSev: "error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateHome(t)
			runner := &mockCheckRunner{
				result: &CheckResult{
					Findings: []CheckFinding{tt.finding},
				},
			}
			cmd := NewCheckCmd(runner)
			cmd.SetArgs([]string{"--json"})
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetErr(new(bytes.Buffer))

			err := cmd.Execute()

			var findingsErr *FindingsDetectedError
			if !errors.As(err, &findingsErr) {
				t.Fatalf("expected FindingsDetectedError, got %T: %v", err, err)
			}

			var output checkJSONOutput
			if jsonErr := json.Unmarshal(buf.Bytes(), &output); jsonErr != nil {
				t.Fatalf("invalid JSON: %v\nraw: %s", jsonErr, buf.String())
			}
			if len(output.Findings) != 1 {
				t.Fatalf("expected 1 finding, got %d", len(output.Findings))
			}
			got := output.Findings[0]
			if got.Type != string(tt.finding.Type) {
				t.Errorf("type = %q, want %q", got.Type, tt.finding.Type)
			}
			if got.Severity != tt.wantSev {
				t.Errorf("severity = %q, want %q", got.Severity, tt.wantSev)
			}
			if got.Message != tt.finding.Message {
				t.Errorf("message = %q, want %q", got.Message, tt.finding.Message)
			}
			if got.Line != tt.finding.Line {
				t.Errorf("line = %d, want %d", got.Line, tt.finding.Line)
			}
		})
	}
}

func TestCheckCmd_MixedFindings_Summary(t *testing.T) {
	isolateHome(t)
	runner := &mockCheckRunner{
		result: &CheckResult{
			Findings: []CheckFinding{
				{Type: FindingNegativeDepth, Severity: SeverityWarning, Message: "unmatched exit", Line: 2},
				{Type: FindingNegativeDepth, Severity: SeverityWarning, Message: "unmatched exit", Line: 5},
				{Type: FindingMaxDepthExceeded, Severity: SeverityError, Message: "too deep", Line: 9},
				{Type: FindingUnbalancedTrace, Severity: SeverityError, Message: "final depth -2, want 0"},
			},
		},
	}
	cmd := NewCheckCmd(runner)
	cmd.SetArgs([]string{"--json"})
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(new(bytes.Buffer))

	err := cmd.Execute()

	var findingsErr *FindingsDetectedError
	if !errors.As(err, &findingsErr) {
		t.Fatalf("expected FindingsDetectedError, got %T: %v", err, err)
	}

	var output checkJSONOutput
	if jsonErr := json.Unmarshal(buf.Bytes(), &output); jsonErr != nil {
		t.Fatalf("invalid JSON: %v\nraw: %s", jsonErr, buf.String())
	}
	if output.Summary.Errors != 2 {
		t.Errorf("summary errors = %d, want 2", output.Summary.Errors)
	}
	if output.Summary.Warnings != 2 {
		t.Errorf("summary warnings = %d, want 2", output.Summary.Warnings)
	}
	if len(output.Findings) != 4 {
		t.Errorf("findings count = %d, want 4", len(output.Findings))
	}
	if findingsErr.Errors != 2 || findingsErr.Warnings != 2 {
		t.Errorf("FindingsDetectedError counts = %d/%d, want 2/2", findingsErr.Errors, findingsErr.Warnings)
	}
}

func TestCheckCmd_ServiceError(t *testing.T) {
	isolateHome(t)
	runner := &mockCheckRunner{
		err: fmt.Errorf("open input dump.txt: no such file"),
	}
	cmd := NewCheckCmd(runner)
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))

	err := cmd.Execute()

	if err == nil {
		t.Fatal("expected error for service failure")
	}
	var findingsErr *FindingsDetectedError
	if errors.As(err, &findingsErr) {
		t.Error("service error should not be FindingsDetectedError")
	}
	if !strings.Contains(err.Error(), "no such file") {
		t.Errorf("error should contain cause, got: %v", err)
	}
}

func TestCheckCmd_HumanReadableOutput(t *testing.T) {
	isolateHome(t)
	runner := &mockCheckRunner{
		result: &CheckResult{
			Findings: []CheckFinding{
				{
					Type:     FindingNegativeDepth,
					Severity: SeverityWarning,
					Message:  `depth -1 after unmatched "exiting"`,
					Line:     3,
				},
				{
					Type:     FindingUnbalancedTrace,
					Severity: SeverityError,
					Message:  "final depth -1, want 0",
				},
			},
		},
	}
	cmd := NewCheckCmd(runner)
	// No --json flag: human-readable output
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(new(bytes.Buffer))

	err := cmd.Execute()

	var findingsErr *FindingsDetectedError
	if !errors.As(err, &findingsErr) {
		t.Fatalf("expected FindingsDetectedError, got %T: %v", err, err)
	}

	want := `dump.txt:3 [warning] negative_depth: depth -1 after unmatched "exiting"` + "\n" +
		"dump.txt [error] unbalanced_trace: final depth -1, want 0\n" +
		"\n1 error(s), 1 warning(s)\n"
	if buf.String() != want {
		t.Errorf("human output = %q, want %q", buf.String(), want)
	}
}

func TestCheckCmd_PositionalInputNamesFindings(t *testing.T) {
	isolateHome(t)
	runner := &mockCheckRunner{
		result: &CheckResult{
			Findings: []CheckFinding{
				{Type: FindingNegativeDepth, Severity: SeverityWarning, Message: "unmatched exit", Line: 1},
			},
		},
	}
	cmd := NewCheckCmd(runner)
	cmd.SetArgs([]string{"traces/vm.dump"})
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(new(bytes.Buffer))

	_ = cmd.Execute()

	if runner.lastReq.Input != "traces/vm.dump" {
		t.Errorf("req.Input = %q, want %q", runner.lastReq.Input, "traces/vm.dump")
	}
	if !strings.HasPrefix(buf.String(), "traces/vm.dump:1 ") {
		t.Errorf("human output = %q, want it to start with the input locus", buf.String())
	}
}

func TestCheckCmd_DefaultRules(t *testing.T) {
	isolateHome(t)
	runner := &mockCheckRunner{result: &CheckResult{}}
	cmd := NewCheckCmd(runner)
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}

	req := runner.lastReq
	if req.Input != "dump.txt" {
		t.Errorf("req.Input = %q, want the default %q", req.Input, "dump.txt")
	}
	if !req.RequireBalanced {
		t.Error("req.RequireBalanced = false, want true by default")
	}
	if req.MaxDepth != 0 {
		t.Errorf("req.MaxDepth = %d, want 0 (unlimited)", req.MaxDepth)
	}
	if req.AllowNegative {
		t.Error("req.AllowNegative = true, want false by default")
	}
}

func TestCheckCmd_RulesFlagFlowsIntoRequest(t *testing.T) {
	isolateHome(t)
	rulesPath := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(rulesPath, []byte("max_depth: 12\nrequire_balanced: false\nallow_negative: true\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	runner := &mockCheckRunner{result: &CheckResult{}}
	cmd := NewCheckCmd(runner)
	cmd.SetArgs([]string{"--rules", rulesPath})
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}

	req := runner.lastReq
	if req.MaxDepth != 12 {
		t.Errorf("req.MaxDepth = %d, want 12", req.MaxDepth)
	}
	if req.RequireBalanced {
		t.Error("req.RequireBalanced = true, want false from rules file")
	}
	if !req.AllowNegative {
		t.Error("req.AllowNegative = false, want true from rules file")
	}
}

func TestCheckCmd_MissingRulesFileFails(t *testing.T) {
	isolateHome(t)
	runner := &mockCheckRunner{result: &CheckResult{}}
	cmd := NewCheckCmd(runner)
	cmd.SetArgs([]string{"--rules", filepath.Join(t.TempDir(), "absent.yaml")})
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))

	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected error for missing rules file")
	}
	if !strings.Contains(err.Error(), "open rules") {
		t.Errorf("error = %v, want it to mention open rules", err)
	}
}

func TestCheckCmd_ConfigProvidesRulesPath(t *testing.T) {
	isolateHome(t)
	dir := t.TempDir()
	rulesPath := filepath.Join(dir, "rules.yaml")
	if err := os.WriteFile(rulesPath, []byte("max_depth: 5\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfgPath := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(cfgPath, []byte(fmt.Sprintf("rules = %q\n", rulesPath)), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	configPath = cfgPath
	defer func() { configPath = "" }()

	runner := &mockCheckRunner{result: &CheckResult{}}
	cmd := NewCheckCmd(runner)
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if runner.lastReq.MaxDepth != 5 {
		t.Errorf("req.MaxDepth = %d, want 5 from the configured rules file", runner.lastReq.MaxDepth)
	}
}

func TestFindingsDetectedError_ExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      *FindingsDetectedError
		wantCode int
	}{
		{
			name:     "errors only",
			err:      &FindingsDetectedError{Errors: 3, Warnings: 0},
			wantCode: 2,
		},
		{
			name:     "warnings only",
			err:      &FindingsDetectedError{Errors: 0, Warnings: 2},
			wantCode: 2,
		},
		{
			name:     "mixed errors and warnings",
			err:      &FindingsDetectedError{Errors: 1, Warnings: 1},
			wantCode: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.ExitCode()
			if got != tt.wantCode {
				t.Errorf("ExitCode() = %d, want %d", got, tt.wantCode)
			}
		})
	}
}

func TestExitCodeFromError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{
			name:     "nil error returns 0",
			err:      nil,
			wantCode: 0,
		},
		{
			name:     "generic error returns 1",
			err:      fmt.Errorf("something went wrong"),
			wantCode: 1,
		},
		{
			name:     "findings detected returns 2",
			err:      &FindingsDetectedError{Errors: 1, Warnings: 0},
			wantCode: 2,
		},
		{
			name:     "wrapped findings detected returns 2",
			err:      fmt.Errorf("check failed: %w", &FindingsDetectedError{Errors: 2, Warnings: 1}),
			wantCode: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExitCodeFromError(tt.err)
			if got != tt.wantCode {
				t.Errorf("ExitCodeFromError() = %d, want %d", got, tt.wantCode)
			}
		})
	}
}

func TestCheckCmd_ContextCancellation(t *testing.T) {
	isolateHome(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := &mockCheckRunner{
		err: ctx.Err(),
	}
	cmd := NewCheckCmd(runner)
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))

	err := cmd.Execute()

	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

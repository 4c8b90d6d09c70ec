package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vrtbl/tracedent/internal/rules"
)

// FindingType represents the kind of check finding.
type FindingType string

const (
	// FindingUnbalancedTrace indicates a dump whose final depth is not zero.
	FindingUnbalancedTrace FindingType = "unbalanced_trace"
	// FindingNegativeDepth indicates an exiting line with no entering line left to match.
	FindingNegativeDepth FindingType = "negative_depth"
	// FindingMaxDepthExceeded indicates nesting beyond the configured max_depth rule.
	FindingMaxDepthExceeded FindingType = "max_depth_exceeded"
)

// Severity represents the severity level of a check finding.
type Severity string

const (
	// SeverityError represents an error-level finding.
	SeverityError Severity = "error"
	// SeverityWarning represents a warning-level finding.
	SeverityWarning Severity = "warning"
)

// CheckFinding represents a single finding from the check command.
// Line is 1-based; zero means the finding concerns the dump as a whole.
type CheckFinding struct {
	Type     FindingType `json:"type"`
	Severity Severity    `json:"severity"`
	Message  string      `json:"message"`
	Line     int         `json:"line"`
}

// CheckResult holds all findings from a check run.
type CheckResult struct {
	Findings []CheckFinding `json:"findings"`
}

// CheckRequest carries the resolved input and rules for one check run.
type CheckRequest struct {
	Input           string
	MaxDepth        int
	RequireBalanced bool
	AllowNegative   bool
}

// CheckRunner defines the interface for checking a trace dump.
type CheckRunner interface {
	Check(ctx context.Context, req CheckRequest) (*CheckResult, error)
}

// FindingsDetectedError is returned when check detects findings.
type FindingsDetectedError struct {
	Errors   int
	Warnings int
}

// Error implements the error interface.
func (e *FindingsDetectedError) Error() string {
	return fmt.Sprintf("check found %d errors, %d warnings", e.Errors, e.Warnings)
}

// ExitCode returns the exit code for findings (always 2).
func (e *FindingsDetectedError) ExitCode() int {
	return 2
}

// ExitCoder is implemented by errors that carry a specific process exit code.
type ExitCoder interface {
	ExitCode() int
}

// ExitCodeFromError returns the appropriate exit code for an error.
// nil returns 0, ExitCoder errors return their code, all others return 1.
func ExitCodeFromError(err error) int {
	if err == nil {
		return 0
	}
	var coder ExitCoder
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return 1
}

// checkJSONResponse is the JSON output structure for the check command.
type checkJSONResponse struct {
	Findings []CheckFinding `json:"findings"`
	Summary  struct {
		Errors   int `json:"errors"`
		Warnings int `json:"warnings"`
	} `json:"summary"`
}

// countBySeverity counts errors and warnings in a slice of findings.
func countBySeverity(findings []CheckFinding) (errCount, warnCount int) {
	for _, f := range findings {
		if f.Severity == SeverityError {
			errCount++
		} else {
			warnCount++
		}
	}
	return
}

// formatCheckJSON writes findings as JSON to w.
func formatCheckJSON(w io.Writer, findings []CheckFinding, errCount, warnCount int) {
	if findings == nil {
		findings = []CheckFinding{}
	}
	out := checkJSONResponse{Findings: findings}
	out.Summary.Errors = errCount
	out.Summary.Warnings = warnCount
	writeJSON(w, out)
}

// formatCheckHuman writes findings as human-readable text to w. Input
// names the checked dump; findings without a line number concern the
// dump as a whole.
func formatCheckHuman(w io.Writer, input string, findings []CheckFinding, errCount, warnCount int) {
	for _, f := range findings {
		locus := input
		if f.Line > 0 {
			locus = fmt.Sprintf("%s:%d", input, f.Line)
		}
		fmt.Fprintf(w, "%s [%s] %s: %s\n", locus, f.Severity, f.Type, f.Message)
	}
	if errCount > 0 || warnCount > 0 {
		fmt.Fprintf(w, "\n%d error(s), %d warning(s)\n", errCount, warnCount)
	}
}

// runCheckAndReport runs the checker and formats findings as JSON or human-readable text.
// It returns a FindingsDetectedError if any findings are present.
func runCheckAndReport(cmd *cobra.Command, runner CheckRunner, req CheckRequest, jsonOutput bool) error {
	result, err := runner.Check(cmd.Context(), req)
	if err != nil {
		return err
	}

	errCount, warnCount := countBySeverity(result.Findings)

	if jsonOutput {
		formatCheckJSON(cmd.OutOrStdout(), result.Findings, errCount, warnCount)
	} else {
		formatCheckHuman(cmd.OutOrStdout(), req.Input, result.Findings, errCount, warnCount)
	}

	if len(result.Findings) > 0 {
		return &FindingsDetectedError{Errors: errCount, Warnings: warnCount}
	}
	return nil
}

// NewCheckCmd creates the check command with the given runner.
func NewCheckCmd(runner CheckRunner) *cobra.Command {
	var (
		jsonOutput bool
		rulesPath  string
	)

	cmd := &cobra.Command{
		Use:          "check [file]",
		Short:        "Verify a trace dump against depth rules",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if runner == nil {
				return ErrNoService
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			path := cfg.Rules
			if cmd.Flags().Changed("rules") {
				path = rulesPath
			}
			ruleset := rules.Default()
			if path != "" {
				ruleset, err = rules.Load(path)
				if err != nil {
					return err
				}
			}

			req := CheckRequest{
				Input:           resolveInput(args, cfg),
				MaxDepth:        ruleset.MaxDepth,
				RequireBalanced: ruleset.RequireBalanced,
				AllowNegative:   ruleset.AllowNegative,
			}
			return runCheckAndReport(cmd, runner, req, jsonOutput || GetJSON())
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")
	cmd.Flags().StringVar(&rulesPath, "rules", "", "YAML rules file to check against")

	return cmd
}

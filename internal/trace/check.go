package trace

import (
	"context"
	"fmt"

	"github.com/vrtbl/tracedent/internal/depth"
)

// CheckOptions configures one check pass. The rule fields mirror a
// loaded rules file.
type CheckOptions struct {
	// Input is the dump path handed to the source opener.
	Input string
	// MaxDepth flags nesting beyond this depth when positive. Zero
	// means unlimited.
	MaxDepth int
	// RequireBalanced flags a dump whose final depth is not zero.
	RequireBalanced bool
	// AllowNegative silences findings for depths below zero.
	AllowNegative bool
}

// Check walks the dump at opts.Input and reports every rule the depth
// trajectory breaks. A clean dump yields an empty, non-nil slice.
func (s *Service) Check(ctx context.Context, opts CheckOptions) ([]Finding, error) {
	findings := make([]Finding, 0)
	maxFlagged := false

	sum, err := s.walk(ctx, opts.Input, func(n int, line string, _, after int) error {
		// Only the exiting line that crossed below zero is flagged,
		// not every line that sits at negative depth afterwards.
		if after < 0 && !opts.AllowNegative && depth.Classify(line) == depth.KindExit {
			findings = append(findings, Finding{
				Type:     FindingNegativeDepth,
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("depth %d after unmatched %q", after, depth.ExitMarker),
				Line:     n,
			})
		}
		if opts.MaxDepth > 0 && after > opts.MaxDepth && !maxFlagged {
			maxFlagged = true
			findings = append(findings, Finding{
				Type:     FindingMaxDepthExceeded,
				Severity: SeverityError,
				Message:  fmt.Sprintf("depth %d exceeds max_depth %d", after, opts.MaxDepth),
				Line:     n,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if opts.RequireBalanced && sum.FinalDepth != 0 {
		findings = append(findings, Finding{
			Type:     FindingUnbalancedTrace,
			Severity: SeverityError,
			Message:  fmt.Sprintf("final depth %d, want 0", sum.FinalDepth),
		})
	}
	return findings, nil
}

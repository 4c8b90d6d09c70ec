package trace

// FindingType names a class of problem check detects in a dump.
type FindingType string

const (
	// FindingUnbalancedTrace reports a dump whose final depth is not
	// zero, so some entering line was never matched by an exiting one
	// or the other way around.
	FindingUnbalancedTrace FindingType = "unbalanced_trace"
	// FindingNegativeDepth reports an exiting line with no entering
	// line left to match.
	FindingNegativeDepth FindingType = "negative_depth"
	// FindingMaxDepthExceeded reports nesting beyond the configured
	// max_depth rule.
	FindingMaxDepthExceeded FindingType = "max_depth_exceeded"
)

// Severity ranks a finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Finding is one problem detected in a dump. Line is 1-based; zero
// means the finding concerns the dump as a whole.
type Finding struct {
	Type     FindingType
	Severity Severity
	Message  string
	Line     int
}

package cmd

import (
	"context"
	"io"

	"github.com/vrtbl/tracedent/internal/fs"
	"github.com/vrtbl/tracedent/internal/label"
	"github.com/vrtbl/tracedent/internal/lock"
	"github.com/vrtbl/tracedent/internal/trace"
)

// traceServicer abstracts the trace.Service methods used by adapters.
type traceServicer interface {
	Indent(ctx context.Context, w io.Writer, render trace.LabelRenderer, opts trace.IndentOptions) (trace.Summary, error)
	Check(ctx context.Context, opts trace.CheckOptions) ([]trace.Finding, error)
	Stats(ctx context.Context, input string) (trace.Summary, error)
}

// WireService assembles the trace service over the real filesystem.
// stdin serves reads of the conventional "-" input path.
func WireService(stdin io.Reader) *trace.Service {
	opener := stdinOpener{stdin: stdin, next: fs.OSOpener{}}
	return trace.NewService(opener, fs.OSCreator{}, func(path string) trace.Locker {
		return lock.ForOutput(path)
	})
}

// stdinOpener serves "-" from stdin and delegates every other path.
type stdinOpener struct {
	stdin io.Reader
	next  trace.SourceOpener
}

func (o stdinOpener) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(o.stdin), nil
	}
	return o.next.Open(ctx, path)
}

// --- indentAdapter ---

type indentAdapter struct {
	svc traceServicer
}

func (a *indentAdapter) Indent(ctx context.Context, w io.Writer, req IndentRequest) (*IndentResult, error) {
	mode, err := label.ParseMode(req.Color)
	if err != nil {
		return nil, err
	}

	sum, err := a.svc.Indent(ctx, w, label.New(req.Width, mode), trace.IndentOptions{
		Input:  req.Input,
		Output: req.Output,
		Tail:   req.Tail,
	})
	if err != nil {
		return nil, err
	}

	return &IndentResult{
		Lines:      sum.Lines,
		MaxDepth:   sum.MaxDepth,
		FinalDepth: sum.FinalDepth,
	}, nil
}

// --- checkAdapter ---

type checkAdapter struct {
	svc traceServicer
}

func (a *checkAdapter) Check(ctx context.Context, req CheckRequest) (*CheckResult, error) {
	svcFindings, err := a.svc.Check(ctx, trace.CheckOptions{
		Input:           req.Input,
		MaxDepth:        req.MaxDepth,
		RequireBalanced: req.RequireBalanced,
		AllowNegative:   req.AllowNegative,
	})
	if err != nil {
		return nil, err
	}

	findings := make([]CheckFinding, len(svcFindings))
	for i, f := range svcFindings {
		findings[i] = convertFinding(f)
	}
	return &CheckResult{Findings: findings}, nil
}

// --- statsAdapter ---

type statsAdapter struct {
	svc traceServicer
}

func (a *statsAdapter) Stats(ctx context.Context, input string) (*StatsReport, error) {
	sum, err := a.svc.Stats(ctx, input)
	if err != nil {
		return nil, err
	}

	return &StatsReport{
		Lines:      sum.Lines,
		Entering:   sum.Entering,
		Exiting:    sum.Exiting,
		MaxDepth:   sum.MaxDepth,
		MinDepth:   sum.MinDepth,
		FinalDepth: sum.FinalDepth,
		Balanced:   sum.Balanced,
	}, nil
}

// convertFinding converts a trace.Finding to a cmd.CheckFinding.
func convertFinding(f trace.Finding) CheckFinding {
	return CheckFinding{
		Type:     FindingType(f.Type),
		Severity: Severity(f.Severity),
		Message:  f.Message,
		Line:     f.Line,
	}
}

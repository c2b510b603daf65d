// Package report provides severity-tagged diagnostics for the documentation
// test pipeline, with optional GitHub Actions annotation output.
//
// The core packages (frontmatter, schema, section, runner) emit diagnostics
// through the Sink interface; they never format platform-specific annotation
// syntax themselves. The Console sink prints labeled console lines and, when
// annotation output is enabled, emits workflow command annotations filtered by
// a severity threshold.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/docwright/doctest/internal/severity"
)

// Severity is the severity level of a diagnostic entry.
type Severity = severity.Severity

// Severity constants re-exported for convenience.
const (
	SeverityInfo    = severity.SeverityInfo
	SeverityNotice  = severity.SeverityNotice
	SeverityWarning = severity.SeverityWarning
	SeverityError   = severity.SeverityError
	SeveritySuccess = severity.SeveritySuccess
)

// Entry is a single diagnostic emitted by the pipeline. File and Line are
// optional and only meaningful for annotation sinks.
type Entry struct {
	// Severity is the level of the entry.
	Severity Severity
	// Message is the human-readable diagnostic text.
	Message string
	// File is the documentation file the entry refers to (may be empty).
	File string
	// Line is the 1-based line number in File (0 if unknown).
	Line int
}

// Sink receives diagnostic entries from the pipeline.
type Sink interface {
	Log(e Entry)
}

// Nop is a no-op sink that discards all entries.
// It is the default sink used when none is configured.
type Nop struct{}

// Log implements Sink.
func (Nop) Log(Entry) {}

// Ensure Nop implements Sink at compile time.
var _ Sink = Nop{}

// Threshold controls which severities produce annotations.
type Threshold int

const (
	// ThresholdAll emits notice, warning, and error annotations.
	ThresholdAll Threshold = iota
	// ThresholdWarning emits warning and error annotations.
	ThresholdWarning
	// ThresholdError emits only error annotations.
	ThresholdError
)

// ParseThreshold parses a threshold name ("all", "warning", "error").
func ParseThreshold(s string) (Threshold, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "all":
		return ThresholdAll, nil
	case "warning":
		return ThresholdWarning, nil
	case "error":
		return ThresholdError, nil
	default:
		return ThresholdWarning, fmt.Errorf("invalid annotation threshold %q; valid values: all, warning, error", s)
	}
}

// rank orders annotating severities against thresholds.
// Info and Success never annotate so they have no rank.
func rank(s Severity) int {
	switch s {
	case SeverityNotice:
		return 0
	case SeverityWarning:
		return 1
	case SeverityError:
		return 2
	default:
		return -1
	}
}

// Console is a Sink that writes labeled lines to Out and, when Annotate is
// enabled, GitHub Actions workflow commands for entries at or above Threshold.
type Console struct {
	// Out receives console output. Defaults to os.Stdout when nil.
	Out io.Writer
	// Annotate enables workflow command output.
	Annotate bool
	// Threshold is the minimum severity that produces an annotation.
	Threshold Threshold
}

// NewConsole returns a console sink writing to stdout with annotations disabled.
func NewConsole() *Console {
	return &Console{Out: os.Stdout}
}

// NewAnnotating returns a console sink writing to stdout that also emits
// workflow command annotations for entries at or above the given threshold.
func NewAnnotating(threshold Threshold) *Console {
	return &Console{Out: os.Stdout, Annotate: true, Threshold: threshold}
}

// Log implements Sink.
func (c *Console) Log(e Entry) {
	out := c.Out
	if out == nil {
		out = os.Stdout
	}

	if label := e.Severity.Label(); label != "" {
		fmt.Fprintf(out, "%s: %s\n", label, e.Message)
	} else {
		fmt.Fprintln(out, e.Message)
	}

	if !c.Annotate || !e.Severity.Annotates() {
		return
	}
	if rank(e.Severity) < int(c.Threshold) {
		return
	}
	fmt.Fprintln(out, formatAnnotation(e))
}

// formatAnnotation renders a GitHub Actions workflow command, e.g.
//
//	::error file=docs/api.md,line=5::Required field missing: test
func formatAnnotation(e Entry) string {
	var b strings.Builder
	b.WriteString("::")
	b.WriteString(e.Severity.String())

	var props []string
	if e.File != "" {
		props = append(props, "file="+e.File)
	}
	if e.Line > 0 {
		props = append(props, fmt.Sprintf("line=%d", e.Line))
	}
	if len(props) > 0 {
		b.WriteString(" ")
		b.WriteString(strings.Join(props, ","))
	}

	b.WriteString("::")
	b.WriteString(e.Message)
	return b.String()
}

// Ensure Console implements Sink at compile time.
var _ Sink = (*Console)(nil)

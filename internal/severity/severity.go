// Package severity provides severity level constants and utilities for
// diagnostics emitted by the frontmatter, schema, runner, and configs packages.
//
// All five levels are re-exported by the public report package:
//   - SeverityInfo: Informational progress messages
//   - SeverityNotice: Notices worth surfacing in CI annotations
//   - SeverityWarning: Recoverable problems (optional-field violations, missing sections)
//   - SeverityError: Failures that count against the test run
//   - SeveritySuccess: Positive confirmation of a passed check
//
// Info and Success exist for console output only and never produce CI
// annotations; Notice < Warning < Error is the annotation ordering.
package severity

// Severity indicates the severity level of a diagnostic.
type Severity int

const (
	// SeverityInfo indicates an informational progress message.
	SeverityInfo Severity = iota

	// SeverityNotice indicates a notice that may be surfaced as a CI annotation
	// when the annotation threshold is set to "all".
	SeverityNotice

	// SeverityWarning indicates a recoverable problem, such as an optional
	// front-matter field violation or a missing documentation section.
	SeverityWarning

	// SeverityError indicates a failure that counts against the test run.
	SeverityError

	// SeveritySuccess indicates positive confirmation of a passed check.
	SeveritySuccess
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityNotice:
		return "notice"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeveritySuccess:
		return "success"
	default:
		return "unknown"
	}
}

// Label returns the upper-case console label for the severity level.
func (s Severity) Label() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityNotice:
		return "NOTICE"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	case SeveritySuccess:
		return "SUCCESS"
	default:
		return ""
	}
}

// Annotates reports whether the level produces a CI annotation at all.
// Info and Success are console-only levels.
func (s Severity) Annotates() bool {
	switch s {
	case SeverityNotice, SeverityWarning, SeverityError:
		return true
	default:
		return false
	}
}

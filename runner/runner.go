// Package runner orchestrates documentation testing: it reads a markdown
// file, gates on its front matter and schema, and for every declared example
// extracts the documented request, executes it against the live server, and
// compares the observed response with the documented one.
package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/docwright/doctest/compare"
	"github.com/docwright/doctest/docerrors"
	"github.com/docwright/doctest/frontmatter"
	"github.com/docwright/doctest/report"
	"github.com/docwright/doctest/schema"
	"github.com/docwright/doctest/section"
)

// maxReportedDifferences caps the per-example mismatch listing so one badly
// drifted example does not flood the log.
const maxReportedDifferences = 10

// FileSummary aggregates example outcomes for one document.
type FileSummary struct {
	Total  int
	Passed int
	Failed int
}

// Add folds another summary into s. Used by callers aggregating a run across
// files.
func (s *FileSummary) Add(other FileSummary) {
	s.Total += other.Total
	s.Passed += other.Passed
	s.Failed += other.Failed
}

// Runner executes documentation tests. The zero value is not usable; call
// New.
type Runner struct {
	sink       report.Sink
	validator  *schema.Validator
	schemaPath string
	timeout    time.Duration
}

// Option configures a Runner.
type Option func(*Runner)

// WithSink routes diagnostics to the given sink.
func WithSink(s report.Sink) Option {
	return func(r *Runner) {
		if s != nil {
			r.sink = s
		}
	}
}

// WithSchemaPath overrides the front-matter schema location.
func WithSchemaPath(path string) Option {
	return func(r *Runner) {
		if path != "" {
			r.schemaPath = path
		}
	}
}

// WithTimeout overrides the per-example execution timeout.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithSchemaCache shares a schema cache with the runner's validator.
func WithSchemaCache(c *schema.Cache) Option {
	return func(r *Runner) {
		r.validator = schema.New(schema.WithCache(c), schema.WithSink(r.sink))
	}
}

// New creates a Runner. Apply WithSink before WithSchemaCache so the shared
// validator inherits the sink.
func New(opts ...Option) *Runner {
	r := &Runner{
		sink:       report.Nop{},
		schemaPath: schema.DefaultPath,
		timeout:    DefaultTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.validator == nil {
		r.validator = schema.New(schema.WithSink(r.sink))
	}
	return r
}

// TestFile runs every testable example declared in the document at path.
//
// A returned error marks a blocking input problem (unreadable file, absent or
// malformed front matter, schema required-field violations); no tests are
// attempted and the summary is zero. A document without a test configuration
// or with an empty testable list is not an error: it yields a zero summary
// with a nil error.
func (r *Runner) TestFile(ctx context.Context, path string) (FileSummary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		r.log(report.SeverityError, path, 0, fmt.Sprintf("Error reading file: %v", err))
		return FileSummary{}, &docerrors.ParseError{Path: path, Message: "file could not be read", Cause: err}
	}

	metadata, issue := frontmatter.Parse(string(data))
	if issue != nil {
		r.log(report.SeverityError, path, issue.Line, issue.Message)
		return FileSummary{}, &docerrors.ParseError{Path: path, Line: issue.Line, Message: "front matter could not be parsed"}
	}
	if metadata == nil {
		r.log(report.SeverityInfo, path, 0, "No test configuration found, skipping")
		return FileSummary{}, nil
	}

	if result := r.validator.Validate(metadata, r.schemaPath, path); !result.Valid {
		return FileSummary{}, &docerrors.SchemaError{
			SchemaPath: r.schemaPath,
			Message:    fmt.Sprintf("front matter failed schema validation (%d errors)", len(result.Errors)),
		}
	}

	cfg := frontmatter.TestConfigFrom(metadata)
	if cfg == nil {
		r.log(report.SeverityInfo, path, 0, "No test configuration found, skipping")
		return FileSummary{}, nil
	}
	entries := cfg.Testable()
	if len(entries) == 0 {
		r.log(report.SeverityInfo, path, 0, "No testable examples declared, skipping")
		return FileSummary{}, nil
	}

	serverURL := cfg.ServerURL()
	content := string(data)

	var summary FileSummary
	for _, entry := range entries {
		summary.Total++

		name, codes, ok := frontmatter.ParseTestableEntry(entry)
		if !ok {
			summary.Failed++
			r.log(report.SeverityError, path, 0, fmt.Sprintf("Invalid testable entry: '%s'", entry))
			r.log(report.SeverityInfo, "", 0, "   Help: "+report.HelpURL(report.TopicExampleFormat))
			continue
		}

		if r.TestExample(ctx, content, name, codes, serverURL, path) {
			summary.Passed++
		} else {
			summary.Failed++
		}
	}

	r.log(report.SeverityInfo, path, 0,
		fmt.Sprintf("Results: %d passed, %d failed of %d examples", summary.Passed, summary.Failed, summary.Total))
	return summary, nil
}

// TestExample runs one named example from content and reports whether it
// passed. Every failure path emits its own diagnostic: missing request
// section, execution failure, unexpected status, non-JSON body, missing or
// malformed documented response, and structural mismatch are all
// distinguishable in the log.
func (r *Runner) TestExample(ctx context.Context, content, exampleName string, expectedCodes []int, serverURL, filePath string) bool {
	command := section.ExtractRequest(content, serverURL, exampleName)
	if command == "" {
		r.log(report.SeverityWarning, filePath, 0,
			fmt.Sprintf("Could not find request section for example: %s", exampleName))
		r.log(report.SeverityInfo, "", 0, "   Help: "+report.HelpURL(report.TopicExampleFormat))
		return false
	}

	outcome := Execute(ctx, command, r.timeout)
	if outcome.Err != nil {
		r.log(report.SeverityError, filePath, 0,
			fmt.Sprintf("Failed to execute request for '%s': %v", exampleName, outcome.Err))
		return false
	}

	if !containsCode(expectedCodes, outcome.StatusCode) {
		r.log(report.SeverityError, filePath, 0,
			fmt.Sprintf("Unexpected status code for '%s': expected one of %v, got %d",
				exampleName, expectedCodes, outcome.StatusCode))
		return false
	}

	var actual any
	if err := json.Unmarshal([]byte(outcome.Body), &actual); err != nil {
		r.log(report.SeverityError, filePath, 0,
			fmt.Sprintf("Response body for '%s' is not valid JSON: %v", exampleName, err))
		return false
	}

	expected := section.ExtractResponse(content, exampleName)
	if expected == nil {
		r.log(report.SeverityWarning, filePath, 0,
			fmt.Sprintf("Could not find documented response for '%s', or it is not valid JSON", exampleName))
		r.log(report.SeverityInfo, "", 0, "   Help: "+report.HelpURL(report.TopicExampleFormat))
		return false
	}

	diff := compare.Compare(actual, expected)
	if !diff.Equal {
		r.log(report.SeverityError, filePath, 0,
			fmt.Sprintf("Response for '%s' does not match documentation:", exampleName))
		for i, difference := range diff.Differences {
			if i == maxReportedDifferences {
				r.log(report.SeverityError, filePath, 0,
					fmt.Sprintf("  ... and %d more differences", len(diff.Differences)-maxReportedDifferences))
				break
			}
			r.log(report.SeverityError, filePath, 0, "  - "+difference)
		}
		return false
	}

	r.log(report.SeveritySuccess, filePath, 0, fmt.Sprintf("Example passed: %s", exampleName))
	return true
}

func (r *Runner) log(sev report.Severity, file string, line int, msg string) {
	r.sink.Log(report.Entry{Severity: sev, Message: msg, File: file, Line: line})
}

func containsCode(codes []int, code int) bool {
	for _, c := range codes {
		if c == code {
			return true
		}
	}
	return false
}

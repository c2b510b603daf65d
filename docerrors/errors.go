// Package docerrors provides structured error types for doctest.
//
// These error types enable programmatic error handling via errors.Is() and
// errors.As(), allowing callers to distinguish between different categories
// of errors and implement appropriate recovery strategies.
//
// # Error Categories
//
//   - ParseError: front-matter extraction and YAML parsing failures
//   - SchemaError: JSON Schema loading and validation failures
//   - ExtractionError: missing or malformed request/response sections
//   - ExecutionError: subprocess failures, timeouts, unparseable responses
//   - ConfigError: invalid configuration or input options
//
// The core pipeline functions (frontmatter.Parse, section.ExtractRequest,
// runner.Execute) report their documented failure modes through result values
// rather than errors; these types are used at the I/O and CLI boundaries.
//
// # Usage with errors.Is
//
//	if err := run(); err != nil {
//	    var execErr *docerrors.ExecutionError
//	    if errors.As(err, &execErr) {
//	        if execErr.TimedOut {
//	            // Handle timeout specifically
//	        }
//	    }
//	}
package docerrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrParse indicates a front-matter parsing failure occurred.
	ErrParse = errors.New("parse error")

	// ErrSchema indicates a schema loading or validation failure.
	ErrSchema = errors.New("schema error")

	// ErrExtraction indicates a request/response section could not be extracted.
	ErrExtraction = errors.New("extraction error")

	// ErrExecution indicates an example request failed to execute.
	ErrExecution = errors.New("execution error")

	// ErrTimeout indicates an example request exceeded its time limit.
	ErrTimeout = errors.New("execution timed out")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// ParseError represents a failure to extract or parse YAML front matter.
type ParseError struct {
	// Path is the documentation file path (may be empty)
	Path string
	// Line is the 1-based line number where the error occurred (0 if unknown)
	Line int
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// SchemaError represents a failure to load a JSON Schema or a blocking
// validation failure against one.
type SchemaError struct {
	// SchemaPath is the path to the schema file
	SchemaPath string
	// Field is the dotted path of the violating field (empty for load failures)
	Field string
	// Message describes the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *SchemaError) Error() string {
	msg := "schema error"
	if e.SchemaPath != "" {
		msg += " for " + e.SchemaPath
	}
	if e.Field != "" {
		msg += " at " + e.Field
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *SchemaError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *SchemaError) Is(target error) bool {
	return target == ErrSchema
}

// ExtractionError represents a missing or malformed request/response section.
type ExtractionError struct {
	// Example is the name of the documentation example
	Example string
	// Section is "request" or "response"
	Section string
	// Message describes the extraction failure
	Message string
}

// Error returns a human-readable error message.
func (e *ExtractionError) Error() string {
	msg := "extraction error"
	if e.Example != "" {
		msg += fmt.Sprintf(" for example %q", e.Example)
	}
	if e.Section != "" {
		msg += " (" + e.Section + " section)"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Unwrap returns nil as ExtractionError has no underlying cause.
func (e *ExtractionError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *ExtractionError) Is(target error) bool {
	return target == ErrExtraction
}

// ExecutionError represents a failure to execute a documented request or to
// parse its response.
type ExecutionError struct {
	// Command is the command that was executed (may be truncated)
	Command string
	// TimedOut is true when the command exceeded its time limit
	TimedOut bool
	// Message describes the execution failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ExecutionError) Error() string {
	msg := "execution error"
	if e.TimedOut {
		msg = "execution timed out"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ExecutionError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
// Matches ErrExecution, and also ErrTimeout when TimedOut is set.
func (e *ExecutionError) Is(target error) bool {
	if target == ErrExecution {
		return true
	}
	if target == ErrTimeout && e.TimedOut {
		return true
	}
	return false
}

// ConfigError represents an invalid configuration or input.
// This includes invalid options, missing required inputs, and conflicting settings.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

// Package schema validates parsed front matter against a JSON Schema
// (draft-07 semantics), classifying violations as blocking errors on required
// fields or non-blocking warnings on optional fields.
//
// Schema validation is delegated to github.com/xeipuuv/gojsonschema; this
// package owns schema loading, caching, and the required-vs-optional
// classification of the engine's findings. A missing or corrupt schema file
// never fails the pipeline: validation is skipped with a warning diagnostic
// and the result reports valid.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/docwright/doctest/report"
)

// DefaultPath is the project-relative schema location used when no override
// is given.
const DefaultPath = ".github/schemas/front-matter-schema.json"

// Result reports the outcome of validating front matter against a schema.
type Result struct {
	// Valid is false iff at least one required-field violation exists.
	Valid bool
	// HasWarnings is true when any optional-field violation was found.
	HasWarnings bool
	// Errors holds the required-field violation messages.
	Errors []string
	// Warnings holds the optional-field violation messages.
	Warnings []string
}

// Validator validates front matter mappings against a JSON Schema file,
// caching loaded schemas by path.
type Validator struct {
	cache *Cache
	sink  report.Sink
}

// Option configures a Validator.
type Option func(*Validator)

// WithCache uses the given cache instead of a fresh one. Useful for sharing
// a cache across validators or clearing it between test runs.
func WithCache(c *Cache) Option {
	return func(v *Validator) {
		if c != nil {
			v.cache = c
		}
	}
}

// WithSink routes the validator's diagnostics to the given sink.
func WithSink(s report.Sink) Option {
	return func(v *Validator) {
		if s != nil {
			v.sink = s
		}
	}
}

// New creates a Validator with its own cache and a no-op sink.
func New(opts ...Option) *Validator {
	v := &Validator{
		cache: NewCache(),
		sink:  report.Nop{},
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Cache returns the validator's schema cache.
func (v *Validator) Cache() *Cache {
	return v.cache
}

// Load reads and decodes the schema at path, consulting the cache first.
// The returned error is nil on a cache or disk hit; a missing file or JSON
// syntax error is returned for the caller to report (the pipeline treats
// both as "skip validation").
func (v *Validator) Load(path string) (map[string]any, error) {
	if s, ok := v.cache.Get(path); ok {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s map[string]any
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	v.cache.Put(path, s)
	return s, nil
}

// Validate checks metadata against the schema at schemaPath and classifies
// each violation. filePath is only used to locate diagnostics.
//
// When the schema cannot be loaded, or the engine rejects it, validation is
// skipped: a warning is logged and the result is valid with no warnings.
func (v *Validator) Validate(metadata map[string]any, schemaPath, filePath string) Result {
	schemaDoc, err := v.Load(schemaPath)
	if err != nil {
		v.logLoadFailure(schemaPath, filePath, err)
		return Result{Valid: true}
	}

	engineResult, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(schemaDoc),
		gojsonschema.NewGoLoader(metadata),
	)
	if err != nil {
		v.sink.Log(report.Entry{
			Severity: report.SeverityWarning,
			Message:  fmt.Sprintf("Schema validation unavailable: %v", err),
			File:     filePath,
		})
		return Result{Valid: true}
	}

	required := requiredFields(schemaDoc)

	result := Result{Valid: true}
	for _, violation := range engineResult.Errors() {
		blocking, message := classify(violation, required)
		if blocking {
			result.Errors = append(result.Errors, message)
		} else {
			result.Warnings = append(result.Warnings, message)
		}
	}
	result.Valid = len(result.Errors) == 0
	result.HasWarnings = len(result.Warnings) > 0

	v.logFindings(result, filePath)
	return result
}

// requiredFields extracts the schema's top-level required list.
func requiredFields(schemaDoc map[string]any) map[string]bool {
	required := make(map[string]bool)
	seq, _ := schemaDoc["required"].([]any)
	for _, item := range seq {
		if name, ok := item.(string); ok {
			required[name] = true
		}
	}
	return required
}

// classify maps one engine violation to a blocking error or a warning.
//
// A violation blocks when it is a required-keyword failure (the field is
// entirely missing), or when its top-level path component appears in the
// schema's required list (covers enum/type/format/pattern/length/range
// violations on a required field). Everything else is a warning.
func classify(violation gojsonschema.ResultError, required map[string]bool) (blocking bool, message string) {
	field := violation.Field()
	if field == "(root)" {
		field = ""
	}

	switch violation.Type() {
	case "required":
		missing := "unknown"
		if prop, ok := violation.Details()["property"].(string); ok {
			missing = prop
		}
		return true, fmt.Sprintf("Required field missing: %s", missing)

	case "enum":
		if field != "" {
			blocking = required[topLevel(field)]
			return blocking, fmt.Sprintf("Invalid value for %s field '%s': %s",
				fieldKind(blocking), field, violation.Description())
		}

	case "invalid_type", "format", "pattern",
		"number_gte", "number_lte", "string_gte", "string_lte":
		blocking = field != "" && required[topLevel(field)]
		return blocking, fmt.Sprintf("Invalid format for %s field '%s': %s",
			fieldKind(blocking), field, violation.Description())
	}

	if field == "" {
		field = "unknown"
	}
	return false, fmt.Sprintf("Validation issue in '%s': %s", field, violation.Description())
}

func topLevel(field string) string {
	if i := strings.Index(field, "."); i >= 0 {
		return field[:i]
	}
	return field
}

func fieldKind(blocking bool) string {
	if blocking {
		return "required"
	}
	return "optional"
}

// logLoadFailure reports why the schema could not be loaded. Both failure
// modes are warnings: the run continues as if validation passed.
func (v *Validator) logLoadFailure(schemaPath, filePath string, err error) {
	var msg string
	var syntaxErr *json.SyntaxError
	switch {
	case errors.Is(err, fs.ErrNotExist):
		msg = fmt.Sprintf("Schema file not found: %s", schemaPath)
	case errors.As(err, &syntaxErr):
		msg = fmt.Sprintf("Invalid JSON schema: %v", err)
	default:
		msg = fmt.Sprintf("Error loading schema: %v", err)
	}
	v.sink.Log(report.Entry{Severity: report.SeverityWarning, Message: msg, File: filePath})
}

// logFindings reports classified violations the way the pipeline surfaces
// them: errors first with a help link, then warnings, then a success line
// when the front matter is clean.
func (v *Validator) logFindings(result Result, filePath string) {
	if len(result.Errors) > 0 {
		v.sink.Log(report.Entry{
			Severity: report.SeverityError,
			Message:  "Front matter validation errors found:",
			File:     filePath,
		})
		for _, msg := range result.Errors {
			v.sink.Log(report.Entry{Severity: report.SeverityError, Message: "  - " + msg, File: filePath})
		}
		v.sink.Log(report.Entry{
			Severity: report.SeverityInfo,
			Message:  "-  Help: " + report.HelpURL(report.TopicFrontMatter),
		})
	}

	if len(result.Warnings) > 0 {
		v.sink.Log(report.Entry{
			Severity: report.SeverityWarning,
			Message:  "Front matter validation warnings:",
			File:     filePath,
		})
		for _, msg := range result.Warnings {
			v.sink.Log(report.Entry{Severity: report.SeverityWarning, Message: "  - " + msg, File: filePath})
		}
	}

	if len(result.Errors) == 0 && len(result.Warnings) == 0 {
		v.sink.Log(report.Entry{Severity: report.SeveritySuccess, Message: "Front matter validation passed"})
	}
}

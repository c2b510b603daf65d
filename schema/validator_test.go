package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docwright/doctest/report"
)

const testSchema = "testdata/front-matter-schema.json"

// recorder captures diagnostics for assertions.
type recorder struct {
	entries []report.Entry
}

func (r *recorder) Log(e report.Entry) {
	r.entries = append(r.entries, e)
}

func (r *recorder) messages() []string {
	out := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.Message)
	}
	return out
}

func validMetadata() map[string]any {
	return map[string]any{
		"layout":      "page",
		"description": "A long enough description.",
	}
}

func TestValidateClean(t *testing.T) {
	rec := &recorder{}
	v := New(WithSink(rec))

	result := v.Validate(validMetadata(), testSchema, "docs/api.md")
	assert.True(t, result.Valid)
	assert.False(t, result.HasWarnings)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
	assert.Contains(t, rec.messages(), "Front matter validation passed")
}

func TestValidateMissingRequiredField(t *testing.T) {
	v := New()

	result := v.Validate(map[string]any{"layout": "page"}, testSchema, "docs/api.md")
	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "Required field missing: description", result.Errors[0])
}

func TestValidateEnumOnRequiredField(t *testing.T) {
	metadata := validMetadata()
	metadata["layout"] = "bogus"

	result := New().Validate(metadata, testSchema, "docs/api.md")
	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Invalid value for required field 'layout'")
}

func TestValidateFormatOnRequiredField(t *testing.T) {
	metadata := validMetadata()
	metadata["description"] = "short"

	result := New().Validate(metadata, testSchema, "docs/api.md")
	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Invalid format for required field 'description'")
}

func TestValidateOptionalFieldViolationIsWarning(t *testing.T) {
	metadata := validMetadata()
	metadata["test"] = map[string]any{"server_url": "not-a-url"}

	result := New().Validate(metadata, testSchema, "docs/api.md")
	assert.True(t, result.Valid, "optional-field violations must not flip validity")
	assert.True(t, result.HasWarnings)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "optional field 'test.server_url'")
}

func TestValidateTypeViolationOnOptionalField(t *testing.T) {
	metadata := validMetadata()
	metadata["title"] = 42

	result := New().Validate(metadata, testSchema, "docs/api.md")
	assert.True(t, result.Valid)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "Invalid format for optional field 'title'")
}

func TestValidateMixedFindings(t *testing.T) {
	metadata := map[string]any{
		"layout": "page",
		// description missing (required error)
		"test": map[string]any{"testable": "not an array"}, // optional warning
	}

	result := New().Validate(metadata, testSchema, "docs/api.md")
	assert.False(t, result.Valid)
	assert.True(t, result.HasWarnings)
	assert.Len(t, result.Errors, 1)
	assert.Len(t, result.Warnings, 1)
}

func TestValidateMissingSchemaFile(t *testing.T) {
	rec := &recorder{}
	v := New(WithSink(rec))

	result := v.Validate(validMetadata(), "testdata/does-not-exist.json", "docs/api.md")
	assert.True(t, result.Valid, "missing schema must not fail the pipeline")
	assert.False(t, result.HasWarnings)

	require.NotEmpty(t, rec.entries)
	assert.Equal(t, report.SeverityWarning, rec.entries[0].Severity)
	assert.Contains(t, rec.entries[0].Message, "Schema file not found")
}

func TestValidateCorruptSchemaFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schema.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	rec := &recorder{}
	v := New(WithSink(rec))

	result := v.Validate(validMetadata(), path, "docs/api.md")
	assert.True(t, result.Valid)
	require.NotEmpty(t, rec.entries)
	assert.Contains(t, rec.entries[0].Message, "Invalid JSON schema")
}

func TestLoadCaches(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schema.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"type":"object"}`), 0o600))

	v := New()
	first, err := v.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, v.Cache().Len())

	// Corrupt the file on disk; the cached copy must still be served.
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o600))
	second, err := v.Load(path)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// After clearing the cache the corrupt file surfaces.
	v.Cache().Clear()
	assert.Equal(t, 0, v.Cache().Len())
	_, err = v.Load(path)
	assert.Error(t, err)
}

func TestWithCacheSharing(t *testing.T) {
	shared := NewCache()
	shared.Put("virtual.json", map[string]any{"type": "object"})

	v := New(WithCache(shared))
	s, err := v.Load("virtual.json")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"type": "object"}, s)
}

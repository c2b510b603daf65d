// Package compare performs a deep structural comparison of two decoded JSON
// values and explains every difference with a human-readable message carrying
// the dotted path to the offending element.
package compare

import (
	"fmt"
	"sort"
)

// Report is the outcome of comparing an actual value against an expected one.
type Report struct {
	// Equal is true when the two values are structurally identical.
	Equal bool
	// Differences describes each mismatch, one message per finding.
	Differences []string
}

// Compare deep-compares actual against expected and reports every difference.
// Both values are decoded JSON (maps, slices, strings, float64, bool, nil).
//
// Map keys are visited in sorted order so the difference list is
// deterministic. Paths are dotted for object members and use [i] suffixes for
// list elements; a difference at the top level reads "at root".
func Compare(actual, expected any) Report {
	diffs := diffValues(actual, expected, "")
	return Report{Equal: len(diffs) == 0, Differences: diffs}
}

func diffValues(actual, expected any, path string) []string {
	actualType := jsonType(actual)
	expectedType := jsonType(expected)
	if actualType != expectedType {
		return []string{fmt.Sprintf("Type mismatch at %s: expected %s, got %s",
			describe(path), expectedType, actualType)}
	}

	switch exp := expected.(type) {
	case map[string]any:
		return diffObjects(actual.(map[string]any), exp, path)
	case []any:
		return diffLists(actual.([]any), exp, path)
	default:
		if actual != expected {
			return []string{fmt.Sprintf("Value mismatch at %s: expected %v, got %v",
				describe(path), expected, actual)}
		}
		return nil
	}
}

func diffObjects(actual, expected map[string]any, path string) []string {
	var diffs []string

	for _, key := range sortedKeys(expected) {
		if _, ok := actual[key]; !ok {
			diffs = append(diffs, fmt.Sprintf("Missing key at %s: %s", describe(path), key))
		}
	}
	for _, key := range sortedKeys(actual) {
		if _, ok := expected[key]; !ok {
			diffs = append(diffs, fmt.Sprintf("Extra key at %s: %s", describe(path), key))
		}
	}
	for _, key := range sortedKeys(expected) {
		actualValue, ok := actual[key]
		if !ok {
			continue
		}
		diffs = append(diffs, diffValues(actualValue, expected[key], childPath(path, key))...)
	}
	return diffs
}

func diffLists(actual, expected []any, path string) []string {
	var diffs []string
	if len(actual) != len(expected) {
		diffs = append(diffs, fmt.Sprintf("List length mismatch at %s: expected %d items, got %d",
			describe(path), len(expected), len(actual)))
	}

	// Elements in the overlapping prefix are still compared so a single
	// missing element does not mask unrelated mismatches.
	for i := 0; i < min(len(actual), len(expected)); i++ {
		diffs = append(diffs, diffValues(actual[i], expected[i], fmt.Sprintf("%s[%d]", path, i))...)
	}
	return diffs
}

// jsonType names a decoded value with its JSON type, so mismatch messages
// speak the document's language rather than Go's.
func jsonType(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case float64, int, int64, float32:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func describe(path string) string {
	if path == "" {
		return "root"
	}
	return path
}

func childPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

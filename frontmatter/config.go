package frontmatter

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultStatusCode is the expected HTTP status when a testable entry does
// not declare its own status codes.
const DefaultStatusCode = 200

// TestConfig is the "test" sub-mapping of front matter. A nil TestConfig
// means the document carries no test configuration and is not testable.
type TestConfig map[string]any

// TestConfigFrom extracts the test configuration from parsed front matter.
// Returns nil when the metadata is nil, lacks a "test" key, or the value is
// not a mapping.
func TestConfigFrom(metadata map[string]any) TestConfig {
	if metadata == nil {
		return nil
	}
	sub, ok := metadata["test"].(map[string]any)
	if !ok {
		return nil
	}
	return TestConfig(sub)
}

// ServerURL returns the base URL substituted for the {server_url} placeholder
// in documented requests. Empty when not configured.
func (c TestConfig) ServerURL() string {
	return c.stringValue("server_url")
}

// LocalDatabase returns the path of the JSON database file the test server
// should serve. Empty when not configured.
func (c TestConfig) LocalDatabase() string {
	return c.stringValue("local_database")
}

// Testable returns the declared testable entries in declaration order.
// Scalar entries of any YAML type are rendered to strings; a missing or
// non-sequence value yields nil.
func (c TestConfig) Testable() []string {
	return c.stringSlice("testable")
}

// TestApps returns the declared test application identifiers.
func (c TestConfig) TestApps() []string {
	return c.stringSlice("test_apps")
}

func (c TestConfig) stringValue(key string) string {
	if c == nil {
		return ""
	}
	s, _ := c[key].(string)
	return s
}

func (c TestConfig) stringSlice(key string) []string {
	if c == nil {
		return nil
	}
	seq, ok := c[key].([]any)
	if !ok || len(seq) == 0 {
		return nil
	}
	out := make([]string, 0, len(seq))
	for _, item := range seq {
		out = append(out, fmt.Sprint(item))
	}
	return out
}

// ParseTestableEntry parses one testable declaration of the form
// "<example name> / <comma-separated status codes>". The slash and codes are
// optional; when omitted the expected status code set defaults to {200}.
//
// Returns ok=false for an empty name, an empty code list, or any code that
// does not parse as an integer; a malformed entry is rejected as a unit.
func ParseTestableEntry(entry string) (name string, codes []int, ok bool) {
	parts := strings.Split(entry, "/")

	name = strings.TrimSpace(parts[0])
	if name == "" {
		return "", nil, false
	}

	if len(parts) == 1 {
		return name, []int{DefaultStatusCode}, true
	}

	codesStr := strings.TrimSpace(parts[1])
	if codesStr == "" {
		return "", nil, false
	}
	for _, token := range strings.Split(codesStr, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		code, err := strconv.Atoi(token)
		if err != nil {
			return "", nil, false
		}
		codes = append(codes, code)
	}
	if len(codes) == 0 {
		return "", nil, false
	}
	return name, codes, true
}

package frontmatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestConfigFrom(t *testing.T) {
	metadata := map[string]any{
		"layout": "page",
		"test": map[string]any{
			"server_url":     "http://localhost:3000",
			"local_database": "api/test.json",
			"testable":       []any{"GET example", "POST example / 201"},
			"test_apps":      []any{"json-server@0.17.4"},
		},
	}

	cfg := TestConfigFrom(metadata)
	require.NotNil(t, cfg)
	assert.Equal(t, "http://localhost:3000", cfg.ServerURL())
	assert.Equal(t, "api/test.json", cfg.LocalDatabase())
	assert.Equal(t, []string{"GET example", "POST example / 201"}, cfg.Testable())
	assert.Equal(t, []string{"json-server@0.17.4"}, cfg.TestApps())
}

func TestTestConfigFromAbsent(t *testing.T) {
	assert.Nil(t, TestConfigFrom(nil))
	assert.Nil(t, TestConfigFrom(map[string]any{"layout": "page"}))
	// A scalar "test" value is not a configuration mapping.
	assert.Nil(t, TestConfigFrom(map[string]any{"test": "yes"}))
}

func TestTestConfigDefaults(t *testing.T) {
	cfg := TestConfigFrom(map[string]any{"test": map[string]any{}})
	require.NotNil(t, cfg)
	assert.Empty(t, cfg.ServerURL())
	assert.Empty(t, cfg.LocalDatabase())
	assert.Nil(t, cfg.Testable())
	assert.Nil(t, cfg.TestApps())
}

func TestTestConfigNonStringEntries(t *testing.T) {
	cfg := TestConfigFrom(map[string]any{
		"test": map[string]any{"testable": []any{"GET example", 200}},
	})
	assert.Equal(t, []string{"GET example", "200"}, cfg.Testable())
}

func TestParseTestableEntry(t *testing.T) {
	tests := []struct {
		name      string
		entry     string
		wantName  string
		wantCodes []int
		wantOK    bool
	}{
		{"name only", "GET example", "GET example", []int{200}, true},
		{"single code", "POST example / 201", "POST example", []int{201}, true},
		{"multiple codes", "PUT example / 200,204", "PUT example", []int{200, 204}, true},
		{"codes with spaces", "DELETE example / 200 , 204", "DELETE example", []int{200, 204}, true},
		{"untrimmed name", "  GET example  ", "GET example", []int{200}, true},
		{"extra slash segment ignored", "a / 201 / ignored", "a", []int{201}, true},
		{"empty", "", "", nil, false},
		{"whitespace only", "   ", "", nil, false},
		{"slash with no codes", "GET example / ", "", nil, false},
		{"non-numeric code", "GET example / abc", "", nil, false},
		{"mixed numeric and junk", "GET example / 200,abc", "", nil, false},
		{"only commas", "GET example / ,,", "", nil, false},
		{"only slash", "/", "", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, codes, ok := ParseTestableEntry(tt.entry)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantCodes, codes)
		})
	}
}

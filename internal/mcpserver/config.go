package mcpserver

import (
	"log/slog"
	"os"
	"time"

	"github.com/docwright/doctest/schema"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// SchemaPath is the front-matter schema used when a tool call does not
	// override it.
	SchemaPath string

	// DocsRoot is the directory group_configs scans when no explicit file
	// list is given.
	DocsRoot string

	// Timeout bounds each example execution.
	Timeout time.Duration
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from DOCTEST_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		SchemaPath: envString("DOCTEST_SCHEMA_PATH", schema.DefaultPath),
		DocsRoot:   envString("DOCTEST_DOCS_ROOT", "."),
		Timeout:    envDuration("DOCTEST_TIMEOUT", 10*time.Second),
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return d
}

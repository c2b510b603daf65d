package mcpserver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/docwright/doctest/schema"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DOCTEST_SCHEMA_PATH", "")
	t.Setenv("DOCTEST_DOCS_ROOT", "")
	t.Setenv("DOCTEST_TIMEOUT", "")

	c := loadConfig()
	assert.Equal(t, schema.DefaultPath, c.SchemaPath)
	assert.Equal(t, ".", c.DocsRoot)
	assert.Equal(t, 10*time.Second, c.Timeout)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("DOCTEST_SCHEMA_PATH", "schemas/custom.json")
	t.Setenv("DOCTEST_DOCS_ROOT", "docs")
	t.Setenv("DOCTEST_TIMEOUT", "30s")

	c := loadConfig()
	assert.Equal(t, "schemas/custom.json", c.SchemaPath)
	assert.Equal(t, "docs", c.DocsRoot)
	assert.Equal(t, 30*time.Second, c.Timeout)
}

func TestLoadConfigInvalidDuration(t *testing.T) {
	t.Setenv("DOCTEST_TIMEOUT", "banana")
	assert.Equal(t, 10*time.Second, loadConfig().Timeout)

	t.Setenv("DOCTEST_TIMEOUT", "-5s")
	assert.Equal(t, 10*time.Second, loadConfig().Timeout)
}

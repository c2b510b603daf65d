// Package mcpserver implements an MCP (Model Context Protocol) server that
// exposes documentation testing capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"fmt"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/docwright/doctest"
	"github.com/docwright/doctest/report"
)

const serverInstructions = `doctest MCP server — tests API documentation examples against a live server, validates front matter, and groups files by test configuration.

Configuration: All defaults are configurable via DOCTEST_* environment variables set in your MCP client config. The Go MCP SDK does not support initializationOptions; use env vars instead.

Key settings:
- DOCTEST_SCHEMA_PATH (default: .github/schemas/front-matter-schema.json) — front-matter schema location
- DOCTEST_DOCS_ROOT (default: .) — directory scanned by group_configs when no files are given
- DOCTEST_TIMEOUT (default: 10s) — per-example execution timeout

test_docs executes the documented requests through the shell, so the target test server must already be running and reachable at each file's server_url.`

// Run starts the MCP server over stdio and blocks until the client
// disconnects or the context is cancelled.
func Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "doctest", Version: doctest.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "test_docs",
		Description: "Test the examples documented in markdown files: each declared example's request is executed against the live test server and the response is compared with the documented one. Returns per-file pass/fail counts and the diagnostic log. Files with blocking front-matter or schema errors are reported as errors without running tests.",
	}, handleTestDocs)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "check_front_matter",
		Description: "Parse and schema-validate the YAML front matter of a markdown document, given as a file path or inline content. Returns required-field errors (blocking) and optional-field warnings, plus the parsed metadata when parsing succeeds.",
	}, handleCheckFrontMatter)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "group_configs",
		Description: "Group testable documentation files by the server configuration they need (test_apps, server_url, local_database), so each test server is started once per group. Scans DOCTEST_DOCS_ROOT for markdown files unless an explicit file list is given.",
	}, handleGroupConfigs)
}

// capture collects diagnostics emitted during a tool call so they can be
// returned to the MCP client verbatim.
type capture struct {
	lines []string
}

func (c *capture) Log(e report.Entry) {
	line := fmt.Sprintf("[%s] %s", e.Severity.Label(), e.Message)
	if e.File != "" {
		line = fmt.Sprintf("[%s] %s: %s", e.Severity.Label(), e.File, e.Message)
	}
	c.lines = append(c.lines, line)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}

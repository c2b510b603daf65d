package mcpserver

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/docwright/doctest/runner"
)

type testDocsInput struct {
	Files      []string `json:"files"                 jsonschema:"Markdown files to test"`
	SchemaPath string   `json:"schema_path,omitempty" jsonschema:"Front-matter schema path (default from DOCTEST_SCHEMA_PATH)"`
	Timeout    string   `json:"timeout,omitempty"     jsonschema:"Per-example execution timeout as a Go duration, e.g. 10s"`
}

type testDocsFileResult struct {
	File   string `json:"file"`
	Total  int    `json:"total"`
	Passed int    `json:"passed"`
	Failed int    `json:"failed"`
	Error  string `json:"error,omitempty"`
}

type testDocsOutput struct {
	Total  int                  `json:"total"`
	Passed int                  `json:"passed"`
	Failed int                  `json:"failed"`
	Errors int                  `json:"errors"`
	Files  []testDocsFileResult `json:"files"`
	Log    []string             `json:"log,omitempty"`
}

func handleTestDocs(ctx context.Context, _ *mcp.CallToolRequest, input testDocsInput) (*mcp.CallToolResult, testDocsOutput, error) {
	if len(input.Files) == 0 {
		return errResult(fmt.Errorf("files must contain at least one path")), testDocsOutput{}, nil
	}

	schemaPath := cfg.SchemaPath
	if input.SchemaPath != "" {
		schemaPath = input.SchemaPath
	}
	timeout := cfg.Timeout
	if input.Timeout != "" {
		d, err := time.ParseDuration(input.Timeout)
		if err != nil || d <= 0 {
			return errResult(fmt.Errorf("invalid timeout %q", input.Timeout)), testDocsOutput{}, nil
		}
		timeout = d
	}

	sink := &capture{}
	r := runner.New(
		runner.WithSink(sink),
		runner.WithSchemaPath(schemaPath),
		runner.WithTimeout(timeout),
	)

	var output testDocsOutput
	var run runner.FileSummary
	for _, file := range input.Files {
		summary, err := r.TestFile(ctx, file)
		result := testDocsFileResult{
			File:   file,
			Total:  summary.Total,
			Passed: summary.Passed,
			Failed: summary.Failed,
		}
		if err != nil {
			result.Error = sanitizeError(err)
			output.Errors++
		}
		run.Add(summary)
		output.Files = append(output.Files, result)
	}

	output.Total = run.Total
	output.Passed = run.Passed
	output.Failed = run.Failed
	output.Log = sink.lines
	return nil, output, nil
}

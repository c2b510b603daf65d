package mcpserver

import (
	"context"
	"fmt"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/docwright/doctest/frontmatter"
	"github.com/docwright/doctest/schema"
)

type checkFrontMatterInput struct {
	File       string `json:"file,omitempty"        jsonschema:"Path to a markdown file on disk"`
	Content    string `json:"content,omitempty"     jsonschema:"Inline markdown content"`
	SchemaPath string `json:"schema_path,omitempty" jsonschema:"Front-matter schema path (default from DOCTEST_SCHEMA_PATH)"`
}

type checkFrontMatterOutput struct {
	Valid       bool           `json:"valid"`
	HasWarnings bool           `json:"has_warnings"`
	ParseError  string         `json:"parse_error,omitempty"`
	ParseLine   int            `json:"parse_line,omitempty"`
	Errors      []string       `json:"errors,omitempty"`
	Warnings    []string       `json:"warnings,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

func handleCheckFrontMatter(_ context.Context, _ *mcp.CallToolRequest, input checkFrontMatterInput) (*mcp.CallToolResult, checkFrontMatterOutput, error) {
	if (input.File == "") == (input.Content == "") {
		return errResult(fmt.Errorf("exactly one of file or content must be set")), checkFrontMatterOutput{}, nil
	}

	content := input.Content
	filePath := "<inline>"
	if input.File != "" {
		data, err := os.ReadFile(input.File)
		if err != nil {
			return errResult(err), checkFrontMatterOutput{}, nil
		}
		content = string(data)
		filePath = input.File
	}

	metadata, issue := frontmatter.Parse(content)
	if issue != nil {
		return nil, checkFrontMatterOutput{
			ParseError: issue.Message,
			ParseLine:  issue.Line,
		}, nil
	}
	if metadata == nil {
		return nil, checkFrontMatterOutput{
			ParseError: "front matter block is empty",
			ParseLine:  1,
		}, nil
	}

	schemaPath := cfg.SchemaPath
	if input.SchemaPath != "" {
		schemaPath = input.SchemaPath
	}

	result := schema.New().Validate(metadata, schemaPath, filePath)
	return nil, checkFrontMatterOutput{
		Valid:       result.Valid,
		HasWarnings: result.HasWarnings,
		Errors:      result.Errors,
		Warnings:    result.Warnings,
		Metadata:    metadata,
	}, nil
}

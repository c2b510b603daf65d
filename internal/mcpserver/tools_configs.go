package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/docwright/doctest/configs"
)

type groupConfigsInput struct {
	Files []string `json:"files,omitempty" jsonschema:"Markdown files to group; when empty, DOCTEST_DOCS_ROOT is scanned"`
	Root  string   `json:"root,omitempty"  jsonschema:"Directory to scan instead of DOCTEST_DOCS_ROOT"`
}

type groupConfigsOutput struct {
	Groups []configs.Group `json:"groups"`
	Log    []string        `json:"log,omitempty"`
}

func handleGroupConfigs(_ context.Context, _ *mcp.CallToolRequest, input groupConfigsInput) (*mcp.CallToolResult, groupConfigsOutput, error) {
	sink := &capture{}
	collector := configs.New(configs.WithSink(sink))

	if len(input.Files) > 0 {
		return nil, groupConfigsOutput{
			Groups: collector.Collect(input.Files),
			Log:    sink.lines,
		}, nil
	}

	root := cfg.DocsRoot
	if input.Root != "" {
		root = input.Root
	}
	groups, err := collector.CollectDir(root)
	if err != nil {
		return errResult(err), groupConfigsOutput{}, nil
	}
	return nil, groupConfigsOutput{Groups: groups, Log: sink.lines}, nil
}

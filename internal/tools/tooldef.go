package tools

import (
	"context"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ToolDefinition bundles a tool's metadata with its handler. Every tool in
// this server returns plain text content blocks, so the output type is left
// open and no output schema is published.
type ToolDefinition[TInput any] struct {
	Tool    *mcp.Tool
	Handler func(ctx context.Context, req *mcp.CallToolRequest, input TInput) (*mcp.CallToolResult, any, error)
}

// NewToolDefinition creates a tool definition with an explicit input schema
// derived from the input type.
func NewToolDefinition[TInput any](
	name, description string,
	handler func(ctx context.Context, req *mcp.CallToolRequest, input TInput) (*mcp.CallToolResult, any, error),
) (*ToolDefinition[TInput], error) {
	in, err := jsonschema.For[TInput](nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create input schema for %s: %w", name, err)
	}

	return &ToolDefinition[TInput]{
		Tool: &mcp.Tool{
			Name:        name,
			Description: description,
			InputSchema: in,
		},
		Handler: handler,
	}, nil
}

// Register adds this tool to the MCP server.
func (td *ToolDefinition[TInput]) Register(s *mcp.Server) {
	mcp.AddTool(s, td.Tool, td.Handler)
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dataquerylabs/DataQueryMcp/internal/datasets"
	"github.com/dataquerylabs/DataQueryMcp/internal/logger"
)

type ListTablesInput struct{}

func GetListTablesTool(registry *datasets.Registry) (*ToolDefinition[ListTablesInput], error) {
	return NewToolDefinition(
		"list_tables",
		"List all available tables and their basic information",
		func(ctx context.Context, req *mcp.CallToolRequest, input ListTablesInput) (*mcp.CallToolResult, any, error) {
			return listTablesHandler(ctx, registry)
		},
	)
}

// listTablesHandler renders the in-memory metadata entries; no engine call
// is involved, so consecutive calls without a reload are identical.
func listTablesHandler(_ context.Context, registry *datasets.Registry) (*mcp.CallToolResult, any, error) {
	queryID := uuid.NewString()

	entries := registry.List()
	if len(entries) == 0 {
		logger.LogToolCall("list_tables", queryID, nil)
		return textResult("No tables available in the database."), nil, nil
	}

	var sb strings.Builder
	sb.WriteString("Available tables:\n\n")
	for _, meta := range entries {
		sb.WriteString(fmt.Sprintf("• %s\n", meta.Name))
		sb.WriteString(fmt.Sprintf("  Description: %s\n", meta.Description))
		sb.WriteString(fmt.Sprintf("  Columns: %s\n", strings.Join(meta.Columns, ", ")))
		sb.WriteString(fmt.Sprintf("  Rows: %d\n\n", meta.RowCount))
	}

	logger.LogToolCall("list_tables", queryID, nil)
	return textResult(sb.String()), nil, nil
}

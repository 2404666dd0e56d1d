package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dataquerylabs/DataQueryMcp/internal/datasets"
	"github.com/dataquerylabs/DataQueryMcp/internal/logger"
	"github.com/dataquerylabs/DataQueryMcp/internal/query"
)

type DescribeTableInput struct {
	TableName string `json:"table_name" jsonschema:"Name of the table to describe"`
}

func GetDescribeTableTool(inspector *query.Inspector, registry *datasets.Registry) (*ToolDefinition[DescribeTableInput], error) {
	return NewToolDefinition(
		"describe_table",
		"Get schema and metadata information for a specific table",
		func(ctx context.Context, req *mcp.CallToolRequest, input DescribeTableInput) (*mcp.CallToolResult, any, error) {
			return describeTableHandler(ctx, input, inspector, registry)
		},
	)
}

func describeTableHandler(ctx context.Context, input DescribeTableInput, inspector *query.Inspector, registry *datasets.Registry) (*mcp.CallToolResult, any, error) {
	if strings.TrimSpace(input.TableName) == "" {
		return nil, nil, fmt.Errorf("missing table name")
	}

	queryID := uuid.NewString()

	desc, err := inspector.Describe(ctx, input.TableName)
	if err != nil {
		// Missing tables and engine errors both surface as descriptive
		// text, never as a transport-level failure.
		logger.LogToolCall("describe_table", queryID, err)
		return textResult(fmt.Sprintf("Error describing table: %s", err.Error())), nil, nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Table: %s\n\n", desc.Table))
	sb.WriteString("Schema:\n")
	for _, col := range desc.Columns {
		sb.WriteString(fmt.Sprintf("  - %s: %s", col.Name, col.Type))
		if !col.Nullable {
			sb.WriteString(" NOT NULL")
		}
		sb.WriteByte('\n')
	}

	if meta, ok := registry.Get(desc.Table); ok {
		sb.WriteString("\nMetadata:\n")
		sb.WriteString(fmt.Sprintf("  - Description: %s\n", meta.Description))
		sb.WriteString(fmt.Sprintf("  - Row count: %d\n", desc.RowCount))
	} else {
		sb.WriteString(fmt.Sprintf("\nRow count: %d\n", desc.RowCount))
	}

	if len(desc.Sample) > 0 {
		columns := make([]string, 0, len(desc.Columns))
		for _, col := range desc.Columns {
			columns = append(columns, col.Name)
		}
		sb.WriteString("\nSample rows:\n")
		for i, row := range desc.Sample {
			sb.WriteString(fmt.Sprintf("  Row %d: %s\n", i+1, formatRow(columns, row)))
		}
	}

	logger.LogToolCall("describe_table", queryID, nil)
	return textResult(sb.String()), nil, nil
}

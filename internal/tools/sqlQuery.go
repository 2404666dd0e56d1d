package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dataquerylabs/DataQueryMcp/internal/logger"
	"github.com/dataquerylabs/DataQueryMcp/internal/query"
	dataquery "github.com/dataquerylabs/DataQueryMcp/pkg"
)

// Only this many result rows are rendered into the text block; the row
// count still reflects the full result set.
const maxDisplayRows = 10

type SQLQueryInput struct {
	Query string `json:"query" jsonschema:"The SQL query to execute"`
}

func GetSQLQueryTool(adapter *query.Adapter) (*ToolDefinition[SQLQueryInput], error) {
	return NewToolDefinition(
		"sql_query",
		"Execute a SQL query against the available datasets",
		func(ctx context.Context, req *mcp.CallToolRequest, input SQLQueryInput) (*mcp.CallToolResult, any, error) {
			return sqlQueryHandler(ctx, input, adapter)
		},
	)
}

func sqlQueryHandler(ctx context.Context, input SQLQueryInput, adapter *query.Adapter) (*mcp.CallToolResult, any, error) {
	if strings.TrimSpace(input.Query) == "" {
		return nil, nil, fmt.Errorf("missing SQL query")
	}

	queryID := uuid.NewString()
	result := adapter.Execute(ctx, input.Query)

	if !result.Success {
		logger.LogToolCall("sql_query", queryID, errors.New(result.Error))
		return textResult(fmt.Sprintf("Query failed: %s", result.Error)), nil, nil
	}

	var sb strings.Builder
	sb.WriteString("Query executed successfully!\n\n")
	sb.WriteString(fmt.Sprintf("Columns: %s\n", strings.Join(result.Columns, ", ")))
	sb.WriteString(fmt.Sprintf("Rows returned: %d\n\n", result.RowCount))

	if len(result.Rows) > 0 {
		sb.WriteString("Results:\n")
		for i, row := range result.Rows {
			if i == maxDisplayRows {
				break
			}
			sb.WriteString(fmt.Sprintf("Row %d: %s\n", i+1, formatRow(result.Columns, row)))
		}
		if len(result.Rows) > maxDisplayRows {
			sb.WriteString(fmt.Sprintf("... and %d more rows\n", len(result.Rows)-maxDisplayRows))
		}
	}

	logger.LogToolCall("sql_query", queryID, nil)
	return textResult(sb.String()), nil, nil
}

// formatRow renders a row in column order, e.g. {order_id: 1, product: Product A}.
func formatRow(columns []string, row dataquery.Row) string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, col := range columns {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(col)
		sb.WriteString(": ")
		sb.WriteString(row[col].String())
	}
	sb.WriteByte('}')
	return sb.String()
}

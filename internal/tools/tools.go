package tools

import (
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dataquerylabs/DataQueryMcp/internal/datasets"
	"github.com/dataquerylabs/DataQueryMcp/internal/query"
)

// RegisterTools adds the three data-query tools to the MCP server. Unknown
// tool names are rejected by the protocol layer with a descriptive error.
func RegisterTools(s *mcp.Server, adapter *query.Adapter, inspector *query.Inspector, registry *datasets.Registry) error {
	sqlQuery, err := GetSQLQueryTool(adapter)
	if err != nil {
		return fmt.Errorf("sql_query tool: %w", err)
	}
	sqlQuery.Register(s)

	describeTable, err := GetDescribeTableTool(inspector, registry)
	if err != nil {
		return fmt.Errorf("describe_table tool: %w", err)
	}
	describeTable.Register(s)

	listTables, err := GetListTablesTool(registry)
	if err != nil {
		return fmt.Errorf("list_tables tool: %w", err)
	}
	listTables.Register(s)

	return nil
}

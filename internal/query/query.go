// Package query translates raw SQL strings into result envelopes against
// the embedded engine, and inspects table schemas on demand.
package query

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/dataquerylabs/DataQueryMcp/internal/client"
	"github.com/dataquerylabs/DataQueryMcp/internal/logger"
	dataquery "github.com/dataquerylabs/DataQueryMcp/pkg"
)

// Adapter executes user-supplied SQL. It is the sole error boundary for
// that SQL: every engine-raised error is folded into the result envelope
// and never propagates to the caller.
type Adapter struct {
	db *client.DBClient
}

func NewAdapter(db *client.DBClient) *Adapter {
	return &Adapter{db: db}
}

// Execute runs sqlText and materializes the full result set in memory.
// The input is not validated or sanitized beyond what the engine enforces.
func (a *Adapter) Execute(ctx context.Context, sqlText string) dataquery.QueryResult {
	queryID := uuid.NewString()
	logger.Debug("executing query", "query_id", queryID)

	rows, err := a.db.Query(ctx, sqlText)
	if err != nil {
		logger.LogDatabaseOperation("EXECUTE", sqlText, 0, err)
		return failure(err)
	}
	defer rows.Close()

	columns, rowData, err := scanRows(rows)
	if err != nil {
		logger.LogDatabaseOperation("EXECUTE", sqlText, 0, err)
		return failure(err)
	}

	logger.LogDatabaseOperation("EXECUTE", sqlText, int64(len(rowData)), nil)
	return dataquery.QueryResult{
		Success:  true,
		Columns:  columns,
		Rows:     rowData,
		RowCount: len(rowData),
	}
}

func failure(err error) dataquery.QueryResult {
	return dataquery.QueryResult{
		Success: false,
		Columns: []string{},
		Rows:    []dataquery.Row{},
		Error:   err.Error(),
	}
}

// scanRows drains a result set into tagged-value rows, preserving column
// order in the returned column list.
func scanRows(rows *sql.Rows) ([]string, []dataquery.Row, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	out := []dataquery.Row{}
	for rows.Next() {
		values := make([]any, len(columns))
		valuePtrs := make([]any, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, nil, err
		}

		row := make(dataquery.Row, len(columns))
		for i, col := range columns {
			row[col] = dataquery.FromDriver(values[i])
		}
		out = append(out, row)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	return columns, out, nil
}

package query

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/dataquerylabs/DataQueryMcp/internal/client"
	dataquery "github.com/dataquerylabs/DataQueryMcp/pkg"
)

const sampleRowLimit = 5

// NotFoundError reports a describe request for a table the engine's catalog
// does not contain, carrying the known table names for caller guidance.
type NotFoundError struct {
	Table string
	Known []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("table %q not found (known tables: %s)", e.Table, strings.Join(e.Known, ", "))
}

// Inspector answers schema questions from the engine's catalog.
type Inspector struct {
	db *client.DBClient
}

func NewInspector(db *client.DBClient) *Inspector {
	return &Inspector{db: db}
}

// Tables lists the table names currently present in the engine's catalog.
func (ins *Inspector) Tables(ctx context.Context) ([]string, error) {
	rows, err := ins.db.Query(ctx, `SELECT table_name FROM duckdb_tables() WHERE schema_name = 'main'`)
	if err != nil {
		return nil, fmt.Errorf("query catalog: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan catalog row: %w", err)
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate catalog rows: %w", err)
	}

	sort.Strings(tables)
	return tables, nil
}

// Describe returns column name/type/nullability in table-definition order,
// the row count, and a small sample of rows. The three sub-queries run
// sequentially on the single connection; the schema is read-only for the
// server's lifetime so no transaction is needed.
func (ins *Inspector) Describe(ctx context.Context, table string) (*dataquery.SchemaDescription, error) {
	known, err := ins.Tables(ctx)
	if err != nil {
		return nil, err
	}

	found := false
	for _, name := range known {
		if name == table {
			found = true
			break
		}
	}
	if !found {
		return nil, &NotFoundError{Table: table, Known: known}
	}

	columns, err := ins.columns(ctx, table)
	if err != nil {
		return nil, err
	}

	var rowCount int64
	if err := ins.db.QueryRow(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&rowCount); err != nil {
		return nil, fmt.Errorf("count rows of %s: %w", table, err)
	}

	sample, err := ins.sampleRows(ctx, table)
	if err != nil {
		return nil, err
	}

	return &dataquery.SchemaDescription{
		Table:    table,
		Columns:  columns,
		RowCount: rowCount,
		Sample:   sample,
	}, nil
}

func (ins *Inspector) columns(ctx context.Context, table string) ([]dataquery.ColumnInfo, error) {
	rows, err := ins.db.Query(ctx, `
		SELECT column_name, data_type, is_nullable
		FROM information_schema.columns
		WHERE table_schema = 'main' AND table_name = ?
		ORDER BY ordinal_position`, table)
	if err != nil {
		return nil, fmt.Errorf("query columns of %s: %w", table, err)
	}
	defer rows.Close()

	var columns []dataquery.ColumnInfo
	for rows.Next() {
		var col dataquery.ColumnInfo
		var nullable string
		if err := rows.Scan(&col.Name, &col.Type, &nullable); err != nil {
			return nil, fmt.Errorf("scan column of %s: %w", table, err)
		}
		col.Nullable = nullable == "YES"
		columns = append(columns, col)
	}
	return columns, rows.Err()
}

func (ins *Inspector) sampleRows(ctx context.Context, table string) ([]dataquery.Row, error) {
	rows, err := ins.db.Query(ctx, fmt.Sprintf("SELECT * FROM %s LIMIT %d", table, sampleRowLimit))
	if err != nil {
		return nil, fmt.Errorf("sample rows of %s: %w", table, err)
	}
	defer rows.Close()

	_, sample, err := scanRows(rows)
	if err != nil {
		return nil, fmt.Errorf("scan sample rows of %s: %w", table, err)
	}
	return sample, nil
}

package query

import (
	"testing"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/stretchr/testify/require"

	"github.com/dataquerylabs/DataQueryMcp/internal/client"
	"github.com/dataquerylabs/DataQueryMcp/internal/datasets"
	dataquery "github.com/dataquerylabs/DataQueryMcp/pkg"
)

func testDB(t *testing.T) *client.DBClient {
	t.Helper()
	db, err := client.NewDBClient("")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func loadedDB(t *testing.T) *client.DBClient {
	t.Helper()
	db := testDB(t)
	registry := datasets.Load(t.Context(), db, t.TempDir(), datasets.SampleDefinitions())
	require.Equal(t, 2, registry.Len())
	return db
}

func TestExecuteReturnsRows(t *testing.T) {
	t.Parallel()

	adapter := NewAdapter(loadedDB(t))

	result := adapter.Execute(t.Context(), "SELECT order_id, product FROM sales ORDER BY order_id LIMIT 3")
	require.True(t, result.Success)
	require.Empty(t, result.Error)
	require.Equal(t, []string{"order_id", "product"}, result.Columns)
	require.Equal(t, 3, result.RowCount)
	require.Len(t, result.Rows, result.RowCount)

	require.Equal(t, int64(1), result.Rows[0]["order_id"].Int())
	require.Equal(t, "Product A", result.Rows[0]["product"].String())
}

func TestExecuteCountMatchesLoadedRows(t *testing.T) {
	t.Parallel()

	adapter := NewAdapter(loadedDB(t))

	result := adapter.Execute(t.Context(), "SELECT COUNT(*) AS count FROM sales")
	require.True(t, result.Success)
	require.Equal(t, 1, result.RowCount)
	require.Equal(t, int64(100), result.Rows[0]["count"].Int())
}

func TestExecuteEmptyResultSet(t *testing.T) {
	t.Parallel()

	adapter := NewAdapter(loadedDB(t))

	result := adapter.Execute(t.Context(), "SELECT * FROM sales WHERE order_id < 0")
	require.True(t, result.Success)
	require.Equal(t, 0, result.RowCount)
	require.Empty(t, result.Rows)
	require.Equal(t, []string{"order_id", "customer_id", "product", "quantity", "price", "order_date"}, result.Columns)
}

func TestExecuteInvalidSQLNeverPanics(t *testing.T) {
	t.Parallel()

	adapter := NewAdapter(loadedDB(t))

	for _, sql := range []string{
		"SELEC * FROM sales",
		"SELECT * FROM nonexistent_table",
		"SELECT order_id + 'x' FROM sales",
	} {
		result := adapter.Execute(t.Context(), sql)
		require.False(t, result.Success, "query should fail: %s", sql)
		require.NotEmpty(t, result.Error)
		require.Equal(t, 0, result.RowCount)
		require.Empty(t, result.Rows)
	}
}

func TestExecuteGroupBy(t *testing.T) {
	t.Parallel()

	adapter := NewAdapter(loadedDB(t))

	result := adapter.Execute(t.Context(), "SELECT product, COUNT(*) AS count FROM sales GROUP BY product ORDER BY product")
	require.True(t, result.Success)
	require.Equal(t, 3, result.RowCount)
	for _, row := range result.Rows {
		require.Equal(t, dataquery.KindString, row["product"].Kind())
		require.Equal(t, dataquery.KindInt, row["count"].Kind())
	}
}

func TestExecuteDateValues(t *testing.T) {
	t.Parallel()

	adapter := NewAdapter(loadedDB(t))

	result := adapter.Execute(t.Context(), "SELECT MIN(order_date) AS first_order FROM sales")
	require.True(t, result.Success)
	require.Equal(t, 1, result.RowCount)
	require.Equal(t, dataquery.KindTime, result.Rows[0]["first_order"].Kind())
	require.Equal(t, "2024-01-01", result.Rows[0]["first_order"].String())
}

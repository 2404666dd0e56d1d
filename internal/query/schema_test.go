package query

import (
	"errors"
	"testing"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/stretchr/testify/require"
)

func TestDescribeSales(t *testing.T) {
	t.Parallel()

	inspector := NewInspector(loadedDB(t))

	desc, err := inspector.Describe(t.Context(), "sales")
	require.NoError(t, err)
	require.Equal(t, "sales", desc.Table)
	require.Len(t, desc.Columns, 6)
	require.Equal(t, "order_id", desc.Columns[0].Name)
	require.Equal(t, "order_date", desc.Columns[5].Name)
	require.Equal(t, int64(100), desc.RowCount)
	require.NotEmpty(t, desc.Sample)
	require.LessOrEqual(t, len(desc.Sample), sampleRowLimit)
}

func TestDescribeCustomers(t *testing.T) {
	t.Parallel()

	inspector := NewInspector(loadedDB(t))

	desc, err := inspector.Describe(t.Context(), "customers")
	require.NoError(t, err)
	require.Len(t, desc.Columns, 5)
	require.Equal(t, int64(50), desc.RowCount)
}

func TestDescribeUnknownTable(t *testing.T) {
	t.Parallel()

	inspector := NewInspector(loadedDB(t))

	_, err := inspector.Describe(t.Context(), "nonexistent_table")
	require.Error(t, err)

	var notFound *NotFoundError
	require.True(t, errors.As(err, &notFound))
	require.Equal(t, "nonexistent_table", notFound.Table)
	require.Contains(t, notFound.Known, "sales")
	require.Contains(t, notFound.Known, "customers")
	require.Contains(t, notFound.Error(), "sales")
}

func TestTablesListsCatalog(t *testing.T) {
	t.Parallel()

	inspector := NewInspector(loadedDB(t))

	tables, err := inspector.Tables(t.Context())
	require.NoError(t, err)
	require.Equal(t, []string{"customers", "sales"}, tables)
}

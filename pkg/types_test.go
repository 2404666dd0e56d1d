package dataquery

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFromDriver(t *testing.T) {
	t.Parallel()

	require.Equal(t, KindNull, FromDriver(nil).Kind())
	require.Equal(t, KindInt, FromDriver(int32(7)).Kind())
	require.Equal(t, int64(7), FromDriver(int32(7)).Int())
	require.Equal(t, KindFloat, FromDriver(3.5).Kind())
	require.Equal(t, KindBool, FromDriver(true).Kind())
	require.Equal(t, KindString, FromDriver("hello").Kind())
	require.Equal(t, "bytes", FromDriver([]byte("bytes")).String())

	ts := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	require.Equal(t, KindTime, FromDriver(ts).Kind())
}

func TestValueString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "NULL", NullValue().String())
	require.Equal(t, "42", IntValue(42).String())
	require.Equal(t, "true", BoolValue(true).String())

	// Midnight timestamps render as plain dates.
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	require.Equal(t, "2024-01-15", TimeValue(date).String())

	stamp := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)
	require.Equal(t, "2024-01-15T09:30:00Z", TimeValue(stamp).String())
}

func TestQueryResultJSON(t *testing.T) {
	t.Parallel()

	result := QueryResult{
		Success:  true,
		Columns:  []string{"id", "name", "ratio"},
		Rows:     []Row{{"id": IntValue(1), "name": StringValue("a"), "ratio": NullValue()}},
		RowCount: 1,
	}

	data, err := json.Marshal(result)
	require.NoError(t, err)
	require.JSONEq(t, `{
		"success": true,
		"columns": ["id", "name", "ratio"],
		"rows": [{"id": 1, "name": "a", "ratio": null}],
		"row_count": 1
	}`, string(data))
}

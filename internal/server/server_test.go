package server

import (
	"encoding/json"
	"testing"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	dataquery "github.com/dataquerylabs/DataQueryMcp/pkg"
)

func testServer(t *testing.T) *Server {
	t.Helper()

	s, err := New(t.Context(), Config{
		Version:      "v0.0.1",
		DatabasePath: "",
		DataDir:      t.TempDir(),
	})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNewServerLoadsDatasets(t *testing.T) {
	t.Parallel()

	s := testServer(t)
	require.Equal(t, 2, s.registry.Len())
	require.True(t, s.db.InMemory())
}

func TestReadDatasetResource(t *testing.T) {
	t.Parallel()

	s := testServer(t)

	req := &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: "dataset://sales"}}
	result, err := s.readDatasetResource(t.Context(), req, "sales")
	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	require.Equal(t, "dataset://sales", result.Contents[0].URI)
	require.Equal(t, "application/json", result.Contents[0].MIMEType)

	var payload dataquery.QueryResult
	require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &payload))
	require.True(t, payload.Success)
	require.Equal(t, 10, payload.RowCount)
}

func TestReadDatasetResourceUnknownTable(t *testing.T) {
	t.Parallel()

	s := testServer(t)

	req := &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: "dataset://missing"}}
	_, err := s.readDatasetResource(t.Context(), req, "missing")
	require.Error(t, err)
}

func TestReadSchemaResource(t *testing.T) {
	t.Parallel()

	s := testServer(t)

	req := &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: "schema://all"}}
	result, err := s.readSchemaResource(t.Context(), req)
	require.NoError(t, err)
	require.Len(t, result.Contents, 1)

	var descriptions []*dataquery.SchemaDescription
	require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &descriptions))
	require.Len(t, descriptions, 2)

	byName := map[string]*dataquery.SchemaDescription{}
	for _, desc := range descriptions {
		byName[desc.Table] = desc
	}
	require.Len(t, byName["sales"].Columns, 6)
	require.Len(t, byName["customers"].Columns, 5)
}

package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	dataquery "github.com/dataquerylabs/DataQueryMcp/pkg"
)

const datasetSampleRows = 10

// registerResources publishes one resource per loaded dataset plus a
// combined schema resource.
func (s *Server) registerResources() {
	for _, meta := range s.registry.List() {
		name := meta.Name
		s.mcp.AddResource(&mcp.Resource{
			URI:         fmt.Sprintf("dataset://%s", name),
			Name:        fmt.Sprintf("Dataset: %s", name),
			Description: meta.Description,
			MIMEType:    "application/json",
		}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
			return s.readDatasetResource(ctx, req, name)
		})
	}

	s.mcp.AddResource(&mcp.Resource{
		URI:         "schema://all",
		Name:        "Database Schema",
		Description: "Complete schema information for all datasets",
		MIMEType:    "application/json",
	}, s.readSchemaResource)
}

// readDatasetResource returns a bounded sample of the dataset as JSON.
func (s *Server) readDatasetResource(ctx context.Context, req *mcp.ReadResourceRequest, table string) (*mcp.ReadResourceResult, error) {
	result := s.adapter.Execute(ctx, fmt.Sprintf("SELECT * FROM %s LIMIT %d", table, datasetSampleRows))
	if !result.Success {
		return nil, fmt.Errorf("failed to read dataset %s: %s", table, result.Error)
	}

	data, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to encode dataset %s: %w", table, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// readSchemaResource returns the schema description of every table the
// engine currently knows about.
func (s *Server) readSchemaResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	tables, err := s.inspector.Tables(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}

	descriptions := make([]*dataquery.SchemaDescription, 0, len(tables))
	for _, table := range tables {
		desc, err := s.inspector.Describe(ctx, table)
		if err != nil {
			return nil, fmt.Errorf("failed to describe table %s: %w", table, err)
		}
		descriptions = append(descriptions, desc)
	}

	data, err := json.Marshal(descriptions)
	if err != nil {
		return nil, fmt.Errorf("failed to encode schema: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

package datasets

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dataquerylabs/DataQueryMcp/internal/client"
	"github.com/dataquerylabs/DataQueryMcp/internal/logger"
	dataquery "github.com/dataquerylabs/DataQueryMcp/pkg"
)

// Definition describes one bundled dataset: how to synthesize it when no
// backing CSV file is present, and the metadata recorded after load.
type Definition struct {
	Name        string
	Description string
	Columns     []string
	Generate    func(ctx context.Context, db *client.DBClient) (int64, error)
}

// Load ingests every definition into the engine and returns the registry of
// tables that loaded successfully. A failure in one dataset never prevents
// the others from loading; a partially created table is dropped so that the
// registry stays a subset of the engine catalog.
func Load(ctx context.Context, db *client.DBClient, dataDir string, defs []Definition) *Registry {
	registry := NewRegistry()

	for _, def := range defs {
		meta, err := loadOne(ctx, db, dataDir, def)
		if err != nil {
			logger.Error("failed to load dataset", err, "dataset", def.Name)
			dropTable(ctx, db, def.Name)
			continue
		}
		registry.add(meta)
		logger.Info("loaded dataset",
			"dataset", meta.Name, "rows", meta.RowCount, "source", string(meta.Source))
	}

	return registry
}

func loadOne(ctx context.Context, db *client.DBClient, dataDir string, def Definition) (dataquery.TableMetadata, error) {
	csvPath := filepath.Join(dataDir, def.Name+".csv")
	if _, err := os.Stat(csvPath); err == nil {
		return loadCSV(ctx, db, def, csvPath)
	}

	rows, err := def.Generate(ctx, db)
	if err != nil {
		return dataquery.TableMetadata{}, fmt.Errorf("generate %s: %w", def.Name, err)
	}

	return dataquery.TableMetadata{
		Name:        def.Name,
		Description: def.Description,
		Columns:     append([]string(nil), def.Columns...),
		RowCount:    rows,
		Source:      dataquery.SourceSynthetic,
	}, nil
}

// loadCSV ingests a CSV file with schema inference, replacing any prior
// table of the same name, then reads the resulting shape back from the
// engine so the metadata reflects what was actually loaded.
func loadCSV(ctx context.Context, db *client.DBClient, def Definition, csvPath string) (dataquery.TableMetadata, error) {
	absPath, err := filepath.Abs(csvPath)
	if err != nil {
		return dataquery.TableMetadata{}, fmt.Errorf("resolve csv path: %w", err)
	}

	stmt := fmt.Sprintf(
		"CREATE OR REPLACE TABLE %s AS SELECT * FROM read_csv_auto('%s', header=true)",
		def.Name, absPath,
	)
	if _, err := db.Exec(ctx, stmt); err != nil {
		return dataquery.TableMetadata{}, fmt.Errorf("load csv %s: %w", csvPath, err)
	}

	columns, err := tableColumns(ctx, db, def.Name)
	if err != nil {
		return dataquery.TableMetadata{}, err
	}

	var rowCount int64
	countStmt := fmt.Sprintf("SELECT COUNT(*) FROM %s", def.Name)
	if err := db.QueryRow(ctx, countStmt).Scan(&rowCount); err != nil {
		return dataquery.TableMetadata{}, fmt.Errorf("count rows of %s: %w", def.Name, err)
	}

	return dataquery.TableMetadata{
		Name:        def.Name,
		Description: def.Description,
		Columns:     columns,
		RowCount:    rowCount,
		Source:      dataquery.SourceFile,
	}, nil
}

func tableColumns(ctx context.Context, db *client.DBClient, table string) ([]string, error) {
	rows, err := db.Query(ctx, `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_schema = 'main' AND table_name = ?
		ORDER BY ordinal_position`, table)
	if err != nil {
		return nil, fmt.Errorf("query columns of %s: %w", table, err)
	}
	defer rows.Close()

	var columns []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan column of %s: %w", table, err)
		}
		columns = append(columns, name)
	}
	return columns, rows.Err()
}

func dropTable(ctx context.Context, db *client.DBClient, table string) {
	if _, err := db.Exec(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", table)); err != nil {
		logger.Warn("failed to drop partially loaded table", "table", table, "reason", err.Error())
	}
}

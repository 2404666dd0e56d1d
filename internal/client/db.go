package client

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dataquerylabs/DataQueryMcp/internal/logger"
)

// DBClient owns the single process-wide handle to the embedded engine.
// It is created once at startup and closed once at shutdown.
type DBClient struct {
	DB       *sql.DB
	path     string
	inMemory bool
}

// NewDBClient opens the embedded database at path, or in-memory when path is
// empty. When the file cannot be opened or pinged (missing directory that
// cannot be created, locked file), it falls back to an in-memory database
// and records the degraded mode so callers can observe it.
func NewDBClient(path string) (*DBClient, error) {
	if path != "" {
		db, err := openAndPing(path)
		if err == nil {
			return configured(&DBClient{DB: db, path: path}), nil
		}
		logger.Warn("could not open file database, falling back to in-memory",
			"path", path, "reason", err.Error())
	}

	db, err := openAndPing("")
	if err != nil {
		return nil, fmt.Errorf("open in-memory database: %w", err)
	}
	return configured(&DBClient{DB: db, inMemory: true}), nil
}

func openAndPing(path string) (*sql.DB, error) {
	if path != "" {
		if dir := filepath.Dir(path); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("create database directory: %w", err)
			}
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping duckdb: %w", err)
	}
	return db, nil
}

func configured(c *DBClient) *DBClient {
	// Single logical connection: requests are handled one at a time by the
	// transport loop, and an in-memory DuckDB catalog is per-connection.
	c.DB.SetMaxOpenConns(1)
	c.DB.SetMaxIdleConns(1)
	return c
}

// InMemory reports whether the client fell back to (or was asked for) a
// purely in-memory database for this run.
func (c *DBClient) InMemory() bool {
	return c.inMemory
}

// Path returns the file path backing the database, empty when in-memory.
func (c *DBClient) Path() string {
	if c.inMemory {
		return ""
	}
	return c.path
}

func (c *DBClient) Close() error {
	return c.DB.Close()
}

func (c *DBClient) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return c.DB.QueryContext(ctx, query, args...)
}

func (c *DBClient) QueryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return c.DB.QueryRowContext(ctx, query, args...)
}

func (c *DBClient) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return c.DB.ExecContext(ctx, query, args...)
}

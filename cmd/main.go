package main

import (
	_ "github.com/duckdb/duckdb-go/v2" // Register DuckDB driver
)

func main() {
	// Bootstrap (Cobra handles CLI)
	Execute()
}

package datasets

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/dataquerylabs/DataQueryMcp/internal/client"
)

// The synthetic generators are seeded so every run without backing CSV
// files produces the same table shapes and row counts.
const syntheticSeed = 42

const (
	salesRowCount    = 100
	customerRowCount = 50
)

var products = []string{"Product A", "Product B", "Product C"}

var cities = []string{"New York", "Los Angeles", "Chicago", "Houston", "Phoenix"}

// SampleDefinitions returns the fixed pair of bundled datasets: a sales fact
// table and a customer dimension table.
func SampleDefinitions() []Definition {
	return []Definition{
		{
			Name:        "sales",
			Description: "Sales transaction data with order details",
			Columns:     []string{"order_id", "customer_id", "product", "quantity", "price", "order_date"},
			Generate:    generateSales,
		},
		{
			Name:        "customers",
			Description: "Customer information and registration data",
			Columns:     []string{"customer_id", "name", "email", "city", "registration_date"},
			Generate:    generateCustomers,
		},
	}
}

func generateSales(ctx context.Context, db *client.DBClient) (int64, error) {
	if _, err := db.Exec(ctx, `
		CREATE OR REPLACE TABLE sales (
			order_id    INTEGER,
			customer_id VARCHAR,
			product     VARCHAR,
			quantity    INTEGER,
			price       DOUBLE,
			order_date  DATE
		)`); err != nil {
		return 0, fmt.Errorf("create sales table: %w", err)
	}

	rng := rand.New(rand.NewSource(syntheticSeed))
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin sales load: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO sales VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return 0, fmt.Errorf("prepare sales insert: %w", err)
	}
	defer stmt.Close()

	for i := 1; i <= salesRowCount; i++ {
		price := math.Round((10+rng.Float64()*90)*100) / 100
		_, err := stmt.ExecContext(ctx,
			i,
			fmt.Sprintf("CUST_%03d", i),
			products[(i-1)%len(products)],
			1+rng.Intn(9),
			price,
			start.AddDate(0, 0, i-1),
		)
		if err != nil {
			return 0, fmt.Errorf("insert sales row %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit sales load: %w", err)
	}
	return salesRowCount, nil
}

func generateCustomers(ctx context.Context, db *client.DBClient) (int64, error) {
	if _, err := db.Exec(ctx, `
		CREATE OR REPLACE TABLE customers (
			customer_id       VARCHAR,
			name              VARCHAR,
			email             VARCHAR,
			city              VARCHAR,
			registration_date DATE
		)`); err != nil {
		return 0, fmt.Errorf("create customers table: %w", err)
	}

	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin customers load: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO customers VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return 0, fmt.Errorf("prepare customers insert: %w", err)
	}
	defer stmt.Close()

	for i := 1; i <= customerRowCount; i++ {
		_, err := stmt.ExecContext(ctx,
			fmt.Sprintf("CUST_%03d", i),
			fmt.Sprintf("Customer %d", i),
			fmt.Sprintf("customer%d@example.com", i),
			cities[(i-1)%len(cities)],
			start.AddDate(0, 0, (i-1)*7),
		)
		if err != nil {
			return 0, fmt.Errorf("insert customers row %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit customers load: %w", err)
	}
	return customerRowCount, nil
}

package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container and connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	createSchema(t, pool)

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// createSchema creates the database schema for testing.
func createSchema(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	schema := `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			email VARCHAR(255) NOT NULL UNIQUE,
			name VARCHAR(255) NOT NULL DEFAULT '',
			role VARCHAR(50) NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS menu_items (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL UNIQUE,
			category VARCHAR(100) NOT NULL DEFAULT '',
			price DECIMAL(10, 2) NOT NULL,
			image TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS reviews (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			details TEXT NOT NULL DEFAULT '',
			rating DECIMAL(3, 1) NOT NULL
		);

		CREATE TABLE IF NOT EXISTS cart_items (
			id UUID PRIMARY KEY,
			email VARCHAR(255) NOT NULL,
			menu_item_id UUID NOT NULL,
			name VARCHAR(255) NOT NULL,
			price DECIMAL(10, 2) NOT NULL,
			image TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS payments (
			id UUID PRIMARY KEY,
			email VARCHAR(255) NOT NULL,
			amount_cents BIGINT NOT NULL,
			currency VARCHAR(10) NOT NULL,
			cart_ids UUID[] NOT NULL,
			transaction_ref VARCHAR(255) NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_cart_items_email ON cart_items(email);
		CREATE INDEX IF NOT EXISTS idx_menu_items_category ON menu_items(category);
		CREATE INDEX IF NOT EXISTS idx_payments_email ON payments(email);
	`

	_, err := pool.Exec(ctx, schema)
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
}

// SeedMenuItems inserts test menu data and returns the generated IDs by name.
func SeedMenuItems(t *testing.T, pool *pgxpool.Pool) map[string]uuid.UUID {
	t.Helper()

	ctx := context.Background()

	items := []struct {
		name     string
		category string
		price    float64
	}{
		{"Caesar Salad", "salad", 8.50},
		{"Margherita Pizza", "pizza", 11.50},
		{"Pad Thai", "noodles", 13.00},
		{"Tiramisu", "dessert", 7.50},
		{"Lasagna", "pasta", 5.00},
	}

	ids := make(map[string]uuid.UUID, len(items))
	for _, item := range items {
		id := uuid.New()
		_, err := pool.Exec(ctx,
			"INSERT INTO menu_items (id, name, category, price) VALUES ($1, $2, $3, $4)",
			id, item.name, item.category, item.price,
		)
		if err != nil {
			t.Fatalf("failed to seed menu item %s: %v", item.name, err)
		}
		ids[item.name] = id
	}

	return ids
}

// SeedUser inserts a user record with the given role.
func SeedUser(t *testing.T, pool *pgxpool.Pool, email, role string) uuid.UUID {
	t.Helper()

	ctx := context.Background()

	id := uuid.New()
	_, err := pool.Exec(ctx,
		"INSERT INTO users (id, email, role) VALUES ($1, $2, $3)",
		id, email, role,
	)
	if err != nil {
		t.Fatalf("failed to seed user %s: %v", email, err)
	}

	return id
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"payments", "cart_items", "reviews", "menu_items", "users"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}

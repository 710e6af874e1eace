package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"fitflow-box/internal/model"

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
		CREATE TABLE IF NOT EXISTS box_types (
			id VARCHAR(50) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			price_eur DECIMAL(10, 2) NOT NULL,
			active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS delivery_cycles (
			id UUID PRIMARY KEY,
			delivery_date TIMESTAMPTZ NOT NULL UNIQUE,
			status VARCHAR(20) NOT NULL DEFAULT 'upcoming',
			title VARCHAR(255) NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			revealed BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS subscriptions (
			id UUID PRIMARY KEY,
			customer_id UUID NOT NULL,
			box_type_id VARCHAR(50) NOT NULL REFERENCES box_types(id),
			frequency VARCHAR(20) NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'active',
			price_eur DECIMAL(10, 2) NOT NULL,
			promo_code VARCHAR(50),
			discount_percent DECIMAL(5, 2) NOT NULL DEFAULT 0,
			address_id UUID,
			first_cycle_id UUID REFERENCES delivery_cycles(id),
			last_delivered_cycle_id UUID REFERENCES delivery_cycles(id),
			preferences JSONB NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			paused_at TIMESTAMPTZ,
			cancelled_at TIMESTAMPTZ
		);

		CREATE TABLE IF NOT EXISTS preorders (
			id UUID PRIMARY KEY,
			order_number VARCHAR(50) NOT NULL UNIQUE,
			email VARCHAR(255) NOT NULL,
			full_name VARCHAR(255) NOT NULL DEFAULT '',
			box_type_id VARCHAR(50) NOT NULL REFERENCES box_types(id),
			frequency VARCHAR(20) NOT NULL,
			preferences JSONB NOT NULL DEFAULT '{}',
			promo_code VARCHAR(50),
			discount_percent DECIMAL(5, 2) NOT NULL DEFAULT 0,
			price_eur DECIMAL(10, 2) NOT NULL,
			conversion_status VARCHAR(20) NOT NULL DEFAULT 'pending',
			conversion_token VARCHAR(100) NOT NULL UNIQUE,
			conversion_token_expires_at TIMESTAMPTZ NOT NULL,
			converted_to_order_id UUID,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS promo_codes (
			id UUID PRIMARY KEY,
			code VARCHAR(50) NOT NULL UNIQUE,
			discount_percent DECIMAL(5, 2) NOT NULL,
			enabled BOOLEAN NOT NULL DEFAULT TRUE,
			valid_from TIMESTAMPTZ,
			valid_until TIMESTAMPTZ,
			max_uses INTEGER,
			max_uses_per_user INTEGER,
			used_count INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY,
			subscription_id UUID REFERENCES subscriptions(id),
			preorder_id UUID REFERENCES preorders(id),
			cycle_id UUID REFERENCES delivery_cycles(id),
			box_type_id VARCHAR(50) NOT NULL REFERENCES box_types(id),
			price_eur DECIMAL(10, 2) NOT NULL,
			promo_code VARCHAR(50),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (subscription_id, cycle_id)
		);

		CREATE INDEX IF NOT EXISTS idx_orders_subscription_id ON orders(subscription_id);
		CREATE INDEX IF NOT EXISTS idx_subscriptions_status ON subscriptions(status);
		CREATE INDEX IF NOT EXISTS idx_preorders_conversion_status ON preorders(conversion_status);
	`

	_, err := pool.Exec(ctx, schema)
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
}

// SeedBoxTypes inserts the test box catalogue.
func SeedBoxTypes(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	boxes := []struct {
		id       string
		name     string
		priceEUR float64
	}{
		{"monthly-standard", "Monthly Standard", 24.90},
		{"premium", "Premium", 49.90},
	}

	for _, b := range boxes {
		_, err := pool.Exec(ctx,
			"INSERT INTO box_types (id, name, price_eur) VALUES ($1, $2, $3)",
			b.id, b.name, b.priceEUR,
		)
		if err != nil {
			t.Fatalf("failed to seed box type %s: %v", b.id, err)
		}
	}
}

// SeedCycles inserts monthly delivery cycles starting at first and returns
// their IDs in date order.
func SeedCycles(t *testing.T, pool *pgxpool.Pool, first time.Time, count int) []uuid.UUID {
	t.Helper()

	ctx := context.Background()

	ids := make([]uuid.UUID, count)
	for i := 0; i < count; i++ {
		ids[i] = uuid.New()
		_, err := pool.Exec(ctx,
			"INSERT INTO delivery_cycles (id, delivery_date, status, title) VALUES ($1, $2, $3, $4)",
			ids[i], first.AddDate(0, i, 0), model.CycleUpcoming, fmt.Sprintf("Cycle %d", i+1),
		)
		if err != nil {
			t.Fatalf("failed to seed cycle %d: %v", i, err)
		}
	}
	return ids
}

// SeedSubscription inserts a subscription and returns its ID.
func SeedSubscription(t *testing.T, pool *pgxpool.Pool, status model.SubscriptionStatus, freq model.Frequency) uuid.UUID {
	t.Helper()

	ctx := context.Background()

	id := uuid.New()
	_, err := pool.Exec(ctx,
		`INSERT INTO subscriptions (id, customer_id, box_type_id, frequency, status, price_eur)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		id, uuid.New(), "monthly-standard", freq, status, 24.90,
	)
	if err != nil {
		t.Fatalf("failed to seed subscription: %v", err)
	}
	return id
}

// SeedPreorder inserts a pending preorder and returns its ID and token.
func SeedPreorder(t *testing.T, pool *pgxpool.Pool, expiresAt time.Time) (uuid.UUID, string) {
	t.Helper()

	ctx := context.Background()

	id := uuid.New()
	token := "tok-" + uuid.NewString()
	_, err := pool.Exec(ctx,
		`INSERT INTO preorders (id, order_number, email, box_type_id, frequency, price_eur,
		                        conversion_status, conversion_token, conversion_token_expires_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		id, "PO-"+uuid.NewString()[:8], "jo@example.com", "monthly-standard",
		model.FrequencyMonthly, 24.90, model.ConversionPending, token, expiresAt,
	)
	if err != nil {
		t.Fatalf("failed to seed preorder: %v", err)
	}
	return id, token
}

// SeedPromoCode inserts an enabled promo code and returns its code.
func SeedPromoCode(t *testing.T, pool *pgxpool.Pool, code string, discountPercent float64) {
	t.Helper()

	ctx := context.Background()

	_, err := pool.Exec(ctx,
		"INSERT INTO promo_codes (id, code, discount_percent) VALUES ($1, $2, $3)",
		uuid.New(), code, discountPercent,
	)
	if err != nil {
		t.Fatalf("failed to seed promo code %s: %v", code, err)
	}
}

// CleanupDB removes all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"orders", "preorders", "subscriptions", "promo_codes", "delivery_cycles", "box_types"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}

package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/obapluto-ob/wegatsauceefashionhub/internal/config"
)

// NewConnection creates a new PostgreSQL database connection
func NewConnection(cfg config.DatabaseConfig) (*sql.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// EnsureSchema creates the tables if they do not exist yet. It replaces the
// ad hoc ALTER TABLE scripts of earlier deployments with one versioned place
// the schema is declared.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			name TEXT NOT NULL UNIQUE,
			phone TEXT NOT NULL UNIQUE,
			country_code TEXT NOT NULL DEFAULT 'ke',
			currency TEXT NOT NULL DEFAULT 'KSh',
			ip_address TEXT,
			points INTEGER NOT NULL DEFAULT 0,
			tier TEXT NOT NULL DEFAULT 'bronze',
			admin_rating INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			slug TEXT NOT NULL,
			price DOUBLE PRECISION NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			image_urls JSONB,
			video_urls JSONB,
			category TEXT NOT NULL DEFAULT '',
			gender TEXT NOT NULL DEFAULT 'unisex',
			stock INTEGER NOT NULL DEFAULT 0,
			sizes JSONB,
			colors JSONB,
			is_trending BOOLEAN NOT NULL DEFAULT false,
			flash_sale_price DOUBLE PRECISION,
			flash_sale_end TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id),
			total DOUBLE PRECISION NOT NULL,
			shipping_fee DOUBLE PRECISION NOT NULL DEFAULT 0,
			commission DOUBLE PRECISION NOT NULL DEFAULT 0,
			status TEXT NOT NULL DEFAULT 'pending',
			payment_method TEXT NOT NULL DEFAULT 'whatsapp',
			payment_reference TEXT,
			items JSONB NOT NULL,
			cancellation_reason TEXT,
			expected_delivery TIMESTAMPTZ,
			coupon_code TEXT,
			discount_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_user_id ON orders(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_payment_reference ON orders(payment_reference)`,
		`CREATE TABLE IF NOT EXISTS order_tracking (
			id UUID PRIMARY KEY,
			order_id UUID NOT NULL REFERENCES orders(id),
			location TEXT NOT NULL DEFAULT '',
			transport_company TEXT NOT NULL DEFAULT '',
			driver_name TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT '',
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS delivery_confirmations (
			id UUID PRIMARY KEY,
			order_id UUID NOT NULL UNIQUE REFERENCES orders(id),
			user_id UUID NOT NULL REFERENCES users(id),
			photo_url TEXT,
			rating INTEGER NOT NULL,
			feedback TEXT NOT NULL DEFAULT '',
			confirmed_by_admin BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS reviews (
			id UUID PRIMARY KEY,
			product_id UUID NOT NULL REFERENCES products(id),
			user_id UUID NOT NULL REFERENCES users(id),
			rating INTEGER NOT NULL,
			comment TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS coupons (
			id UUID PRIMARY KEY,
			code TEXT NOT NULL UNIQUE,
			discount_percent DOUBLE PRECISION,
			discount_amount DOUBLE PRECISION,
			min_purchase DOUBLE PRECISION NOT NULL DEFAULT 0,
			max_uses INTEGER,
			used_count INTEGER NOT NULL DEFAULT 0,
			expires_at TIMESTAMPTZ,
			active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS wishlist (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id),
			product_id UUID NOT NULL REFERENCES products(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			UNIQUE(user_id, product_id)
		)`,
		`CREATE TABLE IF NOT EXISTS recently_viewed (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id),
			product_id UUID NOT NULL REFERENCES products(id),
			viewed_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema setup failed: %w", err)
		}
	}
	return nil
}

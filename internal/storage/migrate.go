package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// schema is applied on startup. Every statement is idempotent so restarting
// against an existing database is safe.
//
// order_items.product_id and reviews.product_id intentionally carry no
// foreign key: order items are immutable price snapshots that must survive
// a product hard delete, and review cleanup after a delete happens through
// the event engine.
var schema = []string{
	`CREATE EXTENSION IF NOT EXISTS pgcrypto`,

	`CREATE TABLE IF NOT EXISTS users(
		user_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		email TEXT UNIQUE NOT NULL,
		hashed_password TEXT NOT NULL,
		profile_image TEXT,
		reset_code TEXT,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		is_admin BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS categories(
		category_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name TEXT UNIQUE NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS products(
		product_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		price DOUBLE PRECISION NOT NULL,
		stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
		category_id UUID REFERENCES categories(category_id)
	)`,

	`CREATE TABLE IF NOT EXISTS product_variants(
		variant_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		product_id UUID NOT NULL REFERENCES products(product_id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		price DOUBLE PRECISION NOT NULL,
		stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0)
	)`,

	`CREATE TABLE IF NOT EXISTS orders(
		order_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id UUID NOT NULL REFERENCES users(user_id),
		status TEXT NOT NULL DEFAULT 'placed',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		total DOUBLE PRECISION NOT NULL DEFAULT 0,
		delivery_slot_id UUID,
		tracking_number TEXT
	)`,

	`CREATE TABLE IF NOT EXISTS order_items(
		order_item_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		order_id UUID NOT NULL REFERENCES orders(order_id) ON DELETE CASCADE,
		product_id UUID NOT NULL,
		quantity INTEGER NOT NULL CHECK (quantity > 0),
		price DOUBLE PRECISION NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS reviews(
		review_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id UUID NOT NULL,
		product_id UUID NOT NULL,
		rating INTEGER NOT NULL,
		comment TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS promo_codes(
		promo_code_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		code TEXT UNIQUE NOT NULL,
		discount_percent INTEGER NOT NULL DEFAULT 0 CHECK (discount_percent BETWEEN 0 AND 100),
		active BOOLEAN NOT NULL DEFAULT TRUE
	)`,

	`CREATE TABLE IF NOT EXISTS delivery_slots(
		slot_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		slot_time TEXT NOT NULL,
		available BOOLEAN NOT NULL DEFAULT TRUE,
		order_id UUID REFERENCES orders(order_id)
	)`,

	`CREATE TABLE IF NOT EXISTS blacklisted_tokens(
		blacklisted_token_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		jti TEXT UNIQUE NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}

	return nil
}

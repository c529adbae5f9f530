package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Bootstrap crea las tablas si no existen. Pensado para desarrollo y
// despliegues pequeños (se activa con DB_AUTO_MIGRATE); en producción las
// migraciones se aplican por fuera.
//
// stock_movements no tiene FK a parts a propósito: al borrar una parte su
// historial se conserva para auditoría.
func Bootstrap(ctx context.Context, pool *pgxpool.Pool) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			name TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'user',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS parts (
			id UUID PRIMARY KEY,
			part_number TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT '',
			manufacturer TEXT NOT NULL DEFAULT '',
			location TEXT NOT NULL DEFAULT '',
			unit TEXT NOT NULL DEFAULT 'pcs',
			price NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (price >= 0),
			quantity INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0),
			low_stock_threshold INTEGER NOT NULL DEFAULT 10 CHECK (low_stock_threshold >= 0),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS stock_movements (
			id BIGSERIAL PRIMARY KEY,
			part_id UUID NOT NULL,
			delta INTEGER NOT NULL,
			kind TEXT NOT NULL CHECK (kind IN ('add', 'sale', 'adjustment')),
			note TEXT NOT NULL DEFAULT '',
			actor_id UUID,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_stock_movements_part_id ON stock_movements (part_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_parts_category ON parts (category)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("bootstrap schema: %w", err)
		}
	}
	return nil
}

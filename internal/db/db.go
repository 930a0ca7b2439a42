package db

import (
	"context"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"

	"mindline/migrations"
)

// DB wraps a pgxpool connection pool.
type DB struct {
	Pool *pgxpool.Pool
}

// New creates a new database connection pool.
func New(ctx context.Context, connString string) (*DB, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{Pool: pool}, nil
}

// RunMigrations runs all embedded SQL migrations.
func (d *DB) RunMigrations(connString string) error {
	sourceDriver, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", sourceDriver, connString)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migration failed: %w", err)
	}

	return nil
}

// Close closes the connection pool.
func (d *DB) Close() {
	d.Pool.Close()
}

// SeedDevData inserts a demo institution and a starter keyword catalog for
// local development. Safe to call repeatedly.
func (d *DB) SeedDevData(ctx context.Context) error {
	var institutionID string
	err := d.Pool.QueryRow(ctx, `
		INSERT INTO institutions (name, slug)
		VALUES ('Demo Institution', 'demo')
		ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`).Scan(&institutionID)
	if err != nil {
		return fmt.Errorf("failed to seed institution: %w", err)
	}

	rules := []struct {
		phrase   string
		category string
		weight   int
	}{
		{"quiero morir", "depression", 5},
		{"hacerme daño", "depression", 5},
		{"no puedo más", "depression", 4},
		{"ataque de pánico", "panic", 4},
		{"no puedo respirar", "panic", 3},
		{"no puedo dormir", "insomnia", 2},
		{"muy ansioso", "anxiety", 2},
		{"estresado", "stress", 1},
	}

	query := `
		INSERT INTO keyword_rules (institution_id, phrase, symptom_category, weight)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT DO NOTHING
	`
	for _, r := range rules {
		if _, err := d.Pool.Exec(ctx, query, institutionID, r.phrase, r.category, r.weight); err != nil {
			return fmt.Errorf("failed to seed rule %q: %w", r.phrase, err)
		}
	}

	return nil
}

package migrations

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const trackingTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version    VARCHAR(255) PRIMARY KEY,
	applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

// Migrator applies the PostgreSQL schema files in order, once each
type Migrator struct {
	db     *pgxpool.Pool
	logger zerolog.Logger
}

func NewMigrator(db *pgxpool.Pool, logger zerolog.Logger) *Migrator {
	return &Migrator{db: db, logger: logger}
}

// MigrationVersion is the prefix before the first underscore,
// "001_init.sql" => "001".
func MigrationVersion(filename string) string {
	base := filepath.Base(filename)
	if i := strings.IndexByte(base, '_'); i >= 0 {
		return base[:i]
	}
	return base
}

// SortedMigrationFiles keeps the .sql names in application order.
func SortedMigrationFiles(names []string) []string {
	var out []string
	for _, name := range names {
		if filepath.Ext(name) == ".sql" {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// MigrateFromDirectory applies every pending .sql file found in dir.
func (m *Migrator) MigrateFromDirectory(ctx context.Context, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read migration directory: %w", err)
	}

	if _, err := m.db.Exec(ctx, trackingTable); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}

	for _, name := range SortedMigrationFiles(names) {
		if err := m.apply(ctx, filepath.Join(dir, name)); err != nil {
			return fmt.Errorf("migration %s: %w", name, err)
		}
	}
	return nil
}

func (m *Migrator) apply(ctx context.Context, path string) error {
	version := MigrationVersion(path)

	var done bool
	if err := m.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`, version,
	).Scan(&done); err != nil {
		return err
	}
	if done {
		m.logger.Debug().Str("version", version).Msg("Migration already applied")
		return nil
	}

	body, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	return pgx.BeginFunc(ctx, m.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, string(body)); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, version); err != nil {
			return err
		}
		m.logger.Info().Str("file", path).Msg("Migration applied")
		return nil
	})
}

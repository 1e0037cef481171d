package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// NewSQLiteDB opens (creating if needed) the single-file shop database at
// path and brings its schema up to date.
func NewSQLiteDB(ctx context.Context, path string) (*sqlx.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sqlx.ConnectContext(ctx, "sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := MigrateSQLite(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	// sqlite allows one writer at a time
	db.SetMaxOpenConns(1)

	log.Printf("Opened SQLite database at %s", path)
	return db, nil
}

// MigrateSQLite applies the embedded goose migrations.
func MigrateSQLite(ctx context.Context, db *sqlx.DB) error {
	dir, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return err
	}
	provider, err := goose.NewProvider(goose.DialectSQLite3, db.DB, dir)
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	for _, r := range results {
		log.Printf("Applied migration %s (%s)", r.Source.Path, r.Duration)
	}
	return nil
}

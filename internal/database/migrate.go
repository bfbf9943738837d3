package database

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
)

const createSchemaMigrations = `CREATE TABLE IF NOT EXISTS schema_migrations (
	version VARCHAR(255) NOT NULL PRIMARY KEY,
	applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// Migrate applies the .sql files in migrations that are not recorded in schema_migrations,
// in file name order. It returns the versions it applied.
func Migrate(ctx context.Context, db *sqlx.DB, migrations fs.FS) ([]string, error) {
	if _, err := db.ExecContext(ctx, createSchemaMigrations); err != nil {
		return nil, fmt.Errorf("db.ExecContext(create schema_migrations) > %w", err)
	}

	var applied []string
	if err := db.SelectContext(ctx, &applied, "SELECT version FROM schema_migrations"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(schema_migrations) > %w", err)
	}
	done := make(map[string]bool, len(applied))
	for _, version := range applied {
		done[version] = true
	}

	files, err := fs.Glob(migrations, "migrations/*.sql")
	if err != nil {
		return nil, fmt.Errorf("fs.Glob() > %w", err)
	}
	sort.Strings(files)

	var versions []string
	for _, file := range files {
		version := strings.TrimSuffix(file[strings.LastIndex(file, "/")+1:], ".sql")
		if done[version] {
			continue
		}
		statement, err := fs.ReadFile(migrations, file)
		if err != nil {
			return versions, fmt.Errorf("fs.ReadFile(%s) > %w", file, err)
		}

		tx, err := db.BeginTxx(ctx, nil)
		if err != nil {
			return versions, fmt.Errorf("db.BeginTxx() > %w", err)
		}
		if _, err := tx.ExecContext(ctx, string(statement)); err != nil {
			_ = tx.Rollback()
			return versions, fmt.Errorf("tx.ExecContext(%s) > %w", version, err)
		}
		if _, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			_ = tx.Rollback()
			return versions, fmt.Errorf("tx.ExecContext(record %s) > %w", version, err)
		}
		if err := tx.Commit(); err != nil {
			return versions, fmt.Errorf("tx.Commit() > %w", err)
		}
		slog.Default().Info("applied migration", slog.String("version", version))
		versions = append(versions, version)
	}
	return versions, nil
}

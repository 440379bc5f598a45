package repository

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
)

//go:embed migrations
var migrations embed.FS

// Migrate applies every embedded migration for the connection's driver that
// has not been recorded in schema_migrations yet. It returns the versions it
// applied.
func Migrate(ctx context.Context, db *sqlx.DB) ([]string, error) {
	dir, err := migrationDir(db.DriverName())
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (version TEXT PRIMARY KEY)`); err != nil {
		return nil, fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	entries, err := fs.ReadDir(migrations, dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	var applied []string
	for _, name := range files {
		version := strings.TrimSuffix(name, ".sql")

		var exists bool
		err := db.GetContext(ctx, &exists,
			db.Rebind(`SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = ?)`), version)
		if err != nil {
			return applied, err
		}
		if exists {
			continue
		}

		body, err := migrations.ReadFile(path.Join(dir, name))
		if err != nil {
			return applied, err
		}
		if _, err := db.ExecContext(ctx, string(body)); err != nil {
			return applied, fmt.Errorf("migration %s failed: %w", version, err)
		}
		if _, err := db.ExecContext(ctx,
			db.Rebind(`INSERT INTO schema_migrations (version) VALUES (?)`), version); err != nil {
			return applied, err
		}
		applied = append(applied, version)
	}

	return applied, nil
}

func migrationDir(driver string) (string, error) {
	switch driver {
	case "postgres":
		return "migrations/postgres", nil
	case "sqlite":
		return "migrations/sqlite", nil
	default:
		return "", fmt.Errorf("no migrations for driver %q", driver)
	}
}

package sqlite

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/uptrace/bun"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

// ApplyMigrations brings the logidash schema (users, sessions, sync_runs,
// export_runs, audit_logs) up to date from migrationsDir, or from the copy
// embedded in the binary when migrationsDir is blank. Every script uses
// IF NOT EXISTS, so it runs on each start.
func ApplyMigrations(ctx context.Context, db *DB, migrationsDir string) error {
	if strings.TrimSpace(migrationsDir) == "" {
		return ApplyEmbeddedMigrations(ctx, db)
	}
	if _, err := os.Stat(migrationsDir); err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}
	return applyScripts(ctx, db, os.DirFS(migrationsDir), ".")
}

// ApplyEmbeddedMigrations runs the scripts compiled into the binary.
func ApplyEmbeddedMigrations(ctx context.Context, db *DB) error {
	return applyScripts(ctx, db, embeddedMigrations, "migrations")
}

func applyScripts(ctx context.Context, db *DB, fsys fs.FS, root string) error {
	names, err := scriptNames(fsys, root)
	if err != nil {
		return err
	}
	for _, name := range names {
		script, err := fs.ReadFile(fsys, path.Join(root, name))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if err := runScript(ctx, db, name, string(script)); err != nil {
			return err
		}
	}
	return nil
}

// scriptNames lists *.sql files under root; 001_, 002_ prefixes fix the order.
func scriptNames(fsys fs.FS, root string) ([]string, error) {
	entries, err := fs.ReadDir(fsys, root)
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() && path.Ext(entry.Name()) == ".sql" {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// runScript wraps a script in a write transaction unless it manages its own.
func runScript(ctx context.Context, db *DB, name, script string) error {
	upper := strings.ToUpper(script)
	if strings.Contains(upper, "BEGIN TRANSACTION") || strings.Contains(upper, "BEGIN;") {
		if _, err := db.WriteSQL.ExecContext(ctx, script); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
		return nil
	}

	err := db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.ExecContext(ctx, script)
		return err
	})
	if err != nil {
		return fmt.Errorf("apply migration %s: %w", name, err)
	}
	return nil
}

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"
)

const migrationTable = "schema_migrations"

// Migrate applies the SQL files under migrations/<dialect>/ in fsys that have
// not been recorded in schema_migrations yet. Each file runs in its own
// transaction together with its bookkeeping row.
func Migrate(ctx context.Context, d *DB, fsys fs.FS) error {
	if _, err := d.Exec(ctx, `CREATE TABLE IF NOT EXISTS `+migrationTable+` (version TEXT PRIMARY KEY, applied_at BIGINT NOT NULL)`); err != nil {
		return fmt.Errorf("ensure schema_migrations: %w", err)
	}

	migDir := path.Join("migrations", string(d.Dialect()))
	entries, err := fs.ReadDir(fsys, migDir)
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}

	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(e.Name()), ".sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	for _, fname := range files {
		version := strings.TrimSuffix(fname, path.Ext(fname))

		applied, err := isApplied(ctx, d, version)
		if err != nil {
			return fmt.Errorf("check migration %s: %w", version, err)
		}
		if applied {
			continue
		}

		b, err := fs.ReadFile(fsys, path.Join(migDir, fname))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", fname, err)
		}
		upSQL := ExtractUp(string(b))
		if strings.TrimSpace(upSQL) == "" {
			continue
		}

		if err := applyMigration(ctx, d, version, upSQL); err != nil {
			return err
		}
	}
	return nil
}

func applyMigration(ctx context.Context, d *DB, version, upSQL string) error {
	tx, err := d.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin migration %s: %w", version, err)
	}
	if _, err := tx.Exec(ctx, upSQL); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("exec migration %s: %w", version, err)
	}
	if _, err := tx.Exec(ctx, `INSERT INTO `+migrationTable+` (version, applied_at) VALUES (?, ?)`, version, time.Now().UTC().UnixMilli()); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("record migration %s: %w", version, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration %s: %w", version, err)
	}
	return nil
}

// ExtractUp returns the SQL in the "-- +migrate Up" section, or the whole
// content when the file has no markers.
func ExtractUp(content string) string {
	const up, down = "-- +migrate Up", "-- +migrate Down"
	upIdx := strings.Index(content, up)
	if upIdx == -1 {
		return content
	}
	downIdx := strings.Index(content, down)
	if downIdx == -1 || downIdx < upIdx {
		return content[upIdx+len(up):]
	}
	return content[upIdx+len(up) : downIdx]
}

func isApplied(ctx context.Context, d *DB, version string) (bool, error) {
	var found int
	err := d.QueryRow(ctx, `SELECT 1 FROM `+migrationTable+` WHERE version = ?`, version).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// AppliedMigrations lists recorded versions in order.
func AppliedMigrations(ctx context.Context, d *DB) ([]string, error) {
	rows, err := d.Query(ctx, `SELECT version FROM `+migrationTable+` ORDER BY version`)
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

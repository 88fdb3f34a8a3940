package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrBackupUnsupported is returned by Backup for dialects without an
// in-process backup.
var ErrBackupUnsupported = errors.New("backup is only supported for sqlite; use pg_dump for postgres")

// Backup writes a consistent copy of a SQLite database to path. The
// destination must not exist.
func (db *DB) Backup(ctx context.Context, path string) error {
	if db.dialect != SQLite {
		return ErrBackupUnsupported
	}
	if _, err := db.conn.ExecContext(ctx, `VACUUM INTO ?`, path); err != nil {
		return fmt.Errorf("backup to %s: %w", path, err)
	}
	return nil
}

// SQLitePath returns the file path of a SQLite DSN, without the "file:"
// prefix and query parameters. It is empty for in-memory databases.
func SQLitePath(dsn string) string {
	if isMemory(dsn) {
		return ""
	}
	path := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	return path
}

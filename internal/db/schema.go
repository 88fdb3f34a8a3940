package db

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// ListTables returns the user tables of the connected database, sorted.
// Internal tables (sqlite_*, schema_migrations) are excluded.
func ListTables(ctx context.Context, q Querier) ([]string, error) {
	query := `SELECT name FROM sqlite_master WHERE type = 'table'`
	if q.Dialect() == Postgres {
		query = `SELECT table_name FROM information_schema.tables WHERE table_schema = current_schema() AND table_type = 'BASE TABLE'`
	}
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan table name: %w", err)
		}
		if strings.HasPrefix(name, "sqlite_") || name == migrationTable {
			continue
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sort.Strings(tables)
	return tables, nil
}

// VerifyTables compares the database against the expected table set.
func VerifyTables(ctx context.Context, q Querier, expected []string) (missing, unexpected []string, err error) {
	tables, err := ListTables(ctx, q)
	if err != nil {
		return nil, nil, err
	}
	have := make(map[string]bool, len(tables))
	for _, t := range tables {
		have[t] = true
	}
	want := make(map[string]bool, len(expected))
	for _, t := range expected {
		want[t] = true
		if !have[t] {
			missing = append(missing, t)
		}
	}
	for _, t := range tables {
		if !want[t] {
			unexpected = append(unexpected, t)
		}
	}
	sort.Strings(missing)
	return missing, unexpected, nil
}

// ForeignKeyViolation is one dangling reference reported by the database.
type ForeignKeyViolation struct {
	Table  string `json:"table"`
	RowID  int64  `json:"row_id"`
	Parent string `json:"parent"`
}

// ForeignKeyCheck runs SQLite's foreign_key_check over the whole database.
// PostgreSQL enforces references eagerly, so there is nothing to report.
func ForeignKeyCheck(ctx context.Context, q Querier) ([]ForeignKeyViolation, error) {
	if q.Dialect() != SQLite {
		return nil, nil
	}
	rows, err := q.Query(ctx, `PRAGMA foreign_key_check`)
	if err != nil {
		return nil, fmt.Errorf("foreign key check: %w", err)
	}
	defer rows.Close()

	var out []ForeignKeyViolation
	for rows.Next() {
		var (
			v     ForeignKeyViolation
			rowID *int64
			fkid  int64
		)
		if err := rows.Scan(&v.Table, &rowID, &v.Parent, &fkid); err != nil {
			return nil, fmt.Errorf("scan foreign key check: %w", err)
		}
		if rowID != nil {
			v.RowID = *rowID
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

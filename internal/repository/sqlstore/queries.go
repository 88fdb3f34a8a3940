package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/garnizeh/staffing/internal/db"
	apperrors "github.com/garnizeh/staffing/pkg/errors"
	"github.com/garnizeh/staffing/pkg/models"
)

// queries holds the read side shared by Store and Tx.
type queries struct {
	q db.Querier
}

// entityPtr constrains P to be a pointer to T that is a models.Entity.
type entityPtr[T any] interface {
	*T
	models.Entity
}

type scanner interface {
	Scan(dest ...any) error
}

// scanEntity reads one row selected with mapping.selectList into e.
func scanEntity(row scanner, e models.Entity) error {
	m, err := mapEntity(e)
	if err != nil {
		return err
	}
	rec := e.Identity()
	var created, updated int64
	dest := append([]any{&rec.ID, &created, &updated}, m.fields...)
	if err := row.Scan(dest...); err != nil {
		return err
	}
	rec.CreatedAt = fromMillis(created)
	rec.UpdatedAt = fromMillis(updated)
	return nil
}

func (r queries) FindByID(ctx context.Context, e models.Entity, id int64) error {
	m, err := mapEntity(e)
	if err != nil {
		return err
	}
	row := r.q.QueryRow(ctx, `SELECT `+m.selectList()+` FROM `+m.table+` WHERE id = ?`, id)
	if err := scanEntity(row, e); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFound(m.table, id)
		}
		return fmt.Errorf("find %s %d: %w", m.table, id, err)
	}
	return nil
}

func get[T any, P entityPtr[T]](ctx context.Context, r queries, id int64) (*T, error) {
	var v T
	if err := r.FindByID(ctx, P(&v), id); err != nil {
		return nil, err
	}
	return &v, nil
}

// getBy loads the single row where column equals value.
func getBy[T any, P entityPtr[T]](ctx context.Context, r queries, column string, value any) (*T, error) {
	var v T
	p := P(&v)
	m, err := mapEntity(p)
	if err != nil {
		return nil, err
	}
	row := r.q.QueryRow(ctx, `SELECT `+m.selectList()+` FROM `+m.table+` WHERE `+column+` = ?`, value)
	if err := scanEntity(row, p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFoundBy(m.table, column, value)
		}
		return nil, fmt.Errorf("get %s by %s: %w", m.table, column, err)
	}
	return &v, nil
}

// list returns the rows matching where (all rows when empty), ordered by id.
func list[T any, P entityPtr[T]](ctx context.Context, r queries, where string, args ...any) ([]T, error) {
	m, err := mapEntity(P(new(T)))
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + m.selectList() + ` FROM ` + m.table
	if where != "" {
		query += ` WHERE ` + where
	}
	query += ` ORDER BY id`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", m.table, err)
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		var v T
		if err := scanEntity(rows, P(&v)); err != nil {
			return nil, fmt.Errorf("scan %s: %w", m.table, err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// All returns every row of table as entities, ordered by id.
func (r queries) All(ctx context.Context, table string) ([]models.Entity, error) {
	probe, err := newEntity(table)
	if err != nil {
		return nil, err
	}
	m, err := mapEntity(probe)
	if err != nil {
		return nil, err
	}
	rows, err := r.q.Query(ctx, `SELECT `+m.selectList()+` FROM `+table+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	defer rows.Close()

	var out []models.Entity
	for rows.Next() {
		e, _ := newEntity(table)
		if err := scanEntity(rows, e); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

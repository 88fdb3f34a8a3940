package sqlstore

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/garnizeh/staffing/internal/db"
	apperrors "github.com/garnizeh/staffing/pkg/errors"
	"github.com/garnizeh/staffing/pkg/models"
)

// Tx is a unit of work opened by Store.WithTx. It must not be used after
// WithTx returns.
type Tx struct {
	queries
	tx     *db.Tx
	now    func() time.Time
	logger *slog.Logger
	undo   []func()
}

// restore reverts identity changes in reverse order.
func (t *Tx) restore() {
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.undo = nil
}

func (t *Tx) remember(rec *models.Record) {
	prev := *rec
	t.undo = append(t.undo, func() { *rec = prev })
}

func (t *Tx) Insert(ctx context.Context, e models.Entity) error {
	m, err := mapEntity(e)
	if err != nil {
		return err
	}
	rec := e.Identity()
	if !rec.IsNew() {
		return apperrors.WithTable(apperrors.Validationf("id", "already persisted as %d", rec.ID), m.table)
	}
	now := t.now()
	if err := e.Validate(now); err != nil {
		return apperrors.WithTable(err, m.table)
	}

	cols := append(append([]string{}, m.columns...), "created_at", "updated_at")
	args := append(append([]any{}, m.values...), toMillis(now), toMillis(now))
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s) RETURNING id`, m.table, strings.Join(cols, ", "), placeholders(len(cols)))

	var id int64
	if err := t.tx.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return t.fail("insert", m.table, err)
	}

	t.remember(rec)
	rec.ID = id
	rec.CreatedAt = now
	rec.UpdatedAt = now
	t.logger.Debug("inserted", "table", m.table, "id", id)
	return nil
}

func (t *Tx) Update(ctx context.Context, e models.Entity) error {
	m, err := mapEntity(e)
	if err != nil {
		return err
	}
	rec := e.Identity()
	if rec.IsNew() {
		return apperrors.NotFound(m.table, rec.ID)
	}
	now := t.now()
	if err := e.Validate(now); err != nil {
		return apperrors.WithTable(err, m.table)
	}
	updated := now
	if updated.Before(rec.CreatedAt) {
		updated = rec.CreatedAt
	}

	sets := make([]string, 0, len(m.columns)+1)
	for _, c := range m.columns {
		sets = append(sets, c+" = ?")
	}
	sets = append(sets, "updated_at = ?")
	args := append(append([]any{}, m.values...), toMillis(updated), rec.ID)
	query := fmt.Sprintf(`UPDATE %s SET %s WHERE id = ?`, m.table, strings.Join(sets, ", "))

	res, err := t.tx.Exec(ctx, query, args...)
	if err != nil {
		return t.fail("update", m.table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update %s: %w", m.table, err)
	}
	if n == 0 {
		return apperrors.NotFound(m.table, rec.ID)
	}

	t.remember(rec)
	rec.UpdatedAt = updated
	t.logger.Debug("updated", "table", m.table, "id", rec.ID)
	return nil
}

// Delete removes e's row. Owned children cascade; referencing rows that
// restrict deletion yield ForeignKeyViolation. e keeps its identity.
func (t *Tx) Delete(ctx context.Context, e models.Entity) error {
	m, err := mapEntity(e)
	if err != nil {
		return err
	}
	rec := e.Identity()
	if rec.IsNew() {
		return apperrors.NotFound(m.table, rec.ID)
	}
	res, err := t.tx.Exec(ctx, `DELETE FROM `+m.table+` WHERE id = ?`, rec.ID)
	if err != nil {
		return t.fail("delete", m.table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %s: %w", m.table, err)
	}
	if n == 0 {
		return apperrors.NotFound(m.table, rec.ID)
	}
	t.logger.Debug("deleted", "table", m.table, "id", rec.ID)
	return nil
}

// fail classifies a driver error and logs constraint violations.
func (t *Tx) fail(op, table string, err error) error {
	cerr := db.Classify(err, table)
	if code := apperrors.CodeOf(cerr); code != apperrors.CodeUnknown {
		t.logger.Debug("constraint violation", "op", op, "table", table, "code", code, "error", cerr)
		return cerr
	}
	return fmt.Errorf("%s %s: %w", op, table, err)
}

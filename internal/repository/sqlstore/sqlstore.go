package sqlstore

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/garnizeh/staffing/internal/db"
	"github.com/garnizeh/staffing/pkg/models"
	"github.com/garnizeh/staffing/pkg/repository"
)

// Store implements repository.Store over the internal DB wrapper. Every
// write runs in its own transaction unless grouped with WithTx.
type Store struct {
	queries
	conn   *db.DB
	logger *slog.Logger
	clock  func() time.Time
}

// Ensure Store and Tx implement the public interfaces.
var (
	_ repository.Store = (*Store)(nil)
	_ repository.Tx    = (*Tx)(nil)
)

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for audit timestamps and
// date-relative validation.
func WithClock(clock func() time.Time) Option {
	return func(s *Store) { s.clock = clock }
}

func New(conn *db.DB, logger *slog.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		queries: queries{q: conn},
		conn:    conn,
		logger:  logger,
		clock:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// now returns the current instant truncated to the stored precision.
func (s *Store) now() time.Time {
	return s.clock().UTC().Truncate(time.Millisecond)
}

// Conn returns the underlying connection.
func (s *Store) Conn() *db.DB { return s.conn }

// WithTx runs fn inside one database transaction. fn's error, or a failed
// commit, rolls the transaction back and restores every identity assigned
// through tx.
func (s *Store) WithTx(ctx context.Context, fn func(tx repository.Tx) error) (err error) {
	dtx, err := s.conn.BeginTx(ctx)
	if err != nil {
		return err
	}
	tx := &Tx{queries: queries{q: dtx}, tx: dtx, now: s.now, logger: s.logger}

	defer func() {
		if p := recover(); p != nil {
			_ = dtx.Rollback()
			tx.restore()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := dtx.Rollback(); rbErr != nil {
			s.logger.Warn("rollback failed", "error", rbErr)
		}
		tx.restore()
		return err
	}
	if err := dtx.Commit(); err != nil {
		tx.restore()
		return db.Classify(fmt.Errorf("commit: %w", err), "")
	}
	return nil
}

func (s *Store) Insert(ctx context.Context, e models.Entity) error {
	return s.WithTx(ctx, func(tx repository.Tx) error { return tx.Insert(ctx, e) })
}

func (s *Store) Update(ctx context.Context, e models.Entity) error {
	return s.WithTx(ctx, func(tx repository.Tx) error { return tx.Update(ctx, e) })
}

func (s *Store) Delete(ctx context.Context, e models.Entity) error {
	return s.WithTx(ctx, func(tx repository.Tx) error { return tx.Delete(ctx, e) })
}

// ForeignKeyViolations reports dangling references left in the database.
func (s *Store) ForeignKeyViolations(ctx context.Context) ([]db.ForeignKeyViolation, error) {
	return db.ForeignKeyCheck(ctx, s.conn)
}

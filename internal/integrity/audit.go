// Package integrity re-verifies a populated store: foreign keys are checked
// by the database and every row is re-validated against the entity rules.
package integrity

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/garnizeh/staffing/internal/db"
	"github.com/garnizeh/staffing/pkg/models"
)

// Finding kinds.
const (
	KindForeignKey = "foreign_key"
	KindInvalid    = "invalid"
	KindTimestamps = "timestamps"
)

// Source is what the auditor reads from.
type Source interface {
	All(ctx context.Context, table string) ([]models.Entity, error)
	ForeignKeyViolations(ctx context.Context) ([]db.ForeignKeyViolation, error)
}

type Finding struct {
	Kind    string `json:"kind"`
	Table   string `json:"table"`
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

type Report struct {
	RunID      uuid.UUID      `json:"run_id"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt time.Time      `json:"finished_at"`
	Rows       map[string]int `json:"rows"`
	Findings   []Finding      `json:"findings"`
}

// OK reports whether the audit found nothing.
func (r *Report) OK() bool { return len(r.Findings) == 0 }

type Auditor struct {
	src    Source
	logger *slog.Logger
	clock  func() time.Time
}

func NewAuditor(src Source, logger *slog.Logger, clock func() time.Time) *Auditor {
	if logger == nil {
		logger = slog.Default()
	}
	if clock == nil {
		clock = time.Now
	}
	return &Auditor{src: src, logger: logger, clock: clock}
}

// Run audits every table. Findings are returned in the report, an error
// means the audit itself could not complete.
func (a *Auditor) Run(ctx context.Context) (*Report, error) {
	now := a.clock().UTC()
	rep := &Report{RunID: uuid.New(), StartedAt: now, Rows: map[string]int{}}
	log := a.logger.With("run_id", rep.RunID.String())

	fks, err := a.src.ForeignKeyViolations(ctx)
	if err != nil {
		return nil, fmt.Errorf("foreign key check: %w", err)
	}
	for _, v := range fks {
		rep.Findings = append(rep.Findings, Finding{
			Kind:    KindForeignKey,
			Table:   v.Table,
			ID:      v.RowID,
			Message: "references a missing " + v.Parent + " row",
		})
	}

	for _, table := range models.Tables() {
		rows, err := a.src.All(ctx, table)
		if err != nil {
			return nil, fmt.Errorf("audit %s: %w", table, err)
		}
		rep.Rows[table] = len(rows)
		for _, e := range rows {
			rep.Findings = append(rep.Findings, check(e, now)...)
		}
	}

	rep.FinishedAt = a.clock().UTC()
	for _, f := range rep.Findings {
		log.Warn("integrity finding", "kind", f.Kind, "table", f.Table, "id", f.ID, "message", f.Message)
	}
	log.Info("integrity audit finished", "findings", len(rep.Findings), "duration", rep.FinishedAt.Sub(rep.StartedAt))
	return rep, nil
}

func check(e models.Entity, now time.Time) []Finding {
	rec := e.Identity()
	var out []Finding
	if err := e.Validate(now); err != nil {
		out = append(out, Finding{Kind: KindInvalid, Table: e.TableName(), ID: rec.ID, Message: err.Error()})
	}
	if rec.UpdatedAt.Before(rec.CreatedAt) {
		out = append(out, Finding{Kind: KindTimestamps, Table: e.TableName(), ID: rec.ID, Message: "updated_at precedes created_at"})
	}
	return out
}

package integrity_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	dbfs "github.com/garnizeh/staffing/db"
	"github.com/garnizeh/staffing/internal/db"
	"github.com/garnizeh/staffing/internal/integrity"
	"github.com/garnizeh/staffing/internal/repository/sqlstore"
	"github.com/garnizeh/staffing/internal/seed"
	"github.com/garnizeh/staffing/pkg/models"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var now = time.Date(2025, time.June, 1, 8, 0, 0, 0, time.UTC)

func clock() time.Time { return now }

func newStore(t *testing.T) *sqlstore.Store {
	t.Helper()
	ctx := context.Background()
	d, err := db.New(ctx, db.SQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	require.NoError(t, db.Migrate(ctx, d, dbfs.Migrations))
	return sqlstore.New(d, nil, sqlstore.WithClock(clock))
}

func loadSample(t *testing.T, store *sqlstore.Store) {
	t.Helper()
	ctx := context.Background()
	ds, err := seed.Sample(ctx)
	require.NoError(t, err)
	_, err = seed.NewLoader(store, nil, clock).Load(ctx, ds)
	require.NoError(t, err)
}

func TestAuditCleanStore(t *testing.T) {
	store := newStore(t)
	loadSample(t, store)

	rep, err := integrity.NewAuditor(store, nil, clock).Run(context.Background())
	require.NoError(t, err)
	assert.True(t, rep.OK(), "findings: %+v", rep.Findings)
	assert.NotEqual(t, uuid.Nil, rep.RunID)
	assert.Equal(t, 1, rep.Rows[models.TableIndividuals])
	assert.Equal(t, 1, rep.Rows[models.TableAssignments])
	assert.Len(t, rep.Rows, len(models.Tables()))
}

func TestAuditFindsCorruption(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	conn := store.Conn()

	created := now.Add(-time.Hour).UnixMilli()
	_, err := conn.Exec(ctx, `PRAGMA foreign_keys = OFF`)
	require.NoError(t, err)
	_, err = conn.Exec(ctx, `INSERT INTO individuals (name, email, employment_type, hire_date, created_at, updated_at)
		VALUES ('Future', 'f@example.com', 'Contract', '2030-01-01', ?, ?)`, created, created-1000)
	require.NoError(t, err)
	_, err = conn.Exec(ctx, `INSERT INTO availabilities (individual_id, start_date, end_date, hours_per_week, created_at, updated_at)
		VALUES (999, '2025-06-01', '2025-07-01', 20, ?, ?)`, created, created)
	require.NoError(t, err)
	_, err = conn.Exec(ctx, `PRAGMA foreign_keys = ON`)
	require.NoError(t, err)

	rep, err := integrity.NewAuditor(store, nil, clock).Run(ctx)
	require.NoError(t, err)
	require.False(t, rep.OK())

	kinds := map[string]integrity.Finding{}
	for _, f := range rep.Findings {
		kinds[f.Kind] = f
	}
	require.Len(t, kinds, 3)

	assert.Equal(t, models.TableAvailabilities, kinds[integrity.KindForeignKey].Table)
	assert.Contains(t, kinds[integrity.KindForeignKey].Message, models.TableIndividuals)

	assert.Equal(t, models.TableIndividuals, kinds[integrity.KindInvalid].Table)
	assert.Contains(t, kinds[integrity.KindInvalid].Message, "hire_date")

	assert.Equal(t, models.TableIndividuals, kinds[integrity.KindTimestamps].Table)
}

type failingSource struct{ integrity.Source }

func (failingSource) ForeignKeyViolations(context.Context) ([]db.ForeignKeyViolation, error) {
	return nil, errors.New("disk on fire")
}

func TestAuditSourceError(t *testing.T) {
	_, err := integrity.NewAuditor(failingSource{}, nil, clock).Run(context.Background())
	assert.ErrorContains(t, err, "disk on fire")
}

func TestSchedulerRunsAudit(t *testing.T) {
	store := newStore(t)
	loadSample(t, store)

	s, err := integrity.NewScheduler(integrity.NewAuditor(store, nil, clock), "@every 1s", nil)
	require.NoError(t, err)
	assert.Nil(t, s.Last())

	s.Start(context.Background())
	require.Eventually(t, func() bool { return s.Last() != nil }, 5*time.Second, 50*time.Millisecond)
	assert.True(t, s.Last().OK())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))
}

func TestSchedulerRejectsBadSpec(t *testing.T) {
	_, err := integrity.NewScheduler(integrity.NewAuditor(failingSource{}, nil, clock), "every now and then", nil)
	assert.Error(t, err)
}

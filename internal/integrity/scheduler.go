package integrity

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"
)

// Scheduler runs an Auditor on a cron schedule and keeps the latest report.
type Scheduler struct {
	auditor *Auditor
	cron    *cron.Cron
	logger  *slog.Logger

	mu   sync.Mutex
	ctx  context.Context
	last *Report
}

// NewScheduler accepts standard five-field specs and descriptors such as
// "@every 1h" or "@daily".
func NewScheduler(auditor *Auditor, spec string, logger *slog.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Scheduler{auditor: auditor, cron: cron.New(), logger: logger, ctx: context.Background()}
	if _, err := s.cron.AddFunc(spec, s.run); err != nil {
		return nil, fmt.Errorf("schedule %q: %w", spec, err)
	}
	return s, nil
}

// Start begins scheduling. Audits run with ctx.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	s.ctx = ctx
	s.mu.Unlock()
	s.cron.Start()
	s.logger.Info("integrity audit scheduled")
}

// Stop stops scheduling and waits for a running audit or for ctx.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Last returns the most recent report, nil before the first run.
func (s *Scheduler) Last() *Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

func (s *Scheduler) run() {
	s.mu.Lock()
	ctx := s.ctx
	s.mu.Unlock()

	rep, err := s.auditor.Run(ctx)
	if err != nil {
		s.logger.Error("integrity audit failed", "error", err)
		return
	}
	s.mu.Lock()
	s.last = rep
	s.mu.Unlock()
}

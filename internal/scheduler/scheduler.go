package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"scenario-booking/internal/pkg/clock"
	"scenario-booking/internal/pkg/config"
	"scenario-booking/internal/usecase"
)

// Scheduler owns the periodic jobs of the reservation core: alert dispatch,
// expired-alert sweep, and recurrence generation (a daily full run plus a
// more frequent safety pass). Every job is idempotent, so overlapping runs of
// different jobs are fine; runs of the same job are single-flighted via
// TryLock.
type Scheduler struct {
	cfg        config.JobsConfig
	alerts     usecase.AlertUseCase
	recurrence usecase.RecurrenceUseCase
	clock      clock.Clock
	logger     *slog.Logger

	jobLocks map[string]*sync.Mutex
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

func New(
	cfg config.JobsConfig,
	alerts usecase.AlertUseCase,
	recurrence usecase.RecurrenceUseCase,
	clock clock.Clock,
	logger *slog.Logger,
) *Scheduler {
	return &Scheduler{
		cfg:        cfg,
		alerts:     alerts,
		recurrence: recurrence,
		clock:      clock,
		logger:     logger,
		jobLocks: map[string]*sync.Mutex{
			jobProcessAlerts: {},
			jobSweepAlerts:   {},
			jobGenerate:      {},
		},
	}
}

const (
	jobProcessAlerts = "process_alerts"
	jobSweepAlerts   = "sweep_expired_alerts"
	jobGenerate      = "generate_recurrences"
)

func (s *Scheduler) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.spawn(ctx, jobProcessAlerts, s.cfg.AlertProcessInterval, s.processAlerts)
	s.spawn(ctx, jobSweepAlerts, s.cfg.AlertSweepInterval, s.sweepAlerts)
	s.spawn(ctx, jobGenerate, s.cfg.GenerateInterval, s.generate)
	// Safety pass: the daily generation can miss definitions created after
	// its last run; an hourly pass with the same lock keeps the horizon fresh.
	s.spawn(ctx, jobGenerate, s.cfg.SafetyPassInterval, s.generate)

	s.logger.Info("job scheduler started",
		"alert_process_interval", s.cfg.AlertProcessInterval,
		"alert_sweep_interval", s.cfg.AlertSweepInterval,
		"generate_interval", s.cfg.GenerateInterval,
		"safety_pass_interval", s.cfg.SafetyPassInterval)
}

func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	s.logger.Info("job scheduler stopped")
}

func (s *Scheduler) spawn(ctx context.Context, name string, interval time.Duration, job func(context.Context)) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.runExclusive(ctx, name, job)
			}
		}
	}()
}

// runExclusive skips a tick when the previous run of the same job is still in
// flight.
func (s *Scheduler) runExclusive(ctx context.Context, name string, job func(context.Context)) {
	mu := s.jobLocks[name]
	if !mu.TryLock() {
		s.logger.Warn("previous job run still in progress, skipping tick", "job", name)
		return
	}
	defer mu.Unlock()
	job(ctx)
}

func (s *Scheduler) processAlerts(ctx context.Context) {
	report, err := s.alerts.ProcessDue(ctx, s.clock.Now())
	if err != nil {
		s.logger.Error("alert processing failed", "error", err)
		return
	}
	if report.Processed > 0 {
		s.logger.Info("processed due alerts",
			"processed", report.Processed, "sent", report.Sent, "failed", report.Failed)
	}
}

func (s *Scheduler) sweepAlerts(ctx context.Context) {
	report, err := s.alerts.SweepExpired(ctx, s.clock.Now())
	if err != nil {
		s.logger.Error("expired alert sweep failed", "error", err)
		return
	}
	if report.Swept > 0 {
		s.logger.Info("swept expired alerts", "swept", report.Swept)
	}
}

func (s *Scheduler) generate(ctx context.Context) {
	report, err := s.recurrence.GeneratePendingForAllActive(ctx, s.cfg.LookaheadDays)
	if err != nil {
		s.logger.Error("recurrence generation failed", "error", err)
		return
	}
	if report.Created > 0 || report.Failed > 0 {
		s.logger.Info("recurrence generation finished",
			"definitions", report.Definitions, "created", report.Created, "failed", report.Failed)
	}
}

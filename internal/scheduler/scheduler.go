// Package scheduler runs the periodic batch jobs: expiring lapsed preorders
// and generating orders for cycles approaching their shipment window. Both
// jobs are safe to rerun, so a missed or doubled tick has no lasting effect.
package scheduler

import (
	"context"
	"time"

	"fitflow-box/internal/config"
	"fitflow-box/internal/repository"
	"fitflow-box/internal/service"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Scheduler owns the cron runner and its job wiring.
type Scheduler struct {
	cron      *cron.Cron
	cfg       config.SchedulerConfig
	preorders service.PreorderService
	orders    service.OrderGenService
	cycleRepo repository.CycleRepository
	logger    zerolog.Logger
}

// New creates a scheduler with both jobs registered. Jobs skip a tick if the
// previous run is still going.
func New(
	cfg config.SchedulerConfig,
	preorders service.PreorderService,
	orders service.OrderGenService,
	cycleRepo repository.CycleRepository,
	logger zerolog.Logger,
) (*Scheduler, error) {
	s := &Scheduler{
		cfg:       cfg,
		preorders: preorders,
		orders:    orders,
		cycleRepo: cycleRepo,
		logger:    logger.With().Str("component", "scheduler").Logger(),
	}

	s.cron = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DiscardLogger),
	))

	if _, err := s.cron.AddFunc(cfg.PreorderSweep, s.sweepPreorders); err != nil {
		return nil, err
	}
	if _, err := s.cron.AddFunc(cfg.OrderGeneration, s.generateOrders); err != nil {
		return nil, err
	}

	return s, nil
}

// Start begins running the registered jobs.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info().
		Str("preorder_sweep", s.cfg.PreorderSweep).
		Str("order_generation", s.cfg.OrderGeneration).
		Int("order_gen_lead_days", s.cfg.OrderGenLeadDays).
		Msg("scheduler started")
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info().Msg("scheduler stopped")
}

// sweepPreorders flips lapsed pending preorders to expired.
func (s *Scheduler) sweepPreorders() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	count, err := s.preorders.SweepExpired(ctx, time.Now())
	if err != nil {
		s.logger.Error().Err(err).Msg("preorder sweep failed")
		return
	}

	if count > 0 {
		s.logger.Info().Int64("count", count).Msg("preorder sweep completed")
	}
}

// generateOrders runs the renewal batch for every upcoming cycle inside the
// lead window. Generation is idempotent, so running daily against the same
// cycle only fills in subscriptions that were missed or newly activated.
func (s *Scheduler) generateOrders() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	upcoming, err := s.cycleRepo.ListUpcoming(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list upcoming cycles")
		return
	}

	horizon := time.Now().AddDate(0, 0, s.cfg.OrderGenLeadDays)
	for i := range upcoming {
		cycle := &upcoming[i]
		if cycle.DeliveryDate.After(horizon) {
			continue
		}

		report, err := s.orders.GenerateForCycle(ctx, cycle.ID)
		if err != nil {
			s.logger.Error().
				Err(err).
				Str("cycle_id", cycle.ID.String()).
				Msg("order generation run failed")
			continue
		}

		s.logger.Info().
			Str("cycle_id", cycle.ID.String()).
			Int("created", report.Created).
			Int("skipped", report.Skipped).
			Int("duplicates", report.Duplicates).
			Int("failed", report.Failed).
			Msg("order generation run completed")
	}
}

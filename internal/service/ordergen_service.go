package service

import (
	"context"
	"fmt"
	"time"

	"fitflow-box/internal/model"
	"fitflow-box/internal/renewal"
	"fitflow-box/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// orderGenService implements OrderGenService.
type orderGenService struct {
	subRepo   repository.SubscriptionRepository
	cycleRepo repository.CycleRepository
	orderRepo repository.OrderRepository
	now       func() time.Time
	logger    zerolog.Logger
}

// NewOrderGenService creates a new order generation service.
func NewOrderGenService(
	subRepo repository.SubscriptionRepository,
	cycleRepo repository.CycleRepository,
	orderRepo repository.OrderRepository,
	logger zerolog.Logger,
) OrderGenService {
	return &orderGenService{
		subRepo:   subRepo,
		cycleRepo: cycleRepo,
		orderRepo: orderRepo,
		now:       time.Now,
		logger:    logger.With().Str("service", "ordergen").Logger(),
	}
}

// GenerateForCycle evaluates every active subscription against the target
// cycle. Each subscription is handled independently: a failure is counted
// and logged, never propagated, so one bad row cannot starve the rest of the
// batch. Rerunning the batch is safe because order creation is idempotent
// and the inclusion predicate is pure.
func (s *orderGenService) GenerateForCycle(ctx context.Context, cycleID uuid.UUID) (*GenerationReport, error) {
	cycles, err := s.cycleRepo.ListOrderedByDate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load cycles: %w", err)
	}

	var target *model.DeliveryCycle
	for i := range cycles {
		if cycles[i].ID == cycleID {
			target = &cycles[i]
			break
		}
	}
	if target == nil {
		return nil, model.ErrCycleNotFound
	}

	subs, err := s.subRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load active subscriptions: %w", err)
	}

	report := &GenerationReport{CycleID: cycleID, Evaluated: len(subs)}
	now := s.now()

	for i := range subs {
		sub := &subs[i]

		if !renewal.ShouldIncludeInCycle(sub, target, cycles) {
			report.Skipped++
			continue
		}

		order := &model.Order{
			ID:             uuid.New(),
			SubscriptionID: &sub.ID,
			CycleID:        &target.ID,
			BoxTypeID:      sub.BoxTypeID,
			PriceEUR:       sub.PriceEUR,
			PromoCode:      sub.PromoCode,
			CreatedAt:      now,
			UpdatedAt:      now,
		}

		created, err := s.orderRepo.CreateForCycle(ctx, order)
		if err != nil {
			s.logger.Error().
				Err(err).
				Str("subscription_id", sub.ID.String()).
				Str("cycle_id", cycleID.String()).
				Msg("order creation failed, continuing batch")
			report.Failed++
			continue
		}
		if !created {
			report.Duplicates++
			continue
		}

		if err := s.subRepo.AdvanceLastDeliveredCycle(ctx, sub.ID, target.ID, target.DeliveryDate); err != nil {
			// The order row exists; the pointer catches up on the next
			// run because the advance is monotonic and repeatable.
			s.logger.Error().
				Err(err).
				Str("subscription_id", sub.ID.String()).
				Msg("failed to advance last delivered cycle")
			report.Failed++
			continue
		}

		report.Created++
	}

	s.logger.Info().
		Str("cycle_id", cycleID.String()).
		Int("evaluated", report.Evaluated).
		Int("created", report.Created).
		Int("skipped", report.Skipped).
		Int("duplicates", report.Duplicates).
		Int("failed", report.Failed).
		Msg("order generation batch completed")

	return report, nil
}

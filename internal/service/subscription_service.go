package service

import (
	"context"
	"fmt"
	"time"

	"fitflow-box/internal/lifecycle"
	"fitflow-box/internal/model"
	"fitflow-box/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// subscriptionService implements SubscriptionService.
type subscriptionService struct {
	repo   repository.SubscriptionRepository
	now    func() time.Time
	logger zerolog.Logger
}

// NewSubscriptionService creates a new subscription service.
func NewSubscriptionService(repo repository.SubscriptionRepository, logger zerolog.Logger) SubscriptionService {
	return &subscriptionService{
		repo:   repo,
		now:    time.Now,
		logger: logger.With().Str("service", "subscription").Logger(),
	}
}

// Get retrieves a subscription with its derived capability flags.
func (s *subscriptionService) Get(ctx context.Context, id uuid.UUID) (*model.Subscription, *lifecycle.DerivedState, error) {
	sub, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil {
		return nil, nil, model.ErrSubscriptionNotFound
	}

	derived := lifecycle.ComputeDerivedState(sub)
	return sub, &derived, nil
}

// ApplyAction applies a lifecycle action. The guard check happens in memory
// first for a specific error message, then the guarded UPDATE re-checks the
// status so a concurrent action cannot double-apply.
func (s *subscriptionService) ApplyAction(ctx context.Context, id uuid.UUID, action lifecycle.Action) (*model.Subscription, error) {
	sub, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil {
		return nil, model.ErrSubscriptionNotFound
	}

	result, err := lifecycle.Apply(sub, action, s.now())
	if err != nil {
		s.logger.Warn().
			Str("subscription_id", id.String()).
			Str("action", string(action)).
			Str("status", string(sub.Status)).
			Err(err).
			Msg("lifecycle action rejected")
		return nil, err
	}

	updated, err := s.repo.UpdateStatus(ctx, id, sub.Status, result.Status, result.PausedAt, result.CancelledAt)
	if err != nil {
		return nil, fmt.Errorf("failed to apply action: %w", err)
	}
	if !updated {
		return nil, model.ErrStateChanged
	}

	s.logger.Info().
		Str("subscription_id", id.String()).
		Str("action", string(action)).
		Str("from", string(sub.Status)).
		Str("to", string(result.Status)).
		Msg("lifecycle action applied")

	sub.Status = result.Status
	if result.PausedAt != nil {
		sub.PausedAt = result.PausedAt
	}
	if result.CancelledAt != nil {
		sub.CancelledAt = result.CancelledAt
	}
	return sub, nil
}

// UpdatePreferences replaces personalisation preferences.
func (s *subscriptionService) UpdatePreferences(ctx context.Context, id uuid.UUID, prefs model.Preferences) (*model.Subscription, error) {
	sub, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil {
		return nil, model.ErrSubscriptionNotFound
	}

	if !lifecycle.ComputeDerivedState(sub).CanEditPreferences {
		s.logger.Warn().
			Str("subscription_id", id.String()).
			Str("status", string(sub.Status)).
			Msg("preferences edit rejected")
		return nil, model.ErrSubscriptionLocked
	}

	if err := s.repo.UpdatePreferences(ctx, id, prefs); err != nil {
		return nil, fmt.Errorf("failed to update preferences: %w", err)
	}

	sub.Preferences = prefs
	return sub, nil
}

// ChangeFrequency switches renewal cadence.
func (s *subscriptionService) ChangeFrequency(ctx context.Context, id uuid.UUID, freq model.Frequency) (*model.Subscription, error) {
	if !freq.Valid() {
		return nil, model.ErrInvalidFrequency
	}

	sub, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil {
		return nil, model.ErrSubscriptionNotFound
	}

	if !lifecycle.ComputeDerivedState(sub).CanChangeFrequency {
		s.logger.Warn().
			Str("subscription_id", id.String()).
			Str("status", string(sub.Status)).
			Msg("frequency change rejected")
		return nil, model.ErrSubscriptionLocked
	}

	if err := s.repo.UpdateFrequency(ctx, id, freq); err != nil {
		return nil, fmt.Errorf("failed to change frequency: %w", err)
	}

	sub.Frequency = freq
	return sub, nil
}

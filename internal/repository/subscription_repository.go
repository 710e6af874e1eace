package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fitflow-box/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// subscriptionRepository implements SubscriptionRepository using PostgreSQL.
type subscriptionRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewSubscriptionRepository creates a new PostgreSQL-backed subscription repository.
func NewSubscriptionRepository(pool *pgxpool.Pool, logger zerolog.Logger) SubscriptionRepository {
	return &subscriptionRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "subscription").Logger(),
	}
}

const subscriptionColumns = `
	id, customer_id, box_type_id, frequency, status, price_eur,
	promo_code, discount_percent, address_id, first_cycle_id,
	last_delivered_cycle_id, preferences, created_at, updated_at,
	paused_at, cancelled_at
`

func scanSubscription(row pgx.Row) (*model.Subscription, error) {
	var s model.Subscription
	err := row.Scan(
		&s.ID, &s.CustomerID, &s.BoxTypeID, &s.Frequency, &s.Status,
		&s.PriceEUR, &s.PromoCode, &s.DiscountPercent, &s.AddressID,
		&s.FirstCycleID, &s.LastDeliveredCycleID, &s.Preferences,
		&s.CreatedAt, &s.UpdatedAt, &s.PausedAt, &s.CancelledAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetByID retrieves a subscription by its ID.
func (r *subscriptionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE id = $1`

	s, err := scanSubscription(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("subscription_id", id.String()).Msg("subscription not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("subscription_id", id.String()).Msg("failed to query subscription")
		return nil, fmt.Errorf("failed to query subscription: %w", err)
	}

	return s, nil
}

// ListActive retrieves all active subscriptions.
func (r *subscriptionRepository) ListActive(ctx context.Context) ([]model.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE status = $1 ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, model.StatusActive)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query active subscriptions")
		return nil, fmt.Errorf("failed to query active subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []model.Subscription
	for rows.Next() {
		s, err := scanSubscription(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan subscription row")
			return nil, fmt.Errorf("failed to scan subscription: %w", err)
		}
		subs = append(subs, *s)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating subscription rows")
		return nil, fmt.Errorf("error iterating subscriptions: %w", err)
	}

	return subs, nil
}

// UpdateStatus moves a subscription to a new status, guarded on the expected
// current status so concurrent actions cannot double-apply.
func (r *subscriptionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, expected, next model.SubscriptionStatus, pausedAt, cancelledAt *time.Time) (bool, error) {
	query := `
		UPDATE subscriptions
		SET status = $3,
		    paused_at = COALESCE($4, paused_at),
		    cancelled_at = COALESCE($5, cancelled_at),
		    updated_at = NOW()
		WHERE id = $1 AND status = $2
	`

	tag, err := r.pool.Exec(ctx, query, id, expected, next, pausedAt, cancelledAt)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("subscription_id", id.String()).
			Str("next_status", string(next)).
			Msg("failed to update subscription status")
		return false, fmt.Errorf("failed to update subscription status: %w", err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Warn().
			Str("subscription_id", id.String()).
			Str("expected_status", string(expected)).
			Msg("subscription status changed underneath the action")
		return false, nil
	}

	r.logger.Info().
		Str("subscription_id", id.String()).
		Str("status", string(next)).
		Msg("subscription status updated")

	return true, nil
}

// AdvanceLastDeliveredCycle records the cycle an order was just generated
// for. The WHERE clause keeps the pointer monotonic by delivery date: a
// rerun against an older cycle leaves the row untouched.
func (r *subscriptionRepository) AdvanceLastDeliveredCycle(ctx context.Context, id, cycleID uuid.UUID, deliveryDate time.Time) error {
	query := `
		UPDATE subscriptions s
		SET last_delivered_cycle_id = $2, updated_at = NOW()
		WHERE s.id = $1
		  AND (
			s.last_delivered_cycle_id IS NULL
			OR $3 >= (SELECT c.delivery_date FROM delivery_cycles c WHERE c.id = s.last_delivered_cycle_id)
		  )
	`

	_, err := r.pool.Exec(ctx, query, id, cycleID, deliveryDate)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("subscription_id", id.String()).
			Str("cycle_id", cycleID.String()).
			Msg("failed to advance last delivered cycle")
		return fmt.Errorf("failed to advance last delivered cycle: %w", err)
	}

	return nil
}

// UpdatePreferences replaces the personalisation preferences.
func (r *subscriptionRepository) UpdatePreferences(ctx context.Context, id uuid.UUID, prefs model.Preferences) error {
	query := `UPDATE subscriptions SET preferences = $2, updated_at = NOW() WHERE id = $1`

	encoded, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, id, encoded)
	if err != nil {
		r.logger.Error().Err(err).Str("subscription_id", id.String()).Msg("failed to update preferences")
		return fmt.Errorf("failed to update preferences: %w", err)
	}

	return nil
}

// UpdateFrequency switches the renewal cadence.
func (r *subscriptionRepository) UpdateFrequency(ctx context.Context, id uuid.UUID, freq model.Frequency) error {
	query := `UPDATE subscriptions SET frequency = $2, updated_at = NOW() WHERE id = $1`

	_, err := r.pool.Exec(ctx, query, id, freq)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("subscription_id", id.String()).
			Str("frequency", string(freq)).
			Msg("failed to update frequency")
		return fmt.Errorf("failed to update frequency: %w", err)
	}

	return nil
}

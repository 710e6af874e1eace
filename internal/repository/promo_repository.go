package repository

import (
	"context"
	"fmt"

	"fitflow-box/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// promoRepository implements PromoRepository using PostgreSQL. The database
// is the single authoritative promo code set.
type promoRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPromoRepository creates a new PostgreSQL-backed promo code repository.
func NewPromoRepository(pool *pgxpool.Pool, logger zerolog.Logger) PromoRepository {
	return &promoRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "promo").Logger(),
	}
}

// GetByCode looks up a promo code by its normalised (uppercase) form.
func (r *promoRepository) GetByCode(ctx context.Context, code string) (*model.PromoCode, error) {
	query := `
		SELECT id, code, discount_percent, enabled, valid_from, valid_until,
		       max_uses, max_uses_per_user, used_count, created_at
		FROM promo_codes
		WHERE code = $1
	`

	var p model.PromoCode
	err := r.pool.QueryRow(ctx, query, code).Scan(
		&p.ID, &p.Code, &p.DiscountPercent, &p.Enabled, &p.ValidFrom,
		&p.ValidUntil, &p.MaxUses, &p.MaxUsesPerUser, &p.UsedCount, &p.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("promo_code", code).Msg("promo code not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("promo_code", code).Msg("failed to query promo code")
		return nil, fmt.Errorf("failed to query promo code: %w", err)
	}

	return &p, nil
}

// IncrementUsage bumps the global usage counter at redemption time.
func (r *promoRepository) IncrementUsage(ctx context.Context, code string) error {
	query := `UPDATE promo_codes SET used_count = used_count + 1 WHERE code = $1`

	_, err := r.pool.Exec(ctx, query, code)
	if err != nil {
		r.logger.Error().Err(err).Str("promo_code", code).Msg("failed to increment promo usage")
		return fmt.Errorf("failed to increment promo usage: %w", err)
	}

	return nil
}

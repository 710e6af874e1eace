package repository

import (
	"context"
	"fmt"
	"time"

	"fitflow-box/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// preorderRepository implements PreorderRepository using PostgreSQL.
type preorderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPreorderRepository creates a new PostgreSQL-backed preorder repository.
func NewPreorderRepository(pool *pgxpool.Pool, logger zerolog.Logger) PreorderRepository {
	return &preorderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "preorder").Logger(),
	}
}

const preorderColumns = `
	id, order_number, email, full_name, box_type_id, frequency,
	preferences, promo_code, discount_percent, price_eur,
	conversion_status, conversion_token, conversion_token_expires_at,
	converted_to_order_id, created_at, updated_at
`

// GetByToken retrieves a preorder by its conversion token.
func (r *preorderRepository) GetByToken(ctx context.Context, token string) (*model.Preorder, error) {
	query := `SELECT ` + preorderColumns + ` FROM preorders WHERE conversion_token = $1`

	var p model.Preorder
	err := r.pool.QueryRow(ctx, query, token).Scan(
		&p.ID, &p.OrderNumber, &p.Email, &p.FullName, &p.BoxTypeID,
		&p.Frequency, &p.Preferences, &p.PromoCode, &p.DiscountPercent,
		&p.PriceEUR, &p.ConversionStatus, &p.ConversionToken,
		&p.TokenExpiresAt, &p.ConvertedToOrder, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Msg("preorder token not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Msg("failed to query preorder by token")
		return nil, fmt.Errorf("failed to query preorder: %w", err)
	}

	return &p, nil
}

// GetByID retrieves a preorder by its ID.
func (r *preorderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Preorder, error) {
	query := `SELECT ` + preorderColumns + ` FROM preorders WHERE id = $1`

	var p model.Preorder
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.OrderNumber, &p.Email, &p.FullName, &p.BoxTypeID,
		&p.Frequency, &p.Preferences, &p.PromoCode, &p.DiscountPercent,
		&p.PriceEUR, &p.ConversionStatus, &p.ConversionToken,
		&p.TokenExpiresAt, &p.ConvertedToOrder, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("preorder_id", id.String()).Msg("preorder not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("preorder_id", id.String()).Msg("failed to query preorder")
		return nil, fmt.Errorf("failed to query preorder: %w", err)
	}

	return &p, nil
}

// MarkConverted flips a pending preorder to converted and records the order
// it produced. The status check in the WHERE clause is the atomicity
// guarantee: once a row leaves pending, the token can never convert again.
func (r *preorderRepository) MarkConverted(ctx context.Context, tx pgx.Tx, id, orderID uuid.UUID) (bool, error) {
	query := `
		UPDATE preorders
		SET conversion_status = $3,
		    converted_to_order_id = $2,
		    updated_at = NOW()
		WHERE id = $1 AND conversion_status = $4
	`

	tag, err := tx.Exec(ctx, query, id, orderID, model.ConversionConverted, model.ConversionPending)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("preorder_id", id.String()).
			Str("order_id", orderID.String()).
			Msg("failed to mark preorder converted")
		return false, fmt.Errorf("failed to mark preorder converted: %w", err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Warn().Str("preorder_id", id.String()).Msg("preorder no longer pending")
		return false, nil
	}

	r.logger.Info().
		Str("preorder_id", id.String()).
		Str("order_id", orderID.String()).
		Msg("preorder converted")

	return true, nil
}

// ExpirePending flips lapsed pending preorders to expired. Rerunning the
// sweep is a no-op for rows already flipped.
func (r *preorderRepository) ExpirePending(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE preorders
		SET conversion_status = $2, updated_at = NOW()
		WHERE conversion_status = $1 AND conversion_token_expires_at <= $3
	`

	tag, err := r.pool.Exec(ctx, query, model.ConversionPending, model.ConversionExpired, now)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to expire pending preorders")
		return 0, fmt.Errorf("failed to expire pending preorders: %w", err)
	}

	if tag.RowsAffected() > 0 {
		r.logger.Info().Int64("count", tag.RowsAffected()).Msg("pending preorders expired")
	}

	return tag.RowsAffected(), nil
}

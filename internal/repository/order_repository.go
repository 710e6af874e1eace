package repository

import (
	"context"
	"fmt"

	"fitflow-box/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// orderRepository implements OrderRepository using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *orderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// CreateForCycle inserts a batch-generated order. ON CONFLICT DO NOTHING on
// the (subscription_id, cycle_id) unique index is what makes rerunning the
// generation batch safe.
func (r *orderRepository) CreateForCycle(ctx context.Context, order *model.Order) (bool, error) {
	query := `
		INSERT INTO orders (id, subscription_id, preorder_id, cycle_id, box_type_id, price_eur, promo_code, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (subscription_id, cycle_id) DO NOTHING
	`

	tag, err := r.pool.Exec(ctx, query,
		order.ID, order.SubscriptionID, order.PreorderID, order.CycleID,
		order.BoxTypeID, order.PriceEUR, order.PromoCode,
		order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Msg("failed to create cycle order")
		return false, fmt.Errorf("failed to create cycle order: %w", err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Debug().
			Str("order_id", order.ID.String()).
			Msg("order already exists for subscription and cycle")
		return false, nil
	}

	r.logger.Debug().Str("order_id", order.ID.String()).Msg("cycle order created")

	return true, nil
}

// CreateFromPreorder inserts a conversion order within the provided
// transaction, so the insert commits atomically with the preorder flip.
func (r *orderRepository) CreateFromPreorder(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		INSERT INTO orders (id, subscription_id, preorder_id, cycle_id, box_type_id, price_eur, promo_code, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := tx.Exec(ctx, query,
		order.ID, order.SubscriptionID, order.PreorderID, order.CycleID,
		order.BoxTypeID, order.PriceEUR, order.PromoCode,
		order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Msg("failed to create conversion order")
		return fmt.Errorf("failed to create conversion order: %w", err)
	}

	r.logger.Debug().Str("order_id", order.ID.String()).Msg("conversion order created")

	return nil
}

// GetByID retrieves an order by its ID.
func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	query := `
		SELECT id, subscription_id, preorder_id, cycle_id, box_type_id, price_eur, promo_code, created_at, updated_at
		FROM orders
		WHERE id = $1
	`

	var o model.Order
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.SubscriptionID, &o.PreorderID, &o.CycleID,
		&o.BoxTypeID, &o.PriceEUR, &o.PromoCode, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("order_id", id.String()).Msg("order not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	return &o, nil
}

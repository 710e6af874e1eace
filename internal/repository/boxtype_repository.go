package repository

import (
	"context"
	"fmt"

	"fitflow-box/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// boxTypeRepository implements BoxTypeRepository using PostgreSQL.
type boxTypeRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewBoxTypeRepository creates a new PostgreSQL-backed box catalogue repository.
func NewBoxTypeRepository(pool *pgxpool.Pool, logger zerolog.Logger) BoxTypeRepository {
	return &boxTypeRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "boxtype").Logger(),
	}
}

// List retrieves all active box types ordered by name.
func (r *boxTypeRepository) List(ctx context.Context) ([]model.BoxType, error) {
	query := `
		SELECT id, name, price_eur, active, created_at
		FROM box_types
		WHERE active
		ORDER BY name
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query box types")
		return nil, fmt.Errorf("failed to query box types: %w", err)
	}
	defer rows.Close()

	var boxes []model.BoxType
	for rows.Next() {
		var b model.BoxType
		err := rows.Scan(&b.ID, &b.Name, &b.PriceEUR, &b.Active, &b.CreatedAt)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan box type row")
			return nil, fmt.Errorf("failed to scan box type: %w", err)
		}
		boxes = append(boxes, b)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating box type rows")
		return nil, fmt.Errorf("error iterating box types: %w", err)
	}

	return boxes, nil
}

// GetByID retrieves a box type by its ID.
func (r *boxTypeRepository) GetByID(ctx context.Context, id string) (*model.BoxType, error) {
	query := `
		SELECT id, name, price_eur, active, created_at
		FROM box_types
		WHERE id = $1
	`

	var b model.BoxType
	err := r.pool.QueryRow(ctx, query, id).Scan(&b.ID, &b.Name, &b.PriceEUR, &b.Active, &b.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("box_type_id", id).Msg("box type not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("box_type_id", id).Msg("failed to query box type")
		return nil, fmt.Errorf("failed to query box type: %w", err)
	}

	return &b, nil
}

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

// cycleRepository implements CycleRepository using PostgreSQL.
type cycleRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCycleRepository creates a new PostgreSQL-backed delivery cycle repository.
func NewCycleRepository(pool *pgxpool.Pool, logger zerolog.Logger) CycleRepository {
	return &cycleRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "cycle").Logger(),
	}
}

const cycleColumns = `id, delivery_date, status, title, description, revealed, created_at`

// GetByID retrieves a delivery cycle by its ID.
func (r *cycleRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.DeliveryCycle, error) {
	query := `SELECT ` + cycleColumns + ` FROM delivery_cycles WHERE id = $1`

	var c model.DeliveryCycle
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.DeliveryDate, &c.Status, &c.Title, &c.Description, &c.Revealed, &c.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("cycle_id", id.String()).Msg("cycle not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("cycle_id", id.String()).Msg("failed to query cycle")
		return nil, fmt.Errorf("failed to query cycle: %w", err)
	}

	return &c, nil
}

// ListOrderedByDate retrieves all cycles sorted ascending by delivery date.
func (r *cycleRepository) ListOrderedByDate(ctx context.Context) ([]model.DeliveryCycle, error) {
	query := `SELECT ` + cycleColumns + ` FROM delivery_cycles ORDER BY delivery_date`

	return r.list(ctx, query)
}

// ListUpcoming retrieves upcoming cycles sorted ascending by delivery date.
func (r *cycleRepository) ListUpcoming(ctx context.Context) ([]model.DeliveryCycle, error) {
	query := `SELECT ` + cycleColumns + ` FROM delivery_cycles WHERE status = $1 ORDER BY delivery_date`

	return r.list(ctx, query, model.CycleUpcoming)
}

// Create inserts a new cycle in the upcoming state.
func (r *cycleRepository) Create(ctx context.Context, cycle *model.DeliveryCycle) error {
	query := `
		INSERT INTO delivery_cycles (id, delivery_date, status, title, description, revealed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		cycle.ID, cycle.DeliveryDate, cycle.Status, cycle.Title,
		cycle.Description, cycle.Revealed, cycle.CreatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("cycle_id", cycle.ID.String()).Msg("failed to create cycle")
		return fmt.Errorf("failed to create cycle: %w", err)
	}

	r.logger.Info().
		Str("cycle_id", cycle.ID.String()).
		Time("delivery_date", cycle.DeliveryDate).
		Msg("cycle created")
	return nil
}

// MarkDelivered moves an upcoming cycle to delivered.
func (r *cycleRepository) MarkDelivered(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.transition(ctx, id, model.CycleUpcoming, model.CycleDelivered)
}

// MarkArchived moves a delivered cycle to archived.
func (r *cycleRepository) MarkArchived(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.transition(ctx, id, model.CycleDelivered, model.CycleArchived)
}

// transition advances a cycle's status with the previous status in the
// WHERE clause, so replays and out-of-order requests change nothing.
func (r *cycleRepository) transition(ctx context.Context, id uuid.UUID, from, to model.CycleStatus) (bool, error) {
	query := `UPDATE delivery_cycles SET status = $2 WHERE id = $1 AND status = $3`

	tag, err := r.pool.Exec(ctx, query, id, to, from)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("cycle_id", id.String()).
			Str("to", string(to)).
			Msg("failed to update cycle status")
		return false, fmt.Errorf("failed to update cycle status: %w", err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Warn().
			Str("cycle_id", id.String()).
			Str("expected", string(from)).
			Msg("cycle not in expected status")
		return false, nil
	}

	r.logger.Info().
		Str("cycle_id", id.String()).
		Str("status", string(to)).
		Msg("cycle status updated")
	return true, nil
}

func (r *cycleRepository) list(ctx context.Context, query string, args ...any) ([]model.DeliveryCycle, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query cycles")
		return nil, fmt.Errorf("failed to query cycles: %w", err)
	}
	defer rows.Close()

	var cycles []model.DeliveryCycle
	for rows.Next() {
		var c model.DeliveryCycle
		err := rows.Scan(&c.ID, &c.DeliveryDate, &c.Status, &c.Title, &c.Description, &c.Revealed, &c.CreatedAt)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan cycle row")
			return nil, fmt.Errorf("failed to scan cycle: %w", err)
		}
		cycles = append(cycles, c)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating cycle rows")
		return nil, fmt.Errorf("error iterating cycles: %w", err)
	}

	return cycles, nil
}

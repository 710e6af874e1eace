package repository

import (
	"context"
	"time"

	"fitflow-box/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SubscriptionRepository defines data access for subscriptions.
type SubscriptionRepository interface {
	// GetByID retrieves a subscription. Returns (nil, nil) when missing.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Subscription, error)

	// ListActive retrieves all active subscriptions, the population the
	// batch renewal run iterates over.
	ListActive(ctx context.Context) ([]model.Subscription, error)

	// UpdateStatus moves a subscription to a new status only if it still
	// has the expected one, stamping pause/cancel timestamps as needed.
	// Returns false when the row was not in the expected status.
	UpdateStatus(ctx context.Context, id uuid.UUID, expected, next model.SubscriptionStatus, pausedAt, cancelledAt *time.Time) (bool, error)

	// AdvanceLastDeliveredCycle records that an order was generated for
	// the given cycle. The update only ever moves forward: it is a no-op
	// when the current last-delivered cycle is already dated after the
	// given delivery date.
	AdvanceLastDeliveredCycle(ctx context.Context, id, cycleID uuid.UUID, deliveryDate time.Time) error

	// UpdatePreferences replaces the personalisation preferences.
	UpdatePreferences(ctx context.Context, id uuid.UUID, prefs model.Preferences) error

	// UpdateFrequency switches the renewal cadence.
	UpdateFrequency(ctx context.Context, id uuid.UUID, freq model.Frequency) error
}

// CycleRepository defines data access for delivery cycles.
type CycleRepository interface {
	// GetByID retrieves a cycle. Returns (nil, nil) when missing.
	GetByID(ctx context.Context, id uuid.UUID) (*model.DeliveryCycle, error)

	// ListOrderedByDate retrieves all cycles sorted ascending by delivery
	// date, the reference set for seasonal gap counting.
	ListOrderedByDate(ctx context.Context) ([]model.DeliveryCycle, error)

	// ListUpcoming retrieves upcoming cycles sorted ascending by delivery date.
	ListUpcoming(ctx context.Context) ([]model.DeliveryCycle, error)

	// Create inserts a new cycle in the upcoming state.
	Create(ctx context.Context, cycle *model.DeliveryCycle) error

	// MarkDelivered moves an upcoming cycle to delivered. The status guard
	// in the WHERE clause makes the transition forward-only; returns false
	// when the row was not upcoming.
	MarkDelivered(ctx context.Context, id uuid.UUID) (bool, error)

	// MarkArchived moves a delivered cycle to archived. Returns false when
	// the row was not delivered.
	MarkArchived(ctx context.Context, id uuid.UUID) (bool, error)
}

// PreorderRepository defines data access for preorders.
type PreorderRepository interface {
	// GetByToken retrieves a preorder by its conversion token.
	// Returns (nil, nil) when no such token exists.
	GetByToken(ctx context.Context, token string) (*model.Preorder, error)

	// GetByID retrieves a preorder. Returns (nil, nil) when missing.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Preorder, error)

	// MarkConverted flips a pending preorder to converted and links the
	// created order, in a single compare-and-set statement so a replayed
	// token cannot convert twice. Returns false when the row was no
	// longer pending.
	MarkConverted(ctx context.Context, tx pgx.Tx, id, orderID uuid.UUID) (bool, error)

	// ExpirePending flips every pending preorder whose token window has
	// lapsed to expired. Idempotent; returns the number of rows flipped.
	ExpirePending(ctx context.Context, now time.Time) (int64, error)
}

// PromoRepository defines data access for promo codes.
type PromoRepository interface {
	// GetByCode looks up a promo code by its normalised (uppercase) form.
	// Returns (nil, nil) when no such code exists.
	GetByCode(ctx context.Context, code string) (*model.PromoCode, error)

	// IncrementUsage bumps the global usage counter at redemption time.
	IncrementUsage(ctx context.Context, code string) error
}

// BoxTypeRepository defines data access for the box catalogue.
type BoxTypeRepository interface {
	// List retrieves all active box types.
	List(ctx context.Context) ([]model.BoxType, error)

	// GetByID retrieves a box type. Returns (nil, nil) when missing.
	GetByID(ctx context.Context, id string) (*model.BoxType, error)
}

// OrderRepository defines data access for generated orders.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateForCycle inserts an order generated by the batch renewal run.
	// The unique constraint on (subscription_id, cycle_id) makes reruns
	// idempotent: returns false when the order already existed.
	CreateForCycle(ctx context.Context, order *model.Order) (bool, error)

	// CreateFromPreorder inserts the order produced by a preorder
	// conversion within the provided transaction.
	CreateFromPreorder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// GetByID retrieves an order. Returns (nil, nil) when missing.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
}

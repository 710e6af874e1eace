package service

import (
	"context"
	"time"

	"fitflow-box/internal/lifecycle"
	"fitflow-box/internal/model"
	"fitflow-box/internal/pricing"

	"github.com/google/uuid"
)

// SubscriptionService defines operations on a subscription's lifecycle and settings.
type SubscriptionService interface {
	// Get retrieves a subscription together with its derived capability flags.
	Get(ctx context.Context, id uuid.UUID) (*model.Subscription, *lifecycle.DerivedState, error)

	// ApplyAction applies a lifecycle action (pause/resume/cancel/expire).
	ApplyAction(ctx context.Context, id uuid.UUID, action lifecycle.Action) (*model.Subscription, error)

	// UpdatePreferences replaces personalisation preferences, allowed only
	// while the subscription is active or paused.
	UpdatePreferences(ctx context.Context, id uuid.UUID, prefs model.Preferences) (*model.Subscription, error)

	// ChangeFrequency switches renewal cadence, allowed only while active.
	ChangeFrequency(ctx context.Context, id uuid.UUID, freq model.Frequency) (*model.Subscription, error)
}

// PricingService computes storefront quotes.
type PricingService interface {
	// Quote prices a box type with an optional promo code. Unknown box
	// types and invalid promo codes degrade (zero price, no discount)
	// rather than erroring, so the storefront always has something to show.
	Quote(ctx context.Context, boxTypeID, promoCode string) (*pricing.Quote, error)
}

// PreorderService governs the token-based conversion flow.
type PreorderService interface {
	// GetByToken retrieves a preorder for display, with its conversion
	// status evaluated lazily against now.
	GetByToken(ctx context.Context, token string, now time.Time) (*model.Preorder, error)

	// Convert turns a pending preorder into an order. Replaying a used
	// token yields model.ErrPreorderAlreadyConverted; a lapsed token
	// yields model.ErrPreorderLinkExpired.
	Convert(ctx context.Context, token string, now time.Time) (*model.Order, error)

	// SweepExpired flips lapsed pending preorders to expired and returns
	// how many rows changed. Safe to rerun.
	SweepExpired(ctx context.Context, now time.Time) (int64, error)
}

// GenerationReport summarises one order-generation batch run.
type GenerationReport struct {
	CycleID    uuid.UUID `json:"cycleId"`
	Evaluated  int       `json:"evaluated"`
	Created    int       `json:"created"`
	Skipped    int       `json:"skipped"`
	Duplicates int       `json:"duplicates"`
	Failed     int       `json:"failed"`
}

// OrderGenService runs the batch renewal pass for a delivery cycle.
type OrderGenService interface {
	// GenerateForCycle evaluates every active subscription against the
	// target cycle and creates orders for those included. One failing
	// subscription never aborts the batch; reruns are idempotent.
	GenerateForCycle(ctx context.Context, cycleID uuid.UUID) (*GenerationReport, error)
}

// CatalogService serves the storefront box catalogue and cycle listings,
// plus the staff operations that move cycles through their lifecycle.
type CatalogService interface {
	ListBoxTypes(ctx context.Context) ([]model.BoxType, error)
	GetBoxType(ctx context.Context, id string) (*model.BoxType, error)
	ListCycles(ctx context.Context) ([]model.DeliveryCycle, error)

	// CreateCycle opens a new delivery cycle in the upcoming state.
	CreateCycle(ctx context.Context, req model.CycleCreateRequest) (*model.DeliveryCycle, error)

	// SetCycleStatus advances a cycle to delivered or archived. Transitions
	// only move forward; an out-of-order request yields
	// model.ErrCycleStateChanged.
	SetCycleStatus(ctx context.Context, id uuid.UUID, target model.CycleStatus) (*model.DeliveryCycle, error)
}

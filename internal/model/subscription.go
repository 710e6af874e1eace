package model

import (
	"time"

	"github.com/google/uuid"
)

// Frequency is the renewal cadence of a subscription.
type Frequency string

const (
	FrequencyMonthly  Frequency = "monthly"
	FrequencySeasonal Frequency = "seasonal"
)

// Valid reports whether the frequency is one of the known cadences.
func (f Frequency) Valid() bool {
	return f == FrequencyMonthly || f == FrequencySeasonal
}

// SubscriptionStatus is the lifecycle state of a subscription.
// Cancelled and expired are terminal; subscriptions are never deleted.
type SubscriptionStatus string

const (
	StatusActive    SubscriptionStatus = "active"
	StatusPaused    SubscriptionStatus = "paused"
	StatusCancelled SubscriptionStatus = "cancelled"
	StatusExpired   SubscriptionStatus = "expired"
)

// Preferences holds the personalisation choices attached to a subscription
// or preorder. Stored as a JSONB column.
type Preferences struct {
	Sports  []string `json:"sports,omitempty"`
	Colors  []string `json:"colors,omitempty"`
	Flavors []string `json:"flavors,omitempty"`
	Dietary []string `json:"dietary,omitempty"`
	Sizes   []string `json:"sizes,omitempty"`
	Notes   string   `json:"notes,omitempty"`
}

// Subscription represents a recurring commitment to receive a box.
type Subscription struct {
	ID                   uuid.UUID          `json:"id" db:"id"`
	CustomerID           uuid.UUID          `json:"customerId" db:"customer_id"`
	BoxTypeID            string             `json:"boxTypeId" db:"box_type_id"`
	Frequency            Frequency          `json:"frequency" db:"frequency"`
	Status               SubscriptionStatus `json:"status" db:"status"`
	PriceEUR             float64            `json:"priceEur" db:"price_eur"`
	PromoCode            *string            `json:"promoCode,omitempty" db:"promo_code"`
	DiscountPercent      float64            `json:"discountPercent" db:"discount_percent"`
	AddressID            *uuid.UUID         `json:"addressId,omitempty" db:"address_id"`
	FirstCycleID         *uuid.UUID         `json:"firstCycleId,omitempty" db:"first_cycle_id"`
	LastDeliveredCycleID *uuid.UUID         `json:"lastDeliveredCycleId,omitempty" db:"last_delivered_cycle_id"`
	Preferences          Preferences        `json:"preferences" db:"preferences"`
	CreatedAt            time.Time          `json:"createdAt" db:"created_at"`
	UpdatedAt            time.Time          `json:"updatedAt" db:"updated_at"`
	PausedAt             *time.Time         `json:"pausedAt,omitempty" db:"paused_at"`
	CancelledAt          *time.Time         `json:"cancelledAt,omitempty" db:"cancelled_at"`
}

// SubscriptionActionRequest is the payload for a lifecycle action.
type SubscriptionActionRequest struct {
	Action string `json:"action" validate:"required,oneof=pause resume cancel expire"`
}

// PreferencesUpdateRequest is the payload for updating personalisation choices.
type PreferencesUpdateRequest struct {
	Preferences Preferences `json:"preferences"`
}

// FrequencyChangeRequest is the payload for switching renewal cadence.
type FrequencyChangeRequest struct {
	Frequency string `json:"frequency" validate:"required,oneof=monthly seasonal"`
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// Order represents one generated shipment, created either by the batch
// renewal run for a delivery cycle or by converting a preorder. The unique
// constraint on (subscription_id, cycle_id) makes the batch run idempotent.
type Order struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	SubscriptionID *uuid.UUID `json:"subscriptionId,omitempty" db:"subscription_id"`
	PreorderID     *uuid.UUID `json:"preorderId,omitempty" db:"preorder_id"`
	CycleID        *uuid.UUID `json:"cycleId,omitempty" db:"cycle_id"`
	BoxTypeID      string     `json:"boxTypeId" db:"box_type_id"`
	PriceEUR       float64    `json:"priceEur" db:"price_eur"`
	PromoCode      *string    `json:"promoCode,omitempty" db:"promo_code"`
	CreatedAt      time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time  `json:"updatedAt" db:"updated_at"`
}

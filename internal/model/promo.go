package model

import (
	"time"

	"github.com/google/uuid"
)

// PromoCode represents a percentage discount rule. Codes are stored
// normalised to uppercase. A disabled, out-of-window or usage-exhausted code
// is treated as absent, never as an error.
type PromoCode struct {
	ID              uuid.UUID  `json:"id" db:"id"`
	Code            string     `json:"code" db:"code"`
	DiscountPercent float64    `json:"discountPercent" db:"discount_percent"`
	Enabled         bool       `json:"enabled" db:"enabled"`
	ValidFrom       *time.Time `json:"validFrom,omitempty" db:"valid_from"`
	ValidUntil      *time.Time `json:"validUntil,omitempty" db:"valid_until"`
	MaxUses         *int       `json:"maxUses,omitempty" db:"max_uses"`
	MaxUsesPerUser  *int       `json:"maxUsesPerUser,omitempty" db:"max_uses_per_user"`
	UsedCount       int        `json:"usedCount" db:"used_count"`
	CreatedAt       time.Time  `json:"createdAt" db:"created_at"`
}

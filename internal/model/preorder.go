package model

import (
	"time"

	"github.com/google/uuid"
)

// ConversionStatus tracks whether a preorder has been turned into a real order.
type ConversionStatus string

const (
	ConversionPending   ConversionStatus = "pending"
	ConversionConverted ConversionStatus = "converted"
	ConversionExpired   ConversionStatus = "expired"
)

// Preorder represents a pre-launch reservation. Its conversion token is a
// single-use, time-limited credential allowing the reservation to be turned
// into an order without a login.
type Preorder struct {
	ID                uuid.UUID        `json:"id" db:"id"`
	OrderNumber       string           `json:"orderNumber" db:"order_number"`
	Email             string           `json:"email" db:"email"`
	FullName          string           `json:"fullName" db:"full_name"`
	BoxTypeID         string           `json:"boxTypeId" db:"box_type_id"`
	Frequency         Frequency        `json:"frequency" db:"frequency"`
	Preferences       Preferences      `json:"preferences" db:"preferences"`
	PromoCode         *string          `json:"promoCode,omitempty" db:"promo_code"`
	DiscountPercent   float64          `json:"discountPercent" db:"discount_percent"`
	PriceEUR          float64          `json:"priceEur" db:"price_eur"`
	ConversionStatus  ConversionStatus `json:"conversionStatus" db:"conversion_status"`
	ConversionToken   string           `json:"-" db:"conversion_token"`
	TokenExpiresAt    time.Time        `json:"tokenExpiresAt" db:"conversion_token_expires_at"`
	ConvertedToOrder  *uuid.UUID       `json:"convertedToOrderId,omitempty" db:"converted_to_order_id"`
	CreatedAt         time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time        `json:"updatedAt" db:"updated_at"`
}

// PreorderConvertRequest is the payload for a token-based conversion.
type PreorderConvertRequest struct {
	Token string `json:"token" validate:"required"`
}

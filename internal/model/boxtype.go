package model

import "time"

// BoxType represents a purchasable box in the catalogue. Prices are held in
// EUR as the source of truth; the BGN figure is derived at quote time.
type BoxType struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	PriceEUR  float64   `json:"priceEur" db:"price_eur"`
	Active    bool      `json:"active" db:"active"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// QuoteRequest is the payload for a storefront price quote.
type QuoteRequest struct {
	BoxTypeID string `json:"boxTypeId" validate:"required"`
	PromoCode string `json:"promoCode,omitempty"`
}

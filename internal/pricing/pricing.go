// Package pricing computes storefront prices in EUR and BGN. EUR is the
// source of truth; the BGN figure is derived with the fixed currency-board
// rate. Each derived amount is rounded to 2 decimals at the EUR level before
// conversion to avoid cross-currency rounding drift.
package pricing

import (
	"fitflow-box/internal/model"

	"github.com/shopspring/decimal"
)

// EURToBGNRate is the fixed EUR/BGN currency-board rate.
const EURToBGNRate = 1.95583

var (
	rateBGN = decimal.NewFromFloat(EURToBGNRate)
	hundred = decimal.NewFromInt(100)
)

// Quote is a displayable price computation for one box type with an optional
// promo discount applied.
type Quote struct {
	BoxTypeID         string  `json:"boxTypeId"`
	OriginalPriceEUR  float64 `json:"originalPriceEur"`
	OriginalPriceBGN  float64 `json:"originalPriceBgn"`
	DiscountPercent   float64 `json:"discountPercent"`
	DiscountAmountEUR float64 `json:"discountAmountEur"`
	DiscountAmountBGN float64 `json:"discountAmountBgn"`
	FinalPriceEUR     float64 `json:"finalPriceEur"`
	FinalPriceBGN     float64 `json:"finalPriceBgn"`
	PromoCode         *string `json:"promoCode,omitempty"`
}

// Compute builds a quote for the box type, applying the promo code if one is
// given. It always returns a displayable quote: a nil (unknown) box type
// prices at zero, and a nil promo means no discount. Promo validity checks
// belong to the caller; a promo passed here is taken as applicable.
func Compute(boxType *model.BoxType, promo *model.PromoCode) Quote {
	original := decimal.Zero
	q := Quote{}
	if boxType != nil {
		original = decimal.NewFromFloat(boxType.PriceEUR).Round(2)
		q.BoxTypeID = boxType.ID
	}

	pct := decimal.Zero
	if promo != nil {
		pct = decimal.NewFromFloat(promo.DiscountPercent)
		code := promo.Code
		q.PromoCode = &code
	}

	// Discount amount and final price are rounded independently so the
	// final price matches round(original * (1 - pct/100), 2) exactly.
	discount := original.Mul(pct).Div(hundred).Round(2)
	final := original.Mul(decimal.NewFromInt(1).Sub(pct.Div(hundred))).Round(2)

	q.OriginalPriceEUR = original.InexactFloat64()
	q.OriginalPriceBGN = toBGN(original)
	q.DiscountPercent = pct.InexactFloat64()
	q.DiscountAmountEUR = discount.InexactFloat64()
	q.DiscountAmountBGN = toBGN(discount)
	q.FinalPriceEUR = final.InexactFloat64()
	q.FinalPriceBGN = toBGN(final)
	return q
}

// toBGN converts a rounded EUR amount at the fixed rate, rounding again to 2
// decimals.
func toBGN(eur decimal.Decimal) float64 {
	return eur.Mul(rateBGN).Round(2).InexactFloat64()
}

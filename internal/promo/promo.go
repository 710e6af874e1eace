package promo

import (
	"context"

	"fitflow-box/internal/model"
)

// Validator resolves a raw promo code string to a usable discount.
type Validator interface {
	// Resolve normalises the code and checks it against the active code
	// set. It returns (nil, nil) for a missing, disabled, out-of-window or
	// usage-exhausted code: absence of discount is not an error. Only
	// data-layer failures return a non-nil error.
	Resolve(ctx context.Context, code string) (*model.PromoCode, error)
}

// Store is the data access needed by the validator.
type Store interface {
	// GetByCode looks up a promo code by its normalised (uppercase) form.
	// Returns (nil, nil) when no such code exists.
	GetByCode(ctx context.Context, code string) (*model.PromoCode, error)
}

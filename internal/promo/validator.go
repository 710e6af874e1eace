package promo

import (
	"context"
	"strings"
	"time"

	"fitflow-box/internal/model"

	"github.com/rs/zerolog"
)

// Normalize trims and uppercases a raw promo code string.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// validator implements Validator against the database-backed code set,
// fronted by the TTL cache. The database is the single source of truth for
// promo codes.
type validator struct {
	store  Store
	cache  *Cache
	now    func() time.Time
	logger zerolog.Logger
}

// NewValidator creates a database-backed promo validator.
func NewValidator(store Store, cache *Cache, logger zerolog.Logger) Validator {
	return &validator{
		store:  store,
		cache:  cache,
		now:    time.Now,
		logger: logger.With().Str("component", "promo-validator").Logger(),
	}
}

// Resolve checks a promo code against the active code set. Every branch that
// rejects the code returns (nil, nil): the storefront degrades to "no
// discount" rather than surfacing an error to the customer.
func (v *validator) Resolve(ctx context.Context, raw string) (*model.PromoCode, error) {
	code := Normalize(raw)
	if code == "" {
		return nil, nil
	}

	p, err := v.cache.GetOrLoad(ctx, code, func(ctx context.Context) (*model.PromoCode, error) {
		return v.store.GetByCode(ctx, code)
	})
	if err != nil {
		// Data-layer failure: the only case that propagates.
		v.logger.Error().Err(err).Str("promo_code", code).Msg("promo lookup failed")
		return nil, err
	}

	if p == nil || !p.Enabled {
		v.logger.Debug().Str("promo_code", code).Msg("promo code missing or disabled")
		return nil, nil
	}

	// A malformed discount stored out of (0, 100] is treated as an
	// invalid code, not an error.
	if p.DiscountPercent <= 0 || p.DiscountPercent > 100 {
		v.logger.Warn().
			Str("promo_code", code).
			Float64("discount_percent", p.DiscountPercent).
			Msg("promo code has out-of-range discount")
		return nil, nil
	}

	now := v.now()
	if p.ValidFrom != nil && now.Before(*p.ValidFrom) {
		v.logger.Debug().Str("promo_code", code).Msg("promo code not yet valid")
		return nil, nil
	}
	if p.ValidUntil != nil && now.After(*p.ValidUntil) {
		v.logger.Debug().Str("promo_code", code).Msg("promo code validity window passed")
		return nil, nil
	}
	if p.MaxUses != nil && p.UsedCount >= *p.MaxUses {
		v.logger.Debug().
			Str("promo_code", code).
			Int("used_count", p.UsedCount).
			Msg("promo code usage exhausted")
		return nil, nil
	}

	return p, nil
}

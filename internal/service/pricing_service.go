package service

import (
	"context"
	"fmt"

	"fitflow-box/internal/pricing"
	"fitflow-box/internal/promo"
	"fitflow-box/internal/repository"

	"github.com/rs/zerolog"
)

// pricingService implements PricingService.
type pricingService struct {
	boxRepo   repository.BoxTypeRepository
	validator promo.Validator
	logger    zerolog.Logger
}

// NewPricingService creates a new pricing service.
func NewPricingService(boxRepo repository.BoxTypeRepository, validator promo.Validator, logger zerolog.Logger) PricingService {
	return &pricingService{
		boxRepo:   boxRepo,
		validator: validator,
		logger:    logger.With().Str("service", "pricing").Logger(),
	}
}

// Quote prices a box type with an optional promo code. An unknown box type
// quotes at zero and an invalid promo code applies no discount; only
// data-layer failures surface as errors.
func (s *pricingService) Quote(ctx context.Context, boxTypeID, promoCode string) (*pricing.Quote, error) {
	boxType, err := s.boxRepo.GetByID(ctx, boxTypeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load box type: %w", err)
	}
	if boxType == nil {
		s.logger.Warn().Str("box_type_id", boxTypeID).Msg("quoting unknown box type at zero")
	}

	applied, err := s.validator.Resolve(ctx, promoCode)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve promo code: %w", err)
	}

	q := pricing.Compute(boxType, applied)
	if q.BoxTypeID == "" {
		q.BoxTypeID = boxTypeID
	}

	s.logger.Debug().
		Str("box_type_id", boxTypeID).
		Float64("final_price_eur", q.FinalPriceEUR).
		Float64("discount_percent", q.DiscountPercent).
		Msg("quote computed")

	return &q, nil
}
